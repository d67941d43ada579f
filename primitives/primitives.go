// Package primitives defines the slot and epoch scalar types shared
// across the state regeneration core.
package primitives

// Slot is the atomic time unit of consensus.
type Slot uint64

// Epoch is a fixed-length group of slots.
type Epoch uint64

// ValidatorIndex identifies a validator's position in the validator set.
type ValidatorIndex uint64

// Root identifies a block or state by its hash tree root.
type Root [32]byte

// ZeroRoot is the sentinel root used before any finalized checkpoint exists.
var ZeroRoot = Root{}

// Checkpoint marks an epoch boundary by the root of the last block that
// was canonical at the start of that epoch.
type Checkpoint struct {
	Epoch Epoch
	Root  Root
}
