// Package forkchoice defines the read-only slice of the fork-choice DAG
// the state regeneration core depends on. The DAG implementation itself
// (protoarray or a doubly-linked tree) lives elsewhere; this package
// only states the adapter interface and a block summary type, following
// beacon-chain/forkchoice/interfaces.go's Getter sub-interface pattern.
package forkchoice

import (
	"context"

	"github.com/0xTylerHolmes/stategen/primitives"
)

// BlockSummary is the subset of a fork-choice node the core reads.
type BlockSummary struct {
	BlockRoot  primitives.Root
	ParentRoot primitives.Root
	StateRoot  primitives.Root
	Slot       primitives.Slot
	// TargetRoot is the root of the first block in BlockRoot's epoch
	// along its ancestor chain, or BlockRoot itself if it is that block.
	// It lets DependantRootResolver skip a whole epoch of ancestors in
	// a single hop.
	TargetRoot primitives.Root
}

// Epoch returns the epoch containing the block's slot.
func (b BlockSummary) Epoch() primitives.Epoch {
	return b.Slot.DivSlot()
}

// ForkChoice is the read-only adapter the regeneration core consumes,
// grounded on the Getter sub-interface of ForkChoicer in
// beacon-chain/forkchoice/interfaces.go, trimmed to what this core uses.
type ForkChoice interface {
	// GetBlock returns the block summary for root, or (BlockSummary{}, false)
	// if root is unknown to fork choice.
	GetBlock(ctx context.Context, root primitives.Root) (BlockSummary, bool)
	// GetFinalizedCheckpoint returns the current finalized checkpoint.
	GetFinalizedCheckpoint(ctx context.Context) primitives.Checkpoint
}
