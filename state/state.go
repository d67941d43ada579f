// Package state defines the read-only view of a consensus state that the
// regeneration core needs. The state-transition function that produces
// these states is an external collaborator (see statetransition); this
// package only describes what the core reads off the result.
package state

import "github.com/0xTylerHolmes/stategen/primitives"

// BeaconState is the opaque consensus state the core caches, indexes,
// and hands back to callers. Implementations are expected to be
// immutable value-ish objects; Copy returns a deep-enough copy that
// callers can't corrupt a cached instance by mutating the result,
// mirroring state.ReadOnlyBeaconState.Copy.
type BeaconState interface {
	Slot() primitives.Slot
	StateRoot() primitives.Root
	Proposers() []primitives.ValidatorIndex
	CurrentShuffling() []primitives.ValidatorIndex
	NextShuffling() []primitives.ValidatorIndex
	PreviousShuffling() []primitives.ValidatorIndex
	Copy() BeaconState
}
