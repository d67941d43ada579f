// Package statetransition declares the external collaborator that
// performs slot processing and block processing. The transition
// function's internals live elsewhere; this package only states the
// interface the Regeneration Engine calls through, grounded on
// beacon-chain/state/stategen/replayer.go's ReplayBlocks/ReplayToSlot
// split between block-replay and slot-only advancement.
package statetransition

import (
	"context"

	"github.com/0xTylerHolmes/stategen/primitives"
	"github.com/0xTylerHolmes/stategen/state"
)

// Block is the minimal view of a signed block the transition engine
// needs to replay it onto a pre-state.
type Block struct {
	BlockRoot primitives.Root
	Slot      primitives.Slot
}

// Engine advances states by slot or by replaying a block: the two
// primitives the Regeneration Engine composes every regen request from.
type Engine interface {
	// ProcessSlotsTo advances st to targetSlot with no block applied,
	// i.e. pure slot processing (epoch transitions included).
	ProcessSlotsTo(ctx context.Context, st state.BeaconState, targetSlot primitives.Slot) (state.BeaconState, error)
	// ReplayBlock applies block on top of preState, producing the
	// block's post-state.
	ReplayBlock(ctx context.Context, preState state.BeaconState, block Block) (state.BeaconState, error)
	// ProcessSlotsToNearestCheckpoint advances st to the nearest slot
	// that is safe to serve for target, used by
	// HeadTracker.GetHeadStateAtSlot/AtEpoch when the head is ahead of
	// the requested target and needs no block replay, only slot
	// processing.
	ProcessSlotsToNearestCheckpoint(ctx context.Context, st state.BeaconState, target primitives.Slot) (state.BeaconState, error)
}
