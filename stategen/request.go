package stategen

import (
	"github.com/0xTylerHolmes/stategen/forkchoice"
	"github.com/0xTylerHolmes/stategen/primitives"
)

// Caller labels the metrics and log lines emitted for a regen job with
// who asked for it, one half of the (caller, entrypoint) label pair.
type Caller string

// entrypoint names the four kinds of regen request, used as the other
// half of the metrics label pair.
type entrypoint string

const (
	entrypointPreState        entrypoint = "get_pre_state"
	entrypointCheckpointState entrypoint = "get_checkpoint_state"
	entrypointBlockSlotState  entrypoint = "get_block_slot_state"
	entrypointState           entrypoint = "get_state"
)

// callerHeadState labels the Head Tracker's own background get_state
// call, issued when set_head can't install a state synchronously.
const callerHeadState Caller = "head_tracker"

// regenRequest is the tagged variant over the four regen request kinds.
// Exactly one of the four constructors below is used to build a value;
// the queue worker dispatches on its entrypoint field.
type regenRequest struct {
	caller     Caller
	entrypoint entrypoint

	// GetPreState
	block *forkchoice.BlockSummary

	// GetCheckpointState
	checkpoint primitives.Checkpoint

	// GetBlockSlotState
	blockRoot primitives.Root
	slot      primitives.Slot

	// GetState
	stateRoot primitives.Root
}

func preStateRequest(caller Caller, block forkchoice.BlockSummary) regenRequest {
	return regenRequest{caller: caller, entrypoint: entrypointPreState, block: &block}
}

func checkpointStateRequest(caller Caller, cp primitives.Checkpoint) regenRequest {
	return regenRequest{caller: caller, entrypoint: entrypointCheckpointState, checkpoint: cp}
}

func blockSlotStateRequest(caller Caller, blockRoot primitives.Root, slot primitives.Slot) regenRequest {
	return regenRequest{caller: caller, entrypoint: entrypointBlockSlotState, blockRoot: blockRoot, slot: slot}
}

func stateRequest(caller Caller, stateRoot primitives.Root) regenRequest {
	return regenRequest{caller: caller, entrypoint: entrypointState, stateRoot: stateRoot}
}
