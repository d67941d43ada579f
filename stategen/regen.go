package stategen

import (
	"context"

	"github.com/pkg/errors"

	"github.com/0xTylerHolmes/stategen/dbreader"
	"github.com/0xTylerHolmes/stategen/forkchoice"
	"github.com/0xTylerHolmes/stategen/primitives"
	"github.com/0xTylerHolmes/stategen/state"
	"github.com/0xTylerHolmes/stategen/statetransition"
)

// producerInfo records which block produced a given state root, so an
// evicted State Cache entry can be regenerated later. It is populated by
// AddPostState and by regenState for each post-state it replays (pre-states
// and slot-advanced states have no producing block and are not recorded),
// mirroring how beaconDB.SaveStateSummary keeps a (root -> slot)
// back-pointer for exactly this purpose.
type producerInfo struct {
	blockRoot primitives.Root
	slot      primitives.Slot
}

// executeJob is the Bounded Job Queue's jobFn: it dispatches a
// regenRequest to the Regeneration Engine primitive appropriate for its
// entrypoint. This is the only path to the transition engine's
// ProcessSlotsTo and ReplayBlock, so at-most-one-execution for a given
// job falls straight out of the queue's single-worker property. The
// Head Tracker's ProcessSlotsToNearestCheckpoint call runs outside the
// queue.
func (s *Service) executeJob(ctx context.Context, req regenRequest) (state.BeaconState, error) {
	switch req.entrypoint {
	case entrypointPreState:
		return s.regenPreState(ctx, *req.block)
	case entrypointCheckpointState:
		return s.regenCheckpointState(ctx, req.checkpoint)
	case entrypointBlockSlotState:
		return s.regenBlockSlotState(ctx, req.blockRoot, req.slot)
	case entrypointState:
		return s.regenState(ctx, req.stateRoot)
	default:
		return nil, errors.Errorf("stategen: unknown regen entrypoint %q", req.entrypoint)
	}
}

// regenState reconstructs the state for stateRoot by finding the block
// that produced it, obtaining that block's pre-state, and replaying the
// block onto it to get the post-state.
func (s *Service) regenState(ctx context.Context, stateRoot primitives.Root) (state.BeaconState, error) {
	if st, ok := s.stateCache.Get(stateRoot); ok {
		return st, nil
	}

	s.mu.RLock()
	producer, ok := s.producers[stateRoot]
	s.mu.RUnlock()
	if !ok {
		return nil, &UnresolvableError{Block: stateRoot}
	}

	block, ok := s.forkChoice.GetBlock(ctx, producer.blockRoot)
	if !ok {
		return nil, &BlockNotInForkChoiceError{Root: producer.blockRoot}
	}

	pre, err := s.regenPreState(ctx, block)
	if err != nil {
		return nil, err
	}

	post, err := s.transition.ReplayBlock(ctx, pre, statetransition.Block{BlockRoot: block.BlockRoot, Slot: block.Slot})
	if err != nil {
		return nil, &TransitionError{Inner: err}
	}

	s.stateCache.Put(post.StateRoot(), post)
	s.recordProducer(post.StateRoot(), block.BlockRoot, block.Slot)
	return post, nil
}

// regenPreState computes the pre-state of block: the parent's
// post-state, advanced to block's slot with no block applied. An
// in-epoch pre-state is the parent's post-state verbatim; a cross-epoch
// pre-state costs a slot-processing call.
func (s *Service) regenPreState(ctx context.Context, block forkchoice.BlockSummary) (state.BeaconState, error) {
	parent, ok := s.forkChoice.GetBlock(ctx, block.ParentRoot)
	if !ok {
		return nil, &BlockNotInForkChoiceError{Root: block.ParentRoot}
	}

	if parent.Epoch() < block.Epoch() {
		if hit, ok := s.checkpointCache.Latest(parent.BlockRoot, block.Epoch()); ok {
			return hit, nil
		}
		parentState, err := s.regenState(ctx, parent.StateRoot)
		if err != nil {
			return nil, err
		}
		pre, err := s.transition.ProcessSlotsTo(ctx, parentState, block.Slot)
		if err != nil {
			return nil, &TransitionError{Inner: err}
		}
		return pre, nil
	}

	if hit, ok := s.stateCache.Get(parent.StateRoot); ok {
		return hit, nil
	}
	return s.regenState(ctx, parent.StateRoot)
}

// regenCheckpointState resolves a checkpoint state via the persistent
// reader, the only source of truth for checkpoint states this engine
// doesn't already have cached.
func (s *Service) regenCheckpointState(ctx context.Context, cp primitives.Checkpoint) (state.BeaconState, error) {
	if hit, ok := s.checkpointCache.Get(cp); ok {
		return hit, nil
	}
	st, err := s.persistent.ReadCheckpointState(ctx, cp.Epoch, cp.Root)
	if err != nil {
		if errors.Is(err, dbreader.ErrNotFound) {
			return nil, &PersistentError{Inner: err}
		}
		return nil, &PersistentError{Inner: err}
	}
	s.checkpointCache.Put(cp, st)
	return st, nil
}

// regenBlockSlotState returns the state at slot descended from
// blockRoot, replaying no further blocks (blockRoot's own state is the
// most recent one on this branch) and advancing via ProcessSlotsTo.
func (s *Service) regenBlockSlotState(ctx context.Context, blockRoot primitives.Root, slot primitives.Slot) (state.BeaconState, error) {
	block, ok := s.forkChoice.GetBlock(ctx, blockRoot)
	if !ok {
		return nil, &BlockNotInForkChoiceError{Root: blockRoot}
	}
	if slot < block.Slot {
		return nil, &UnresolvableError{Block: blockRoot, Slot: slot}
	}

	st, err := s.regenState(ctx, block.StateRoot)
	if err != nil {
		return nil, err
	}
	if slot == block.Slot {
		return st, nil
	}

	advanced, err := s.transition.ProcessSlotsTo(ctx, st, slot)
	if err != nil {
		return nil, &TransitionError{Inner: err}
	}
	return advanced, nil
}

func (s *Service) recordProducer(stateRoot, blockRoot primitives.Root, slot primitives.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.producers[stateRoot] = producerInfo{blockRoot: blockRoot, slot: slot}
}
