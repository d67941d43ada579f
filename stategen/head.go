package stategen

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/0xTylerHolmes/stategen/forkchoice"
	"github.com/0xTylerHolmes/stategen/primitives"
	"github.com/0xTylerHolmes/stategen/state"
)

// headSummary carries the head block's coordinates plus the three
// dependant roots that decide, respectively, the next/proposer
// shuffling, the current attester shuffling, and the previous attester
// shuffling.
type headSummary struct {
	blockRoot         primitives.Root
	stateRoot         primitives.Root
	slot              primitives.Slot
	epoch             primitives.Epoch
	targetRoot        primitives.Root
	dependantRootNext primitives.Root
	dependantRootCurr primitives.Root
	dependantRootPrev primitives.Root
}

// HeadTracker maintains the current head summary and its cached state,
// following beacon-chain/blockchain/head.go's head struct and
// setHead/headState split between a synchronous cached view and a
// background regeneration path when the state isn't available yet.
type HeadTracker struct {
	mu        sync.RWMutex
	head      headSummary
	headState state.BeaconState
	hasHead   bool

	resolver   *DependantRootResolver
	stateCache StateCacheGetter
	ckptCache  CheckpointCacheGetter
	getState   func(ctx context.Context, stateRoot primitives.Root, caller Caller) (state.BeaconState, error)
	transition transitionAdvancer
}

// StateCacheGetter is the narrow read slice of cache.StateCache the
// Head Tracker needs, kept as an interface here so head.go doesn't
// import the cache package's LRU concretely.
type StateCacheGetter interface {
	Get(root primitives.Root) (state.BeaconState, bool)
}

// CheckpointCacheGetter is the narrow read slice of
// cache.CheckpointStateCache the Head Tracker needs.
type CheckpointCacheGetter interface {
	Latest(blockRoot primitives.Root, maxEpoch primitives.Epoch) (state.BeaconState, bool)
}

type transitionAdvancer interface {
	ProcessSlotsToNearestCheckpoint(ctx context.Context, st state.BeaconState, target primitives.Slot) (state.BeaconState, error)
}

func newHeadTracker(resolver *DependantRootResolver, stateCache StateCacheGetter, ckptCache CheckpointCacheGetter, transition transitionAdvancer, getState func(context.Context, primitives.Root, Caller) (state.BeaconState, error)) *HeadTracker {
	return &HeadTracker{
		resolver:   resolver,
		stateCache: stateCache,
		ckptCache:  ckptCache,
		transition: transition,
		getState:   getState,
	}
}

// SetHead replaces the head summary and tries to install the head
// state synchronously from candidate, the checkpoint cache, or the
// state cache; failing all three it asynchronously requests a regen via
// getState and installs the result only if the head hasn't moved on in
// the meantime (a compare-and-set against head.stateRoot, needed to stop
// a stale async regeneration from clobbering a newer SetHead call).
func (h *HeadTracker) SetHead(ctx context.Context, block forkchoice.BlockSummary, candidate state.BeaconState) error {
	epoch := block.Epoch()

	dependantNext, err := h.resolver.At(ctx, block, epoch)
	if err != nil {
		return err
	}
	dependantCurr, err := h.resolver.At(ctx, block, primitives.SubEpoch(epoch, 1))
	if err != nil {
		return err
	}
	dependantPrev, err := h.resolver.At(ctx, block, primitives.SubEpoch(epoch, 2))
	if err != nil {
		return err
	}

	newHead := headSummary{
		blockRoot:         block.BlockRoot,
		stateRoot:         block.StateRoot,
		slot:              block.Slot,
		epoch:             epoch,
		targetRoot:        block.TargetRoot,
		dependantRootNext: dependantNext,
		dependantRootCurr: dependantCurr,
		dependantRootPrev: dependantPrev,
	}

	h.mu.Lock()
	oldHead, hadHead := h.head, h.hasHead
	if hadHead && oldHead.blockRoot != block.ParentRoot && oldHead.blockRoot != block.BlockRoot {
		log.WithFields(logrus.Fields{
			"newSlot": block.Slot,
			"oldSlot": oldHead.slot,
		}).Debug("Chain reorg observed in set_head")
		reorgCount.Inc()
	}
	h.head = newHead
	h.hasHead = true

	var installed state.BeaconState
	switch {
	case candidate != nil && candidate.Slot() == block.Slot && candidate.StateRoot() == block.StateRoot:
		installed = candidate
	default:
		if st, ok := h.ckptCache.Latest(block.BlockRoot, ^primitives.Epoch(0)); ok && st.StateRoot() == block.StateRoot {
			installed = st
		} else if st, ok := h.stateCache.Get(block.StateRoot); ok {
			installed = st
		}
	}
	h.headState = installed
	h.mu.Unlock()

	if installed != nil {
		return nil
	}

	go h.recoverHeadState(context.WithoutCancel(ctx), block.StateRoot)
	return nil
}

// recoverHeadState asynchronously regenerates the head state and
// installs it only if set_head hasn't been called again with a
// different block in the meantime.
func (h *HeadTracker) recoverHeadState(ctx context.Context, stateRoot primitives.Root) {
	st, err := h.getState(ctx, stateRoot, callerHeadState)
	if err != nil {
		log.WithError(err).Debug("Could not recover head state")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.head.stateRoot != stateRoot {
		return
	}
	h.headState = st
}

// GetHeadState returns the cached head state, or nil if unavailable.
func (h *HeadTracker) GetHeadState() state.BeaconState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.headState
}

// GetHeadSummary returns a copy of the current head summary plus
// whether a head has ever been set.
func (h *HeadTracker) GetHeadSummary() (headSummary, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.head, h.hasHead
}

// GetHeadStateAtEpoch returns the head state advanced to the start of
// epoch, failing HeadUnavailable if no head state is cached.
func (h *HeadTracker) GetHeadStateAtEpoch(ctx context.Context, epoch primitives.Epoch) (state.BeaconState, error) {
	return h.GetHeadStateAtSlot(ctx, primitives.StartSlot(epoch))
}

// GetHeadStateAtSlot returns the head state advanced to slot, failing
// HeadUnavailable if no head state is cached.
func (h *HeadTracker) GetHeadStateAtSlot(ctx context.Context, slot primitives.Slot) (state.BeaconState, error) {
	h.mu.RLock()
	st := h.headState
	head := h.head
	h.mu.RUnlock()

	if st == nil {
		return nil, ErrHeadUnavailable
	}
	if slot <= head.slot {
		return st, nil
	}
	advanced, err := h.transition.ProcessSlotsToNearestCheckpoint(ctx, st, slot)
	if err != nil {
		return nil, &TransitionError{Inner: err}
	}
	return advanced, nil
}
