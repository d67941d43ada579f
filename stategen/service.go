// Package stategen implements the state regeneration and caching core
// of the beacon-chain engine: answering "give me the consensus state at
// (block, slot) or (checkpoint)" while amortizing expensive
// state-transition computation through layered caches, serializing
// regeneration work through a bounded queue, and maintaining the
// auxiliary indices that let shuffling lookups skip full state
// reconstruction.
package stategen

import (
	"context"
	"sync"

	"github.com/0xTylerHolmes/stategen/cache"
	"github.com/0xTylerHolmes/stategen/dbreader"
	"github.com/0xTylerHolmes/stategen/forkchoice"
	"github.com/0xTylerHolmes/stategen/params"
	"github.com/0xTylerHolmes/stategen/primitives"
	"github.com/0xTylerHolmes/stategen/state"
	"github.com/0xTylerHolmes/stategen/statetransition"
	"go.opencensus.io/trace"
)

// Service is the public facade of the state regeneration core: the
// management object callers hold, mirroring beacon-chain/state/stategen's
// State struct.
type Service struct {
	forkChoice      forkchoice.ForkChoice
	persistent      dbreader.Reader
	transition      statetransition.Engine
	stateCache      *cache.StateCache
	checkpointCache *cache.CheckpointStateCache
	dependantIndex  *cache.DependantRootIndex
	arena           *cache.Arena
	resolver        *DependantRootResolver
	queue           *jobQueue
	head            *HeadTracker

	mu        sync.RWMutex
	producers map[primitives.Root]producerInfo
}

// New returns a state management object wired to the given external
// collaborators, mirroring stategen.New. Call Start before issuing any
// requests.
func New(fc forkchoice.ForkChoice, persistent dbreader.Reader, transition statetransition.Engine) *Service {
	arena := cache.NewArena()
	stateCache := cache.NewStateCache(func(root primitives.Root, _ state.BeaconState) {
		arena.Release(root)
	})
	checkpointCache := cache.NewCheckpointStateCache()
	dependantIndex := cache.NewDependantRootIndex(arena)
	resolver := NewDependantRootResolver(fc)

	s := &Service{
		forkChoice:      fc,
		persistent:      persistent,
		transition:      transition,
		stateCache:      stateCache,
		checkpointCache: checkpointCache,
		dependantIndex:  dependantIndex,
		arena:           arena,
		resolver:        resolver,
		producers:       make(map[primitives.Root]producerInfo),
	}
	s.queue = newJobQueue(s.executeJob)
	s.head = newHeadTracker(resolver, stateCache, checkpointCache, transition, s.GetState)
	return s
}

// Start launches the Bounded Job Queue's single worker. ctx governs the
// worker's lifetime: cancelling it stops the worker after its current
// job, jobs left pending then fail with ctx's error, and later
// submissions fail with ErrCancelled. Unlike Cancel, it does not reject
// the submitter of a job that is already executing.
func (s *Service) Start(ctx context.Context) {
	s.queue.start(ctx)
}

// Cancel raises the queue's cancellation signal: every pending and
// in-flight job is rejected with ErrCancelled.
func (s *Service) Cancel() {
	s.queue.cancel()
}

// GetPreState returns the pre-state of block: a synchronous fast path
// against the checkpoint/state caches, falling back to a queued regen
// job on a miss.
func (s *Service) GetPreState(ctx context.Context, block forkchoice.BlockSummary, caller Caller) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "stategen.GetPreState")
	defer span.End()

	parent, ok := s.forkChoice.GetBlock(ctx, block.ParentRoot)
	if !ok {
		return nil, &BlockNotInForkChoiceError{Root: block.ParentRoot}
	}

	switch {
	case parent.Epoch() < block.Epoch():
		if st, ok := s.checkpointCache.Latest(parent.BlockRoot, block.Epoch()); ok {
			return st, nil
		}
	case parent.Epoch() == block.Epoch():
		if st, ok := s.stateCache.Get(parent.StateRoot); ok {
			return st, nil
		}
	}

	return s.queue.submit(ctx, preStateRequest(caller, block))
}

// GetCheckpointState returns the state at a checkpoint, checking the
// checkpoint cache before falling back to a queued regen job.
func (s *Service) GetCheckpointState(ctx context.Context, cp primitives.Checkpoint, caller Caller) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "stategen.GetCheckpointState")
	defer span.End()

	if st, ok := s.checkpointCache.Get(cp); ok {
		return st, nil
	}
	return s.queue.submit(ctx, checkpointStateRequest(caller, cp))
}

// GetBlockSlotState returns the state at slot descended from
// blockRoot. Always enqueued, no fast path.
func (s *Service) GetBlockSlotState(ctx context.Context, blockRoot primitives.Root, slot primitives.Slot, caller Caller) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "stategen.GetBlockSlotState")
	defer span.End()

	return s.queue.submit(ctx, blockSlotStateRequest(caller, blockRoot, slot))
}

// GetState returns the state with the given state root: a cache probe,
// then a queued regen job. Cache hits never enqueue, preserving cache
// coherence with in-flight regeneration.
func (s *Service) GetState(ctx context.Context, stateRoot primitives.Root, caller Caller) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "stategen.GetState")
	defer span.End()

	if st, ok := s.stateCache.Get(stateRoot); ok {
		return st, nil
	}
	return s.queue.submit(ctx, stateRequest(caller, stateRoot))
}

// AddPostState registers weak references into all three tiers of the
// Dependant-Root Index at
// epoch(state), epoch(state)-1, and epoch(state)-2 (clamped at zero),
// under the dependant roots computed from block. It does not promote
// state into the State Cache; producing states is the Regeneration
// Engine's job.
func (s *Service) AddPostState(ctx context.Context, st state.BeaconState, block forkchoice.BlockSummary) error {
	ctx, span := trace.StartSpan(ctx, "stategen.AddPostState")
	defer span.End()

	epoch := st.Slot().DivSlot()

	dNext, err := s.resolver.At(ctx, block, epoch)
	if err != nil {
		return err
	}
	dCurr, err := s.resolver.At(ctx, block, primitives.SubEpoch(epoch, 1))
	if err != nil {
		return err
	}
	dPrev, err := s.resolver.At(ctx, block, primitives.SubEpoch(epoch, 2))
	if err != nil {
		return err
	}

	s.dependantIndex.Insert(cache.Next, epoch, dNext, st)
	s.dependantIndex.Insert(cache.Curr, primitives.SubEpoch(epoch, 1), dCurr, st)
	s.dependantIndex.Insert(cache.Prev, primitives.SubEpoch(epoch, 2), dPrev, st)

	s.recordProducer(st.StateRoot(), block.BlockRoot, block.Slot)
	return nil
}

// SaveState puts st directly into the State Cache under its own state
// root, for states that are already materialized and need no
// regeneration: genesis, or a state a caller computed itself and wants
// to make available to future GetState/regen calls without re-deriving it.
func (s *Service) SaveState(_ context.Context, st state.BeaconState) {
	s.stateCache.Put(st.StateRoot(), st)
}

// PromoteCheckpoint forces st into the Checkpoint Cache under cp, so
// callers that already hold a state don't have to wait on a regen job
// to make it reusable as a checkpoint.
func (s *Service) PromoteCheckpoint(cp primitives.Checkpoint, st state.BeaconState) {
	s.checkpointCache.Put(cp, st)
}

// SetHead installs block as the new chain head, attempting to install
// its state synchronously and pruning the Dependant-Root Index against
// the newly observed finalized checkpoint.
func (s *Service) SetHead(ctx context.Context, block forkchoice.BlockSummary, candidate state.BeaconState) error {
	ctx, span := trace.StartSpan(ctx, "stategen.SetHead")
	defer span.End()

	if err := s.head.SetHead(ctx, block, candidate); err != nil {
		return err
	}

	finalized := s.forkChoice.GetFinalizedCheckpoint(ctx)
	s.gcDependantIndex(finalized.Epoch)
	return nil
}

// GetHeadState returns the currently cached head state, or nil.
func (s *Service) GetHeadState() state.BeaconState {
	return s.head.GetHeadState()
}

// GetHeadStateAtEpoch returns the head state advanced to the start of epoch.
func (s *Service) GetHeadStateAtEpoch(ctx context.Context, epoch primitives.Epoch) (state.BeaconState, error) {
	return s.head.GetHeadStateAtEpoch(ctx, epoch)
}

// GetHeadStateAtSlot returns the head state advanced to slot.
func (s *Service) GetHeadStateAtSlot(ctx context.Context, slot primitives.Slot) (state.BeaconState, error) {
	return s.head.GetHeadStateAtSlot(ctx, slot)
}

// gcDependantIndex drops Dependant-Root Index entries older than
// finalized - GC_HORIZON.
func (s *Service) gcDependantIndex(finalizedEpoch primitives.Epoch) {
	horizon := primitives.SubEpoch(finalizedEpoch, params.BeaconConfig().GCHorizon)
	s.dependantIndex.GCBelow(horizon)
}
