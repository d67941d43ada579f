package stategen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xTylerHolmes/stategen/cache"
	"github.com/0xTylerHolmes/stategen/dbreader"
	"github.com/0xTylerHolmes/stategen/forkchoice"
	"github.com/0xTylerHolmes/stategen/params"
	"github.com/0xTylerHolmes/stategen/primitives"
	"github.com/0xTylerHolmes/stategen/state"
	"github.com/0xTylerHolmes/stategen/statetransition"
)

func newTestService(t *testing.T) (*Service, *forkchoice.MockForkChoice, *dbreader.MockReader) {
	t.Helper()
	params.OverrideBeaconConfig(&params.BeaconChainConfig{SlotsPerEpoch: 32, MaxQueue: 256, GCHorizon: 4})
	t.Cleanup(params.UseMainnetConfig)

	fc := forkchoice.NewMockForkChoice()
	persistent := dbreader.NewMockReader()
	svc := New(fc, persistent, &statetransition.MockEngine{})
	svc.Start(context.Background())
	t.Cleanup(svc.Cancel)
	return svc, fc, persistent
}

// Scenario 1: a same-epoch pre-state hit never enqueues.
func TestGetPreStateCacheHitSameEpoch(t *testing.T) {
	svc, fc, _ := newTestService(t)

	parentRoot := primitives.Root{0xAA}
	parentState := &state.MockState{SlotVal: 32, StateRootVal: parentRoot}
	parent := forkchoice.BlockSummary{BlockRoot: parentRoot, Slot: 32, StateRoot: parentRoot, TargetRoot: parentRoot}
	fc.InsertBlock(parent)
	svc.stateCache.Put(parentRoot, parentState)

	block := forkchoice.BlockSummary{BlockRoot: primitives.Root{0xBB}, ParentRoot: parentRoot, Slot: 35, TargetRoot: parentRoot}

	got, err := svc.GetPreState(context.Background(), block, "test")
	require.NoError(t, err)
	require.Equal(t, parentState, got)
	require.Equal(t, 0, svc.queue.depthNow())
}

// Scenario 2: a cross-epoch pre-state hit via the checkpoint cache never enqueues.
func TestGetPreStateCacheHitCrossEpoch(t *testing.T) {
	svc, fc, _ := newTestService(t)

	parentRoot := primitives.Root{0xCC}
	parent := forkchoice.BlockSummary{BlockRoot: parentRoot, Slot: 31, StateRoot: parentRoot, TargetRoot: parentRoot}
	fc.InsertBlock(parent)

	checkpointState := &state.MockState{SlotVal: 32}
	svc.checkpointCache.Put(primitives.Checkpoint{Epoch: 1, Root: parentRoot}, checkpointState)

	block := forkchoice.BlockSummary{BlockRoot: primitives.Root{0xDD}, ParentRoot: parentRoot, Slot: 32, TargetRoot: primitives.Root{0xDD}}

	got, err := svc.GetPreState(context.Background(), block, "test")
	require.NoError(t, err)
	require.Equal(t, checkpointState, got)
	require.Equal(t, 0, svc.queue.depthNow())
}

// Scenario 6: when the head's dependant_root_curr already matches the
// resolved dependant root, attester shuffling is served from the head
// state without probing the index or the persistent store.
func TestGetAttesterShufflingServedFromHead(t *testing.T) {
	svc, fc, persistent := newTestService(t)

	// With the head at epoch 1, the two dependant roots compared here (the
	// head's Curr root and GetAttesterShuffling's lookup) are both for
	// epoch 0, which the resolver answers with the finalized root directly,
	// without walking ancestors, so they are trivially identical.
	targetRoot := primitives.Root{0xEE}
	headBlock := forkchoice.BlockSummary{BlockRoot: targetRoot, ParentRoot: primitives.ZeroRoot, Slot: 32, StateRoot: targetRoot, TargetRoot: targetRoot}
	fc.InsertBlock(headBlock)
	fc.SetFinalizedCheckpoint(primitives.Checkpoint{Epoch: 0, Root: primitives.Root{0x01}})

	headState := &state.MockState{
		SlotVal:             32,
		StateRootVal:        targetRoot,
		CurrentShufflingVal: []primitives.ValidatorIndex{7, 8, 9},
	}
	require.NoError(t, svc.SetHead(context.Background(), headBlock, headState))
	require.Equal(t, headState, svc.GetHeadState())

	target := primitives.Checkpoint{Epoch: 1, Root: targetRoot}
	got, err := svc.GetAttesterShuffling(context.Background(), headBlock, target)
	require.NoError(t, err)
	require.Equal(t, headState.CurrentShufflingVal, got)

	// Persistent reader was never consulted.
	_, err = persistent.ReadCheckpointState(context.Background(), 0, targetRoot)
	require.ErrorIs(t, err, dbreader.ErrNotFound)
}

func TestGetStateCacheCoherence(t *testing.T) {
	svc, _, _ := newTestService(t)

	root := primitives.Root{0x55}
	st := &state.MockState{SlotVal: 10, StateRootVal: root}
	svc.stateCache.Put(root, st)

	got, err := svc.GetState(context.Background(), root, "test")
	require.NoError(t, err)
	require.Equal(t, st, got)
	require.Equal(t, 0, svc.queue.depthNow())
}

func TestSaveStatePutsDirectlyIntoStateCache(t *testing.T) {
	svc, _, _ := newTestService(t)

	root := primitives.Root{0x77}
	st := &state.MockState{SlotVal: 0, StateRootVal: root}
	svc.SaveState(context.Background(), st)

	got, ok := svc.stateCache.Get(root)
	require.True(t, ok)
	require.Equal(t, st, got)
}

func TestAddPostStateRegistersAllThreeTiers(t *testing.T) {
	svc, fc, _ := newTestService(t)

	// The block at slot 64 is the first of epoch 2, so every dependant root
	// it resolves to (epochs 2, 1 and 0) is the genesis root: its parent
	// for epochs 2 and 1, and the finalized root for epoch 0.
	genesisRoot := primitives.Root{0x01}
	genesis := forkchoice.BlockSummary{BlockRoot: genesisRoot, ParentRoot: primitives.ZeroRoot, Slot: 0, StateRoot: genesisRoot, TargetRoot: genesisRoot}
	fc.InsertBlock(genesis)

	root := primitives.Root{0x66}
	block := forkchoice.BlockSummary{BlockRoot: root, ParentRoot: genesisRoot, Slot: 64, StateRoot: root, TargetRoot: root}
	fc.InsertBlock(block)
	fc.SetFinalizedCheckpoint(primitives.Checkpoint{Epoch: 0, Root: genesisRoot})

	st := &state.MockState{SlotVal: 64, StateRootVal: root}
	require.NoError(t, svc.AddPostState(context.Background(), st, block))

	_, ok := svc.dependantIndex.Probe(cache.Next, 2, genesisRoot)
	require.True(t, ok)
	_, ok = svc.dependantIndex.Probe(cache.Curr, 1, genesisRoot)
	require.True(t, ok)
	_, ok = svc.dependantIndex.Probe(cache.Prev, 0, genesisRoot)
	require.True(t, ok)
}
