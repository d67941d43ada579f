package cache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xTylerHolmes/stategen/primitives"
	"github.com/0xTylerHolmes/stategen/state"
)

func TestDependantRootIndexInsertProbe(t *testing.T) {
	arena := NewArena()
	idx := NewDependantRootIndex(arena)

	root := primitives.Root{5}
	st := &state.MockState{SlotVal: 32, StateRootVal: primitives.Root{1}}
	idx.Insert(Next, 1, root, st)

	got, ok := idx.Probe(Next, 1, root)
	require.True(t, ok)
	require.Equal(t, st, got)

	_, ok = idx.Probe(Curr, 1, root)
	require.False(t, ok)

	_, ok = idx.Probe(Next, 2, root)
	require.False(t, ok)
}

func TestDependantRootIndexProbePrunesDeadHandles(t *testing.T) {
	arena := NewArena()
	idx := NewDependantRootIndex(arena)

	root := primitives.Root{6}
	st := &state.MockState{SlotVal: 64, StateRootVal: primitives.Root{2}}
	idx.Insert(Next, 1, root, st)

	// Releasing the backing root (as the State Cache's eviction hook
	// would) invalidates the handle without the index knowing directly.
	arena.Release(st.StateRootVal)

	_, ok := idx.Probe(Next, 1, root)
	require.False(t, ok)

	// The bucket should have been emptied and removed.
	require.Empty(t, idx.buckets[Next])
}

func TestDependantRootIndexGCBelow(t *testing.T) {
	arena := NewArena()
	idx := NewDependantRootIndex(arena)

	root := primitives.Root{7}
	idx.Insert(Next, 1, root, &state.MockState{StateRootVal: primitives.Root{10}})
	idx.Insert(Next, 5, root, &state.MockState{StateRootVal: primitives.Root{11}})

	idx.GCBelow(3)

	_, ok := idx.Probe(Next, 1, root)
	require.False(t, ok)

	_, ok = idx.Probe(Next, 5, root)
	require.True(t, ok)
}
