package cache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xTylerHolmes/stategen/primitives"
	"github.com/0xTylerHolmes/stategen/state"
)

func TestArenaRegisterResolveRelease(t *testing.T) {
	a := NewArena()
	root := primitives.Root{4}
	st := &state.MockState{SlotVal: 1}

	h := a.Register(root, st)
	got, ok := a.Resolve(h)
	require.True(t, ok)
	require.Equal(t, st, got)

	a.Release(root)
	_, ok = a.Resolve(h)
	require.False(t, ok)

	// Releasing an already-released root is a no-op.
	a.Release(root)
}

func TestArenaSlotReuseInvalidatesOldHandle(t *testing.T) {
	a := NewArena()
	rootA := primitives.Root{1}
	rootB := primitives.Root{2}

	hA := a.Register(rootA, &state.MockState{SlotVal: 1})
	a.Release(rootA)

	hB := a.Register(rootB, &state.MockState{SlotVal: 2})

	_, ok := a.Resolve(hA)
	require.False(t, ok)

	got, ok := a.Resolve(hB)
	require.True(t, ok)
	require.Equal(t, primitives.Slot(2), got.Slot())
}

func TestArenaRegisterSameRootTwiceReusesSlot(t *testing.T) {
	a := NewArena()
	root := primitives.Root{3}

	st1 := &state.MockState{SlotVal: 1}
	h1 := a.Register(root, st1)

	st2 := &state.MockState{SlotVal: 2}
	h2 := a.Register(root, st2)

	got1, ok := a.Resolve(h1)
	require.True(t, ok)
	got2, ok := a.Resolve(h2)
	require.True(t, ok)
	require.Equal(t, got1, got2)
}
