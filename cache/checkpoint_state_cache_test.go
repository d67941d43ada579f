package cache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xTylerHolmes/stategen/primitives"
	"github.com/0xTylerHolmes/stategen/state"
)

func TestCheckpointStateCacheGetExact(t *testing.T) {
	c := NewCheckpointStateCache()
	root := primitives.Root{9}
	cp := primitives.Checkpoint{Epoch: 3, Root: root}
	st := &state.MockState{SlotVal: 96}

	_, ok := c.Get(cp)
	require.False(t, ok)

	c.Put(cp, st)
	got, ok := c.Get(cp)
	require.True(t, ok)
	require.Equal(t, st, got)
}

func TestCheckpointStateCacheLatest(t *testing.T) {
	c := NewCheckpointStateCache()
	root := primitives.Root{7}

	c.Put(primitives.Checkpoint{Epoch: 2, Root: root}, &state.MockState{SlotVal: 64})
	c.Put(primitives.Checkpoint{Epoch: 4, Root: root}, &state.MockState{SlotVal: 128})
	c.Put(primitives.Checkpoint{Epoch: 6, Root: root}, &state.MockState{SlotVal: 192})

	got, ok := c.Latest(root, 5)
	require.True(t, ok)
	require.Equal(t, primitives.Slot(128), got.Slot())

	_, ok = c.Latest(root, 1)
	require.False(t, ok)

	otherRoot := primitives.Root{8}
	_, ok = c.Latest(otherRoot, 10)
	require.False(t, ok)
}
