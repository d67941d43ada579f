package dbreader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xTylerHolmes/stategen/primitives"
	"github.com/0xTylerHolmes/stategen/state"
)

func TestMockReaderPutAndRead(t *testing.T) {
	r := NewMockReader()
	root := primitives.Root{3}
	st := &state.MockState{SlotVal: 32}
	r.Put(1, root, st)

	got, err := r.ReadCheckpointState(context.Background(), 1, root)
	require.NoError(t, err)
	require.Equal(t, st, got)
}

func TestMockReaderNotFound(t *testing.T) {
	r := NewMockReader()
	_, err := r.ReadCheckpointState(context.Background(), 1, primitives.Root{3})
	require.ErrorIs(t, err, ErrNotFound)
}
