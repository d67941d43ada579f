package statetransition

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xTylerHolmes/stategen/primitives"
	"github.com/0xTylerHolmes/stategen/state"
)

func TestMockEngineProcessSlotsToAdvancesSlot(t *testing.T) {
	e := &MockEngine{}
	pre := &state.MockState{SlotVal: 10}

	got, err := e.ProcessSlotsTo(context.Background(), pre, 20)
	require.NoError(t, err)
	require.Equal(t, primitives.Slot(20), got.Slot())
	require.Equal(t, []string{"ProcessSlotsTo"}, e.Calls)
}

func TestMockEngineReturnsErr(t *testing.T) {
	e := &MockEngine{Err: context.DeadlineExceeded}
	_, err := e.ReplayBlock(context.Background(), &state.MockState{}, Block{Slot: 1})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMockEngineTransformOverride(t *testing.T) {
	called := false
	e := &MockEngine{Transform: func(pre state.BeaconState, target primitives.Slot, block *Block) state.BeaconState {
		called = true
		return &state.MockState{SlotVal: target}
	}}
	_, err := e.ProcessSlotsToNearestCheckpoint(context.Background(), &state.MockState{}, 7)
	require.NoError(t, err)
	require.True(t, called)
}
