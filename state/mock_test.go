package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xTylerHolmes/stategen/primitives"
)

func TestMockStateCopyIsIndependentStruct(t *testing.T) {
	orig := &MockState{SlotVal: 5, ProposersVal: []primitives.ValidatorIndex{1, 2}}
	cp := orig.Copy().(*MockState)

	require.Equal(t, orig.SlotVal, cp.SlotVal)
	cp.SlotVal = 9
	require.NotEqual(t, orig.SlotVal, cp.SlotVal)
}
