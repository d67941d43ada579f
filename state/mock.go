package state

import "github.com/0xTylerHolmes/stategen/primitives"

// MockState is a minimal in-memory BeaconState used by tests and by the
// cmd/stategen-bench CLI, mirroring v1.BeaconState test fixtures built
// with testutil.NewBeaconState.
type MockState struct {
	SlotVal              primitives.Slot
	StateRootVal         primitives.Root
	ProposersVal         []primitives.ValidatorIndex
	CurrentShufflingVal  []primitives.ValidatorIndex
	NextShufflingVal     []primitives.ValidatorIndex
	PreviousShufflingVal []primitives.ValidatorIndex
}

var _ BeaconState = (*MockState)(nil)

func (m *MockState) Slot() primitives.Slot                         { return m.SlotVal }
func (m *MockState) StateRoot() primitives.Root                    { return m.StateRootVal }
func (m *MockState) Proposers() []primitives.ValidatorIndex        { return m.ProposersVal }
func (m *MockState) CurrentShuffling() []primitives.ValidatorIndex { return m.CurrentShufflingVal }
func (m *MockState) NextShuffling() []primitives.ValidatorIndex    { return m.NextShufflingVal }
func (m *MockState) PreviousShuffling() []primitives.ValidatorIndex {
	return m.PreviousShufflingVal
}

// Copy returns a shallow copy. MockState's slices are treated as
// immutable by convention, the same way BeaconState.Copy implementations
// avoid deep-copying fields that callers never mutate in place.
func (m *MockState) Copy() BeaconState {
	cp := *m
	return &cp
}
