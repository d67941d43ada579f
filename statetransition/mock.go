package statetransition

import (
	"context"
	"sync"

	"github.com/0xTylerHolmes/stategen/primitives"
	"github.com/0xTylerHolmes/stategen/state"
)

// MockEngine is a controllable transition engine double for tests. It
// never errors unless Err is set, and produces states whose Slot
// advances to the requested target but otherwise copies the input,
// matching how stategen's own tests stub replayer/process_slots.
type MockEngine struct {
	mu  sync.Mutex
	Err error
	// Transform, if set, lets a test customize the post-state beyond
	// the default slot bump (e.g. to set a StateRoot or shuffling).
	Transform func(pre state.BeaconState, targetSlot primitives.Slot, block *Block) state.BeaconState
	// Calls records every invocation for assertions on call count/order.
	Calls []string
}

func (m *MockEngine) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, name)
}

func (m *MockEngine) ProcessSlotsTo(_ context.Context, st state.BeaconState, targetSlot primitives.Slot) (state.BeaconState, error) {
	m.record("ProcessSlotsTo")
	if m.Err != nil {
		return nil, m.Err
	}
	return m.advance(st, targetSlot, nil), nil
}

func (m *MockEngine) ReplayBlock(_ context.Context, preState state.BeaconState, block Block) (state.BeaconState, error) {
	m.record("ReplayBlock")
	if m.Err != nil {
		return nil, m.Err
	}
	return m.advance(preState, block.Slot, &block), nil
}

func (m *MockEngine) ProcessSlotsToNearestCheckpoint(_ context.Context, st state.BeaconState, target primitives.Slot) (state.BeaconState, error) {
	m.record("ProcessSlotsToNearestCheckpoint")
	if m.Err != nil {
		return nil, m.Err
	}
	return m.advance(st, target, nil), nil
}

func (m *MockEngine) advance(pre state.BeaconState, targetSlot primitives.Slot, block *Block) state.BeaconState {
	if m.Transform != nil {
		return m.Transform(pre, targetSlot, block)
	}
	ms, ok := pre.(*state.MockState)
	if !ok {
		return pre
	}
	cp := *ms
	cp.SlotVal = targetSlot
	return &cp
}
