package dbreader

import (
	"context"
	"sync"

	"github.com/0xTylerHolmes/stategen/primitives"
	"github.com/0xTylerHolmes/stategen/state"
)

type checkpointKey struct {
	epoch primitives.Epoch
	root  primitives.Root
}

// MockReader is an in-memory stand-in for the persistent store, used by
// tests and cmd/stategen-bench.
type MockReader struct {
	mu    sync.RWMutex
	store map[checkpointKey]state.BeaconState
}

// NewMockReader returns an empty fake persistent reader.
func NewMockReader() *MockReader {
	return &MockReader{store: make(map[checkpointKey]state.BeaconState)}
}

var _ Reader = (*MockReader)(nil)

// Put seeds the fake store, for use by test setup.
func (m *MockReader) Put(epoch primitives.Epoch, dependantRoot primitives.Root, st state.BeaconState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[checkpointKey{epoch, dependantRoot}] = st
}

func (m *MockReader) ReadCheckpointState(_ context.Context, epoch primitives.Epoch, dependantRoot primitives.Root) (state.BeaconState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.store[checkpointKey{epoch, dependantRoot}]
	if !ok {
		return nil, ErrNotFound
	}
	return st, nil
}
