package forkchoice

import (
	"context"
	"sync"

	"github.com/0xTylerHolmes/stategen/primitives"
)

// MockForkChoice is an in-memory double used by tests and the
// cmd/stategen-bench CLI, in place of a production protoarray or
// doubly-linked-tree store.
type MockForkChoice struct {
	mu        sync.RWMutex
	blocks    map[primitives.Root]BlockSummary
	finalized primitives.Checkpoint
}

// NewMockForkChoice returns an empty fake fork choice.
func NewMockForkChoice() *MockForkChoice {
	return &MockForkChoice{blocks: make(map[primitives.Root]BlockSummary)}
}

var _ ForkChoice = (*MockForkChoice)(nil)

// InsertBlock registers a block summary, for use by test setup.
func (m *MockForkChoice) InsertBlock(b BlockSummary) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocks[b.BlockRoot] = b
}

// SetFinalizedCheckpoint sets the finalized checkpoint returned by
// GetFinalizedCheckpoint, for use by test setup.
func (m *MockForkChoice) SetFinalizedCheckpoint(cp primitives.Checkpoint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finalized = cp
}

func (m *MockForkChoice) GetBlock(_ context.Context, root primitives.Root) (BlockSummary, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blocks[root]
	return b, ok
}

func (m *MockForkChoice) GetFinalizedCheckpoint(_ context.Context) primitives.Checkpoint {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.finalized
}
