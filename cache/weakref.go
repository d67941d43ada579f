package cache

import (
	"sync"

	"github.com/0xTylerHolmes/stategen/primitives"
	"github.com/0xTylerHolmes/stategen/state"
)

// weakHandle is a generational reference into the arena: (slot, version).
// It resolves to a live state only while the arena slot it points at
// is live and still carries the same version: release marks a slot dead
// and reuse bumps its version, which is how every outstanding handle to
// that slot silently goes dead without the arena having to track its
// holders.
type weakHandle struct {
	slot    int
	version uint64
}

type arenaSlot struct {
	root    primitives.Root
	st      state.BeaconState
	version uint64
	live    bool
}

// Arena is the generational handle arena backing the Dependant-Root
// Index. It stands in for a runtime weak-reference primitive, which Go
// does not expose as a usable generic building block.
type Arena struct {
	mu     sync.Mutex
	slots  []arenaSlot
	free   []int
	byRoot map[primitives.Root]int
}

func NewArena() *Arena {
	return &Arena{byRoot: make(map[primitives.Root]int)}
}

// Register returns a handle for root/st, reusing the existing slot if
// root is already registered (so that releasing a root invalidates
// every handle that was ever issued for it, across all three tiers).
func (a *Arena) Register(root primitives.Root, st state.BeaconState) weakHandle {
	a.mu.Lock()
	defer a.mu.Unlock()

	if id, ok := a.byRoot[root]; ok && a.slots[id].live {
		return weakHandle{slot: id, version: a.slots[id].version}
	}

	var id int
	if n := len(a.free); n > 0 {
		id = a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[id].version++
	} else {
		id = len(a.slots)
		a.slots = append(a.slots, arenaSlot{})
	}
	a.slots[id].root = root
	a.slots[id].st = st
	a.slots[id].live = true
	a.byRoot[root] = id
	return weakHandle{slot: id, version: a.slots[id].version}
}

// Resolve returns the live state behind h, or (nil, false) if the slot
// has been released or reused since h was issued.
func (a *Arena) Resolve(h weakHandle) (state.BeaconState, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if h.slot < 0 || h.slot >= len(a.slots) {
		return nil, false
	}
	s := a.slots[h.slot]
	if !s.live || s.version != h.version {
		return nil, false
	}
	return s.st, true
}

// Release invalidates every handle issued for root. It is idempotent:
// releasing an unregistered or already-released root is a no-op. Call
// this from the State Cache's eviction callback so that weak
// references never resurrect a state the cache no longer owns.
func (a *Arena) Release(root primitives.Root) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id, ok := a.byRoot[root]
	if !ok || !a.slots[id].live {
		return
	}
	a.slots[id].live = false
	a.slots[id].st = nil
	delete(a.byRoot, root)
	a.free = append(a.free, id)
}
