package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/0xTylerHolmes/stategen/primitives"
	"github.com/0xTylerHolmes/stategen/state"
)

// defaultStateCacheSize bounds the in-memory state-by-root cache. Prysm's
// hot state cache uses a similar small bound (maxCacheSize in
// beacon-chain/cache) since a full BeaconState is expensive to hold.
const defaultStateCacheSize = 32

// StateCache maps state_root -> State with a bounded LRU, acting as the
// strong owner of every State it holds; entries evicted here are what
// makes the Dependant-Root Index's weak references go dead.
type StateCache struct {
	lru *lru.Cache[primitives.Root, state.BeaconState]
}

// NewStateCache returns a state cache bounded at defaultStateCacheSize.
// onEvict, if non-nil, fires whenever the LRU drops a root to make room
// for another; wire it to a DependantRootIndex's arena release so that
// weak references there go dead the moment this cache stops being the
// strong owner.
func NewStateCache(onEvict func(root primitives.Root, st state.BeaconState)) *StateCache {
	var c *lru.Cache[primitives.Root, state.BeaconState]
	var err error
	if onEvict != nil {
		c, err = lru.NewWithEvict[primitives.Root, state.BeaconState](defaultStateCacheSize, onEvict)
	} else {
		c, err = lru.New[primitives.Root, state.BeaconState](defaultStateCacheSize)
	}
	if err != nil {
		// Only possible if size <= 0, which defaultStateCacheSize never is.
		panic(err)
	}
	return &StateCache{lru: c}
}

// Get returns the cached state for root, or (nil, false) on a miss.
func (c *StateCache) Get(root primitives.Root) (state.BeaconState, bool) {
	st, ok := c.lru.Get(root)
	if !ok {
		stateCacheMiss.Inc()
		return nil, false
	}
	stateCacheHit.Inc()
	return st, true
}

// Has reports whether root is cached without affecting LRU recency
// metrics, mirroring hotStateCache.has.
func (c *StateCache) Has(root primitives.Root) bool {
	return c.lru.Contains(root)
}

// Put inserts or replaces the cached state for root.
func (c *StateCache) Put(root primitives.Root, st state.BeaconState) {
	c.lru.Add(root, st)
}
