package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/0xTylerHolmes/stategen/primitives"
	"github.com/0xTylerHolmes/stategen/state"
)

// maxCheckpointStateSize mirrors beacon-chain/cache/checkpoint_state.go's
// choice of 10: enough to cover a handful of forks across two epochs of
// attestation-inclusion window.
const maxCheckpointStateSize = 10

type checkpointKey struct {
	root  primitives.Root
	epoch primitives.Epoch
}

// CheckpointStateCache maps (block_root, epoch) -> State with a bounded
// LRU, and additionally answers "latest state at or before epoch for
// this root", which get_pre_state's cross-epoch path needs.
type CheckpointStateCache struct {
	lru *lru.Cache[checkpointKey, state.BeaconState]
}

// NewCheckpointStateCache returns an empty checkpoint state cache.
func NewCheckpointStateCache() *CheckpointStateCache {
	c, err := lru.New[checkpointKey, state.BeaconState](maxCheckpointStateSize)
	if err != nil {
		panic(err)
	}
	return &CheckpointStateCache{lru: c}
}

// Get returns the cached state for the exact (root, epoch) checkpoint.
func (c *CheckpointStateCache) Get(cp primitives.Checkpoint) (state.BeaconState, bool) {
	st, ok := c.lru.Get(checkpointKey{root: cp.Root, epoch: cp.Epoch})
	if !ok {
		checkpointCacheMiss.Inc()
		return nil, false
	}
	checkpointCacheHit.Inc()
	return st, true
}

// Latest returns the cached state for blockRoot with the highest epoch
// that is <= maxEpoch, or (nil, false) if no such entry is cached. The
// cache is small enough (maxCheckpointStateSize entries) that a linear
// scan over keys is cheap, keeping this cache small rather than indexed.
func (c *CheckpointStateCache) Latest(blockRoot primitives.Root, maxEpoch primitives.Epoch) (state.BeaconState, bool) {
	var bestEpoch primitives.Epoch
	var bestKey checkpointKey
	found := false
	for _, k := range c.lru.Keys() {
		if k.root != blockRoot || k.epoch > maxEpoch {
			continue
		}
		if !found || k.epoch > bestEpoch {
			bestEpoch = k.epoch
			bestKey = k
			found = true
		}
	}
	if !found {
		checkpointCacheMiss.Inc()
		return nil, false
	}
	st, ok := c.lru.Peek(bestKey)
	if !ok {
		checkpointCacheMiss.Inc()
		return nil, false
	}
	checkpointCacheHit.Inc()
	return st, true
}

// Put inserts or replaces the cached state for a checkpoint.
func (c *CheckpointStateCache) Put(cp primitives.Checkpoint, st state.BeaconState) {
	c.lru.Add(checkpointKey{root: cp.Root, epoch: cp.Epoch}, st)
}
