package cache

import (
	"github.com/0xTylerHolmes/stategen/primitives"
	"github.com/0xTylerHolmes/stategen/state"
)

// Tier names the three logical tables of the Dependant-Root Index: Next
// holds states under their own epoch, Curr under epoch-1, Prev under
// epoch-2. Next answers both proposer and attester shuffling queries;
// Curr and Prev are populated but not probed by the stategen shuffling
// lookups.
type Tier int

const (
	Next Tier = iota
	Curr
	Prev
)

type bucketKey struct {
	epoch primitives.Epoch
	root  primitives.Root
}

// DependantRootIndex is the three-tier weak-reference index keyed by
// epoch -> dependant_root -> multiset of weak handles to State,
// generalizing beacon-chain/cache/shuffled_indices.go's single FIFO
// keyed-by-seed cache into three independently addressable tables that
// share one generational arena, so releasing a root invalidates its
// handle everywhere at once.
type DependantRootIndex struct {
	arena   *Arena
	buckets [3]map[bucketKey][]weakHandle
}

// NewDependantRootIndex returns an empty index backed by arena. Pass the
// same arena to the StateCache that strong-owns these states so that
// eviction there releases handles here.
func NewDependantRootIndex(arena *Arena) *DependantRootIndex {
	return &DependantRootIndex{
		arena: arena,
		buckets: [3]map[bucketKey][]weakHandle{
			make(map[bucketKey][]weakHandle),
			make(map[bucketKey][]weakHandle),
			make(map[bucketKey][]weakHandle),
		},
	}
}

// Insert registers a weak reference to st under (tier, epoch, root).
func (d *DependantRootIndex) Insert(tier Tier, epoch primitives.Epoch, root primitives.Root, st state.BeaconState) {
	h := d.arena.Register(st.StateRoot(), st)
	key := bucketKey{epoch: epoch, root: root}
	d.buckets[tier][key] = append(d.buckets[tier][key], h)
}

// Probe returns the first live state registered under (tier, epoch,
// root), pruning any dead handles it encounters along the way. The
// first live reference wins; iteration order among live entries is
// otherwise unspecified.
func (d *DependantRootIndex) Probe(tier Tier, epoch primitives.Epoch, root primitives.Root) (state.BeaconState, bool) {
	key := bucketKey{epoch: epoch, root: root}
	handles := d.buckets[tier][key]
	if len(handles) == 0 {
		dependantRootIndexMiss.Inc()
		return nil, false
	}

	kept := handles[:0:0]
	var result state.BeaconState
	found := false
	for _, h := range handles {
		st, ok := d.arena.Resolve(h)
		if !ok {
			dependantRootIndexPruned.Inc()
			continue
		}
		kept = append(kept, h)
		if !found {
			result = st
			found = true
		}
	}
	if len(kept) == 0 {
		delete(d.buckets[tier], key)
	} else {
		d.buckets[tier][key] = kept
	}

	if !found {
		dependantRootIndexMiss.Inc()
		return nil, false
	}
	dependantRootIndexHit.Inc()
	return result, true
}

// GCBelow drops every bucket entry across all tiers whose epoch is
// strictly less than floor. It does not release arena slots directly;
// dead handles still get pruned lazily on the next Probe of a
// surviving bucket, or implicitly when the State Cache evicts the
// backing state.
func (d *DependantRootIndex) GCBelow(floor primitives.Epoch) {
	for tier := range d.buckets {
		for key := range d.buckets[tier] {
			if key.epoch < floor {
				delete(d.buckets[tier], key)
			}
		}
	}
}
