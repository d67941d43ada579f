// Package dbreader declares the read-only persistent-state collaborator
// the core falls back to once its in-memory caches miss. The persistent
// block/state database itself lives elsewhere; this is the narrow slice
// of beacon-chain/db.NoHeadAccessDatabase the core needs, grounded on
// beacon-chain/state/stategen/cold.go's loadColdStateByRoot.
package dbreader

import (
	"context"

	"github.com/0xTylerHolmes/stategen/primitives"
	"github.com/0xTylerHolmes/stategen/state"
)

// Reader reads a checkpoint state by (epoch, dependant root) from
// durable storage. Implementations may be slow (disk, network). The core
// calls it from the Bounded Job Queue's single worker (checkpoint-state
// regeneration) and directly from the proposer/attester shuffling
// lookups as their last fallback, never from a cache fast path.
type Reader interface {
	ReadCheckpointState(ctx context.Context, epoch primitives.Epoch, dependantRoot primitives.Root) (state.BeaconState, error)
}
