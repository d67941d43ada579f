package dbreader

import "errors"

// ErrNotFound is returned by Reader.ReadCheckpointState when no state
// has ever been persisted for the requested (epoch, dependantRoot) pair.
var ErrNotFound = errors.New("dbreader: checkpoint state not found")
