package stategen

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/0xTylerHolmes/stategen/primitives"
)

// Sentinel errors for failure kinds that carry no payload, following
// stategen/errors.go's var-block-of-errors idiom.
var (
	// ErrHeadUnavailable is returned when the head state has not yet
	// been regenerated.
	ErrHeadUnavailable = errors.New("stategen: head state unavailable")
	// ErrQueueFull is returned when the bounded job queue is at
	// capacity and cannot accept another submission.
	ErrQueueFull = errors.New("stategen: regen queue full")
	// ErrCancelled is returned to every pending/in-flight job once the
	// queue's cancellation signal has been raised.
	ErrCancelled = errors.New("stategen: regen cancelled")
)

// BlockNotInForkChoiceError reports that a parent block lookup against
// fork choice came back empty.
type BlockNotInForkChoiceError struct {
	Root primitives.Root
}

func (e *BlockNotInForkChoiceError) Error() string {
	return fmt.Sprintf("stategen: block %x not in fork choice", e.Root)
}

// BeforeFinalizedError reports that a dependant-root resolution was
// requested for an epoch before the finalized checkpoint can justify.
type BeforeFinalizedError struct {
	Epoch primitives.Epoch
}

func (e *BeforeFinalizedError) Error() string {
	return fmt.Sprintf("stategen: epoch %d is before finalized checkpoint", e.Epoch)
}

// UnresolvableError reports that the dependant-root ancestor walk
// exhausted without satisfying any termination condition.
type UnresolvableError struct {
	Block primitives.Root
	Slot  primitives.Slot
}

func (e *UnresolvableError) Error() string {
	return fmt.Sprintf("stategen: could not resolve dependant root for block %x at slot %d", e.Block, e.Slot)
}

// TransitionError wraps an error surfaced by the State-Transition
// Engine, following stategen's policy of never retrying and always
// propagating the inner cause verbatim.
type TransitionError struct {
	Inner error
}

func (e *TransitionError) Error() string {
	return errors.Wrap(e.Inner, "stategen: transition engine error").Error()
}

func (e *TransitionError) Unwrap() error { return e.Inner }

// PersistentError wraps an error surfaced by the Persistent-State
// Reader.
type PersistentError struct {
	Inner error
}

func (e *PersistentError) Error() string {
	return errors.Wrap(e.Inner, "stategen: persistent reader error").Error()
}

func (e *PersistentError) Unwrap() error { return e.Inner }
