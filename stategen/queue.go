package stategen

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/0xTylerHolmes/stategen/params"
	"github.com/0xTylerHolmes/stategen/state"
)

// jobFn is the work a queued job performs once it reaches the front of
// the line. It is supplied by the Regeneration Engine.
type jobFn func(ctx context.Context, req regenRequest) (state.BeaconState, error)

type jobResult struct {
	st  state.BeaconState
	err error
}

type job struct {
	id          uuid.UUID
	req         regenRequest
	submittedAt time.Time
	resultCh    chan jobResult
}

// jobQueue is a single-consumer, FIFO queue capped at
// params.BeaconConfig().MaxQueue in-flight-plus-pending jobs,
// cancellable. It forgoes the fan-out/fan-in event-loop pattern of
// beacon-chain/sync/initial-sync/blocks_queue.go in favor of a plain
// buffered channel sized to the bound, since here there is exactly one
// producer role (facade submissions) and exactly one consumer (the
// worker goroutine).
type jobQueue struct {
	pending chan *job
	execute jobFn

	mu        sync.Mutex
	depth     int
	cancelled bool
	cancelCh  chan struct{}
}

func newJobQueue(execute jobFn) *jobQueue {
	maxQueue := params.BeaconConfig().MaxQueue
	return &jobQueue{
		pending:  make(chan *job, maxQueue),
		execute:  execute,
		cancelCh: make(chan struct{}),
	}
}

// start launches the single worker goroutine. Callers must call this
// exactly once before submitting.
func (q *jobQueue) start(ctx context.Context) {
	go q.loop(ctx)
}

func (q *jobQueue) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			q.drain(ctx.Err())
			return
		case <-q.cancelCh:
			q.drain(ErrCancelled)
			return
		case j, ok := <-q.pending:
			if !ok {
				return
			}
			q.run(ctx, j)
		}
	}
}

func (q *jobQueue) run(ctx context.Context, j *job) {
	start := time.Now()
	caller := string(j.req.caller)
	entry := string(j.req.entrypoint)

	st, err := q.execute(ctx, j.req)

	regenFnDurationSeconds.WithLabelValues(caller, entry).Observe(time.Since(start).Seconds())
	if err != nil {
		regenFnErrorsTotal.WithLabelValues(caller, entry).Inc()
	}

	q.mu.Lock()
	q.depth--
	regenQueueDepth.Set(float64(q.depth))
	q.mu.Unlock()

	j.resultCh <- jobResult{st: st, err: err}
}

// drain empties the pending channel, failing every job still in it with
// cause, and marks the queue cancelled so further submissions are
// rejected immediately. In-flight jobs (already handed to run) finish
// executing on their own; when cancel raised the signal, their
// submitters, like submitters that raced the cancellation, return
// ErrCancelled through the cancelCh case of their select in submit.
func (q *jobQueue) drain(cause error) {
	q.mu.Lock()
	q.cancelled = true
	q.mu.Unlock()

	for {
		select {
		case j := <-q.pending:
			q.mu.Lock()
			q.depth--
			regenQueueDepth.Set(float64(q.depth))
			q.mu.Unlock()
			j.resultCh <- jobResult{err: cause}
		default:
			return
		}
	}
}

// cancel raises the cancellation signal: every pending and in-flight
// job is rejected with ErrCancelled. Idempotent.
func (q *jobQueue) cancel() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.cancelled {
		return
	}
	q.cancelled = true
	close(q.cancelCh)
}

// submit enqueues req and blocks until the worker produces a result,
// the queue is cancelled, or ctx is done. Submission past MaxQueue fails
// immediately with ErrQueueFull without touching the queue.
func (q *jobQueue) submit(ctx context.Context, req regenRequest) (state.BeaconState, error) {
	q.mu.Lock()
	if q.cancelled {
		q.mu.Unlock()
		return nil, ErrCancelled
	}
	if q.depth >= cap(q.pending) {
		q.mu.Unlock()
		regenQueueFullTotal.Inc()
		return nil, ErrQueueFull
	}
	q.depth++
	regenQueueDepth.Set(float64(q.depth))
	q.mu.Unlock()

	regenFnEnqueuedTotal.WithLabelValues(string(req.caller), string(req.entrypoint)).Inc()

	j := &job{
		id:          uuid.New(),
		req:         req,
		submittedAt: time.Now(),
		resultCh:    make(chan jobResult, 1),
	}

	select {
	case q.pending <- j:
	case <-q.cancelCh:
		q.mu.Lock()
		q.depth--
		regenQueueDepth.Set(float64(q.depth))
		q.mu.Unlock()
		return nil, ErrCancelled
	case <-ctx.Done():
		q.mu.Lock()
		q.depth--
		regenQueueDepth.Set(float64(q.depth))
		q.mu.Unlock()
		return nil, ctx.Err()
	}

	select {
	case res := <-j.resultCh:
		return res.st, res.err
	case <-q.cancelCh:
		return nil, ErrCancelled
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// depthNow reports the current pending+in-flight count, used by tests
// asserting the queue-bound invariant.
func (q *jobQueue) depthNow() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.depth
}
