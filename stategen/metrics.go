package stategen

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics labeled by (caller, entrypoint): regen_fn_total_errors
// increments on every failed job, and the queue exposes
// enqueued/duration counters the same way, following beacon-chain/cache's
// promauto counter idiom.
var (
	regenFnEnqueuedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "regen_fn_enqueued_total",
		Help: "Number of regen jobs submitted to the bounded queue.",
	}, []string{"caller", "entrypoint"})

	regenFnDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "regen_fn_duration_seconds",
		Help: "Time spent executing a regen job end to end.",
	}, []string{"caller", "entrypoint"})

	regenFnErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "regen_fn_total_errors",
		Help: "Number of regen jobs that failed.",
	}, []string{"caller", "entrypoint"})

	regenQueueFullTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "regen_queue_full_total",
		Help: "Number of regen submissions rejected because the queue was at capacity.",
	})

	regenQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "regen_queue_depth",
		Help: "Current number of pending plus in-flight regen jobs.",
	})

	reorgCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stategen_head_reorg_total",
		Help: "Number of times set_head observed the new head's parent differ from the previous head.",
	})
)
