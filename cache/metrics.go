package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics mirror beacon-chain/cache/checkpoint_state.go's promauto
// counters, extended to cover the three caches this core owns.
var (
	stateCacheHit = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stategen_state_cache_hit",
		Help: "The number of state-by-root cache lookups that hit.",
	})
	stateCacheMiss = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stategen_state_cache_miss",
		Help: "The number of state-by-root cache lookups that missed.",
	})
	checkpointCacheHit = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stategen_checkpoint_state_cache_hit",
		Help: "The number of checkpoint-state cache lookups that hit.",
	})
	checkpointCacheMiss = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stategen_checkpoint_state_cache_miss",
		Help: "The number of checkpoint-state cache lookups that missed.",
	})
	dependantRootIndexHit = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stategen_dependant_root_index_hit",
		Help: "The number of dependant-root index probes that returned a live state.",
	})
	dependantRootIndexMiss = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stategen_dependant_root_index_miss",
		Help: "The number of dependant-root index probes that found no live state.",
	})
	dependantRootIndexPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stategen_dependant_root_index_pruned_total",
		Help: "The number of dead weak references pruned from the dependant-root index.",
	})
)
