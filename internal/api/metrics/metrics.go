// Package metrics defines and registers all custom Prometheus metrics for the
// specialists API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register themselves with the default Prometheus registry via
// promauto at package init; the router exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clinic"

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheHitsTotal counts read-through lookups answered from the cache.
// Labels:
//   - resource: the cached resource class (e.g. "specialist")
//   - op: the originating read operation (e.g. "get_specialist")
var CacheHitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_hits_total",
		Help:      "Total number of read-through cache hits.",
	},
	[]string{"resource", "op"},
)

// CacheMissesTotal counts read-through lookups that fell through to the
// persistence store, including corrupt-entry fallbacks.
var CacheMissesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_misses_total",
		Help:      "Total number of read-through cache misses.",
	},
	[]string{"resource", "op"},
)

// CacheErrorsTotal counts cache store failures that were swallowed.
// Label:
//   - op: "get", "set" or "invalidate"
var CacheErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_errors_total",
		Help:      "Total number of cache store errors degraded to the persistence path.",
	},
	[]string{"op"},
)

// CacheInvalidationsTotal counts coarse invalidations triggered by writes.
var CacheInvalidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_invalidations_total",
		Help:      "Total number of whole-resource cache invalidations after writes.",
	},
	[]string{"resource"},
)

// ── Resource metrics ──────────────────────────────────────────────────────────

// ResourceWritesTotal counts committed mutations per resource class.
// Labels:
//   - resource: "specialist" or "service"
//   - op: "create", "update" or "delete"
var ResourceWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resource_writes_total",
		Help:      "Total number of committed resource mutations.",
	},
	[]string{"resource", "op"},
)
