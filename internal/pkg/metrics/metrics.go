// Package metrics defines and registers all custom Prometheus metrics for the
// flight enrichment service. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto) and served by the HTTP transport on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "flight_enrichment"

// ── Enrichment metrics ────────────────────────────────────────────────────────

// EnrichmentsTotal counts per-identifier enrichment outcomes.
// Label:
//   - outcome: "enriched", "inferred" (route synthesized), or "invalid_identifier"
var EnrichmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrichments_total",
		Help:      "Total number of aircraft identifiers processed, by outcome.",
	},
	[]string{"outcome"},
)

// RouteInferenceTotal counts synthesized routes.
// Label:
//   - source: "table" (airline candidates) or "fallback" (DEN → SLC)
var RouteInferenceTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "route_inference_total",
		Help:      "Total number of routes synthesized from the airline table.",
	},
	[]string{"source"},
)

// BatchDuration measures how long a whole enrichment batch takes.
var BatchDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "batch_duration_seconds",
		Help:      "Duration of a batch enrichment call.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts OpenSky requests.
// Labels:
//   - endpoint: "states" or "tracks"
//   - result: "ok", "not_found", or "error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests sent to the flight-state data source.",
	},
	[]string{"endpoint", "result"},
)

// UpstreamRequestDuration measures OpenSky round-trip latency.
// Label:
//   - endpoint: "states" or "tracks"
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the flight-state data source.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// CacheLookupsTotal counts cache decisions for upstream lookups.
// Labels:
//   - kind: "state" or "track"
//   - result: "hit" or "miss"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of upstream cache lookups, labelled by result (hit/miss).",
	},
	[]string{"kind", "result"},
)
