// Package metrics defines all custom Prometheus metrics for the tracking
// system. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracker"

// ── Carrier API metrics ───────────────────────────────────────────────────────

// CarrierCallsTotal counts outbound carrier API calls.
// Labels:
//   - carrier: "UPS", "USPS", "DHL"
//   - operation: "tracking", "address_validation", "time_in_transit"
//   - outcome: "ok", "error", "not_configured", "skipped"
var CarrierCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "carrier_calls_total",
		Help:      "Total number of carrier API calls, by carrier, operation, and outcome.",
	},
	[]string{"carrier", "operation", "outcome"},
)

// CarrierCallDuration measures how long one carrier call takes end-to-end.
var CarrierCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "carrier_call_duration_seconds",
		Help:      "Duration of carrier API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"carrier", "operation"},
)

// ── Batch metrics ─────────────────────────────────────────────────────────────

// BatchRowsTotal counts sheet rows handled by batch passes.
// Label:
//   - result: "updated", "skipped", "error"
var BatchRowsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batch_rows_total",
		Help:      "Total number of sheet rows processed by batch runs, by result.",
	},
	[]string{"result"},
)

// BatchRunDuration measures one full pass over the tracking sheet.
var BatchRunDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "batch_run_duration_seconds",
		Help:      "Duration of a complete batch pass over the tracking sheet.",
		Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
	},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheLookupsTotal counts tracking cache decisions.
// Label:
//   - result: "hit" or "miss"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of tracking cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
