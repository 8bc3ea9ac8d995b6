// Package metrics defines and registers all custom Prometheus metrics for the
// RekaTrack client core. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry at import time; the
// long-running track command exposes them via promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rekatrack"

// ── Gateway metrics ───────────────────────────────────────────────────────────

// GatewayRequestsTotal counts API gateway calls by outcome.
// Labels:
//   - method: HTTP method of the call
//   - code: HTTP status code, or "0" for transport failures
var GatewayRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_requests_total",
		Help:      "Total number of API gateway calls, by method and status code.",
	},
	[]string{"method", "code"},
)

// GatewayRequestDuration measures how long a single gateway call takes.
var GatewayRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_request_duration_seconds",
		Help:      "Duration of API gateway calls from request to parsed response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ── Tracer metrics ────────────────────────────────────────────────────────────

// SamplesSentTotal counts location samples successfully reported.
var SamplesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "location_samples_sent_total",
		Help:      "Total number of location samples successfully submitted.",
	},
)

// SampleRetriesTotal counts individual retry attempts after a failed
// sample submission.
var SampleRetriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "location_sample_retries_total",
		Help:      "Total number of retry attempts for failed sample submissions.",
	},
)

// SamplesDroppedTotal counts samples given up on after exhausting retries.
var SamplesDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "location_samples_dropped_total",
		Help:      "Total number of location samples dropped after retry exhaustion.",
	},
)

// ── Delivery metrics ──────────────────────────────────────────────────────────

// CompletionsTotal counts delivery confirmations submitted.
// Label:
//   - result: "ok" or "error"
var CompletionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "completions_total",
		Help:      "Total number of delivery completion submissions, by result.",
	},
	[]string{"result"},
)
