// Package metrics exposes Prometheus collectors for the web server and the
// page components.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "islands"
)

var (
	// PageRendersTotal counts page renders by page and outcome
	PageRendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_renders_total",
			Help:      "Total number of page renders",
		},
		[]string{"page", "status"},
	)

	// HTTPRequestDuration tracks request latency by route and status code
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method", "code"},
	)

	// SlowStreamsActive tracks currently mounted slow components
	SlowStreamsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "slow_components_active",
			Help:      "Number of slow components currently mounted",
		},
	)

	// SlowOutcomesTotal counts how slow components ended: revealed or unmounted while loading
	SlowOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slow_component_outcomes_total",
			Help:      "Slow component lifecycles by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	// Register metrics with Prometheus default registry
	prometheus.MustRegister(PageRendersTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(SlowStreamsActive)
	prometheus.MustRegister(SlowOutcomesTotal)
}

// Outcome labels for SlowOutcomesTotal
const (
	OutcomeRevealed  = "revealed"
	OutcomeUnmounted = "unmounted"
)

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
