// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors are registered on the default registry through promauto.

var (
	// HTTPRequestsTotal counts requests by method, route pattern and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "episim_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures handler latency. Network generation
	// dominates the upper buckets.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "episim_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// SessionsActive tracks sessions currently held by the registry.
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "episim_sessions_active",
			Help: "Number of live simulation sessions",
		},
	)

	// StepsTotal counts simulation steps across all sessions.
	StepsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "episim_steps_total",
			Help: "Total number of simulation steps executed",
		},
	)

	// InfectionsTotal counts infected nodes by cause (seed, transmission, manual).
	InfectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "episim_infections_total",
			Help: "Total number of node infections by cause",
		},
		[]string{"cause"},
	)

	// GraphNodes records the size of every generated network.
	GraphNodes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "episim_graph_nodes",
			Help:    "Node count of generated contact networks",
			Buckets: prometheus.ExponentialBuckets(10, 4, 7),
		},
	)
)

// RecordInfections adds n infections of the given cause. Non-positive n is ignored.
func RecordInfections(cause string, n int) {
	if n > 0 {
		InfectionsTotal.WithLabelValues(cause).Add(float64(n))
	}
}
