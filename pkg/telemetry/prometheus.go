package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder records execution metrics into a private Prometheus
// registry. Safe for concurrent use.
type PrometheusRecorder struct {
	executionTime  *prometheus.HistogramVec
	executionCount *prometheus.CounterVec
	registry       *prometheus.Registry
}

// NewPrometheusRecorder creates a recorder with its own registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()
	return newPrometheusRecorder(registry)
}

// NewPrometheusRecorderWithRegistry records into an existing registry,
// for hosts that already expose one.
func NewPrometheusRecorderWithRegistry(registry *prometheus.Registry) *PrometheusRecorder {
	return newPrometheusRecorder(registry)
}

func newPrometheusRecorder(registry *prometheus.Registry) *PrometheusRecorder {
	r := &PrometheusRecorder{
		executionTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "method_execution_time_ms",
				Help:    "Wall-clock execution time of instrumented calls in milliseconds",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
			},
			[]string{"method"},
		),
		executionCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "method_execution_count_total",
				Help: "Total invocations of instrumented calls",
			},
			[]string{"method"},
		),
		registry: registry,
	}
	registry.MustRegister(r.executionTime, r.executionCount)
	return r
}

// RecordTiming adds one timing sample for the call identity.
func (r *PrometheusRecorder) RecordTiming(_ context.Context, identity string, elapsed time.Duration) {
	r.executionTime.WithLabelValues(identity).Observe(float64(elapsed) / float64(time.Millisecond))
}

// IncrementCount adds one invocation for the call identity.
func (r *PrometheusRecorder) IncrementCount(_ context.Context, identity string) {
	r.executionCount.WithLabelValues(identity).Inc()
}

// Handler returns the exposition endpoint for this recorder's registry.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
