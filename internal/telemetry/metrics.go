package telemetry

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the collection of Prometheus counters for a run.
type Metrics struct {
	TicketsProcessed    *prometheus.CounterVec
	ChangesFetched      prometheus.Counter
	GenerationDuration  prometheus.Histogram
	GenerationFailures  prometheus.Counter
	FieldUpdateFailures prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates and registers all metrics on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.TicketsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qadraft_tickets_processed_total",
			Help: "Total number of tickets processed, by outcome",
		},
		[]string{"status"},
	)

	m.ChangesFetched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "qadraft_changes_fetched_total",
			Help: "Total number of pull requests whose diffs were fetched",
		},
	)

	m.GenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "qadraft_generation_duration_seconds",
			Help:    "Duration of test-case generation calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	m.GenerationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "qadraft_generation_failures_total",
			Help: "Total number of failed generation calls",
		},
	)

	m.FieldUpdateFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "qadraft_field_update_failures_total",
			Help: "Total number of failed ticket field updates",
		},
	)

	m.registry.MustRegister(
		m.TicketsProcessed,
		m.ChangesFetched,
		m.GenerationDuration,
		m.GenerationFailures,
		m.FieldUpdateFailures,
	)

	return m
}

// ObserveGeneration records the duration of one generation call.
func (m *Metrics) ObserveGeneration(start time.Time) {
	m.GenerationDuration.Observe(time.Since(start).Seconds())
}

// Serve exposes the metrics over HTTP in the background.
func (m *Metrics) Serve(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	addr := fmt.Sprintf(":%d", port)
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("Metrics server stopped", "addr", addr, "error", err)
		}
	}()
}
