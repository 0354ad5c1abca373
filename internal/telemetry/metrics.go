package telemetry

import (
	"errors"
	"time"

	"github.com/piwi3910/SeatShuffle/internal/engine"
	"github.com/piwi3910/SeatShuffle/internal/model"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "seatshuffle"

// Generate outcomes used as the "outcome" label.
const (
	OutcomeSuccess   = "success"
	OutcomeExhausted = "exhausted"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
)

// OutcomeOf classifies an engine error into an outcome label.
func OutcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, engine.ErrPlacementExhausted):
		return OutcomeExhausted
	case errors.Is(err, model.ErrInvalidInput):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}

// Metrics holds the Prometheus collectors for seating generation.
type Metrics struct {
	generateTotal    *prometheus.CounterVec
	generateAttempts prometheus.Histogram
	generateDuration prometheus.Histogram
	renderTotal      *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates the collectors and registers them on a private registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		generateTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "generate_total",
				Help:      "Total number of seating generations by outcome",
			},
			[]string{"outcome"},
		),
		generateAttempts: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "generate_attempts",
				Help:      "Shuffle attempts consumed per seating generation",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		generateDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "generate_duration_seconds",
				Help:      "Duration of seating generation in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		renderTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "render_total",
				Help:      "Total number of rendered charts by format and status",
			},
			[]string{"format", "status"},
		),
	}

	registry.MustRegister(
		m.generateTotal,
		m.generateAttempts,
		m.generateDuration,
		m.renderTotal,
	)
	return m
}

// ObserveGenerate records one engine call. Attempts is ignored when zero
// (validation failures and fixed-seat prechecks never shuffle).
func (m *Metrics) ObserveGenerate(outcome string, attempts int, duration time.Duration) {
	m.generateTotal.WithLabelValues(outcome).Inc()
	if attempts > 0 {
		m.generateAttempts.Observe(float64(attempts))
	}
	m.generateDuration.Observe(duration.Seconds())
}

// ObserveRender records one rendered output.
func (m *Metrics) ObserveRender(format string, err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	m.renderTotal.WithLabelValues(format, status).Inc()
}

// Registry returns the private registry, e.g. for a promhttp handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteToTextfile writes all metrics in the text exposition format, suitable
// for the node exporter textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// Timer measures the duration of an operation.
type Timer struct {
	start time.Time
}

// NewTimer starts a timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the time elapsed since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
