// Package monitoring holds the prometheus collectors and the admin HTTP
// router that exposes them.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty" // ran but nothing was complete enough to rank
	OutcomeError   = "error"
)

// Metrics are the ranking collectors
type Metrics struct {
	runs            *prometheus.CounterVec
	duration        prometheus.Histogram
	rankedSpecimens prometheus.Gauge
	excluded        prometheus.Gauge
	outliersRemoved *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg. Tests pass a fresh
// prometheus.NewRegistry(); the server passes prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		// runs counts ranking runs.
		// Labels: outcome (success, empty, error)
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "amphorank",
			Subsystem: "ranking",
			Name:      "runs_total",
			Help:      "Total ranking runs by outcome",
		}, []string{"outcome"}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "amphorank",
			Subsystem: "ranking",
			Name:      "duration_seconds",
			Help:      "Ranking run duration in seconds, loading excluded",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		rankedSpecimens: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "amphorank",
			Name:      "ranked_specimens",
			Help:      "Specimens ranked in the last run",
		}),

		excluded: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "amphorank",
			Name:      "excluded_specimens",
			Help:      "Selected specimens excluded from the last run for missing protocols",
		}),

		// outliersRemoved counts samples dropped by the Grubbs filter.
		// Labels: protocol
		outliersRemoved: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "amphorank",
			Name:      "outliers_removed_total",
			Help:      "Total samples removed as outliers by protocol",
		}, []string{"protocol"}),
	}
}

// ObserveRun records one finished run.
func (m *Metrics) ObserveRun(outcome string, d time.Duration, ranked, excluded int) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
	if outcome == OutcomeError {
		return
	}
	m.duration.Observe(d.Seconds())
	m.rankedSpecimens.Set(float64(ranked))
	m.excluded.Set(float64(excluded))
}

// AddOutliers adds removed-sample counts for a protocol.
func (m *Metrics) AddOutliers(protocol string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.outliersRemoved.WithLabelValues(protocol).Add(float64(n))
}
