package paneflow

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for pane submission.
type Metrics struct {
	// Submissions counts submit fan-outs by pane and result.
	Submissions *prometheus.CounterVec

	// SubmitDuration observes the duration of submit fan-outs by pane.
	SubmitDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the submission collectors with the
// given registerer. Passing prometheus.DefaultRegisterer wires them
// into the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paneflow",
			Name:      "submissions_total",
			Help:      "Number of pane submit fan-outs, by pane and result.",
		}, []string{"pane", "result"}),
		SubmitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "paneflow",
			Name:      "submit_duration_seconds",
			Help:      "Duration of pane submit fan-outs.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"pane"}),
	}
	reg.MustRegister(m.Submissions, m.SubmitDuration)
	return m
}

// MetricsMiddleware creates a pane middleware that records submissions
// and fan-out durations.
func MetricsMiddleware(m *Metrics) PaneMiddleware {
	return func(next PaneRunnerFunc) PaneRunnerFunc {
		return func(ctx context.Context, pane *Pane, logger Logger) error {
			start := time.Now()
			err := next(ctx, pane, logger)
			m.SubmitDuration.WithLabelValues(pane.ID).Observe(time.Since(start).Seconds())

			result := "success"
			if err != nil {
				result = "failure"
			}
			m.Submissions.WithLabelValues(pane.ID, result).Inc()

			return err
		}
	}
}
