package worker

import (
	"time"

	"pressroom/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Job run statuses.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// WorkerMetrics are the reseed worker metrics plus its configuration metrics.
//
// Job metrics:
//   - worker_reseed_runs_total{status}
//   - worker_reseed_duration_seconds
//   - worker_reseed_rows_inserted_total
//   - worker_reseed_last_success_timestamp
type WorkerMetrics struct {
	*config.ConfigMetrics

	RunsTotal            *prometheus.CounterVec
	DurationSeconds      prometheus.Histogram
	RowsInsertedTotal    prometheus.Counter
	LastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates the worker metrics and registers them with reg.
// A nil reg leaves them unregistered, which tests rely on.
func NewWorkerMetrics(reg prometheus.Registerer) *WorkerMetrics {
	factory := promauto.With(reg)
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics(reg, "worker"),
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_reseed_runs_total",
			Help: "Total number of reseed runs by status",
		}, []string{"status"}),
		DurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_reseed_duration_seconds",
			Help:    "Duration of reseed runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 30, 60, 300, 900},
		}),
		RowsInsertedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "worker_reseed_rows_inserted_total",
			Help: "Total number of rows inserted by reseed runs",
		}),
		LastSuccessTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "worker_reseed_last_success_timestamp",
			Help: "Unix timestamp of the last successful reseed run",
		}),
	}
}

// RecordRun records one finished run.
func (m *WorkerMetrics) RecordRun(status string, d time.Duration, inserted int) {
	m.RunsTotal.WithLabelValues(status).Inc()
	m.DurationSeconds.Observe(d.Seconds())
	if inserted > 0 {
		m.RowsInsertedTotal.Add(float64(inserted))
	}
	if status == StatusSuccess {
		m.LastSuccessTimestamp.SetToCurrentTime()
	}
}
