// Package metrics holds the process-wide Prometheus collectors. They are
// registered with the default registry and served on /metrics.
//
//	start := time.Now()
//	// ... insert rows ...
//	metrics.RecordSeedInserted("people", n)
//	metrics.RecordSeedStepDuration("people", time.Since(start))
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Read API.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// ActiveConnections is the number of requests in flight.
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Seeding.
var (
	// ArticlesTotal is refreshed whenever the API counts articles.
	ArticlesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "articles_total",
			Help: "Total number of articles in the database",
		},
	)

	SeedRowsInsertedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seed_rows_inserted_total",
			Help: "Total number of rows inserted by the seeder",
		},
		[]string{"entity"},
	)

	SeedStepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seed_step_duration_seconds",
			Help:    "Time taken to seed one entity type",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"entity"},
	)

	SeedStepFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seed_step_failures_total",
			Help: "Total number of failed seeding steps",
		},
		[]string{"entity", "phase"}, // phase: validate, references, truncate, generate, insert
	)
)

// Database.
var (
	// DBQueryDuration is labelled "<statement>_<table>", e.g. insert_people.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// RecordHTTPRequest observes one served request. Zero sizes are not recorded.
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}
