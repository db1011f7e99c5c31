package pagination

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts paginated requests by status and page bucket.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagination_requests_total",
			Help: "Total number of paginated requests",
		},
		[]string{"status", "page_range"},
	)

	// ErrorsTotal counts pagination errors by type (validation, database).
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagination_errors_total",
			Help: "Total number of pagination errors",
		},
		[]string{"type"},
	)
)

// RecordRequest counts one paginated request.
func RecordRequest(statusCode, page int) {
	RequestsTotal.WithLabelValues(strconv.Itoa(statusCode), pageRange(page)).Inc()
}

// RecordError counts one pagination error.
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

func pageRange(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
