package http

import (
	"net/http"
	"strconv"
	"time"

	"pressroom/internal/handler/http/pathutil"
	"pressroom/internal/handler/http/responsewriter"
	"pressroom/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsMiddleware records request count, latency and sizes. Paths are
// normalized first so /articles/7 and /articles/8 share one label.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.ActiveConnections.Inc()
		defer metrics.ActiveConnections.Dec()

		path := pathutil.NormalizePath(r.URL.Path)
		rw := responsewriter.Wrap(w)

		start := time.Now()
		next.ServeHTTP(rw, r)

		metrics.RecordHTTPRequest(r.Method, path, strconv.Itoa(rw.StatusCode()),
			time.Since(start), int(r.ContentLength), rw.BytesWritten())
	})
}

// MetricsHandler serves the default Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
