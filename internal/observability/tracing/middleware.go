package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"pressroom/internal/handler/http/pathutil"
	"pressroom/internal/handler/http/responsewriter"
)

// TraceIDHeader echoes the server span's trace id to clients.
const TraceIDHeader = "X-Trace-Id"

// Middleware traces requests with the global tracer provider.
func Middleware(next http.Handler) http.Handler {
	return NewMiddleware(nil)(next)
}

// NewMiddleware returns middleware that continues any W3C trace context in the
// request and wraps the handler in a server span named "METHOD /route".
// Article ids are collapsed so /articles/7 and /articles/8 share a name.
// A nil tp means the global provider.
func NewMiddleware(tp trace.TracerProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provider := tp
			if provider == nil {
				provider = otel.GetTracerProvider()
			}
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			route := pathutil.NormalizePath(r.URL.Path)
			ctx, span := provider.Tracer(InstrumentationName).Start(ctx, r.Method+" "+route,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.route", route),
				),
			)
			defer span.End()

			if sc := span.SpanContext(); sc.HasTraceID() {
				w.Header().Set(TraceIDHeader, sc.TraceID().String())
			}

			rw := responsewriter.Wrap(w)
			next.ServeHTTP(rw, r.WithContext(ctx))

			status := rw.StatusCode()
			span.SetAttributes(attribute.Int("http.status_code", status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		})
	}
}
