// Package requestid propagates a per-request id through headers and contexts.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const (
	// RequestIDKey is the context key holding the id.
	RequestIDKey contextKey = "request_id"
	// RequestIDHeader carries the id in requests and responses.
	RequestIDHeader = "X-Request-ID"
	maxLength       = 128
)

// FromContext returns the id, or "" when none was set.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithRequestID stores id in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// Middleware reuses an incoming X-Request-ID or generates a UUID v4, echoes it
// in the response and stores it in the request context. Oversized incoming
// ids are replaced.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxLength {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}
