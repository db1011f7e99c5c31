package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"pressroom/internal/handler/http/requestid"
	"pressroom/internal/handler/http/respond"
	"pressroom/internal/handler/http/responsewriter"
	"pressroom/internal/observability/logging"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// ErrRateLimited is returned to clients that exceed their request budget.
var ErrRateLimited = errors.New("rate limit exceeded")

// Chain applies middleware so that the first one listed runs first.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Logging logs one line per request and stores a request-scoped logger in the context.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := responsewriter.Wrap(w)

			reqLogger := logging.WithRequestID(r.Context(), logger)
			ctx := logging.WithLogger(r.Context(), reqLogger)
			next.ServeHTTP(wrapped, r.WithContext(ctx))

			traceID := trace.SpanFromContext(r.Context()).SpanContext().TraceID().String()
			duration := time.Since(start)
			reqLogger.Info("request completed",
				slog.String("trace_id", traceID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.String("remote_addr", r.RemoteAddr),
				slog.Int("status", wrapped.StatusCode()),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", duration),
			)
		})
	}
}

// Recover turns a panic into a 500 and logs the stack.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					respond.SafeError(w, http.StatusInternalServerError, fmt.Errorf("internal error"))
					logger.Error("panic recovered",
						slog.String("request_id", requestid.FromContext(r.Context())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
					)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimiter is a per-client token bucket. Limiters live in an LRU so an
// unbounded number of client addresses cannot grow memory without bound.
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	limiters *lru.Cache[string, *rate.Limiter]
}

// NewRateLimiter allows rps requests per second with the given burst for
// each client, tracking at most maxClients clients.
func NewRateLimiter(rps float64, burst, maxClients int) (*RateLimiter, error) {
	if rps <= 0 || burst <= 0 {
		return nil, fmt.Errorf("rate limiter: rps and burst must be positive")
	}
	cache, err := lru.New[string, *rate.Limiter](maxClients)
	if err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	return &RateLimiter{limit: rate.Limit(rps), burst: burst, limiters: cache}, nil
}

// Limit rejects requests over budget with 429 and a Retry-After header.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(extractIP(r)) {
			w.Header().Set("Retry-After", "1")
			respond.JSON(w, http.StatusTooManyRequests, map[string]string{"error": ErrRateLimited.Error()})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(client string) bool {
	l, ok := rl.limiters.Get(client)
	if !ok {
		l = rate.NewLimiter(rl.limit, rl.burst)
		if prev, found, _ := rl.limiters.PeekOrAdd(client, l); found {
			l = prev
		}
	}
	return l.Allow()
}

// extractIP prefers the first X-Forwarded-For entry, then X-Real-IP, then RemoteAddr.
func extractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	if ip := net.ParseIP(r.Header.Get("X-Real-IP")); ip != nil {
		return ip.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
