// Package logging builds the slog loggers shared by the seeder, the API and
// the worker, and carries request-scoped loggers through contexts.
//
//	logger := logging.NewLogger()
//	logger.Info("seed run completed", slog.Int("inserted", 30))
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"pressroom/internal/handler/http/requestid"
)

// Output formats accepted by LOG_FORMAT.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// NewLogger returns a stdout logger configured from LOG_LEVEL (debug, info,
// warn, error; default info) and LOG_FORMAT (json or text; default json).
func NewLogger() *slog.Logger {
	return New(os.Stdout, ParseLevel(os.Getenv("LOG_LEVEL")), os.Getenv("LOG_FORMAT"))
}

// New returns a logger writing to w. Any format other than FormatText is JSON.
// Source locations are attached at debug level.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}
	if strings.EqualFold(format, FormatText) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel maps a LOG_LEVEL value to a slog level. Unknown values mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds the request_id attribute when ctx carries one.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if id := requestid.FromContext(ctx); id != "" {
		return logger.With(slog.String("request_id", id))
	}
	return logger
}

type contextKey struct{}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored by WithLogger, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
