// Package respond writes JSON responses and maps errors to safe client messages.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"pressroom/internal/domain/entity"
)

// JSON writes v with the given status. A nil v writes headers only.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Bytes writes an already encoded JSON body.
func Bytes(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		slog.Default().Error("failed to write response", slog.Any("error", err))
	}
}

// safeFragments mark messages that carry no internal detail.
var safeFragments = []string{
	"required",
	"invalid",
	"not found",
	"must be",
	"cannot be",
}

// SafeError writes err when its message is safe for clients and the status
// is below 500. Anything else is logged with secrets masked and replaced by
// "internal server error".
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	if code < http.StatusInternalServerError && isSafe(msg) {
		JSON(w, code, map[string]string{"error": msg})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	var verr *entity.ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrInvalidEntityType), errors.As(err, &verr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func isSafe(msg string) bool {
	lower := strings.ToLower(msg)
	for _, s := range safeFragments {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
