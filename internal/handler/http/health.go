// Package http provides the HTTP surface of the read API: article resources,
// health probes, metrics and the middleware chain in front of them.
package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the outcome of one check: healthy, degraded or unhealthy.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// ArticleCounter reports how many articles are stored.
type ArticleCounter interface {
	CountArticles(ctx context.Context) (int64, error)
}

// HealthHandler checks the database and reports whether seeded data is present.
// An empty articles table is degraded, not unhealthy.
type HealthHandler struct {
	DB       *sql.DB
	Articles ArticleCounter
	Version  string
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	healthy := true

	if h.DB == nil {
		checks["database"] = CheckStatus{Status: "unhealthy", Message: "not configured"}
		healthy = false
	} else {
		db := h.checkDatabase(ctx)
		checks["database"] = db
		healthy = db.Status != "unhealthy"
	}

	status, code := "healthy", http.StatusOK
	if h.Articles != nil && healthy {
		seeded := h.checkSeedData(ctx)
		checks["seed_data"] = seeded
		if seeded.Status == "degraded" {
			status = "degraded"
		}
	}
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}); err != nil {
		slog.Default().Error("health: failed to encode response", slog.Any("error", err))
	}
}

func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if err := h.DB.PingContext(ctx); err != nil {
		return CheckStatus{Status: "unhealthy", Message: err.Error()}
	}

	stats := h.DB.Stats()
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
	}
	if stats.MaxOpenConnections > 0 {
		utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
		details["utilization_percent"] = utilization
		if utilization >= 80.0 {
			return CheckStatus{Status: "degraded", Message: "connection pool utilization above 80%", Details: details}
		}
	}
	return CheckStatus{Status: "healthy", Details: details}
}

func (h *HealthHandler) checkSeedData(ctx context.Context) CheckStatus {
	n, err := h.Articles.CountArticles(ctx)
	if err != nil {
		return CheckStatus{Status: "degraded", Message: "count articles failed"}
	}
	details := map[string]any{"articles": n}
	if n == 0 {
		return CheckStatus{Status: "degraded", Message: "no seeded articles", Details: details}
	}
	return CheckStatus{Status: "healthy", Details: details}
}

// ReadyHandler answers 200 once the database accepts connections.
type ReadyHandler struct {
	DB *sql.DB
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.DB.PingContext(ctx); err != nil {
		http.Error(w, "database not ready", http.StatusServiceUnavailable)
		return
	}
	writeText(w, "ready")
}

// LiveHandler always answers 200.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	writeText(w, "alive")
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Default().Error("failed to write probe response", slog.Any("error", err))
	}
}
