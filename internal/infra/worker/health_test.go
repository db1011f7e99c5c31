package worker

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthServer_Liveness(t *testing.T) {
	h := NewHealthServer(":0", quietLogger(), prometheus.NewRegistry())

	rec := httptest.NewRecorder()
	h.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthServer_Readiness(t *testing.T) {
	h := NewHealthServer(":0", quietLogger(), prometheus.NewRegistry())
	handler := h.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"not ready"}`, rec.Body.String())

	h.SetReady(true)
	assert.True(t, h.Ready())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthServer_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWorkerMetrics(reg)
	m.RecordRun(StatusSuccess, time.Second, 30)
	h := NewHealthServer(":0", quietLogger(), reg)

	rec := httptest.NewRecorder()
	h.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `worker_reseed_runs_total{status="success"} 1`)
	assert.Contains(t, rec.Body.String(), "worker_reseed_rows_inserted_total 30")
}

func TestHealthServer_StartStopsOnCancel(t *testing.T) {
	h := NewHealthServer("127.0.0.1:0", quietLogger(), prometheus.NewRegistry())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- h.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.True(t, errors.Is(err, http.ErrServerClosed))
	case <-time.After(6 * time.Second):
		t.Fatal("health server did not stop")
	}
}
