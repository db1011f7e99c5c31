// Command api serves seeded articles as JSON resources.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pressroom/internal/bootstrap"
	"pressroom/internal/common/pagination"
	"pressroom/internal/config"
	hhttp "pressroom/internal/handler/http"
	harticle "pressroom/internal/handler/http/article"
	"pressroom/internal/handler/http/requestid"
	"pressroom/internal/handler/http/respond"
	"pressroom/internal/observability/logging"
	"pressroom/internal/observability/tracing"
	envcfg "pressroom/internal/pkg/config"
	artUC "pressroom/internal/usecase/article"
)

const (
	defaultAddr       = ":8080"
	defaultRateRPS    = 20
	defaultRateBurst  = 40
	maxTrackedClients = 10000
	dbStatsInterval   = 15 * time.Second
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to load .env", slog.Any("error", err))
	}

	cfg, err := config.LoadSeedConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := bootstrap.OpenStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open storage", slog.String("error", respond.SanitizeError(err)))
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	handler, err := setupServer(logger, st, getVersion())
	if err != nil {
		logger.Error("failed to configure server", slog.Any("error", err))
		os.Exit(1)
	}

	go bootstrap.ReportDBStats(ctx, st.DB, dbStatsInterval)

	runServer(ctx, cancel, logger, handler)
}

func getVersion() string {
	return envcfg.LoadEnvString("VERSION", "dev")
}

// setupServer builds the routes and wraps them in the middleware chain.
func setupServer(logger *slog.Logger, st *bootstrap.Storage, version string) (http.Handler, error) {
	svc := artUC.NewService(st.Articles, artUC.DefaultCacheSize, artUC.DefaultCacheTTL)

	mux := http.NewServeMux()
	harticle.Register(mux, svc, pagination.LoadFromEnv())
	mux.Handle("GET /health", &hhttp.HealthHandler{DB: st.DB, Articles: st.Articles, Version: version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: st.DB})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	limiter, err := newRateLimiter(logger)
	if err != nil {
		return nil, err
	}

	return hhttp.Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.MetricsMiddleware,
		limiter.Limit,
	), nil
}

func newRateLimiter(logger *slog.Logger) (*hhttp.RateLimiter, error) {
	between := func(lo, hi int) func(int) error {
		return func(v int) error { return envcfg.ValidateIntRange(v, lo, hi) }
	}
	rps := envcfg.LoadEnvInt("RATE_LIMIT_RPS", defaultRateRPS, between(1, 10000))
	burst := envcfg.LoadEnvInt("RATE_LIMIT_BURST", defaultRateBurst, between(1, 20000))
	for _, r := range []envcfg.LoadResult[int]{rps, burst} {
		if r.FallbackApplied {
			logger.Warn("rate limit configuration fallback", slog.String("warning", r.Warning))
		}
	}

	logger.Info("rate limiter configured",
		slog.Int("rps", rps.Value),
		slog.Int("burst", burst.Value))
	return hhttp.NewRateLimiter(float64(rps.Value), burst.Value, maxTrackedClients)
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger, handler http.Handler) {
	addr := envcfg.LoadEnvString("API_ADDR", defaultAddr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
