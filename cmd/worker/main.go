// Command worker reseeds the demo database on a cron schedule.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"pressroom/internal/bootstrap"
	"pressroom/internal/config"
	"pressroom/internal/handler/http/respond"
	workerPkg "pressroom/internal/infra/worker"
	"pressroom/internal/observability/logging"
	envcfg "pressroom/internal/pkg/config"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to load .env", slog.Any("error", err))
	}

	workerMetrics := workerPkg.NewWorkerMetrics(prometheus.DefaultRegisterer)
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("invalid worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("seed_timeout", workerConfig.SeedTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	seedConfig, err := config.LoadSeedConfig()
	if err != nil {
		logger.Error("invalid seed configuration", slog.Any("error", err))
		os.Exit(1)
	}
	plan, err := seedConfig.Plan()
	if err != nil {
		logger.Error("failed to load seed plan", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := bootstrap.OpenStorage(ctx, seedConfig, logger)
	if err != nil {
		logger.Error("failed to open storage", slog.String("error", respond.SanitizeError(err)))
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	job := &workerPkg.ReseedJob{
		Seeder:  bootstrap.NewSeeder(seedConfig, st.Seeds, logger),
		Plan:    plan,
		Timeout: workerConfig.SeedTimeout,
		Metrics: workerMetrics,
		Logger:  logger,
	}

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger, prometheus.DefaultGatherer)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	if envcfg.LoadEnvBool("WORKER_RUN_ON_START", false).Value {
		_ = job.Run(ctx)
	}

	c, err := startCron(ctx, workerConfig, job)
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}

	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone))

	<-ctx.Done()
	logger.Info("shutting down worker...")
	healthServer.SetReady(false)
	<-c.Stop().Done()
	logger.Info("worker stopped")
}

// startCron schedules job. A tick is skipped while the previous reseed is still running.
func startCron(ctx context.Context, cfg *workerPkg.WorkerConfig, job *workerPkg.ReseedJob) (*cron.Cron, error) {
	c := cron.New(
		cron.WithLocation(cfg.Location()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(cfg.CronSchedule, func() { _ = job.Run(ctx) }); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
