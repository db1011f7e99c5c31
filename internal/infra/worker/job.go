package worker

import (
	"context"
	"log/slog"
	"time"

	"pressroom/internal/handler/http/respond"
	"pressroom/internal/usecase/seed"
)

// Seeder runs a whole seeding plan. *seed.Service satisfies it.
type Seeder interface {
	Run(ctx context.Context, plan seed.Plan) (seed.RunStats, error)
}

// ReseedJob replaces the demo data with a fresh plan run on every tick.
type ReseedJob struct {
	Seeder  Seeder
	Plan    seed.Plan
	Timeout time.Duration
	Metrics *WorkerMetrics
	Logger  *slog.Logger
}

// Run executes one reseed bounded by Timeout. Failures are logged and
// counted, then returned so callers can react.
func (j *ReseedJob) Run(ctx context.Context) error {
	logger := j.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	start := time.Now()
	logger.Info("reseed job started", slog.Int("steps", len(j.Plan.Steps)))

	stats, err := j.Seeder.Run(ctx, j.Plan)
	elapsed := time.Since(start)
	if err != nil {
		logger.Error("reseed job failed",
			slog.Duration("duration", elapsed),
			slog.Int("inserted", stats.Inserted()),
			slog.String("error", respond.SanitizeError(err)))
		if j.Metrics != nil {
			j.Metrics.RecordRun(StatusFailure, elapsed, stats.Inserted())
		}
		return err
	}

	logger.Info("reseed job completed",
		slog.Duration("duration", elapsed),
		slog.Int("inserted", stats.Inserted()))
	if j.Metrics != nil {
		j.Metrics.RecordRun(StatusSuccess, elapsed, stats.Inserted())
	}
	return nil
}
