// Package worker holds the runtime pieces of the scheduled reseed worker:
// environment configuration, job metrics, the health server and the job itself.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"pressroom/internal/pkg/config"
)

// Defaults for the reseed worker.
const (
	DefaultCronSchedule = "0 * * * *"
	DefaultTimezone     = "UTC"
	DefaultSeedTimeout  = 5 * time.Minute
	DefaultHealthPort   = 9091
)

// WorkerConfig is the configuration of the reseed worker.
type WorkerConfig struct {
	// CronSchedule is a five-field cron expression (CRON_SCHEDULE).
	CronSchedule string
	// Timezone is the IANA zone the schedule is evaluated in (WORKER_TIMEZONE).
	Timezone string
	// SeedTimeout bounds one reseed run, between 1m and 1h (SEED_TIMEOUT).
	SeedTimeout time.Duration
	// HealthPort serves /health, /health/ready and /metrics (WORKER_HEALTH_PORT).
	HealthPort int
}

// DefaultConfig returns the configuration used when no variable is set.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule: DefaultCronSchedule,
		Timezone:     DefaultTimezone,
		SeedTimeout:  DefaultSeedTimeout,
		HealthPort:   DefaultHealthPort,
	}
}

// Validate checks every field.
func (c WorkerConfig) Validate() error {
	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		return err
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		return err
	}
	if err := validateSeedTimeout(c.SeedTimeout); err != nil {
		return fmt.Errorf("invalid seed timeout: %w", err)
	}
	if err := validateHealthPort(c.HealthPort); err != nil {
		return fmt.Errorf("invalid health port: %w", err)
	}
	return nil
}

// Location resolves Timezone, falling back to UTC.
func (c WorkerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoadConfigFromEnv loads the worker configuration. Invalid values never fail
// startup: each is replaced by its default, logged as a warning and counted
// in metrics when metrics is not nil.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultConfig()
	fallbackActive := false

	note := func(field, warning string, applied bool) {
		if !applied {
			return
		}
		fallbackActive = true
		logger.Warn("worker configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
		if metrics != nil {
			metrics.RecordFallback(field)
		}
	}

	schedule := config.LoadEnvWithFallback("CRON_SCHEDULE", def.CronSchedule, config.ValidateCronSchedule)
	note("cron_schedule", schedule.Warning, schedule.FallbackApplied)

	tz := config.LoadEnvWithFallback("WORKER_TIMEZONE", def.Timezone, config.ValidateTimezone)
	note("timezone", tz.Warning, tz.FallbackApplied)

	timeout := config.LoadEnvDuration("SEED_TIMEOUT", def.SeedTimeout, validateSeedTimeout)
	note("seed_timeout", timeout.Warning, timeout.FallbackApplied)

	port := config.LoadEnvInt("WORKER_HEALTH_PORT", def.HealthPort, validateHealthPort)
	note("health_port", port.Warning, port.FallbackApplied)

	cfg := &WorkerConfig{
		CronSchedule: schedule.Value,
		Timezone:     tz.Value,
		SeedTimeout:  timeout.Value,
		HealthPort:   port.Value,
	}

	if metrics != nil {
		metrics.RecordLoadTimestamp()
		metrics.SetFallbackActive(fallbackActive)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("worker configuration: %w", err)
	}
	return cfg, nil
}

func validateSeedTimeout(d time.Duration) error {
	return config.ValidateDuration(d, time.Minute, time.Hour)
}

func validateHealthPort(p int) error {
	return config.ValidateIntRange(p, 1024, 65535)
}
