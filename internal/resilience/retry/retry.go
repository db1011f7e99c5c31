// Package retry retries transient connection failures with capped exponential
// backoff. It is used while establishing database connections; seed writes
// are never retried.
package retry

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"syscall"
	"time"
)

// ErrExhausted wraps the last error once every attempt has failed.
var ErrExhausted = errors.New("retry attempts exhausted")

// Config is a backoff policy. Delay n (starting at 0) is
// min(BaseDelay*2^n, MaxDelay) plus up to Jitter of itself.
type Config struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
	// Jitter is a fraction in [0, 1].
	Jitter float64
}

// DBConfig is the policy for the startup ping: five attempts within roughly
// three seconds.
func DBConfig() Config {
	return Config{
		Attempts:  5,
		BaseDelay: 200 * time.Millisecond,
		MaxDelay:  time.Second,
		Jitter:    0.1,
	}
}

// Delay returns the pause after failed attempt n (0-based), without jitter.
func (c Config) Delay(n int) time.Duration {
	d := c.BaseDelay
	for i := 0; i < n && d < c.MaxDelay; i++ {
		d *= 2
	}
	if c.MaxDelay > 0 && d > c.MaxDelay {
		d = c.MaxDelay
	}
	return d
}

func (c Config) jittered(n int) time.Duration {
	d := c.Delay(n)
	j := min(max(c.Jitter, 0), 1)
	if j == 0 || d <= 0 {
		return d
	}
	return d + time.Duration(rand.Float64()*j*float64(d)) // #nosec G404 -- backoff jitter
}

// WithBackoff calls fn until it succeeds, returns a non-retryable error, ctx
// ends, or cfg.Attempts calls have failed. At least one call is made.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	attempts := max(cfg.Attempts, 1)

	var err error
	for n := 0; n < attempts; n++ {
		if err = fn(); err == nil {
			if n > 0 {
				slog.Info("operation succeeded after retry", slog.Int("attempt", n+1))
			}
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		if n == attempts-1 {
			break
		}

		delay := cfg.jittered(n)
		slog.Warn("operation failed, retrying",
			slog.Int("attempt", n+1),
			slog.Int("max_attempts", attempts),
			slog.Duration("delay", delay),
			slog.Any("error", err))

		t := time.NewTimer(delay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return fmt.Errorf("retry aborted after %d attempts: %w", n+1, ctx.Err())
		}
	}
	return fmt.Errorf("%w (%d): %w", ErrExhausted, attempts, err)
}

// IsRetryable reports whether err looks like a transient connection problem.
// Context cancellation is never retryable.
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, driver.ErrBadConn):
		return true
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ETIMEDOUT),
		errors.Is(err, syscall.ENETUNREACH):
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
