// Command seed fills the pressroom database with fake people, articles and comments.
//
//	seed run [--only types] [--count N] [--plan file] [--link-references] [--seed N]
//	seed list
//	seed show <article-id>
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"pressroom/internal/observability/logging"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to load .env", slog.Any("error", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(logger).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
