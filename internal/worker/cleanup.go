package worker

import (
	"context"
	"log/slog"
	"time"
)

type sessionCleaner interface {
	CleanupExpired(ctx context.Context) (int, error)
}

// Cleanup periodically removes sessions that outlived their ttl.
type Cleanup struct {
	logger   *slog.Logger
	cleaner  sessionCleaner
	interval time.Duration
}

func NewCleanup(logger *slog.Logger, cleaner sessionCleaner, interval time.Duration) *Cleanup {
	return &Cleanup{
		logger:   logger.With("component", "cleanup"),
		cleaner:  cleaner,
		interval: interval,
	}
}

// Run blocks until ctx is done.
func (that *Cleanup) Run(ctx context.Context) error {
	ticker := time.NewTicker(that.interval)
	defer ticker.Stop()

	that.logger.Info("cleanup worker started", "interval", that.interval)

	for {
		select {
		case <-ctx.Done():
			that.logger.Info("cleanup worker stopped")
			return nil
		case <-ticker.C:
			that.runOnce(ctx)
		}
	}
}

func (that *Cleanup) runOnce(ctx context.Context) {
	deleted, err := that.cleaner.CleanupExpired(ctx)
	if err != nil {
		that.logger.Error("failed to clean up sessions", "error", err)
		return
	}

	if deleted > 0 {
		that.logger.Info("removed expired sessions", "count", deleted)
	}
}
