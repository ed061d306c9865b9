package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Target is one collection the refresh worker keeps warm.
type Target struct {
	Name  string
	Fetch func(ctx context.Context) error
}

// RefreshWorker periodically re-fetches every entity collection so list
// screens open on fresh data. A failed tick is logged and waits for the
// next interval; there is no retry inside a tick.
type RefreshWorker struct {
	targets  []Target
	interval time.Duration
	logger   *zerolog.Logger
}

func NewRefreshWorker(targets []Target, interval time.Duration, logger *zerolog.Logger) *RefreshWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &RefreshWorker{targets: targets, interval: interval, logger: logger}
}

// Start blocks until ctx is canceled. The first refresh runs immediately.
func (w *RefreshWorker) Start(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("Refresh worker started")

	w.refreshAll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Refresh worker stopped")
			return
		case <-ticker.C:
			w.refreshAll(ctx)
		}
	}
}

func (w *RefreshWorker) refreshAll(ctx context.Context) {
	for _, target := range w.targets {
		if ctx.Err() != nil {
			return
		}
		if err := target.Fetch(ctx); err != nil {
			w.logger.Warn().Err(err).Str("collection", target.Name).Msg("Background refresh failed")
		}
	}
}
