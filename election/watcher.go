// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
)

// Watcher periodically runs the automatic close-out so an ended election is
// archived even when nobody reads its status.
type Watcher struct {
	coordinator *Coordinator
	interval    time.Duration
	logger      *slog.Logger
}

func NewWatcher(coordinator *Coordinator, interval time.Duration, logger *slog.Logger) *Watcher {
	return &Watcher{coordinator: coordinator, interval: interval, logger: resolveLogger(logger)}
}

// Run blocks until ctx is cancelled
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("election watcher started", "interval", w.interval.String())

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("election watcher stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Watcher) tick(ctx context.Context) {
	closed, err := w.coordinator.closeOut(ctx)
	if err != nil {
		w.logger.Error("watcher reset failed", "error", err)
		return
	}
	if closed != nil {
		w.logger.Info("watcher closed election",
			"title", closed.Title,
			"ended", humanize.RelTime(closed.WindowEnd, w.coordinator.clock.Now(), "ago", "from now"),
		)
	}
}
