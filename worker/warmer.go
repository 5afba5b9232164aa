package worker

import (
	"context"
	"log/slog"
	"time"

	"catchup/controller"
)

// Warmer periodically loads every feed so that the HTTP cache stays fresh for
// interactive requests.
type Warmer struct {
	Feeds    []controller.Feed
	Interval time.Duration
	Timeout  time.Duration // per feed
}

func (w *Warmer) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 5 * time.Minute
	}
	if w.Timeout <= 0 {
		w.Timeout = time.Minute
	}

	// initial run
	w.runOnce(ctx)

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Warmer) runOnce(ctx context.Context) {
	for _, f := range w.Feeds {
		if ctx.Err() != nil {
			return
		}
		start := time.Now()
		fctx, cancel := context.WithTimeout(ctx, w.Timeout)
		slots, err := f.Load(fctx)
		controller.CloseAll(slots)
		cancel()
		if err != nil {
			slog.Error("warmer: load feed failed", "feed", f.Name(), "error", err)
			continue
		}
		slog.Info("warmer: feed refreshed", "feed", f.Name(), "items", len(slots), "took", time.Since(start).Round(time.Millisecond))
	}
}
