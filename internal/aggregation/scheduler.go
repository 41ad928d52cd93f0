package aggregation

import (
	"context"
	"log/slog"
	"time"
)

// Warmer recomputes the cached analytics for the current snapshot and
// reports how many results it stored.
type Warmer interface {
	Warm(ctx context.Context) (int, error)
}

// Refresher keeps the analytics cache warm on a periodic interval.
// It is stateless: each tick independently reloads the snapshot.
type Refresher struct {
	interval time.Duration
	warmer   Warmer
	timeout  time.Duration
}

// NewRefresher creates a refresher. Each pass is bounded by timeout, or by
// the interval when timeout <= 0.
func NewRefresher(interval time.Duration, warmer Warmer, timeout time.Duration) *Refresher {
	if timeout <= 0 {
		timeout = interval
	}
	return &Refresher{
		interval: interval,
		warmer:   warmer,
		timeout:  timeout,
	}
}

// Start begins periodic refreshes.
// Runs until context is cancelled.
func (r *Refresher) Start(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("[Refresher] Starting analytics cache refresher",
		"interval", r.interval,
		"timeout", r.timeout,
	)

	// Warm once up front so the first requests after boot hit the cache
	r.refresh(ctx)

	for {
		select {
		case <-ticker.C:
			r.refresh(ctx)
		case <-ctx.Done():
			slog.Info("[Refresher] Stopping (context cancelled)")
			return nil
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	default:
	}

	passCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	started := time.Now()
	warmed, err := r.warmer.Warm(passCtx)
	if err != nil {
		slog.Error("[Refresher] Cache refresh failed",
			"error", err,
			"elapsed", time.Since(started),
		)
		return
	}

	slog.Debug("[Refresher] Cache refreshed",
		"reports", warmed,
		"elapsed", time.Since(started),
	)
}
