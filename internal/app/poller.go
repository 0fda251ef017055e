package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/shelfscan/internal/session"
)

const (
	defaultRefreshInterval = 30 * time.Second
	maxBackoff             = 5 * time.Minute
)

// shelfPoller is the part of the controller the poller needs.
type shelfPoller interface {
	PollShelves(ctx context.Context) error
}

var _ shelfPoller = (*session.Controller)(nil)

// StartShelfPoller launches a background goroutine that refreshes shelf
// capacities so placements made from other stations show up. Failures back
// off exponentially. A negative interval disables polling. It returns
// immediately.
func StartShelfPoller(ctx context.Context, c shelfPoller, logger *slog.Logger, interval time.Duration) {
	if interval < 0 {
		return
	}
	if interval == 0 {
		interval = defaultRefreshInterval
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			if err := c.PollShelves(ctx); err != nil {
				failures++
				logger.Debug("Shelf poll failed", "failures", failures, "error", err)
			} else {
				failures = 0
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// calculateBackoff doubles base for each consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
