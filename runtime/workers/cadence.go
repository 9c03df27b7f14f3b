package workers

import (
	"context"
	"log/slog"
	"time"
)

// Cadence is the repeating discourse timer of one session. Each tick
// re-enters the machine's serialized path through the tick callback.
// The owning session cancels the worker's context on game over or
// teardown.
type Cadence struct {
	log      *slog.Logger
	session  string
	interval time.Duration
	tick     func(ctx context.Context)
}

func NewCadence(log *slog.Logger, sessionID string, interval time.Duration, tick func(ctx context.Context)) *Cadence {
	return &Cadence{
		log:      log,
		session:  sessionID,
		interval: interval,
		tick:     tick,
	}
}

func (w *Cadence) Run(ctx context.Context) error {
	w.log.Debug("Starting discourse cadence", "session", w.session)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping discourse cadence", "session", w.session)
			return ctx.Err()
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}
