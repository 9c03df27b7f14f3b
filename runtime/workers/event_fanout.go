package workers

import (
	"context"
	"log/slog"
	"time"

	"conclave/contract"
	"conclave/domain/event"
)

// EventFanout drains the engine's ordered event channel and delivers
// each event to the permanent sinks plus the session's subscriber
// sinks. Delivery is sequential on purpose: for a given session, the
// event for operation N is never observed before the event for N-1.
//
// EventFanout is best-effort, not a message broker: a sink that blocks
// past the timeout is abandoned for that event.
type EventFanout struct {
	log         *slog.Logger
	sinks       []contract.EventSink
	registry    contract.IRegistry
	events      <-chan event.DomainEvent
	sinkTimeout time.Duration
}

func NewEventFanout(
	log *slog.Logger,
	sinks []contract.EventSink,
	registry contract.IRegistry,
	events <-chan event.DomainEvent,
	sinkTimeout time.Duration,
) *EventFanout {
	return &EventFanout{
		log:         log,
		sinks:       sinks,
		registry:    registry,
		events:      events,
		sinkTimeout: sinkTimeout,
	}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping event fanout")
			return ctx.Err()
		case evt := <-w.events:
			w.Fanout(ctx, evt)
		}
	}
}

// Fanout delivers one event to every interested sink.
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	targets := append([]contract.EventSink{}, w.sinks...)
	if w.registry != nil {
		targets = append(targets, w.registry.SinksFor(evt.SessionID())...)
	}
	for _, sink := range targets {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		if err := sink.Consume(sinkCtx, evt); err != nil {
			w.log.Warn("Sink failed to consume event", "session", evt.SessionID(), "error", err)
		}
		cancel()
	}
}
