package sink

import (
	"context"

	"conclave/domain/event"
)

// Stream is the handoff point between the engine and a transport: the
// fanout pushes events in, a connection handler drains Events. A full
// buffer drops the event rather than stalling the fanout.
type Stream struct {
	Events chan event.DomainEvent
}

func NewStream(bufferSize int) *Stream {
	return &Stream{Events: make(chan event.DomainEvent, bufferSize)}
}

func (s *Stream) Consume(_ context.Context, e event.DomainEvent) error {
	select {
	case s.Events <- e:
	default:
		// Buffer full: dropping beats stalling the fanout.
	}
	return nil
}
