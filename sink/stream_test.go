package sink

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"conclave/domain/event"
)

func TestStream_BuffersInOrder(t *testing.T) {
	req := require.New(t)
	stream := NewStream(4)
	ctx := context.Background()

	req.NoError(stream.Consume(ctx, event.RoundStarted{Session: "s1", Number: 1}))
	req.NoError(stream.Consume(ctx, event.RoundStarted{Session: "s1", Number: 2}))

	first := (<-stream.Events).(event.RoundStarted)
	second := (<-stream.Events).(event.RoundStarted)
	req.Equal(1, first.Number)
	req.Equal(2, second.Number)
}

// Consume never blocks, so a finished delivery context is irrelevant:
// the event is still buffered and the call still succeeds.
func TestStream_DeliversUnderCanceledContext(t *testing.T) {
	req := require.New(t)
	stream := NewStream(4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req.NoError(stream.Consume(ctx, event.RoundStarted{Session: "s1", Number: 1}))
	req.Len(stream.Events, 1)
}

// A slow consumer must never stall the fanout: overflow is dropped.
func TestStream_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	req := require.New(t)
	stream := NewStream(1)
	ctx := context.Background()

	req.NoError(stream.Consume(ctx, event.RoundStarted{Session: "s1", Number: 1}))
	req.NoError(stream.Consume(ctx, event.RoundStarted{Session: "s1", Number: 2}))

	req.Len(stream.Events, 1)
	kept := (<-stream.Events).(event.RoundStarted)
	req.Equal(1, kept.Number)
}
