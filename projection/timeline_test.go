package projection

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"conclave/domain/event"
)

func TestTimeline_RebuildsSessionView(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	timeline := NewTimeline()

	eliminatedID := "p2"
	eliminatedName := "Bob"
	events := []event.DomainEvent{
		event.SessionState{Session: "s1", Phase: "in_progress", Participants: 4},
		event.ChatPosted{Session: "s1", ID: uuid.New(), Author: "p1", AuthorName: "Alice", Content: "hello", At: time.Now()},
		event.RoundEnded{Session: "s1", Number: 1, EliminatedID: &eliminatedID, EliminatedName: &eliminatedName},
		event.SessionState{Session: "s1", Phase: "game_over"},
		event.SessionOver{Session: "s1", Winner: "loyal", Winners: []string{"p1"}, Roles: map[string]string{"p1": "loyal", "p2": "conspirator"}},
	}
	for _, e := range events {
		req.NoError(timeline.Consume(ctx, e))
	}

	view, ok := timeline.View("s1")
	req.True(ok)
	req.Equal("game_over", view.Phase)
	req.Len(view.Messages, 1)
	req.Equal("Alice", view.Messages[0].AuthorName)
	req.Equal([]string{"p2"}, view.Eliminated)
	req.Equal("loyal", view.Winner)
	req.Equal("conspirator", view.Roles["p2"])
}

func TestTimeline_RoundWithoutElimination(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()

	req.NoError(timeline.Consume(context.Background(), event.RoundEnded{Session: "s1", Number: 1}))

	view, ok := timeline.View("s1")
	req.True(ok)
	req.Empty(view.Eliminated)
}

func TestTimeline_UnknownSession(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()

	_, ok := timeline.View("missing")
	req.False(ok)
}

// View returns copies; mutating them must not leak back.
func TestTimeline_ViewIsACopy(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()

	req.NoError(timeline.Consume(context.Background(), event.SessionOver{
		Session: "s1", Winner: "loyal", Roles: map[string]string{"p1": "loyal"},
	}))

	view, ok := timeline.View("s1")
	req.True(ok)
	view.Roles["p1"] = "tampered"

	fresh, _ := timeline.View("s1")
	req.Equal("loyal", fresh.Roles["p1"])
}
