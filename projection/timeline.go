// Package projection builds read models from observed events. It never
// emits events and never touches session state directly.
package projection

import (
	"context"
	"sync"

	"conclave/domain"
	"conclave/domain/event"
)

// Timeline rebuilds per-session transcript, eliminations and final
// verdict purely from the broadcast stream. It doubles as a check that
// the stream alone is enough to render a client view.
type Timeline struct {
	mu       sync.RWMutex
	sessions map[string]*SessionView
}

type SessionView struct {
	Phase      string
	Messages   []domain.ChatMessage
	Eliminated []string
	Winner     string
	Roles      map[string]string
}

func NewTimeline() *Timeline {
	return &Timeline{sessions: make(map[string]*SessionView)}
}

func (t *Timeline) Consume(_ context.Context, e event.DomainEvent) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	view, ok := t.sessions[e.SessionID()]
	if !ok {
		view = &SessionView{}
		t.sessions[e.SessionID()] = view
	}

	switch evt := e.(type) {
	case event.SessionState:
		view.Phase = evt.Phase
	case event.ChatPosted:
		view.Messages = append(view.Messages, domain.ChatMessage{
			ID:         evt.ID,
			AuthorID:   evt.Author,
			AuthorName: evt.AuthorName,
			Content:    evt.Content,
			CreatedAt:  evt.At,
		})
	case event.RoundEnded:
		if evt.EliminatedID != nil {
			view.Eliminated = append(view.Eliminated, *evt.EliminatedID)
		}
	case event.SessionOver:
		view.Winner = evt.Winner
		view.Roles = evt.Roles
	}
	return nil
}

// View returns a copy of the projected state for a session.
func (t *Timeline) View(sessionID string) (SessionView, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	view, ok := t.sessions[sessionID]
	if !ok {
		return SessionView{}, false
	}
	res := SessionView{
		Phase:      view.Phase,
		Messages:   append([]domain.ChatMessage(nil), view.Messages...),
		Eliminated: append([]string(nil), view.Eliminated...),
		Winner:     view.Winner,
	}
	if view.Roles != nil {
		res.Roles = make(map[string]string, len(view.Roles))
		for k, v := range view.Roles {
			res.Roles[k] = v
		}
	}
	return res, true
}
