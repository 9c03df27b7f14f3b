package domain

import (
	"time"

	"conclave/domain/event"
)

// Session is the aggregate for one game. It owns its participants,
// rounds and chat log, and records the domain events produced by each
// mutation in an outbox. The caller (the state machine) flushes the
// outbox inside the same critical section that performed the mutation.
type Session struct {
	ID           string
	Phase        Phase
	Participants []*Participant
	Messages     []ChatMessage
	Current      *Round
	History      []*Round
	CreatedAt    time.Time
	StartedAt    time.Time
	EndedAt      time.Time

	outbox []event.DomainEvent
}

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Phase:     PhaseLobby,
		CreatedAt: now,
	}
}

func (s *Session) Emit(e event.DomainEvent) {
	s.outbox = append(s.outbox, e)
}

// FlushEvents drains the outbox in emission order.
func (s *Session) FlushEvents() []event.DomainEvent {
	out := s.outbox
	s.outbox = nil
	return out
}

func (s *Session) Participant(id string) (*Participant, bool) {
	for _, p := range s.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

func (s *Session) HasName(name string) bool {
	for _, p := range s.Participants {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (s *Session) AddParticipant(p *Participant) {
	s.Participants = append(s.Participants, p)
	s.Emit(event.ParticipantJoined{Session: s.ID, Participant: p.ID, Name: p.Name})
}

// RemoveParticipant drops a participant entirely (disconnect). Votes
// cast by or against them in the open round are discarded so they can
// never resurface as a tally input or target.
func (s *Session) RemoveParticipant(id string) bool {
	idx := -1
	for i, p := range s.Participants {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	s.Participants = append(s.Participants[:idx], s.Participants[idx+1:]...)

	if s.Current != nil && !s.Current.Closed {
		delete(s.Current.Votes, id)
		for voter, target := range s.Current.Votes {
			if target == id {
				delete(s.Current.Votes, voter)
			}
		}
	}
	return true
}

func (s *Session) Living() []*Participant {
	var res []*Participant
	for _, p := range s.Participants {
		if !p.Eliminated {
			res = append(res, p)
		}
	}
	return res
}

func (s *Session) LivingCount() int {
	return len(s.Living())
}

func (s *Session) HumanCount() (humans, ready int) {
	for _, p := range s.Participants {
		if p.Autonomous {
			continue
		}
		humans++
		if p.Ready {
			ready++
		}
	}
	return humans, ready
}

// OpenRound archives the previous round (if any) and opens the next
// one. Round numbers are 1-based and strictly increasing.
func (s *Session) OpenRound(now, endsAt time.Time) *Round {
	if s.Current != nil {
		s.History = append(s.History, s.Current)
	}
	round := NewRound(len(s.History)+1, now, endsAt)
	s.Current = round
	s.Emit(event.RoundStarted{Session: s.ID, Number: round.Number, EndsAt: endsAt})
	return round
}

// ArchiveRound closes out the current round without opening another,
// used on the transition to GameOver.
func (s *Session) ArchiveRound() {
	if s.Current != nil {
		s.History = append(s.History, s.Current)
		s.Current = nil
	}
}

func (s *Session) AppendMessage(msg ChatMessage) {
	s.Messages = append(s.Messages, msg)
	s.Emit(event.ChatPosted{
		Session:    s.ID,
		ID:         msg.ID,
		Author:     msg.AuthorID,
		AuthorName: msg.AuthorName,
		Content:    msg.Content,
		At:         msg.CreatedAt,
	})
}

func (s *Session) RecentMessages(n int) []ChatMessage {
	if n <= 0 || len(s.Messages) <= n {
		return append([]ChatMessage(nil), s.Messages...)
	}
	return append([]ChatMessage(nil), s.Messages[len(s.Messages)-n:]...)
}

// RevealRoles maps every participant, living or eliminated, to their
// final role name.
func (s *Session) RevealRoles() map[string]string {
	reveal := make(map[string]string, len(s.Participants))
	for _, p := range s.Participants {
		reveal[p.ID] = p.Role.String()
	}
	return reveal
}

func (s *Session) EmitSnapshot() {
	_, ready := s.HumanCount()
	snap := event.SessionState{
		Session:      s.ID,
		Phase:        s.Phase.String(),
		Participants: len(s.Participants),
		Ready:        ready,
	}
	if s.Current != nil {
		snap.Round = s.Current.Number
		snap.RoundEndsAt = s.Current.EndsAt
	}
	if s.Phase == PhaseGameOver {
		snap.Roles = s.RevealRoles()
	}
	s.Emit(snap)
}
