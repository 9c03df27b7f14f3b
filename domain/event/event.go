// Package event defines the tagged domain events broadcast per session.
// Events are immutable snapshots taken inside the session's critical
// section, so a consumer never observes event N before event N-1.
package event

import (
	"time"

	"github.com/google/uuid"
)

type DomainEvent interface {
	SessionID() string
}

// SessionState is the coarse snapshot sent on lifecycle changes.
// Roles is only populated once the session is over; per-recipient role
// disclosure is the transport's concern.
type SessionState struct {
	Session      string
	Phase        string
	Participants int
	Ready        int
	Roles        map[string]string
	Round        int
	RoundEndsAt  time.Time
}

func (e SessionState) SessionID() string { return e.Session }

type ParticipantJoined struct {
	Session     string
	Participant string
	Name        string
}

func (e ParticipantJoined) SessionID() string { return e.Session }

type ParticipantReady struct {
	Session     string
	Participant string
	Ready       bool
}

func (e ParticipantReady) SessionID() string { return e.Session }

type RoundStarted struct {
	Session string
	Number  int
	EndsAt  time.Time
}

func (e RoundStarted) SessionID() string { return e.Session }

// RoundEnded reports the tally outcome. Both pointers are nil when the
// round closed without an elimination.
type RoundEnded struct {
	Session        string
	Number         int
	EliminatedID   *string
	EliminatedName *string
}

func (e RoundEnded) SessionID() string { return e.Session }

// VoteCast is anonymized on purpose: the target is withheld.
type VoteCast struct {
	Session  string
	Voter    string
	HasVoted bool
}

func (e VoteCast) SessionID() string { return e.Session }

type ChatPosted struct {
	Session    string
	ID         uuid.UUID
	Author     string
	AuthorName string
	Content    string
	At         time.Time
}

func (e ChatPosted) SessionID() string { return e.Session }

// SessionOver carries the full role reveal.
type SessionOver struct {
	Session string
	Winner  string
	Winners []string
	Roles   map[string]string
}

func (e SessionOver) SessionID() string { return e.Session }

// Error surfaces an engine defect to consumers. Rejected intents are
// answered synchronously and never produce one.
type Error struct {
	Session string
	Message string
	Kind    string
}

func (e Error) SessionID() string { return e.Session }
