package domain

import "time"

// Round is one discussion-then-vote cycle. Votes hold at most one
// target per living voter; a later vote overwrites the earlier one
// until the tally closes the round.
type Round struct {
	Number       int
	StartedAt    time.Time
	EndsAt       time.Time
	Votes        map[string]string // voter id -> target id
	EliminatedID string            // empty when nobody was eliminated
	Closed       bool
}

func NewRound(number int, startedAt, endsAt time.Time) *Round {
	return &Round{
		Number:    number,
		StartedAt: startedAt,
		EndsAt:    endsAt,
		Votes:     make(map[string]string),
	}
}
