// Package sink provides the in-process EventSink implementations: a
// structured-log sink and a buffered stream a transport can drain.
package sink

import (
	"context"
	"log/slog"

	"conclave/domain/event"
)

type Log struct {
	log *slog.Logger
}

func NewLog(log *slog.Logger) *Log {
	return &Log{log: log}
}

func (s *Log) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.SessionState:
		s.log.Info("session state", "session", evt.Session, "phase", evt.Phase,
			"participants", evt.Participants, "ready", evt.Ready, "round", evt.Round)
	case event.ParticipantJoined:
		s.log.Info("participant joined", "session", evt.Session, "name", evt.Name)
	case event.ParticipantReady:
		s.log.Info("participant ready", "session", evt.Session, "participant", evt.Participant, "ready", evt.Ready)
	case event.RoundStarted:
		s.log.Info("round started", "session", evt.Session, "round", evt.Number, "ends_at", evt.EndsAt)
	case event.RoundEnded:
		if evt.EliminatedName != nil {
			s.log.Info("round ended", "session", evt.Session, "round", evt.Number, "eliminated", *evt.EliminatedName)
		} else {
			s.log.Info("round ended", "session", evt.Session, "round", evt.Number, "eliminated", "nobody")
		}
	case event.VoteCast:
		s.log.Info("vote cast", "session", evt.Session, "voter", evt.Voter)
	case event.ChatPosted:
		s.log.Info("chat", "session", evt.Session, "author", evt.AuthorName, "content", evt.Content)
	case event.SessionOver:
		s.log.Info("session over", "session", evt.Session, "winner", evt.Winner)
	case event.Error:
		s.log.Error("engine error", "session", evt.Session, "kind", evt.Kind, "message", evt.Message)
	default:
		s.log.Debug("event", "session", e.SessionID())
	}
	return nil
}
