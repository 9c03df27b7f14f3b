// Package services is the intent facade between a transport and the
// state machine: structural validation first, then the serialized
// engine call, with failures mapped to rejected-intent results.
package services

import (
	"log/slog"

	"github.com/go-playground/validator/v10"

	"conclave/contract"
	"conclave/domain"
	"conclave/errors"
	"conclave/runtime"
)

var validate = validator.New()

// Result is the reply to a mutating intent.
type Result struct {
	OK     bool
	Reason string
	Kind   errors.Kind
}

func ok() Result {
	return Result{OK: true}
}

func rejected(err error) Result {
	return Result{OK: false, Reason: err.Error(), Kind: errors.KindOf(err)}
}

// invalid marks structural validation failures, before the intent ever
// reaches the engine.
func invalid(err error) Result {
	return Result{OK: false, Reason: err.Error(), Kind: errors.KindValidation}
}

type ISessionService interface {
	Create(cmd domain.CreateSessionCommand) (sessionID, participantID string, res Result)
	Join(cmd domain.JoinSessionCommand) (participantID string, res Result)
	SetReady(cmd domain.SetReadyCommand) Result
	Start(cmd domain.StartSessionCommand) Result
	CastVote(cmd domain.CastVoteCommand) Result
	SendChat(cmd domain.SendChatCommand) Result
	Leave(cmd domain.LeaveSessionCommand) Result
	Attach(sessionID, participantID string, sink contract.EventSink)
	Detach(sessionID, participantID string)
}

type SessionService struct {
	log      *slog.Logger
	machine  *runtime.Machine
	registry *runtime.Registry
}

func NewSessionService(log *slog.Logger, machine *runtime.Machine, registry *runtime.Registry) *SessionService {
	return &SessionService{log: log, machine: machine, registry: registry}
}

func (s *SessionService) Create(cmd domain.CreateSessionCommand) (string, string, Result) {
	if err := validate.Struct(cmd); err != nil {
		return "", "", invalid(err)
	}
	sessionID, participantID := s.machine.Create(cmd.InitiatorName)
	return sessionID, participantID, ok()
}

func (s *SessionService) Join(cmd domain.JoinSessionCommand) (string, Result) {
	if err := validate.Struct(cmd); err != nil {
		return "", invalid(err)
	}
	participantID, err := s.machine.Join(cmd.Session, cmd.Name)
	if err != nil {
		return "", rejected(err)
	}
	return participantID, ok()
}

func (s *SessionService) SetReady(cmd domain.SetReadyCommand) Result {
	if err := validate.Struct(cmd); err != nil {
		return invalid(err)
	}
	if err := s.machine.SetReady(cmd.Session, cmd.Participant, cmd.Ready); err != nil {
		return rejected(err)
	}
	return ok()
}

func (s *SessionService) Start(cmd domain.StartSessionCommand) Result {
	if err := validate.Struct(cmd); err != nil {
		return invalid(err)
	}
	if err := s.machine.StartSession(cmd.Session); err != nil {
		return rejected(err)
	}
	return ok()
}

func (s *SessionService) CastVote(cmd domain.CastVoteCommand) Result {
	if err := validate.Struct(cmd); err != nil {
		return invalid(err)
	}
	if err := s.machine.CastVote(cmd.Session, cmd.Voter, cmd.Target); err != nil {
		return rejected(err)
	}
	return ok()
}

func (s *SessionService) SendChat(cmd domain.SendChatCommand) Result {
	if err := validate.Struct(cmd); err != nil {
		return invalid(err)
	}
	if err := s.machine.PostChat(cmd.Session, cmd.Author, cmd.Content); err != nil {
		return rejected(err)
	}
	return ok()
}

func (s *SessionService) Leave(cmd domain.LeaveSessionCommand) Result {
	if err := validate.Struct(cmd); err != nil {
		return invalid(err)
	}
	if err := s.machine.Remove(cmd.Session, cmd.Participant); err != nil {
		return rejected(err)
	}
	return ok()
}

// Attach subscribes a participant's broadcast sink; the transport
// calls this once the connection is established.
func (s *SessionService) Attach(sessionID, participantID string, sink contract.EventSink) {
	s.registry.Subscribe(sessionID, participantID, sink)
}

func (s *SessionService) Detach(sessionID, participantID string) {
	s.registry.Unsubscribe(sessionID, participantID)
}
