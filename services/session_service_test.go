package services

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"conclave/ai"
	"conclave/domain"
	"conclave/domain/event"
	"conclave/errors"
	"conclave/mocks"
	"conclave/runtime"
	"conclave/runtime/workers"
)

func newService(t *testing.T) (*SessionService, *runtime.Registry) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := runtime.NewRegistry()
	events := make(chan event.DomainEvent, 256)
	sup := workers.NewSupervisor(log, 10*time.Millisecond)

	machine := runtime.NewMachine(log, registry, ai.Disabled{}, nil, sup, events, runtime.DefaultTimings())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	machine.Start(ctx)

	return NewSessionService(log, machine, registry), registry
}

func TestSessionService_CreateAndJoin(t *testing.T) {
	req := require.New(t)
	service, _ := newService(t)

	sessionID, aliceID, res := service.Create(domain.CreateSessionCommand{InitiatorName: "Alice"})
	req.True(res.OK)
	req.NotEmpty(sessionID)
	req.NotEmpty(aliceID)

	bobID, res := service.Join(domain.JoinSessionCommand{Session: sessionID, Name: "Bob"})
	req.True(res.OK)
	req.NotEmpty(bobID)
}

func TestSessionService_ValidationRejections(t *testing.T) {
	req := require.New(t)
	service, _ := newService(t)

	// Structural failures never reach the engine.
	_, _, res := service.Create(domain.CreateSessionCommand{InitiatorName: ""})
	req.False(res.OK)
	req.Equal(errors.KindValidation, res.Kind)

	_, _, res = service.Create(domain.CreateSessionCommand{InitiatorName: strings.Repeat("x", 25)})
	req.False(res.OK)
	req.Equal(errors.KindValidation, res.Kind)

	res = service.SendChat(domain.SendChatCommand{Session: "s", Author: "a", Content: strings.Repeat("x", 281)})
	req.False(res.OK)
	req.Equal(errors.KindValidation, res.Kind)

	res = service.CastVote(domain.CastVoteCommand{Session: "s", Voter: "", Target: "t"})
	req.False(res.OK)
	req.Equal(errors.KindValidation, res.Kind)
}

func TestSessionService_EngineRejections(t *testing.T) {
	req := require.New(t)
	service, _ := newService(t)

	res := service.Start(domain.StartSessionCommand{Session: "missing"})
	req.False(res.OK)
	req.Equal(errors.KindNotFound, res.Kind)

	sessionID, _, res := service.Create(domain.CreateSessionCommand{InitiatorName: "Alice"})
	req.True(res.OK)

	// Nobody is ready yet.
	res = service.Start(domain.StartSessionCommand{Session: sessionID})
	req.False(res.OK)
	req.Equal(errors.KindValidation, res.Kind)

	res = service.SetReady(domain.SetReadyCommand{Session: sessionID, Participant: "ghost", Ready: true})
	req.False(res.OK)
	req.Equal(errors.KindNotFound, res.Kind)
}

func TestSessionService_AttachDetach(t *testing.T) {
	req := require.New(t)
	service, registry := newService(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sessionID, aliceID, res := service.Create(domain.CreateSessionCommand{InitiatorName: "Alice"})
	req.True(res.OK)

	sink := mocks.NewMockEventSink(ctrl)
	service.Attach(sessionID, aliceID, sink)
	req.Len(registry.SinksFor(sessionID), 1)

	service.Detach(sessionID, aliceID)
	req.Empty(registry.SinksFor(sessionID))
}
