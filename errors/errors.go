// Package errors defines the error taxonomy of the game engine.
// Validation errors are returned to the caller as rejected intents.
// Invariant violations mark programming defects and are never
// recoverable runtime paths.
package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	ErrSessionNotFound     = fmt.Errorf("session not found")
	ErrParticipantNotFound = fmt.Errorf("participant not found")
	ErrInvalidPhase        = fmt.Errorf("operation not allowed in current phase")
	ErrNotReady            = fmt.Errorf("every human participant must be ready")
	ErrDeadParticipant     = fmt.Errorf("participant is eliminated")
	ErrNameTaken           = fmt.Errorf("display name already in use")
	ErrNarratorUnavailable = fmt.Errorf("narration backend unavailable")
	ErrWorkerPanic         = fmt.Errorf("worker panic")
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindInternal   Kind = "internal"
)

// KindOf classifies an error for the rejected-intent response.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, ErrSessionNotFound), stderrors.Is(err, ErrParticipantNotFound):
		return KindNotFound
	case stderrors.Is(err, ErrInvalidPhase), stderrors.Is(err, ErrNotReady),
		stderrors.Is(err, ErrDeadParticipant), stderrors.Is(err, ErrNameTaken):
		return KindValidation
	default:
		return KindInternal
	}
}

// Invariant is a fatal internal error: reaching one means the engine
// itself is defective, not the caller's input.
type Invariant struct {
	Msg string
}

func (e *Invariant) Error() string {
	return "invariant violation: " + e.Msg
}

func Invariantf(format string, args ...any) error {
	return &Invariant{Msg: fmt.Sprintf(format, args...)}
}

func IsInvariant(err error) bool {
	var inv *Invariant
	return stderrors.As(err, &inv)
}
