//go:generate go run go.uber.org/mock/mockgen -source=narrator.go -destination=../mocks/mock_narrator.go -package=mocks

// Package ai models the external text-generation collaborator used for
// autonomous discourse. Failures are non-fatal by contract: callers
// degrade to local template lines.
package ai

import (
	"context"

	"conclave/agent"
	"conclave/domain"
)

// NarrationRequest is the full context handed to the backend: the
// speaking agent's hidden role, its traits, and the recent transcript.
type NarrationRequest struct {
	Role       string
	Traits     agent.Traits
	Self       string
	Others     []string
	Transcript []domain.ChatMessage
}

// Narrator must be invoked with a bounded timeout and off the
// session's serialized path.
type Narrator interface {
	Generate(ctx context.Context, req NarrationRequest) (string, error)
}
