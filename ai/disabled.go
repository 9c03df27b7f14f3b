package ai

import (
	"context"

	"conclave/errors"
)

// Disabled is the narrator used when no backend is configured. Every
// call fails, which forces the agents onto their local template lines.
type Disabled struct{}

func (Disabled) Generate(_ context.Context, _ NarrationRequest) (string, error) {
	return "", errors.ErrNarratorUnavailable
}
