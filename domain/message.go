package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is an immutable, append-only chat entry.
type ChatMessage struct {
	ID         uuid.UUID
	AuthorID   string
	AuthorName string
	Content    string
	CreatedAt  time.Time
}
