// Package domain contains core concepts of the game engine.
// No runtime, network, or UI logic should be added here.
package domain

import "time"

// Participant is a human or autonomous player within a single session.
// The Eliminated flag is monotonic: once set it never flips back, the
// participant casts no further votes and sends no further discourse,
// but stays listed for the end-of-game reveal.
type Participant struct {
	ID         string
	Name       string
	Role       Role
	Eliminated bool
	Ready      bool
	Autonomous bool
	JoinedAt   time.Time
}
