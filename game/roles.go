// Package game holds the pure rules of the social-deduction core:
// role assignment, vote tallying, and win evaluation. Nothing in this
// package schedules, locks, or emits events.
package game

import (
	"math/rand"

	"conclave/domain"
	"conclave/errors"
)

const (
	// ConspiratorCount is fixed regardless of lobby size. With very
	// small lobbies the conspirators can start at parity with the
	// loyals, making an immediate win possible; that is the reference
	// behavior and is kept on purpose.
	ConspiratorCount = 2

	// AutonomousCount bots are appended to every session at start.
	AutonomousCount = 2

	// MinHumans required to start a session.
	MinHumans = 1
)

// AssignRoles picks ConspiratorCount conspirators uniformly without
// replacement from the full participant set; everyone else becomes
// loyal. Calling it twice on the same set is a defect.
func AssignRoles(rng *rand.Rand, participants []*domain.Participant) error {
	if len(participants) < ConspiratorCount {
		return errors.Invariantf("role assignment needs at least %d participants, got %d",
			ConspiratorCount, len(participants))
	}
	for _, p := range participants {
		if p.Role != domain.RoleUnassigned {
			return errors.Invariantf("role assignment invoked twice (participant %s already %s)",
				p.ID, p.Role)
		}
	}

	order := rng.Perm(len(participants))
	for i, idx := range order {
		if i < ConspiratorCount {
			participants[idx].Role = domain.RoleConspirator
		} else {
			participants[idx].Role = domain.RoleLoyal
		}
	}
	return nil
}
