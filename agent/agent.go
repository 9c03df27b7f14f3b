// Package agent implements the decision policy of autonomous
// participants: vote targeting and discourse cadence, parameterized by
// personality traits sampled once at session start.
package agent

import (
	"fmt"
	"math/rand"

	"github.com/samber/lo"

	"conclave/domain"
)

// Traits are pure personality parameters in [0,1]. There is no
// learning and no persistence across sessions.
type Traits struct {
	Suspicion      float64
	Aggressiveness float64
	Defensiveness  float64
}

func SampleTraits(rng *rand.Rand) Traits {
	return Traits{
		Suspicion:      rng.Float64(),
		Aggressiveness: rng.Float64(),
		Defensiveness:  rng.Float64(),
	}
}

// Callout thresholds: above these an agent's fallback line singles out
// another living participant by name.
const (
	conspiratorCalloutThreshold = 0.60 // gated on aggressiveness
	loyalCalloutThreshold       = 0.50 // gated on suspicion
)

// Agent drives one autonomous participant. All methods must be called
// under the owning session's serialization; the rng is shared with the
// session and is not safe for concurrent use.
type Agent struct {
	ParticipantID string
	Traits        Traits

	rng *rand.Rand
}

func New(participantID string, rng *rand.Rand) *Agent {
	return &Agent{
		ParticipantID: participantID,
		Traits:        SampleTraits(rng),
		rng:           rng,
	}
}

// PickTarget selects a vote target among the living. A conspirator
// prefers a uniformly random living loyal; a loyal, or a conspirator
// with no loyal left, picks uniformly among any living participant.
// The agent never targets itself or an eliminated participant.
func (a *Agent) PickTarget(self *domain.Participant, living []*domain.Participant) string {
	others := lo.Filter(living, func(p *domain.Participant, _ int) bool {
		return p.ID != self.ID
	})
	if len(others) == 0 {
		return ""
	}

	if self.Role == domain.RoleConspirator {
		loyals := lo.Filter(others, func(p *domain.Participant, _ int) bool {
			return p.Role == domain.RoleLoyal
		})
		if len(loyals) > 0 {
			return loyals[a.rng.Intn(len(loyals))].ID
		}
	}
	return others[a.rng.Intn(len(others))].ID
}

// ShouldSpeak gates one discourse tick with a fixed probability.
func (a *Agent) ShouldSpeak(probability float64) bool {
	return a.rng.Float64() < probability
}

// FallbackLine produces a role-appropriate template line for when the
// narration backend fails or times out. Lines never name or imply
// anyone's hidden role; a callout only points at behavior.
func (a *Agent) FallbackLine(role domain.Role, otherNames []string) string {
	if len(otherNames) > 0 && a.calloutLikely(role) {
		target := otherNames[a.rng.Intn(len(otherNames))]
		lines := calloutLines
		return fmt.Sprintf(lines[a.rng.Intn(len(lines))], target)
	}

	lines := loyalLines
	if role == domain.RoleConspirator {
		lines = conspiratorLines
	}
	return lines[a.rng.Intn(len(lines))]
}

func (a *Agent) calloutLikely(role domain.Role) bool {
	if role == domain.RoleConspirator {
		return a.Traits.Aggressiveness > conspiratorCalloutThreshold
	}
	return a.Traits.Suspicion > loyalCalloutThreshold
}

var loyalLines = []string{
	"Something feels off this round. Anyone else notice?",
	"Let's compare notes before we rush a vote.",
	"I'm keeping track of who changes their story.",
	"We can't afford a wrong elimination here.",
}

var conspiratorLines = []string{
	"I agree, we should be careful who we accuse.",
	"Honestly I have no strong read yet.",
	"Let's not point fingers without something concrete.",
	"I'm just listening for now.",
}

var calloutLines = []string{
	"%s has been awfully quiet, don't you think?",
	"I'm not convinced by what %s said earlier.",
	"Has anyone else been watching %s?",
	"%s keeps deflecting every question.",
}
