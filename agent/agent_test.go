package agent

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"conclave/domain"
)

func TestSampleTraits_WithinUnitInterval(t *testing.T) {
	req := require.New(t)
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 100; i++ {
		traits := SampleTraits(rng)
		for _, v := range []float64{traits.Suspicion, traits.Aggressiveness, traits.Defensiveness} {
			req.GreaterOrEqual(v, 0.0)
			req.Less(v, 1.0)
		}
	}
}

func TestPickTarget_ConspiratorPrefersLoyals(t *testing.T) {
	req := require.New(t)
	rng := rand.New(rand.NewSource(11))

	self := &domain.Participant{ID: "self", Role: domain.RoleConspirator}
	partner := &domain.Participant{ID: "partner", Role: domain.RoleConspirator}
	loyal1 := &domain.Participant{ID: "l1", Role: domain.RoleLoyal}
	loyal2 := &domain.Participant{ID: "l2", Role: domain.RoleLoyal}
	living := []*domain.Participant{self, partner, loyal1, loyal2}

	ag := New("self", rng)
	for i := 0; i < 50; i++ {
		target := ag.PickTarget(self, living)
		req.Contains([]string{"l1", "l2"}, target)
	}
}

func TestPickTarget_NeverSelf(t *testing.T) {
	req := require.New(t)
	rng := rand.New(rand.NewSource(5))

	self := &domain.Participant{ID: "self", Role: domain.RoleLoyal}
	other := &domain.Participant{ID: "other", Role: domain.RoleLoyal}

	ag := New("self", rng)
	for i := 0; i < 50; i++ {
		req.Equal("other", ag.PickTarget(self, []*domain.Participant{self, other}))
	}
}

func TestPickTarget_NobodyLeft(t *testing.T) {
	req := require.New(t)
	rng := rand.New(rand.NewSource(5))

	self := &domain.Participant{ID: "self", Role: domain.RoleConspirator}
	ag := New("self", rng)

	req.Empty(ag.PickTarget(self, []*domain.Participant{self}))
}

func TestFallbackLine_NeverRevealsRoles(t *testing.T) {
	req := require.New(t)
	rng := rand.New(rand.NewSource(23))

	ag := New("self", rng)
	others := []string{"Alice", "Bob"}

	for _, role := range []domain.Role{domain.RoleConspirator, domain.RoleLoyal} {
		for i := 0; i < 100; i++ {
			line := strings.ToLower(ag.FallbackLine(role, others))
			req.NotContains(line, "conspirator")
			req.NotContains(line, "loyal")
			req.NotContains(line, "%s")
		}
	}
}

func TestShouldSpeak_RespectsBounds(t *testing.T) {
	req := require.New(t)
	rng := rand.New(rand.NewSource(9))
	ag := New("self", rng)

	for i := 0; i < 20; i++ {
		req.False(ag.ShouldSpeak(0))
		req.True(ag.ShouldSpeak(1))
	}
}

func TestNames_DistinctAndFresh(t *testing.T) {
	req := require.New(t)
	rng := rand.New(rand.NewSource(17))

	taken := []string{"Alice", "Bob"}
	names := Names(rng, 4, taken)

	req.Len(names, 4)
	seen := map[string]bool{"Alice": true, "Bob": true}
	for _, name := range names {
		req.False(seen[name], "duplicate name %s", name)
		seen[name] = true
	}
}
