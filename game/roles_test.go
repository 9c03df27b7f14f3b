package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"conclave/domain"
	"conclave/errors"
)

func participants(n int) []*domain.Participant {
	res := make([]*domain.Participant, 0, n)
	for i := 0; i < n; i++ {
		res = append(res, &domain.Participant{ID: string(rune('a' + i))})
	}
	return res
}

func TestAssignRoles_ExactConspiratorCount(t *testing.T) {
	req := require.New(t)
	rng := rand.New(rand.NewSource(7))

	set := participants(6)
	req.NoError(AssignRoles(rng, set))

	conspirators := 0
	for _, p := range set {
		req.NotEqual(domain.RoleUnassigned, p.Role)
		if p.Role == domain.RoleConspirator {
			conspirators++
		}
	}
	req.Equal(ConspiratorCount, conspirators)
}

func TestAssignRoles_DeterministicWithSeed(t *testing.T) {
	req := require.New(t)

	first := participants(5)
	req.NoError(AssignRoles(rand.New(rand.NewSource(42)), first))

	second := participants(5)
	req.NoError(AssignRoles(rand.New(rand.NewSource(42)), second))

	for i := range first {
		req.Equal(first[i].Role, second[i].Role)
	}
}

func TestAssignRoles_TooFewParticipants(t *testing.T) {
	req := require.New(t)
	rng := rand.New(rand.NewSource(1))

	err := AssignRoles(rng, participants(1))
	req.Error(err)
	req.True(errors.IsInvariant(err))
}

func TestAssignRoles_RefusesDoubleAssignment(t *testing.T) {
	req := require.New(t)
	rng := rand.New(rand.NewSource(1))

	set := participants(4)
	req.NoError(AssignRoles(rng, set))

	err := AssignRoles(rng, set)
	req.Error(err)
	req.True(errors.IsInvariant(err))
}
