package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"conclave/domain"
)

func cast(roles map[string]domain.Role, eliminated ...string) []*domain.Participant {
	dead := map[string]bool{}
	for _, id := range eliminated {
		dead[id] = true
	}
	var res []*domain.Participant
	for id, role := range roles {
		res = append(res, &domain.Participant{ID: id, Role: role, Eliminated: dead[id]})
	}
	return res
}

func TestEvaluateWin_LoyalsWinWhenNoConspiratorLeft(t *testing.T) {
	req := require.New(t)

	verdict := EvaluateWin(cast(map[string]domain.Role{
		"c1": domain.RoleConspirator,
		"l1": domain.RoleLoyal,
		"l2": domain.RoleLoyal,
		"l3": domain.RoleLoyal,
	}, "c1"))

	req.True(verdict.Decided)
	req.Equal(domain.RoleLoyal, verdict.Winner)
	req.ElementsMatch([]string{"l1", "l2", "l3"}, verdict.Winners)
}

func TestEvaluateWin_ConspiratorsWinAtParity(t *testing.T) {
	req := require.New(t)

	verdict := EvaluateWin(cast(map[string]domain.Role{
		"c1": domain.RoleConspirator,
		"c2": domain.RoleConspirator,
		"l1": domain.RoleLoyal,
		"l2": domain.RoleLoyal,
	}))

	req.True(verdict.Decided)
	req.Equal(domain.RoleConspirator, verdict.Winner)
	req.ElementsMatch([]string{"c1", "c2"}, verdict.Winners)
}

func TestEvaluateWin_PlayContinuesBelowParity(t *testing.T) {
	req := require.New(t)

	verdict := EvaluateWin(cast(map[string]domain.Role{
		"c1": domain.RoleConspirator,
		"l1": domain.RoleLoyal,
		"l2": domain.RoleLoyal,
		"l3": domain.RoleLoyal,
	}))

	req.False(verdict.Decided)
	req.Empty(verdict.Winners)
}

// Eliminated members of the winning faction still appear in Winners.
func TestEvaluateWin_WinnersIncludeEliminated(t *testing.T) {
	req := require.New(t)

	verdict := EvaluateWin(cast(map[string]domain.Role{
		"c1": domain.RoleConspirator,
		"c2": domain.RoleConspirator,
		"l1": domain.RoleLoyal,
	}, "c2"))

	req.True(verdict.Decided)
	req.Equal(domain.RoleConspirator, verdict.Winner)
	req.ElementsMatch([]string{"c1", "c2"}, verdict.Winners)
}
