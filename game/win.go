package game

import "conclave/domain"

// Verdict is the terminal evaluation of a session, or its absence.
type Verdict struct {
	Decided bool
	Winner  domain.Role
	Winners []string
}

// EvaluateWin runs after every tally:
// conspirators alive and at or above parity with loyals -> conspirators
// win; no conspirator alive -> loyals win; otherwise play continues.
// Winners include eliminated members of the winning faction, which
// underlies the end-of-game full reveal.
func EvaluateWin(participants []*domain.Participant) Verdict {
	var livingConspirators, livingLoyals int
	for _, p := range participants {
		if p.Eliminated {
			continue
		}
		switch p.Role {
		case domain.RoleConspirator:
			livingConspirators++
		case domain.RoleLoyal:
			livingLoyals++
		}
	}

	var winner domain.Role
	switch {
	case livingConspirators > 0 && livingConspirators >= livingLoyals:
		winner = domain.RoleConspirator
	case livingConspirators == 0:
		winner = domain.RoleLoyal
	default:
		return Verdict{}
	}

	verdict := Verdict{Decided: true, Winner: winner}
	for _, p := range participants {
		if p.Role == winner {
			verdict.Winners = append(verdict.Winners, p.ID)
		}
	}
	return verdict
}
