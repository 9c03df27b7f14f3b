package game

// Outcome is the result of reducing a round's votes.
type Outcome struct {
	Eliminated   bool
	EliminatedID string
	Counts       map[string]int
}

// Tally counts votes per target and eliminates the target with the
// strictly highest count. A tie for the maximum, or a zero maximum,
// eliminates nobody; that is an outcome, not an error.
func Tally(votes map[string]string) Outcome {
	counts := make(map[string]int, len(votes))
	for _, target := range votes {
		counts[target]++
	}

	max := 0
	var leaders []string
	for target, n := range counts {
		switch {
		case n > max:
			max = n
			leaders = []string{target}
		case n == max:
			leaders = append(leaders, target)
		}
	}

	out := Outcome{Counts: counts}
	if max == 0 || len(leaders) != 1 {
		return out
	}
	out.Eliminated = true
	out.EliminatedID = leaders[0]
	return out
}
