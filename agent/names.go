package agent

import (
	"fmt"
	"math/rand"
)

var nameAdjectives = []string{
	"Quiet", "Restless", "Cunning", "Cheerful", "Wary",
	"Bold", "Sly", "Earnest", "Grim", "Jolly",
}

var nameNouns = []string{
	"Magpie", "Fox", "Badger", "Heron", "Otter",
	"Raven", "Lynx", "Mole", "Stoat", "Owl",
}

// Names generates n display names distinct from each other and from
// every name in taken. Collisions fall back to a numeric suffix so the
// function always terminates.
func Names(rng *rand.Rand, n int, taken []string) []string {
	used := make(map[string]struct{}, len(taken)+n)
	for _, t := range taken {
		used[t] = struct{}{}
	}

	var res []string
	for len(res) < n {
		name := fmt.Sprintf("%s%s",
			nameAdjectives[rng.Intn(len(nameAdjectives))],
			nameNouns[rng.Intn(len(nameNouns))])
		if _, clash := used[name]; clash {
			name = fmt.Sprintf("%s%d", name, rng.Intn(100))
			if _, clash := used[name]; clash {
				continue
			}
		}
		used[name] = struct{}{}
		res = append(res, name)
	}
	return res
}
