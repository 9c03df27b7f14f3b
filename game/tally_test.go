package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTally_StrictMajorityEliminates(t *testing.T) {
	req := require.New(t)

	out := Tally(map[string]string{
		"v1": "alice",
		"v2": "alice",
		"v3": "bob",
	})

	req.True(out.Eliminated)
	req.Equal("alice", out.EliminatedID)
	req.Equal(map[string]int{"alice": 2, "bob": 1}, out.Counts)
}

func TestTally_TieEliminatesNobody(t *testing.T) {
	req := require.New(t)

	out := Tally(map[string]string{
		"v1": "alice",
		"v2": "alice",
		"v3": "bob",
		"v4": "bob",
	})

	req.False(out.Eliminated)
	req.Empty(out.EliminatedID)
	req.Equal(2, out.Counts["alice"])
	req.Equal(2, out.Counts["bob"])
}

func TestTally_NoVotesEliminatesNobody(t *testing.T) {
	req := require.New(t)

	out := Tally(map[string]string{})

	req.False(out.Eliminated)
	req.Empty(out.Counts)
}

func TestTally_SingleVoteWins(t *testing.T) {
	req := require.New(t)

	out := Tally(map[string]string{"v1": "bob"})

	req.True(out.Eliminated)
	req.Equal("bob", out.EliminatedID)
}
