package moderation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const replacementChar = '*'

// The dictionary uses specific words to avoid partial collisions
// (e.g. "he" inside "The").
func TestModerator_Censor(t *testing.T) {
	req := require.New(t)
	dictionary := []string{"badger", "snake", "mushroom"}
	mod, err := NewModerator(dictionary, replacementChar)
	req.NoError(err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Simple word and space preservation",
			input:    "The badger is here",
			expected: "The ****** is here",
		},
		{
			name:     "Multiple occurrences",
			input:    "badger badger badger",
			expected: "****** ****** ******",
		},
		{
			name:     "Leet speak and internal punctuation",
			input:    "Look at B.4.d.g.e.r !",
			expected: "Look at *********** !",
		},
		{
			name:     "Uppercase and extreme noise",
			input:    "S-N-A-K-E is here",
			expected: "********* is here",
		},
		{
			name:     "Word adjacent to trailing punctuation",
			input:    "I saw a badger!",
			expected: "I saw a ******!",
		},
		{
			name:     "Nothing to censor",
			input:    "A perfectly calm evening",
			expected: "A perfectly calm evening",
		},
		{
			name:     "Empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.expected, mod.Censor(tt.input), "test=%s", tt.name)
		})
	}
}

func TestModerator_CornerCases(t *testing.T) {
	req := require.New(t)

	// Noise-only and empty entries must not break the automaton.
	dictionary := []string{"...", ",,,", "", "badger"}
	mod, err := NewModerator(dictionary, replacementChar)
	req.NoError(err)

	req.Equal("The ****** is safe", mod.Censor("The badger is safe"))
	req.Equal("Hello ...", mod.Censor("Hello ..."))
}

func TestModerator_Default(t *testing.T) {
	req := require.New(t)

	mod, err := Default(replacementChar)
	req.NoError(err)

	req.Equal("you *****", mod.Censor("you idiot"))
	req.Equal("nothing wrong here", mod.Censor("nothing wrong here"))
}
