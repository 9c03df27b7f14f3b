package runtime

import "time"

// Timings collects every scheduling knob of a session. Tests inject
// millisecond values; production values come from configuration.
type Timings struct {
	// RoundDuration is the discussion window of a round.
	RoundDuration time.Duration
	// VoteDelay is the pause before autonomous participants cast their
	// votes once Voting opens.
	VoteDelay time.Duration
	// Cooldown is the pause between a tally and the next round.
	Cooldown time.Duration
	// CadenceInterval drives the repeating discourse timer.
	CadenceInterval time.Duration
	// SpeakProbability gates each agent on each cadence tick.
	SpeakProbability float64
	// NarrationTimeout bounds a single narration backend call.
	NarrationTimeout time.Duration
	// TranscriptWindow is how many recent messages the backend sees.
	TranscriptWindow int
}

func DefaultTimings() Timings {
	return Timings{
		RoundDuration:    90 * time.Second,
		VoteDelay:        3 * time.Second,
		Cooldown:         8 * time.Second,
		CadenceInterval:  10 * time.Second,
		SpeakProbability: 0.35,
		NarrationTimeout: 5 * time.Second,
		TranscriptWindow: 12,
	}
}
