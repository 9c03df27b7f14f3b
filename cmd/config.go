package main

import (
	"fmt"
	"time"

	"conclave/runtime"
)

type Config struct {
	LogLevel          string        `env:"LOG_LEVEL,default=info"`
	BufferSize        int           `env:"BUFFER_SIZE,default=256"`
	SinkTimeout       time.Duration `env:"SINK_TIMEOUT,default=2s"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	TelemetryInterval time.Duration `env:"TELEMETRY_INTERVAL,default=30s"`
	CharReplacement   string        `env:"CHARACTER_REPLACEMENT,default=*"`

	RoundDuration     time.Duration `env:"ROUND_DURATION,default=45s"`
	AutoVoteDelay     time.Duration `env:"AUTO_VOTE_DELAY,default=3s"`
	RoundCooldown     time.Duration `env:"ROUND_COOLDOWN,default=8s"`
	DiscourseInterval time.Duration `env:"DISCOURSE_INTERVAL,default=10s"`
	SpeakProbability  float64       `env:"SPEAK_PROBABILITY,default=0.35"`
	NarrationTimeout  time.Duration `env:"NARRATION_TIMEOUT,default=5s"`
	TranscriptWindow  int           `env:"TRANSCRIPT_WINDOW,default=12"`

	OpenAIKey   string `env:"OPENAI_API_KEY"`
	OpenAIModel string `env:"OPENAI_MODEL,default=gpt-4o-mini"`
}

func (c Config) Timings() runtime.Timings {
	return runtime.Timings{
		RoundDuration:    c.RoundDuration,
		VoteDelay:        c.AutoVoteDelay,
		Cooldown:         c.RoundCooldown,
		CadenceInterval:  c.DiscourseInterval,
		SpeakProbability: c.SpeakProbability,
		NarrationTimeout: c.NarrationTimeout,
		TranscriptWindow: c.TranscriptWindow,
	}
}

func characterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf("CHARACTER_REPLACEMENT must be a single character, got %q", str)
	}
	return r[0], nil
}
