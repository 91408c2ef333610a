package briefing

import "time"

// Config holds briefing generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds one generation request.
	Timeout time.Duration

	// SampleExercises is how many exercise prompts are shown to the
	// model as context.
	SampleExercises int
}

// DefaultConfig returns sensible defaults for briefing generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:       700,
		Temperature:     0.4,
		Timeout:         30 * time.Second,
		SampleExercises: 4,
	}
}
