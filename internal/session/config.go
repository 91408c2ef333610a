package session

import (
	"time"

	"github.com/abhisek/lexplanet/internal/content"
)

// Config centralises the tunables of the progression engine.
type Config struct {
	// PassThreshold is the minimum correct/answered ratio to pass a level.
	PassThreshold float64

	// MaxLevel is the number of planets on the map.
	MaxLevel int

	// PointsPerCorrect is added to the score for each correct answer.
	PointsPerCorrect int

	// WrongPenalty is subtracted for each wrong answer. The score never
	// drops below zero.
	WrongPenalty int

	// QuestionsPerLevel caps the pool size. Zero serves the whole pool.
	QuestionsPerLevel int

	// DialogueSlots is the token count for dialogue exercises whose
	// prompt has no numbered blanks.
	DialogueSlots int

	// FeedbackDelay is how long answer feedback stays on screen before
	// the next question. The engine only reports it; callers schedule.
	FeedbackDelay time.Duration
}

// DefaultConfig returns the standard game rules.
func DefaultConfig() Config {
	return Config{
		PassThreshold:     0.8,
		MaxLevel:          20,
		PointsPerCorrect:  10,
		WrongPenalty:      0,
		QuestionsPerLevel: 0,
		DialogueSlots:     content.DefaultDialogueSlots,
		FeedbackDelay:     1200 * time.Millisecond,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.PassThreshold <= 0 || c.PassThreshold > 1 {
		c.PassThreshold = d.PassThreshold
	}
	if c.MaxLevel < 1 {
		c.MaxLevel = d.MaxLevel
	}
	if c.PointsPerCorrect <= 0 {
		c.PointsPerCorrect = d.PointsPerCorrect
	}
	if c.WrongPenalty < 0 {
		c.WrongPenalty = 0
	}
	if c.QuestionsPerLevel < 0 {
		c.QuestionsPerLevel = 0
	}
	if c.DialogueSlots < 1 {
		c.DialogueSlots = d.DialogueSlots
	}
	if c.FeedbackDelay <= 0 {
		c.FeedbackDelay = d.FeedbackDelay
	}
	return c
}
