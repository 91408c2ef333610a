package session

import (
	"slices"

	"github.com/abhisek/lexplanet/internal/content"
)

// Answer is the finalised submission for the active question.
type Answer struct {
	Given    string
	Expected string
	Correct  bool
}

// State is the complete session record. The engine owns the live copy;
// callers only ever see snapshots.
type State struct {
	// Phase is the current UI phase.
	Phase Phase

	// Native and Target are the chosen language pair (Native != Target).
	Native content.Language
	Target content.Language

	// Mode selects vocabulary words or grammar exercises.
	Mode Mode

	// Score accumulates across levels and is persisted.
	Score int

	// CurrentLevel is the planet being played or last selected.
	CurrentLevel int

	// MaxUnlockedLevel is the highest selectable planet. Persisted.
	MaxUnlockedLevel int

	// MaxLevel is the number of planets on the map.
	MaxLevel int

	// Pool is the shuffled question sequence for the current attempt.
	Pool []Question

	// Cursor is the index of the next question to serve from Pool.
	Cursor int

	// Active is the question on screen, nil outside an attempt.
	Active Question

	// Options are the shuffled candidate answers for Active.
	Options []string

	// Answer is set once per question when the submission is final.
	Answer *Answer

	// Buffer accumulates tokens for ordering and dialogue questions.
	Buffer []string

	// RequiredTokens is how many tokens finalise a sequenced answer
	// (1 for choice questions).
	RequiredTokens int

	// CorrectInLevel and AnsweredInLevel count this attempt's answers.
	CorrectInLevel  int
	AnsweredInLevel int

	// Streak counts consecutive correct answers; BestStreak is its
	// high-water mark for the session.
	Streak     int
	BestStreak int

	// AttemptID identifies the current level attempt in event logs.
	AttemptID string

	// Generation increments whenever the active question or phase is
	// superseded. Delayed callbacks carry it as a ticket.
	Generation uint64
}

// Total is the number of questions in the current attempt.
func (s State) Total() int { return len(s.Pool) }

// Finalised reports whether the active question has been answered.
func (s State) Finalised() bool { return s.Answer != nil }

// Accuracy is CorrectInLevel/AnsweredInLevel, or 0 before any answer.
func (s State) Accuracy() float64 {
	if s.AnsweredInLevel == 0 {
		return 0
	}
	return float64(s.CorrectInLevel) / float64(s.AnsweredInLevel)
}

// UsedCount reports how many times token appears in the buffer.
func (s State) UsedCount(token string) int {
	n := 0
	for _, t := range s.Buffer {
		if t == token {
			n++
		}
	}
	return n
}

// OptionUsed reports whether the i-th option has already been consumed
// by the buffer. Duplicated tokens are consumed left to right.
func (s State) OptionUsed(i int) bool {
	if i < 0 || i >= len(s.Options) {
		return false
	}
	token := s.Options[i]
	before := 0
	for _, o := range s.Options[:i] {
		if o == token {
			before++
		}
	}
	return s.UsedCount(token) > before
}

func (s State) clone() State {
	out := s
	out.Pool = slices.Clone(s.Pool)
	out.Options = slices.Clone(s.Options)
	out.Buffer = slices.Clone(s.Buffer)
	if s.Answer != nil {
		a := *s.Answer
		out.Answer = &a
	}
	return out
}
