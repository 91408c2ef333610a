package session

import (
	"fmt"
	"strings"
)

// Phase is where the learner is in the game.
type Phase int

const (
	PhaseSetup         Phase = iota // Choosing languages and mode
	PhaseMap                        // Picking a planet
	PhaseLevelBriefing              // Reading the grammar briefing
	PhasePlaying                    // Answering questions
	PhaseLevelPassed                // Attempt finished at or above the threshold
	PhaseLevelFailed                // Attempt finished below the threshold
)

var phaseNames = [...]string{"setup", "map", "briefing", "playing", "passed", "failed"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Mode selects which content the level pool is built from.
type Mode int

const (
	ModeVocabulary Mode = iota
	ModeGrammar
)

func (m Mode) String() string {
	if m == ModeGrammar {
		return "grammar"
	}
	return "vocabulary"
}

// ParseMode accepts "vocabulary"/"vocab" or "grammar", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vocabulary", "vocab", "v":
		return ModeVocabulary, nil
	case "grammar", "g":
		return ModeGrammar, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}
