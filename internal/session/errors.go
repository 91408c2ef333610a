package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/lexplanet/internal/content"
)

var (
	// ErrLevelLocked is returned when selecting a level beyond the
	// highest unlocked one.
	ErrLevelLocked = errors.New("level is locked")

	// ErrInvalidTransition is returned for intents the current phase
	// does not accept. State is left unchanged.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrSameLanguage is returned when native and target languages match.
	ErrSameLanguage = errors.New("native and target language must differ")

	// ErrNoContent matches every *NoContentError via errors.Is.
	ErrNoContent = errors.New("no content for level")
)

// NoContentError reports a level with no questions for the chosen mode
// and target language.
type NoContentError struct {
	Level    int
	Mode     Mode
	Language content.Language
}

func (e *NoContentError) Error() string {
	if e.Mode == ModeGrammar {
		return fmt.Sprintf("no %s exercises for level %d in %s", e.Mode, e.Level, e.Language.Info().Name)
	}
	return fmt.Sprintf("no %s words for level %d", e.Mode, e.Level)
}

func (e *NoContentError) Is(target error) bool {
	return target == ErrNoContent
}
