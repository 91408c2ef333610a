package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexplanet/internal/session"
	"github.com/abhisek/lexplanet/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// PhaseScreen is implemented by screens that render one engine phase.
type PhaseScreen interface {
	Screen
	Phase() session.Phase
}

// SyncMsg asks the app to show the screen matching the engine's phase.
// Screens send it after driving the engine.
type SyncMsg struct{}

// Sync is a tea.Cmd producing SyncMsg.
func Sync() tea.Msg { return SyncMsg{} }
