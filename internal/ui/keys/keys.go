// Package keys holds the key bindings shared by every screen.
package keys

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/lexplanet/internal/ui/layout"
)

var (
	Up = key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "up"),
	)
	Down = key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "down"),
	)
	Left = key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "left"),
	)
	Right = key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "right"),
	)
	Select = key.NewBinding(
		key.WithKeys("enter", "space"),
		key.WithHelp("Enter", "select"),
	)
	Back = key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	)
	Quit = key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("Ctrl+C", "quit"),
	)
	Speak = key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "speak"),
	)
	SpeakOption = key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "speak option"),
	)
	Clear = key.NewBinding(
		key.WithKeys("backspace", "c"),
		key.WithHelp("⌫", "clear"),
	)
	Retry = key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry"),
	)
	Next = key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next"),
	)
)

// OptionIndex maps the digit keys 1-9 to a zero-based option index.
func OptionIndex(k string) (int, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '9' {
		return 0, false
	}
	return int(k[0] - '1'), true
}

// Hint converts a binding's help text to a footer hint, replacing the
// description when desc is not empty.
func Hint(b key.Binding, desc string) layout.KeyHint {
	h := b.Help()
	if desc == "" {
		desc = h.Desc
	}
	return layout.KeyHint{Key: h.Key, Description: desc}
}
