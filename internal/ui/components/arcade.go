package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexplanet/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for all panels so
// they visually align.
func ContentWidth(frameWidth int) int {
	// Leave room for the frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// MenuButton renders a full-width button, highlighted when selected.
func MenuButton(label string, selected bool, width int) string {
	if selected {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Star).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Star).
			Padding(0, 1).
			Render("▸ " + label)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(label)
}

// Notice renders a one-line warning such as a locked planet message.
func Notice(msg string) string {
	if msg == "" {
		return ""
	}
	return theme.Notice.Render("! " + msg)
}
