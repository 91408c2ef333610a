package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, space themed on a dark background
var (
	Primary   = lipgloss.Color("#8B5CF6") // Nebula Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
	Star      = lipgloss.Color("#FACC15") // Yellow
)

// PlanetColors cycles through planet hues on the map.
var PlanetColors = []color.Color{
	lipgloss.Color("#F97316"),
	lipgloss.Color("#14B8A6"),
	lipgloss.Color("#8B5CF6"),
	lipgloss.Color("#EC4899"),
	lipgloss.Color("#22C55E"),
	lipgloss.Color("#3B82F6"),
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Disabled = lipgloss.NewStyle().
			Foreground(Border).
			Strikethrough(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Notice = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)
