package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexplanet/internal/router"
	"github.com/abhisek/lexplanet/internal/screen"
	"github.com/abhisek/lexplanet/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const planetArt = `      .-""""-.
    .'  ○     '.
 --/------------\--
   \     ◦      /
    '.________.'`

// twinkle frames cycle around the planet
var twinkleFrames = []string{"★", "✦", "·"}

type tickMsg time.Time

// WelcomeScreen shows a splash animation, then hands over to the screen
// built by next. Any key skips the animation.
type WelcomeScreen struct {
	next         func() screen.Screen
	tagline      string
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that transitions to the screen produced by next.
func New(tagline string, next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		next:    next,
		tagline: tagline,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	s := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: s}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Secondary).Render(planetArt)

	if w.elapsed >= phase1End {
		frame := twinkleFrames[w.tickCount%len(twinkleFrames)]
		star := lipgloss.NewStyle().Foreground(theme.Star).Render(frame)
		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[1] = star + "  " + lines[1]
		}
		if len(lines) > 3 {
			lines[3] = lines[3] + "    " + star
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(w.tagline))
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
