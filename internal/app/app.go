package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexplanet/internal/content"
	"github.com/abhisek/lexplanet/internal/i18n"
	"github.com/abhisek/lexplanet/internal/router"
	"github.com/abhisek/lexplanet/internal/screen"
	"github.com/abhisek/lexplanet/internal/screens/lesson"
	"github.com/abhisek/lexplanet/internal/screens/outcome"
	"github.com/abhisek/lexplanet/internal/screens/planetmap"
	"github.com/abhisek/lexplanet/internal/screens/play"
	"github.com/abhisek/lexplanet/internal/screens/setup"
	"github.com/abhisek/lexplanet/internal/screens/welcome"
	"github.com/abhisek/lexplanet/internal/session"
	"github.com/abhisek/lexplanet/internal/ui/layout"
)

// Options wires the game into the UI.
type Options struct {
	Engine  *session.Engine
	Briefer lesson.Briefer
	Titles  planetmap.Titles

	// Native, Target and Mode preselect the setup screen.
	Native content.Language
	Target content.Language
	Mode   session.Mode

	// SkipSplash opens straight on the setup screen or, when the engine
	// is already configured, the map.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
}

// New creates the root model.
func New(opts Options) AppModel {
	m := AppModel{opts: opts}

	var first screen.Screen
	switch {
	case opts.Engine.Snapshot().Phase != session.PhaseSetup:
		first = m.screenFor(opts.Engine.Snapshot().Phase)
	case opts.SkipSplash:
		first = m.screenFor(session.PhaseSetup)
	default:
		native := opts.Native
		if !native.Valid() {
			native = content.English
		}
		first = welcome.New(i18n.T(native, i18n.KeySubWelcome), func() screen.Screen {
			return m.screenFor(session.PhaseSetup)
		})
	}
	m.router = router.New(first)
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

// screenFor builds the screen rendering phase.
func (m AppModel) screenFor(phase session.Phase) screen.Screen {
	e := m.opts.Engine
	switch phase {
	case session.PhaseMap:
		return planetmap.New(e, m.opts.Titles)
	case session.PhaseLevelBriefing:
		return lesson.New(e, m.opts.Briefer)
	case session.PhasePlaying:
		return play.New(e)
	case session.PhaseLevelPassed, session.PhaseLevelFailed:
		return outcome.New(e)
	default:
		return setup.New(e, m.opts.Native, m.opts.Target, m.opts.Mode)
	}
}

// sync makes the active screen match the engine phase. Setup and the
// map are roots; level screens stack one deep above the map.
func (m AppModel) sync() tea.Cmd {
	phase := m.opts.Engine.Snapshot().Phase
	if ps, ok := m.router.Active().(screen.PhaseScreen); ok && ps.Phase() == phase {
		return nil
	}

	s := m.screenFor(phase)
	switch {
	case phase == session.PhaseSetup || phase == session.PhaseMap:
		return m.router.Reset(s)
	case m.router.Depth() > 1:
		return m.router.Replace(s)
	default:
		return m.router.Push(s)
	}
}

// Active returns the screen on top of the stack.
func (m AppModel) Active() screen.Screen { return m.router.Active() }

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case screen.SyncMsg:
		return m, m.sync()
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the frame: header, active screen and footer.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	st := m.opts.Engine.Snapshot()
	header := layout.RenderHeader(title, st.Score, st.Streak, st.Phase != session.PhaseSetup, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
