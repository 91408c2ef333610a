// Package lesson shows the grammar briefing before a level starts.
package lesson

import (
	"context"
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexplanet/internal/briefing"
	"github.com/abhisek/lexplanet/internal/content"
	"github.com/abhisek/lexplanet/internal/i18n"
	"github.com/abhisek/lexplanet/internal/screen"
	"github.com/abhisek/lexplanet/internal/session"
	"github.com/abhisek/lexplanet/internal/ui/components"
	"github.com/abhisek/lexplanet/internal/ui/keys"
	"github.com/abhisek/lexplanet/internal/ui/layout"
	"github.com/abhisek/lexplanet/internal/ui/theme"
)

// loadTimeout bounds briefing resolution, including generation.
const loadTimeout = 45 * time.Second

// Briefer resolves briefings. *briefing.Service satisfies it.
type Briefer interface {
	Get(ctx context.Context, native, target content.Language, level int) *briefing.Briefing
}

type loadedMsg struct {
	briefing *briefing.Briefing
}

// LessonScreen presents the briefing and starts the lesson on Enter.
type LessonScreen struct {
	engine  *session.Engine
	briefer Briefer
	spin    spinner.Model

	briefing *briefing.Briefing
	notice   string
}

var _ screen.PhaseScreen = (*LessonScreen)(nil)

// New creates the briefing screen for the engine's current level.
func New(engine *session.Engine, briefer Briefer) *LessonScreen {
	return &LessonScreen{
		engine:  engine,
		briefer: briefer,
		spin: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
	}
}

func (l *LessonScreen) Init() tea.Cmd {
	st := l.engine.Snapshot()
	briefer := l.briefer
	load := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		return loadedMsg{briefing: briefer.Get(ctx, st.Native, st.Target, st.CurrentLevel)}
	}
	return tea.Batch(l.spin.Tick, load)
}

func (l *LessonScreen) Title() string {
	return i18n.T(l.engine.Snapshot().Native, i18n.KeyLessonTitle)
}

func (l *LessonScreen) Phase() session.Phase { return session.PhaseLevelBriefing }

// Loaded reports whether the briefing has arrived.
func (l *LessonScreen) Loaded() bool { return l.briefing != nil }

func (l *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		l.briefing = msg.briefing
		return l, nil

	case spinner.TickMsg:
		if l.Loaded() {
			return l, nil
		}
		var cmd tea.Cmd
		l.spin, cmd = l.spin.Update(msg)
		return l, cmd

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keys.Back):
			if err := l.engine.ReturnToMap(); err != nil {
				l.notice = err.Error()
				return l, nil
			}
			return l, screen.Sync
		case key.Matches(msg, keys.Speak):
			l.speakExample()
		case key.Matches(msg, keys.Select):
			if !l.Loaded() {
				return l, nil
			}
			if err := l.engine.StartLesson(); err != nil {
				l.notice = err.Error()
				return l, nil
			}
			return l, screen.Sync
		}
	}
	return l, nil
}

// speakExample reads the first example aloud in the target language.
func (l *LessonScreen) speakExample() {
	if l.briefing == nil || len(l.briefing.Examples) == 0 {
		return
	}
	l.engine.Speak(l.briefing.Examples[0].Content, l.briefing.Target)
}

func (l *LessonScreen) View(width, height int) string {
	st := l.engine.Snapshot()
	lang := st.Native
	cw := components.ContentWidth(width)

	if !l.Loaded() {
		msg := l.spin.View() + " " + theme.Hint.Render(i18n.T(lang, i18n.KeyLoadingBriefing))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	b := l.briefing
	var sb strings.Builder
	sb.WriteString(theme.Hint.Render(i18n.T(lang, i18n.KeyLevel) + " " + strconv.Itoa(b.Level)))
	sb.WriteString("\n")
	sb.WriteString(theme.Title.Render(b.Title))
	sb.WriteString("\n\n")
	sb.WriteString(theme.Body.Width(cw - 8).Render(b.Explanation))
	sb.WriteString("\n")

	for _, ex := range b.Examples {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(ex.Content))
		sb.WriteString("\n")
		sb.WriteString(theme.Hint.Render(ex.Label))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(components.MenuButton(i18n.T(lang, i18n.KeyStartLesson), true, cw-8))
	if l.notice != "" {
		sb.WriteString("\n")
		sb.WriteString(components.Notice(l.notice))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(sb.String(), cw))
}

func (l *LessonScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		keys.Hint(keys.Select, "Start"),
		keys.Hint(keys.Speak, "Hear example"),
		keys.Hint(keys.Back, "Map"),
		keys.Hint(keys.Quit, "Quit"),
	}
}
