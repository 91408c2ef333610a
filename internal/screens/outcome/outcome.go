// Package outcome shows the result of a finished level attempt.
package outcome

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexplanet/internal/i18n"
	"github.com/abhisek/lexplanet/internal/screen"
	"github.com/abhisek/lexplanet/internal/session"
	"github.com/abhisek/lexplanet/internal/ui/components"
	"github.com/abhisek/lexplanet/internal/ui/keys"
	"github.com/abhisek/lexplanet/internal/ui/layout"
	"github.com/abhisek/lexplanet/internal/ui/theme"
)

// OutcomeScreen congratulates on a pass or offers a retry on a fail.
type OutcomeScreen struct {
	engine *session.Engine
	result session.State
	menu   components.Menu
	notice string
}

var _ screen.PhaseScreen = (*OutcomeScreen)(nil)

// New captures the finished attempt and builds the action menu.
func New(engine *session.Engine) *OutcomeScreen {
	o := &OutcomeScreen{
		engine: engine,
		result: engine.Snapshot(),
	}
	lang := o.result.Native

	var items []components.MenuItem
	if o.Passed() {
		items = append(items, components.MenuItem{
			Label:    i18n.T(lang, i18n.KeyNextPlanet),
			Action:   o.next,
			Disabled: o.result.CurrentLevel >= o.result.MaxLevel,
		})
	}
	items = append(items,
		components.MenuItem{Label: i18n.T(lang, i18n.KeyRetry), Action: o.retry},
		components.MenuItem{Label: i18n.T(lang, i18n.KeyBackToMap), Action: o.toMap},
	)
	o.menu = components.NewMenu(items)
	return o
}

// Passed reports whether the attempt met the threshold.
func (o *OutcomeScreen) Passed() bool { return o.result.Phase == session.PhaseLevelPassed }

func (o *OutcomeScreen) Init() tea.Cmd { return nil }

func (o *OutcomeScreen) Title() string {
	return fmt.Sprintf("%s %d", i18n.T(o.result.Native, i18n.KeyLevel), o.result.CurrentLevel)
}

func (o *OutcomeScreen) Phase() session.Phase { return o.result.Phase }

func (o *OutcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return o, nil
	}
	switch {
	case key.Matches(kmsg, keys.Back):
		return o, o.toMap()
	case key.Matches(kmsg, keys.Retry):
		return o, o.retry()
	case key.Matches(kmsg, keys.Next):
		if !o.Passed() {
			return o, nil
		}
		return o, o.next()
	}

	var cmd tea.Cmd
	o.menu, cmd = o.menu.Update(msg)
	return o, cmd
}

func (o *OutcomeScreen) next() tea.Cmd {
	return o.do(o.engine.AdvanceToNextLevel)
}

func (o *OutcomeScreen) retry() tea.Cmd {
	return o.do(o.engine.RetryLevel)
}

func (o *OutcomeScreen) toMap() tea.Cmd {
	return o.do(o.engine.ReturnToMap)
}

func (o *OutcomeScreen) do(intent func() error) tea.Cmd {
	err := intent()
	switch {
	case err == nil:
		return screen.Sync
	case errors.Is(err, session.ErrNoContent):
		var nc *session.NoContentError
		if errors.As(err, &nc) {
			o.notice = i18n.Tf(o.result.Native, i18n.KeyNoContent, nc.Level)
			return nil
		}
	}
	o.notice = err.Error()
	return nil
}

// required is the fewest correct answers that pass total questions.
func required(threshold float64, total int) int {
	return int(math.Ceil(threshold*float64(total) - 1e-9))
}

func (o *OutcomeScreen) View(width, height int) string {
	st := o.result
	lang := st.Native
	cw := components.ContentWidth(width)

	var b strings.Builder
	if o.Passed() {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Star).Bold(true).Render("★ " + i18n.T(lang, i18n.KeyPromoted) + " ★"))
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render(i18n.T(lang, i18n.KeyLevelClear)))
	} else {
		b.WriteString(theme.Incorrect.Render(i18n.T(lang, i18n.KeyFailed)))
		b.WriteString("\n")
		need := required(o.engine.Config().PassThreshold, st.AnsweredInLevel)
		b.WriteString(theme.Hint.Render(i18n.Tf(lang, i18n.KeyFailedSub, need, st.AnsweredInLevel)))
	}
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Render(fmt.Sprintf("%d/%d  ·  %d%%",
		st.CorrectInLevel, st.AnsweredInLevel, int(math.Round(st.Accuracy()*100)))))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%s %d  ·  %s %d",
		i18n.T(lang, i18n.KeyScore), st.Score, i18n.T(lang, i18n.KeyStreak), st.BestStreak)))
	b.WriteString("\n\n")

	if o.Passed() && st.CurrentLevel >= st.MaxLevel {
		b.WriteString(theme.Notice.Render(i18n.T(lang, i18n.KeyLastPlanet)))
		b.WriteString("\n\n")
	}

	b.WriteString(o.menu.View(cw - 8))
	if o.notice != "" {
		b.WriteString(components.Notice(o.notice))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(b.String(), cw))
}

func (o *OutcomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{keys.Hint(keys.Select, "Select")}
	if o.Passed() && o.result.CurrentLevel < o.result.MaxLevel {
		hints = append(hints, keys.Hint(keys.Next, "Next planet"))
	}
	return append(hints,
		keys.Hint(keys.Retry, "Retry"),
		keys.Hint(keys.Back, "Map"),
	)
}
