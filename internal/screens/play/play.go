// Package play runs the question loop of a level attempt.
package play

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexplanet/internal/content"
	"github.com/abhisek/lexplanet/internal/i18n"
	"github.com/abhisek/lexplanet/internal/screen"
	"github.com/abhisek/lexplanet/internal/session"
	"github.com/abhisek/lexplanet/internal/ui/components"
	"github.com/abhisek/lexplanet/internal/ui/keys"
	"github.com/abhisek/lexplanet/internal/ui/layout"
	"github.com/abhisek/lexplanet/internal/ui/theme"
)

// feedbackDoneMsg ends the feedback pause for the outcome with ticket.
type feedbackDoneMsg struct {
	ticket uint64
}

// PlayScreen shows the active question and grades answers through the
// engine. After each final answer it keeps the feedback on screen for
// the configured delay or until a key is pressed.
type PlayScreen struct {
	engine *session.Engine
	delay  time.Duration
	cursor int

	feedback *session.Outcome
	notice   string
}

var _ screen.PhaseScreen = (*PlayScreen)(nil)

// New creates the play screen for the engine's current attempt.
func New(engine *session.Engine) *PlayScreen {
	return &PlayScreen{
		engine: engine,
		delay:  engine.Config().FeedbackDelay,
	}
}

func (p *PlayScreen) Init() tea.Cmd { return nil }

func (p *PlayScreen) Title() string {
	st := p.engine.Snapshot()
	return fmt.Sprintf("%s %d", i18n.T(st.Native, i18n.KeyLevel), st.CurrentLevel)
}

func (p *PlayScreen) Phase() session.Phase { return session.PhasePlaying }

// InFeedback reports whether an answer's feedback is on screen.
func (p *PlayScreen) InFeedback() bool { return p.feedback != nil }

func (p *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackDoneMsg:
		if p.feedback == nil || msg.ticket != p.feedback.Ticket {
			return p, nil
		}
		return p, p.proceed()

	case tea.KeyPressMsg:
		if key.Matches(msg, keys.Back) {
			if err := p.engine.ReturnToMap(); err != nil {
				p.notice = err.Error()
				return p, nil
			}
			return p, screen.Sync
		}
		if p.feedback != nil {
			return p, p.proceed()
		}
		return p, p.handleKey(msg)
	}
	return p, nil
}

func (p *PlayScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	st := p.engine.Snapshot()
	if i, ok := keys.OptionIndex(msg.String()); ok {
		return p.submit(st, i)
	}

	switch {
	case key.Matches(msg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, keys.Down):
		if p.cursor < len(st.Options)-1 {
			p.cursor++
		}
	case key.Matches(msg, keys.Select):
		return p.submit(st, p.cursor)
	case key.Matches(msg, keys.Speak):
		p.engine.SpeakPrompt()
	case key.Matches(msg, keys.SpeakOption):
		p.engine.SpeakOption(p.cursor)
	case key.Matches(msg, keys.Clear):
		p.engine.ClearOrderingBuffer()
	}
	return nil
}

// submit offers the i-th option. Options already placed in a sequenced
// answer are skipped.
func (p *PlayScreen) submit(st session.State, i int) tea.Cmd {
	if i < 0 || i >= len(st.Options) || st.OptionUsed(i) {
		return nil
	}
	p.cursor = i
	out := p.engine.Submit(st.Options[i])
	if out == nil {
		return nil
	}
	p.feedback = out
	ticket := out.Ticket
	return tea.Tick(p.delay, func(time.Time) tea.Msg {
		return feedbackDoneMsg{ticket: ticket}
	})
}

// proceed leaves the feedback pause. The engine ignores a stale ticket,
// so a late timer after a skip does nothing.
func (p *PlayScreen) proceed() tea.Cmd {
	out := p.feedback
	p.feedback = nil
	p.cursor = 0
	if out.LevelOver {
		return screen.Sync
	}
	p.engine.Continue(out.Ticket)
	return nil
}

func (p *PlayScreen) View(width, height int) string {
	st := p.engine.Snapshot()
	if st.Active == nil {
		return ""
	}
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(components.NewProgressBar(i18n.T(st.Native, i18n.KeyProgress), st.AnsweredInLevel, st.Total(), cw).View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(i18n.Tf(st.Native, i18n.KeyCorrectCount, st.CorrectInLevel)))
	b.WriteString("\n\n")

	text, lang := session.PromptText(st.Active, st.Native, st.Target)
	b.WriteString(theme.Hint.Render(instruction(st)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.Text).
		Render(i18n.Capitalize(lang, text)))
	b.WriteString("\n\n")

	sequenced := session.Sequenced(st.Active)
	if sequenced {
		b.WriteString(components.Slots(st.Buffer, st.RequiredTokens))
		b.WriteString("\n\n")
	}

	used := make([]bool, len(st.Options))
	for i := range st.Options {
		used[i] = st.OptionUsed(i)
	}
	list := components.OptionList{
		Options: st.Options,
		Cursor:  p.cursor,
		Used:    used,
	}
	if st.Answer != nil && !sequenced {
		list.Answered = true
		list.Given = st.Answer.Given
		list.Expected = st.Answer.Expected
	}
	b.WriteString(list.View())

	if st.Answer != nil {
		b.WriteString("\n")
		b.WriteString(feedbackLine(st))
	}
	if p.notice != "" {
		b.WriteString("\n")
		b.WriteString(components.Notice(p.notice))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func instruction(st session.State) string {
	g, ok := st.Active.(session.GrammarQuestion)
	if !ok {
		return i18n.T(st.Native, i18n.KeyTranslateWord)
	}
	switch g.Exercise.Kind {
	case content.KindOrdering:
		return i18n.T(st.Native, i18n.KeyOrderingInstruction)
	case content.KindDialogueCompletion:
		return i18n.T(st.Native, i18n.KeyDialogueInstruction)
	}
	return i18n.T(st.Native, i18n.KeyChoiceInstruction)
}

func feedbackLine(st session.State) string {
	if st.Answer.Correct {
		return theme.Correct.Render("✓ " + i18n.T(st.Native, i18n.KeyCorrect))
	}
	expected := strings.ReplaceAll(st.Answer.Expected, content.AnswerSeparator, " ")
	return theme.Incorrect.Render("✗ "+i18n.T(st.Native, i18n.KeyIncorrect)) + "  " +
		theme.Body.Render(i18n.Tf(st.Native, i18n.KeyExpected, expected))
}

func (p *PlayScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "1-9", Description: "Answer"},
		keys.Hint(keys.Select, "Submit"),
		keys.Hint(keys.Speak, "Listen"),
		keys.Hint(keys.SpeakOption, "Hear option"),
	}
	if st := p.engine.Snapshot(); st.Active != nil && session.Sequenced(st.Active) {
		hints = append(hints, keys.Hint(keys.Clear, "Clear"))
	}
	return append(hints, keys.Hint(keys.Back, "Map"))
}
