// Package setup is the first screen: the learner picks a native
// language, a target language and a game mode.
package setup

import (
	"errors"
	"fmt"
	"strings"

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

const (
	rowNative = iota
	rowTarget
	rowMode
	rowStart
	rowCount
)

var modes = []session.Mode{session.ModeVocabulary, session.ModeGrammar}

// SetupScreen selects the language pair and mode.
type SetupScreen struct {
	engine *session.Engine
	langs  []content.LanguageInfo

	native int
	target int
	mode   int
	row    int
	notice string
}

var _ screen.PhaseScreen = (*SetupScreen)(nil)

// New creates the setup screen. A previously configured pair on the
// engine wins over the given defaults.
func New(engine *session.Engine, native, target content.Language, mode session.Mode) *SetupScreen {
	st := engine.Snapshot()
	if st.Native.Valid() && st.Target.Valid() {
		native, target, mode = st.Native, st.Target, st.Mode
	}

	s := &SetupScreen{
		engine: engine,
		langs:  content.Languages(),
	}
	s.native = s.indexOf(native, 0)
	s.target = s.indexOf(target, 1%len(s.langs))
	if mode == session.ModeGrammar {
		s.mode = 1
	}
	return s
}

func (s *SetupScreen) indexOf(lang content.Language, fallback int) int {
	for i, info := range s.langs {
		if info.Code == lang {
			return i
		}
	}
	return fallback
}

// Native is the language the interface is currently shown in.
func (s *SetupScreen) Native() content.Language { return s.langs[s.native].Code }

// Target is the selected target language.
func (s *SetupScreen) Target() content.Language { return s.langs[s.target].Code }

// Mode is the selected game mode.
func (s *SetupScreen) Mode() session.Mode { return modes[s.mode] }

func (s *SetupScreen) Init() tea.Cmd { return nil }

func (s *SetupScreen) Title() string { return i18n.T(s.Native(), i18n.KeyWelcome) }

func (s *SetupScreen) Phase() session.Phase { return session.PhaseSetup }

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(kmsg, keys.Up):
		s.row = (s.row + rowCount - 1) % rowCount
	case key.Matches(kmsg, keys.Down):
		s.row = (s.row + 1) % rowCount
	case key.Matches(kmsg, keys.Left):
		s.cycle(-1)
	case key.Matches(kmsg, keys.Right):
		s.cycle(1)
	case key.Matches(kmsg, keys.Select):
		if s.row != rowStart {
			s.row++
			return s, nil
		}
		return s, s.start()
	}
	return s, nil
}

func (s *SetupScreen) cycle(delta int) {
	s.notice = ""
	n := len(s.langs)
	switch s.row {
	case rowNative:
		s.native = (s.native + delta + n) % n
	case rowTarget:
		s.target = (s.target + delta + n) % n
	case rowMode:
		s.mode = (s.mode + delta + len(modes)) % len(modes)
	}
}

func (s *SetupScreen) start() tea.Cmd {
	err := s.engine.Configure(s.Native(), s.Target(), s.Mode())
	switch {
	case err == nil:
		s.notice = ""
		return screen.Sync
	case errors.Is(err, session.ErrSameLanguage):
		s.notice = i18n.T(s.Native(), i18n.KeySameLanguage)
	default:
		s.notice = err.Error()
	}
	return nil
}

func (s *SetupScreen) View(width, height int) string {
	lang := s.Native()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(i18n.T(lang, i18n.KeySubWelcome)))
	b.WriteString("\n\n")

	b.WriteString(s.selector(rowNative, i18n.T(lang, i18n.KeySourceLabel), s.langLabel(s.native)))
	b.WriteString(s.selector(rowTarget, i18n.T(lang, i18n.KeyTargetLabel), s.langLabel(s.target)))
	b.WriteString(s.selector(rowMode, i18n.T(lang, i18n.KeyModeLabel), s.modeLabel()))
	b.WriteString("\n")
	b.WriteString(components.MenuButton(i18n.T(lang, i18n.KeyStart), s.row == rowStart, cw-8))

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(components.Notice(s.notice))
	}

	card := components.Card(b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *SetupScreen) langLabel(i int) string {
	info := s.langs[i]
	return info.Flag + " " + info.Name
}

func (s *SetupScreen) modeLabel() string {
	if s.Mode() == session.ModeGrammar {
		return i18n.T(s.Native(), i18n.KeyGrammarMode)
	}
	return i18n.T(s.Native(), i18n.KeyVocabularyMode)
}

func (s *SetupScreen) selector(row int, label, value string) string {
	valueStyle := theme.Unselected
	labelStyle := theme.Hint
	if row == s.row {
		valueStyle = theme.Selected
		labelStyle = theme.Body
		value = "◂ " + value + " ▸"
	}
	return fmt.Sprintf("%s\n%s\n\n", labelStyle.Render(label), valueStyle.Render(value))
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		keys.Hint(keys.Up, "Navigate"),
		keys.Hint(keys.Left, "Change"),
		keys.Hint(keys.Select, "Select"),
		keys.Hint(keys.Quit, "Quit"),
	}
}
