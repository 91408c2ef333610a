// Package planetmap draws the level map. Each level is a planet laid
// out in a winding path; planets above the unlocked level are locked.
package planetmap

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

// columns is how many planets sit on one row of the path.
const columns = 5

// cellWidth is the rendered width of one planet including padding.
const cellWidth = 10

// Titles supplies optional planet names for vocabulary levels.
// *content.Catalog satisfies it.
type Titles interface {
	VocabTitle(level int) (content.Localized, bool)
}

// MapScreen lets the learner pick an unlocked planet.
type MapScreen struct {
	engine *session.Engine
	titles Titles
	cursor int
	notice string
}

var _ screen.PhaseScreen = (*MapScreen)(nil)

// New creates the map with the cursor on the current level. titles may be nil.
func New(engine *session.Engine, titles Titles) *MapScreen {
	st := engine.Snapshot()
	return &MapScreen{
		engine: engine,
		titles: titles,
		cursor: max(1, min(st.CurrentLevel, st.MaxLevel)),
	}
}

// Cursor is the highlighted level.
func (m *MapScreen) Cursor() int { return m.cursor }

func (m *MapScreen) Init() tea.Cmd { return nil }

func (m *MapScreen) Title() string {
	return i18n.T(m.engine.Snapshot().Native, i18n.KeyMap)
}

func (m *MapScreen) Phase() session.Phase { return session.PhaseMap }

func (m *MapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	st := m.engine.Snapshot()
	switch {
	case key.Matches(kmsg, keys.Back):
		if err := m.engine.GoToSetup(); err != nil {
			m.notice = err.Error()
			return m, nil
		}
		return m, screen.Sync
	case key.Matches(kmsg, keys.Left):
		m.move(st.MaxLevel, -1, 0)
	case key.Matches(kmsg, keys.Right):
		m.move(st.MaxLevel, 1, 0)
	case key.Matches(kmsg, keys.Up):
		m.move(st.MaxLevel, 0, -1)
	case key.Matches(kmsg, keys.Down):
		m.move(st.MaxLevel, 0, 1)
	case key.Matches(kmsg, keys.Select):
		return m, m.launch(st)
	}
	return m, nil
}

// move shifts the cursor visually: dx along a row, dy across rows.
func (m *MapScreen) move(maxLevel, dx, dy int) {
	m.notice = ""
	row, col := position(m.cursor)
	col += dx
	row += dy
	if col < 0 || col >= columns || row < 0 {
		return
	}
	if l := levelAt(row, col); l >= 1 && l <= maxLevel {
		m.cursor = l
	}
}

func (m *MapScreen) launch(st session.State) tea.Cmd {
	err := m.engine.SelectLevel(m.cursor)
	switch {
	case err == nil:
		m.notice = ""
		return screen.Sync
	case errors.Is(err, session.ErrLevelLocked):
		m.notice = i18n.Tf(st.Native, i18n.KeyLocked, m.cursor)
	case errors.Is(err, session.ErrNoContent):
		m.notice = i18n.Tf(st.Native, i18n.KeyNoContent, m.cursor)
	default:
		m.notice = err.Error()
	}
	return nil
}

// position maps a level to its row and column on the winding path.
// Even rows run left to right, odd rows right to left.
func position(level int) (row, col int) {
	i := level - 1
	row, col = i/columns, i%columns
	if row%2 == 1 {
		col = columns - 1 - col
	}
	return row, col
}

func levelAt(row, col int) int {
	if row%2 == 1 {
		col = columns - 1 - col
	}
	return row*columns + col + 1
}

func (m *MapScreen) View(width, height int) string {
	st := m.engine.Snapshot()
	lang := st.Native

	var b strings.Builder

	pair := fmt.Sprintf("%s %s  →  %s %s",
		st.Native.Info().Flag, st.Native.Info().Name,
		st.Target.Info().Flag, st.Target.Info().Name)
	b.WriteString(theme.Subtitle.Render(pair))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(i18n.Tf(lang, i18n.KeyUnlocked, st.MaxUnlockedLevel, st.MaxLevel)))
	b.WriteString("\n\n")

	rows := (st.MaxLevel + columns - 1) / columns
	for row := 0; row < rows; row++ {
		cells := make([]string, columns)
		for col := 0; col < columns; col++ {
			l := levelAt(row, col)
			if l > st.MaxLevel {
				cells[col] = strings.Repeat(" ", cellWidth)
				continue
			}
			cells[col] = m.planet(l, st)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
		if row < rows-1 {
			b.WriteString(connector(row))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.caption(st))
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(components.Notice(m.notice))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

// connector draws the turn of the path down to the next row, on the
// right after even rows and on the left after odd ones.
func connector(row int) string {
	pad := cellWidth / 2
	if row%2 == 0 {
		pad = (columns-1)*cellWidth + cellWidth/2
	}
	return lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat(" ", pad) + "│")
}

func (m *MapScreen) planet(level int, st session.State) string {
	locked := level > st.MaxUnlockedLevel
	glyph := "●"
	style := lipgloss.NewStyle().Foreground(theme.PlanetColors[(level-1)%len(theme.PlanetColors)])
	switch {
	case locked:
		glyph = "○"
		style = lipgloss.NewStyle().Foreground(theme.Border)
	case level < st.MaxUnlockedLevel:
		glyph = "◉"
	}

	label := fmt.Sprintf("%s %02d", glyph, level)
	if level == m.cursor {
		label = "▸" + label + "◂"
		style = style.Bold(true).Underline(true)
	}
	return lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Render(style.Render(label))
}

func (m *MapScreen) caption(st session.State) string {
	lang := st.Native
	caption := fmt.Sprintf("%s %d", i18n.T(lang, i18n.KeyLevel), m.cursor)
	if st.Mode == session.ModeVocabulary && m.titles != nil {
		if t, ok := m.titles.VocabTitle(m.cursor); ok {
			if s := t.In(lang); s != "" {
				caption += " · " + s
			}
		}
	}
	return theme.Body.Render(caption)
}

func (m *MapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→↑↓", Description: "Move"},
		keys.Hint(keys.Select, "Launch"),
		keys.Hint(keys.Back, "Languages"),
		keys.Hint(keys.Quit, "Quit"),
	}
}
