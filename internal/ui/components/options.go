package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexplanet/internal/ui/theme"
)

// OptionList renders numbered answer options. After an answer is final
// the expected option is shown green and a wrong choice red.
type OptionList struct {
	Options []string
	Cursor  int

	// Used marks options already placed in a sequenced answer.
	Used []bool

	// Answered is true once the answer is final; Given and Expected
	// are only read then.
	Answered bool
	Given    string
	Expected string
}

// View renders one option per line.
func (o OptionList) View() string {
	var b strings.Builder
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Cursor && !o.Answered {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case o.Answered && opt == o.Expected:
			style = theme.Correct
		case o.Answered && opt == o.Given:
			style = theme.Incorrect
		case o.Answered:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i < len(o.Used) && o.Used[i]:
			style = theme.Disabled
		case i == o.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// Slots renders the partial answer of a sequenced question as filled and
// empty boxes, e.g. "[ Ben ] [ Ali ] [   ]".
func Slots(filled []string, required int) string {
	parts := make([]string, 0, required)
	for i := 0; i < required; i++ {
		if i < len(filled) {
			parts = append(parts, theme.Selected.Render("[ "+filled[i]+" ]"))
			continue
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Border).Render("[   ]"))
	}
	return strings.Join(parts, " ")
}
