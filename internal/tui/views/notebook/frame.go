package notebook

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/hay-kot/nbview/internal/core/styles"
)

// rowStyles are the theme-derived styles of a row frame.
type rowStyles struct {
	border      lipgloss.Style
	focusBorder lipgloss.Style
	gear        lipgloss.Style
	activeGear  lipgloss.Style
	errText     lipgloss.Style
}

func newRowStyles(t Theme) rowStyles {
	return rowStyles{
		border:      lipgloss.NewStyle().Foreground(t.Color(styles.TokenBorder)),
		focusBorder: lipgloss.NewStyle().Foreground(t.Color(styles.TokenFocusOutline)),
		gear:        lipgloss.NewStyle().Foreground(t.Color(styles.TokenLink)),
		activeGear:  lipgloss.NewStyle().Foreground(t.Color(styles.TokenActiveLink)).Bold(true),
		errText:     styles.ErrorTextStyle,
	}
}

// frame draws the chrome around a row body. With at least two rows of
// chrome the body is boxed and the gear sits in the top border; otherwise
// the gear prefixes the first body line.
type frame struct {
	bordered bool
	styles   rowStyles
}

func newFrame(chrome int, t Theme) frame {
	return frame{bordered: chrome >= 2, styles: newRowStyles(t)}
}

// bodyWidth returns the width left for the body of a row width cells wide.
func (f frame) bodyWidth(width int) int {
	if f.bordered {
		return max(width-4, 1)
	}
	return max(width-2, 1)
}

// gearX returns the column of the gear within a row.
func (f frame) gearX() int {
	if f.bordered {
		return 2
	}
	return 0
}

// render returns exactly height lines of width cells.
func (f frame) render(body string, width, height int, focused bool) []string {
	if height <= 0 || width <= 0 {
		return nil
	}

	border, gear := f.styles.border, f.styles.gear
	if focused {
		border, gear = f.styles.focusBorder, f.styles.activeGear
	}

	bodyLines := strings.Split(body, "\n")
	out := make([]string, 0, height)

	if !f.bordered || width < 5 {
		for i := range height {
			prefix := "  "
			if i == 0 {
				prefix = gear.Render(styles.IconGear) + " "
			}
			line := ""
			if i < len(bodyLines) {
				line = bodyLines[i]
			}
			out = append(out, fitLine(prefix+line, width))
		}
		return out
	}

	inner := width - 4
	out = append(out, border.Render("╭─")+gear.Render(styles.IconGear)+border.Render(strings.Repeat("─", width-4)+"╮"))
	for i := range max(height-2, 0) {
		line := ""
		if i < len(bodyLines) {
			line = bodyLines[i]
		}
		out = append(out, border.Render("│ ")+fitLine(line, inner)+border.Render(" │"))
	}
	if height > 1 {
		out = append(out, border.Render("╰"+strings.Repeat("─", width-2)+"╯"))
	}
	return out
}

// errorBody renders a row-local error.
func (f frame) errorBody(err error) string {
	return f.styles.errText.Render(styles.IconWarning + " " + err.Error())
}

// fitLine truncates or pads s to exactly width cells.
func fitLine(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
