package notebook

import (
	"strings"

	"github.com/charmbracelet/glamour"
	glamouransi "github.com/charmbracelet/glamour/ansi"
)

// MarkdownEngine renders markdown source to terminal output.
type MarkdownEngine interface {
	Render(source string, width int) (string, error)
}

// MarkdownEngineFactory creates one engine per markdown template.
type MarkdownEngineFactory func() (MarkdownEngine, error)

// minWrapWidth keeps glamour usable in very narrow panes.
const minWrapWidth = 20

// GlamourEngine renders markdown with glamour. The underlying renderer is
// rebuilt only when the wrap width changes.
type GlamourEngine struct {
	style    glamouransi.StyleConfig
	renderer *glamour.TermRenderer
	width    int
}

// NewGlamourEngine creates an engine using the given style.
func NewGlamourEngine(style glamouransi.StyleConfig) *GlamourEngine {
	return &GlamourEngine{style: style}
}

// GlamourEngineFactory returns a factory producing engines for style.
func GlamourEngineFactory(style glamouransi.StyleConfig) MarkdownEngineFactory {
	return func() (MarkdownEngine, error) {
		return NewGlamourEngine(style), nil
	}
}

// Render renders source wrapped to width.
func (g *GlamourEngine) Render(source string, width int) (string, error) {
	width = max(width, minWrapWidth)

	if g.renderer == nil || g.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStyles(g.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		g.renderer = r
		g.width = width
	}

	out, err := g.renderer.Render(source)
	if err != nil {
		return "", err
	}

	return strings.Trim(out, "\n"), nil
}
