package styles

import (
	"image/color"

	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/lucasb-eyer/go-colorful"
)

// ColorToken names a themable notebook color.
type ColorToken string

const (
	TokenLink                 ColorToken = "link"
	TokenActiveLink           ColorToken = "active-link"
	TokenFocusOutline         ColorToken = "focus-outline"
	TokenPreformattedText     ColorToken = "preformatted-text"
	TokenBorder               ColorToken = "border"
	TokenBlockquoteBackground ColorToken = "blockquote-background"
	TokenBlockquoteBorder     ColorToken = "blockquote-border"
	TokenEditorBackground     ColorToken = "editor-background"
)

// Tokens lists every notebook color token.
var Tokens = []ColorToken{
	TokenLink,
	TokenActiveLink,
	TokenFocusOutline,
	TokenPreformattedText,
	TokenBorder,
	TokenBlockquoteBackground,
	TokenBlockquoteBorder,
	TokenEditorBackground,
}

// Color resolves a token against the palette. Unknown tokens fall back to
// the foreground color.
func (p Palette) Color(token ColorToken) color.Color {
	switch token {
	case TokenLink:
		return p.Secondary
	case TokenActiveLink:
		return p.Primary
	case TokenFocusOutline:
		return p.Primary
	case TokenPreformattedText:
		return p.Warning
	case TokenBorder:
		return p.Muted
	case TokenBlockquoteBackground:
		return p.Surface
	case TokenBlockquoteBorder:
		return p.Muted
	case TokenEditorBackground:
		return p.Background
	default:
		return p.Foreground
	}
}

func colorHexPtr(c color.Color) *string {
	if c == nil {
		return nil
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return nil
	}
	hex := cc.Hex()
	return &hex
}

// GlamourStyle returns a Glamour style config derived from the palette and
// its notebook color tokens.
func (p Palette) GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	fg := colorHexPtr(p.Foreground)
	primary := colorHexPtr(p.Primary)

	cfg.Document.Color = fg
	cfg.Document.Margin = nil
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = fg
	cfg.H1.BackgroundColor = colorHexPtr(p.Surface)
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.BlockQuote.Color = colorHexPtr(p.Color(TokenBlockquoteBorder))
	cfg.BlockQuote.BackgroundColor = colorHexPtr(p.Color(TokenBlockquoteBackground))
	cfg.HorizontalRule.Color = colorHexPtr(p.Color(TokenBorder))

	cfg.Link.Color = colorHexPtr(p.Color(TokenLink))
	cfg.LinkText.Color = colorHexPtr(p.Color(TokenActiveLink))

	cfg.Code.Color = colorHexPtr(p.Color(TokenPreformattedText))
	cfg.CodeBlock.Color = colorHexPtr(p.Color(TokenPreformattedText))

	cfg.Table.Color = fg

	return cfg
}
