package notebook

import (
	"charm.land/lipgloss/v2"

	"github.com/hay-kot/nbview/internal/core/notebook"
)

// TemplateKind selects the renderer used for a row.
type TemplateKind string

const (
	KindMarkdown TemplateKind = "markdown"
	KindCode     TemplateKind = "code"
)

// minCodeLines is the minimum number of editor lines a code cell occupies.
const minCodeLines = 4

// Metrics are the font metrics row heights are computed from.
type Metrics struct {
	LineHeight          int // height of one source line
	CodeChrome          int // fixed height added around a code cell
	MarkdownPlaceholder int // markdown row height before it is measured
}

var (
	// DefaultMetrics are terminal metrics: one row per line and a border
	// above and below each cell.
	DefaultMetrics = Metrics{LineHeight: 1, CodeChrome: 2, MarkdownPlaceholder: 4}

	// PixelMetrics are the metrics of a 21px line with 16px of chrome.
	PixelMetrics = Metrics{LineHeight: 21, CodeChrome: 16, MarkdownPlaceholder: 100}
)

// CodeEditorHeight returns the editor height for a cell with n source lines.
func (m Metrics) CodeEditorHeight(n int) int {
	return max(n+1, minCodeLines) * m.LineHeight
}

// CodeRowHeight returns the full row height for a code cell with n lines.
func (m Metrics) CodeRowHeight(n int) int {
	return m.CodeEditorHeight(n) + m.CodeChrome
}

// Delegate answers sizing questions for the list view.
type Delegate interface {
	Height(cell *notebook.Cell) int
	HasDynamicHeight(cell *notebook.Cell) bool
	TemplateKind(cell *notebook.Cell) TemplateKind
	Chrome() int
	MeasuredHeight(body string) int
}

// RowDelegate is the Delegate for notebook cells.
type RowDelegate struct {
	metrics Metrics
}

var _ Delegate = (*RowDelegate)(nil)

// NewRowDelegate creates a delegate for the given metrics.
func NewRowDelegate(m Metrics) *RowDelegate {
	return &RowDelegate{metrics: m}
}

// Metrics returns the current font metrics.
func (d *RowDelegate) Metrics() Metrics { return d.metrics }

// SetMetrics replaces the font metrics. Rows already laid out keep their
// height until they are re-rendered.
func (d *RowDelegate) SetMetrics(m Metrics) { d.metrics = m }

// Height returns the row height of cell. Markdown cells get a placeholder
// until their rendered output is measured.
func (d *RowDelegate) Height(cell *notebook.Cell) int {
	if cell.IsMarkdown() {
		return d.metrics.MarkdownPlaceholder
	}
	return d.metrics.CodeRowHeight(cell.LineCount())
}

// HasDynamicHeight reports whether the row must be measured after render.
func (d *RowDelegate) HasDynamicHeight(cell *notebook.Cell) bool {
	return cell.IsMarkdown()
}

// TemplateKind returns the template kind for cell.
func (d *RowDelegate) TemplateKind(cell *notebook.Cell) TemplateKind {
	if cell.IsMarkdown() {
		return KindMarkdown
	}
	return KindCode
}

// Chrome returns the fixed height drawn around every row.
func (d *RowDelegate) Chrome() int { return d.metrics.CodeChrome }

// BodyWidth returns the columns left for a row body inside a row width
// columns wide.
func (d *RowDelegate) BodyWidth(width int) int {
	return frame{bordered: d.metrics.CodeChrome >= 2}.bodyWidth(width)
}

// MeasuredHeight returns the row height of a rendered markdown body.
func (d *RowDelegate) MeasuredHeight(body string) int {
	return lipgloss.Height(body) + d.metrics.CodeChrome
}
