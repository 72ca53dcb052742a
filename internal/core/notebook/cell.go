package notebook

import (
	"fmt"
	"strings"
)

// CellType is the kind of a notebook cell.
type CellType string

const (
	CellTypeCode     CellType = "code"
	CellTypeMarkdown CellType = "markdown"
)

// ParseCellType converts a raw cell_type value. nbformat "raw" cells are
// treated as markdown since they render as plain text.
func ParseCellType(s string) (CellType, error) {
	switch s {
	case "code":
		return CellTypeCode, nil
	case "markdown", "raw":
		return CellTypeMarkdown, nil
	default:
		return "", fmt.Errorf("unknown cell type %q", s)
	}
}

// Cell is a single notebook cell.
type Cell struct {
	Type   CellType
	Source []string // lines without trailing newlines
}

// NewCodeCell returns a code cell with the given source lines.
func NewCodeCell(lines ...string) *Cell {
	return &Cell{Type: CellTypeCode, Source: lines}
}

// NewMarkdownCell returns a markdown cell with the given source lines.
func NewMarkdownCell(lines ...string) *Cell {
	return &Cell{Type: CellTypeMarkdown, Source: lines}
}

// IsMarkdown reports whether the cell is a markdown cell.
func (c *Cell) IsMarkdown() bool { return c.Type == CellTypeMarkdown }

// LineCount returns the number of source lines.
func (c *Cell) LineCount() int { return len(c.Source) }

// Text joins the source lines with newlines.
func (c *Cell) Text() string { return strings.Join(c.Source, "\n") }

// SetText replaces the source wholesale with the lines of text.
func (c *Cell) SetText(text string) {
	if text == "" {
		c.Source = nil
		return
	}
	c.Source = strings.Split(text, "\n")
}
