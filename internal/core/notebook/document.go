package notebook

import (
	"fmt"
	"slices"
)

// Direction says where a new cell goes relative to its anchor.
type Direction string

const (
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
)

// ParseDirection validates a direction literal.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionAbove, DirectionBelow:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("invalid direction %q: must be %q or %q", s, DirectionAbove, DirectionBelow)
	}
}

// Document is the ordered cell sequence of one open notebook.
type Document struct {
	URI   string
	cells []*Cell
}

// NewDocument creates a document that takes ownership of cells.
func NewDocument(uri string, cells []*Cell) *Document {
	return &Document{URI: uri, cells: cells}
}

// Cells returns the live cell sequence. Callers must not mutate it; use
// InsertCell so indices stay consistent with any mirrored views.
func (d *Document) Cells() []*Cell { return d.cells }

// Len returns the number of cells.
func (d *Document) Len() int { return len(d.cells) }

// At returns the cell at index i.
func (d *Document) At(i int) *Cell { return d.cells[i] }

// IndexOf finds cell by identity.
func (d *Document) IndexOf(cell *Cell) (int, bool) {
	if cell == nil {
		return 0, false
	}
	i := slices.Index(d.cells, cell)
	if i < 0 {
		return 0, false
	}
	return i, true
}

// InsertCell creates an empty code cell next to anchor and returns it with
// its new index. The document is left untouched when anchor is not one of
// its cells.
func (d *Document) InsertCell(anchor *Cell, dir Direction) (*Cell, int, error) {
	i, ok := d.IndexOf(anchor)
	if !ok {
		return nil, 0, &NotFoundError{Op: "insert cell", Cell: anchor}
	}

	switch dir {
	case DirectionAbove:
	case DirectionBelow:
		i++
	default:
		return nil, 0, fmt.Errorf("insert cell: invalid direction %q", dir)
	}

	cell := NewCodeCell()
	d.cells = slices.Insert(d.cells, i, cell)
	return cell, i, nil
}
