package notebook

import (
	"image/color"

	"github.com/hay-kot/nbview/internal/core/notebook"
	"github.com/hay-kot/nbview/internal/core/styles"
)

// Menu action ids.
const (
	ActionInsertAbove = "notebook.insertCodeCellAbove"
	ActionInsertBelow = "notebook.insertCodeCellBelow"
)

// MenuAction is one entry of a context menu.
type MenuAction struct {
	ID    string
	Label string
	Run   func() error
}

// ContextMenuService shows a menu anchored at a screen point.
type ContextMenuService interface {
	Show(anchor Point, actions []MenuAction)
}

// InsertHandler inserts an empty code cell next to cell.
type InsertHandler interface {
	InsertEmptyNotebookCell(cell *notebook.Cell, dir notebook.Direction) error
}

// Theme resolves notebook color tokens.
type Theme interface {
	Color(token styles.ColorToken) color.Color
}

var _ Theme = styles.Palette{}

// insertActions builds the gear menu for cell.
func insertActions(handler InsertHandler, cell *notebook.Cell) []MenuAction {
	return []MenuAction{
		{
			ID:    ActionInsertAbove,
			Label: "Insert Code Cell Above",
			Run:   func() error { return handler.InsertEmptyNotebookCell(cell, notebook.DirectionAbove) },
		},
		{
			ID:    ActionInsertBelow,
			Label: "Insert Code Cell Below",
			Run:   func() error { return handler.InsertEmptyNotebookCell(cell, notebook.DirectionBelow) },
		},
	}
}
