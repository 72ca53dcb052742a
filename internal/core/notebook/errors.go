package notebook

import (
	"errors"
	"fmt"
)

var (
	// ErrCellNotFound is matched by every *NotFoundError.
	ErrCellNotFound = errors.New("cell not found")

	// ErrUnsupportedFormat is returned when no decoder handles a notebook path.
	ErrUnsupportedFormat = errors.New("unsupported notebook format")
)

// NotFoundError reports a cell reference that is not part of the document.
type NotFoundError struct {
	Op   string
	Cell *Cell
}

func (e *NotFoundError) Error() string {
	kind := "<nil>"
	if e.Cell != nil {
		kind = string(e.Cell.Type)
	}
	return fmt.Sprintf("%s: %s cell %p: %s", e.Op, kind, e.Cell, ErrCellNotFound)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrCellNotFound }
