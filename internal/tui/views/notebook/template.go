package notebook

import (
	"maps"
	"slices"

	"github.com/hay-kot/nbview/internal/core/lifecycle"
	"github.com/hay-kot/nbview/internal/core/notebook"
)

// Point is a screen position in cells.
type Point struct {
	X, Y int
}

// ClickEvent is delivered to gear listeners.
type ClickEvent struct {
	At Point
}

// Container is the live row area shared by all templates of a list. The
// list view updates it on layout, so renderers always read current values.
type Container struct {
	width int
}

// Width returns the usable body width.
func (c *Container) Width() int { return c.width }

// Affordance is the clickable gear of a row.
type Affordance struct {
	listeners map[int]func(ClickEvent)
	next      int
}

// OnClick registers fn and returns the handle that removes it.
func (a *Affordance) OnClick(fn func(ClickEvent)) lifecycle.Disposable {
	if a.listeners == nil {
		a.listeners = make(map[int]func(ClickEvent))
	}
	id := a.next
	a.next++
	a.listeners[id] = fn
	return lifecycle.DisposableFunc(func() { delete(a.listeners, id) })
}

// Click notifies every registered listener in registration order.
func (a *Affordance) Click(ev ClickEvent) {
	for _, id := range slices.Sorted(maps.Keys(a.listeners)) {
		if fn, ok := a.listeners[id]; ok {
			fn(ev)
		}
	}
}

// ListenerCount returns the number of live listeners.
func (a *Affordance) ListenerCount() int { return len(a.listeners) }

// RowTemplate is the per-row scratch state reused across cells.
type RowTemplate struct {
	kind      TemplateKind
	container *Container
	gear      *Affordance

	engine  MarkdownEngine // markdown rows
	editor  EmbeddedEditor // code rows
	content string         // rendered markdown or a row-local error
	err     error

	binding lifecycle.Slot // resources owned by the current occupant
	cell    *notebook.Cell
	index   int
}

func newRowTemplate(kind TemplateKind, c *Container) *RowTemplate {
	return &RowTemplate{kind: kind, container: c, gear: &Affordance{}, index: -1}
}

// Kind returns the template kind.
func (t *RowTemplate) Kind() TemplateKind { return t.kind }

// Cell returns the bound cell or nil.
func (t *RowTemplate) Cell() *notebook.Cell { return t.cell }

// Index returns the row index of the bound cell, -1 when unbound.
func (t *RowTemplate) Index() int { return t.index }

// Gear returns the row's menu affordance.
func (t *RowTemplate) Gear() *Affordance { return t.gear }

// Editor returns the embedded editor of a code template.
func (t *RowTemplate) Editor() EmbeddedEditor { return t.editor }

// Err returns the last row-local render error.
func (t *RowTemplate) Err() error { return t.err }

// Body returns the rendered row body without chrome.
func (t *RowTemplate) Body() string {
	if t.editor != nil && t.cell != nil {
		return t.editor.View()
	}
	return t.content
}

func (t *RowTemplate) bind(cell *notebook.Cell, index int) {
	t.cell = cell
	t.index = index
}

func (t *RowTemplate) unbind() {
	t.binding.Clear()
	t.cell = nil
	t.index = -1
	t.err = nil
}
