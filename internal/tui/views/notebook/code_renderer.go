package notebook

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/nbview/internal/core/lifecycle"
	"github.com/hay-kot/nbview/internal/core/notebook"
)

// CodeRenderer renders code cells into embedded editors.
type CodeRenderer struct {
	delegate *RowDelegate
	factory  EditorFactory
	opts     EditorOptions
	menu     ContextMenuService
	handler  InsertHandler
	log      zerolog.Logger

	listeners lifecycle.Table[*notebook.Cell]
	now       func() time.Time
}

var _ Renderer = (*CodeRenderer)(nil)

// NewCodeRenderer creates a code renderer. Editors are created by factory
// with opts.
func NewCodeRenderer(delegate *RowDelegate, factory EditorFactory, opts EditorOptions, menu ContextMenuService, handler InsertHandler, log zerolog.Logger) *CodeRenderer {
	return &CodeRenderer{
		delegate: delegate,
		factory:  factory,
		opts:     opts,
		menu:     menu,
		handler:  handler,
		log:      log.With().Str("renderer", string(KindCode)).Logger(),
		now:      time.Now,
	}
}

func (r *CodeRenderer) TemplateKind() TemplateKind { return KindCode }

// RenderTemplate creates a code row with its own editor.
func (r *CodeRenderer) RenderTemplate(c *Container) (*RowTemplate, error) {
	ed, err := r.factory.NewEditor(r.opts)
	if err != nil {
		return nil, fmt.Errorf("create cell editor: %w", err)
	}

	tpl := newRowTemplate(KindCode, c)
	tpl.editor = ed
	return tpl, nil
}

// RenderElement binds a fresh text model for cell and sizes the editor.
func (r *CodeRenderer) RenderElement(cell *notebook.Cell, index int, tpl *RowTemplate, _ int) {
	if prev := tpl.cell; prev != nil && prev != cell {
		r.listeners.Delete(prev)
	}
	tpl.bind(cell, index)

	tpl.editor.SetModel(&TextModel{
		URI:  NewCellURI(index, r.now()),
		Text: cell.Text(),
	})
	tpl.editor.Layout(tpl.container.Width(), r.delegate.Metrics().CodeEditorHeight(cell.LineCount()))

	r.listeners.Set(cell, attachGearMenu(tpl, cell, r.menu, r.handler))
}

// DisposeElement releases the listener of cell.
func (r *CodeRenderer) DisposeElement(cell *notebook.Cell, _ int, tpl *RowTemplate) {
	r.listeners.Delete(cell)
	tpl.editor.Blur()
	tpl.unbind()
}

// DisposeTemplate releases the template and its editor.
func (r *CodeRenderer) DisposeTemplate(tpl *RowTemplate) {
	if tpl.cell != nil {
		r.listeners.Delete(tpl.cell)
	}
	tpl.unbind()
	if tpl.editor != nil {
		tpl.editor.Dispose()
		tpl.editor = nil
	}
}

// ListenerCount returns the number of live gear listeners.
func (r *CodeRenderer) ListenerCount() int { return r.listeners.Len() }
