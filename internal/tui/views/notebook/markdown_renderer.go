package notebook

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hay-kot/nbview/internal/core/notebook"
)

// MarkdownRenderer renders markdown cells through a MarkdownEngine.
type MarkdownRenderer struct {
	newEngine MarkdownEngineFactory
	menu      ContextMenuService
	handler   InsertHandler
	log       zerolog.Logger
}

var _ Renderer = (*MarkdownRenderer)(nil)

// NewMarkdownRenderer creates a markdown renderer. Every template gets its
// own engine from newEngine.
func NewMarkdownRenderer(newEngine MarkdownEngineFactory, menu ContextMenuService, handler InsertHandler, log zerolog.Logger) *MarkdownRenderer {
	return &MarkdownRenderer{
		newEngine: newEngine,
		menu:      menu,
		handler:   handler,
		log:       log.With().Str("renderer", string(KindMarkdown)).Logger(),
	}
}

func (r *MarkdownRenderer) TemplateKind() TemplateKind { return KindMarkdown }

// RenderTemplate creates an empty markdown row.
func (r *MarkdownRenderer) RenderTemplate(c *Container) (*RowTemplate, error) {
	engine, err := r.newEngine()
	if err != nil {
		return nil, fmt.Errorf("create markdown engine: %w", err)
	}

	tpl := newRowTemplate(KindMarkdown, c)
	tpl.engine = engine
	return tpl, nil
}

// RenderElement renders cell into tpl. A render failure only affects this
// row.
func (r *MarkdownRenderer) RenderElement(cell *notebook.Cell, index int, tpl *RowTemplate, _ int) {
	tpl.bind(cell, index)
	tpl.binding.Set(attachGearMenu(tpl, cell, r.menu, r.handler))

	out, err := tpl.engine.Render(cell.Text(), tpl.container.Width())
	if err != nil {
		r.log.Warn().Err(err).Int("index", index).Msg("markdown render failed")
		tpl.err = err
		tpl.content = "render error: " + err.Error()
		return
	}

	tpl.err = nil
	tpl.content = out
}

// DisposeElement releases what the current occupant holds.
func (r *MarkdownRenderer) DisposeElement(_ *notebook.Cell, _ int, tpl *RowTemplate) {
	tpl.unbind()
}

// DisposeTemplate releases the template and its engine.
func (r *MarkdownRenderer) DisposeTemplate(tpl *RowTemplate) {
	tpl.unbind()
	tpl.engine = nil
	tpl.content = ""
}
