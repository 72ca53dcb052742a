package notebook

import (
	"github.com/hay-kot/nbview/internal/core/lifecycle"
	"github.com/hay-kot/nbview/internal/core/notebook"
)

// Renderer creates, populates and releases row templates of one kind.
type Renderer interface {
	TemplateKind() TemplateKind
	RenderTemplate(c *Container) (*RowTemplate, error)
	RenderElement(cell *notebook.Cell, index int, tpl *RowTemplate, height int)
	DisposeElement(cell *notebook.Cell, index int, tpl *RowTemplate)
	DisposeTemplate(tpl *RowTemplate)
}

// attachGearMenu wires the gear of tpl to the insert menu of cell.
func attachGearMenu(tpl *RowTemplate, cell *notebook.Cell, menu ContextMenuService, handler InsertHandler) lifecycle.Disposable {
	if menu == nil || handler == nil {
		return lifecycle.None
	}
	return tpl.gear.OnClick(func(ev ClickEvent) {
		menu.Show(ev.At, insertActions(handler, cell))
	})
}
