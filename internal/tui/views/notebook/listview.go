package notebook

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hay-kot/nbview/internal/core/notebook"
)

type listRow struct {
	cell     *notebook.Cell
	height   int
	measured bool
}

// ListView is a virtualized list of notebook rows. Only rows intersecting
// the viewport hold a template; templates are pooled per kind and reused
// as rows scroll in and out.
type ListView struct {
	delegate  Delegate
	renderers map[TemplateKind]Renderer
	container *Container
	frame     frame
	log       zerolog.Logger

	rows     []*listRow
	rendered map[int]*RowTemplate
	failed   map[int]error
	pool     map[TemplateKind][]*RowTemplate

	width, height int
	scrollTop     int
	focus         int
}

// NewListView creates an empty list view.
func NewListView(delegate Delegate, theme Theme, log zerolog.Logger, renderers ...Renderer) *ListView {
	l := &ListView{
		delegate:  delegate,
		renderers: make(map[TemplateKind]Renderer, len(renderers)),
		container: &Container{},
		frame:     newFrame(delegate.Chrome(), theme),
		log:       log,
		rendered:  make(map[int]*RowTemplate),
		failed:    make(map[int]error),
		pool:      make(map[TemplateKind][]*RowTemplate),
	}
	for _, r := range renderers {
		l.renderers[r.TemplateKind()] = r
	}
	return l
}

// Len returns the number of rows.
func (l *ListView) Len() int { return len(l.rows) }

// Cells returns the cells in display order.
func (l *ListView) Cells() []*notebook.Cell {
	out := make([]*notebook.Cell, len(l.rows))
	for i, r := range l.rows {
		out[i] = r.cell
	}
	return out
}

// Size returns the last layout size.
func (l *ListView) Size() (width, height int) { return l.width, l.height }

// Splice removes deleteCount rows at start and inserts items in their place.
func (l *ListView) Splice(start, deleteCount int, items []*notebook.Cell) {
	start = min(max(start, 0), len(l.rows))
	deleteCount = min(max(deleteCount, 0), len(l.rows)-start)

	l.releaseFrom(start)

	added := make([]*listRow, len(items))
	for i, c := range items {
		added[i] = &listRow{cell: c, height: l.delegate.Height(c)}
	}
	l.rows = slices.Replace(l.rows, start, start+deleteCount, added...)

	if l.focus >= start+deleteCount {
		l.focus += len(items) - deleteCount
	}
	l.clampFocus()
	l.clampScroll()
	l.renderVisible()

	l.log.Debug().Int("start", start).Int("deleted", deleteCount).Int("inserted", len(items)).Int("rows", len(l.rows)).Msg("splice")
}

// Layout sizes the viewport. A width change repopulates every visible row.
// Pooled templates left unbound afterwards are disposed.
func (l *ListView) Layout(height, width int) {
	widthChanged := width != l.width

	l.width, l.height = max(width, 0), max(height, 0)
	l.container.width = l.frame.bodyWidth(l.width)

	if widthChanged {
		l.releaseFrom(0)
	}

	l.clampScroll()
	l.renderVisible()
	l.trimPool()
}

// ElementTop returns the offset of row i from the top of the list.
func (l *ListView) ElementTop(i int) int {
	top := 0
	for j := 0; j < i && j < len(l.rows); j++ {
		top += l.rows[j].height
	}
	return top
}

// ElementHeight returns the current height of row i.
func (l *ListView) ElementHeight(i int) int {
	if i < 0 || i >= len(l.rows) {
		return 0
	}
	return l.rows[i].height
}

// TotalHeight returns the height of all rows.
func (l *ListView) TotalHeight() int { return l.ElementTop(len(l.rows)) }

// UpdateElementHeight changes the height of row i without repopulating it.
func (l *ListView) UpdateElementHeight(i, height int) {
	if i < 0 || i >= len(l.rows) || l.rows[i].height == height {
		return
	}
	l.rows[i].height = height
	l.clampScroll()
	l.renderVisible()
}

// ScrollTop returns the scroll offset.
func (l *ListView) ScrollTop() int { return l.scrollTop }

// ScrollTo scrolls so that y is the first visible line.
func (l *ListView) ScrollTo(y int) {
	l.scrollTop = y
	l.clampScroll()
	l.renderVisible()
}

// ScrollBy scrolls by delta lines.
func (l *ListView) ScrollBy(delta int) { l.ScrollTo(l.scrollTop + delta) }

// Reveal scrolls the minimum distance needed to show row i.
func (l *ListView) Reveal(i int) {
	if i < 0 || i >= len(l.rows) {
		return
	}
	top, h := l.ElementTop(i), l.rows[i].height
	switch {
	case top < l.scrollTop || h > l.height:
		l.ScrollTo(top)
	case top+h > l.scrollTop+l.height:
		l.ScrollTo(top + h - l.height)
	}
}

// VisibleRange returns the first and last row intersecting the viewport,
// or (0, -1) when nothing is visible.
func (l *ListView) VisibleRange() (first, last int) {
	first, last = 0, -1
	if l.height <= 0 {
		return first, last
	}

	bottom := l.scrollTop + l.height
	top := 0
	found := false
	for i, r := range l.rows {
		end := top + r.height
		if end > l.scrollTop && top < bottom {
			if !found {
				first, found = i, true
			}
			last = i
		}
		if top >= bottom {
			break
		}
		top = end
	}
	if !found {
		return 0, -1
	}
	return first, last
}

// Focus moves focus to row i and reveals it.
func (l *ListView) Focus(i int) {
	l.focus = i
	l.clampFocus()
	l.Reveal(l.focus)
}

// FocusNext focuses the row below the focused one.
func (l *ListView) FocusNext() { l.Focus(l.focus + 1) }

// FocusPrev focuses the row above the focused one.
func (l *ListView) FocusPrev() { l.Focus(l.focus - 1) }

// Focused returns the focused row, -1 when the list is empty.
func (l *ListView) Focused() int {
	if len(l.rows) == 0 {
		return -1
	}
	return l.focus
}

// FocusedCell returns the focused cell or nil.
func (l *ListView) FocusedCell() *notebook.Cell {
	if i := l.Focused(); i >= 0 {
		return l.rows[i].cell
	}
	return nil
}

// RowAt returns the row under viewport line y.
func (l *ListView) RowAt(y int) (int, bool) {
	if y < 0 || y >= l.height {
		return 0, false
	}
	abs := l.scrollTop + y
	top := 0
	for i, r := range l.rows {
		if abs >= top && abs < top+r.height {
			return i, true
		}
		top += r.height
	}
	return 0, false
}

// TemplateFor returns the template bound to row i, if the row is rendered.
func (l *ListView) TemplateFor(i int) (*RowTemplate, bool) {
	tpl, ok := l.rendered[i]
	return tpl, ok
}

// RowError returns the template-creation error of row i, if any.
func (l *ListView) RowError(i int) error { return l.failed[i] }

// GearPosition returns the viewport position of the gear of row i.
func (l *ListView) GearPosition(i int) (Point, bool) {
	if _, ok := l.rendered[i]; !ok {
		return Point{}, false
	}
	y := l.ElementTop(i) - l.scrollTop
	if y < 0 || y >= l.height {
		return Point{}, false
	}
	return Point{X: l.frame.gearX(), Y: y}, true
}

// GearAt returns the row whose gear is at p.
func (l *ListView) GearAt(p Point) (int, bool) {
	i, ok := l.RowAt(p.Y)
	if !ok {
		return 0, false
	}
	gp, ok := l.GearPosition(i)
	if !ok || gp.Y != p.Y || p.X < gp.X-1 || p.X > gp.X+1 {
		return 0, false
	}
	return i, true
}

// PooledTemplates returns the number of unbound pooled templates.
func (l *ListView) PooledTemplates() int {
	n := 0
	for _, p := range l.pool {
		n += len(p)
	}
	return n
}

// View renders exactly height lines.
func (l *ListView) View() string {
	if l.height <= 0 {
		return ""
	}

	lines := make([]string, 0, l.height)
	first, last := l.VisibleRange()
	if last >= first {
		offset := l.scrollTop - l.ElementTop(first)
		for i := first; i <= last && len(lines) < l.height; i++ {
			rowLines := l.renderRow(i)
			if i == first {
				rowLines = rowLines[min(offset, len(rowLines)):]
			}
			lines = append(lines, rowLines...)
		}
	}

	lines = lines[:min(len(lines), l.height)]
	for len(lines) < l.height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// Dispose releases every template.
func (l *ListView) Dispose() {
	l.releaseFrom(0)
	l.trimPool()
	l.rows = nil
	l.scrollTop, l.focus = 0, 0
}

func (l *ListView) renderRow(i int) []string {
	var body string
	switch tpl, ok := l.rendered[i]; {
	case ok && tpl.Err() != nil:
		body = l.frame.errorBody(tpl.Err())
	case ok:
		body = tpl.Body()
	case l.failed[i] != nil:
		body = l.frame.errorBody(l.failed[i])
	}
	return l.frame.render(body, l.width, l.rows[i].height, i == l.focus)
}

// renderVisible binds templates to visible rows and releases the rest.
// Measuring a dynamic row can change the visible range, so it repeats
// until heights settle.
func (l *ListView) renderVisible() {
	for range len(l.rows) + 1 {
		first, last := l.VisibleRange()

		for _, i := range slices.Sorted(maps.Keys(l.rendered)) {
			if i < first || i > last {
				l.release(i)
			}
		}
		for i := range l.failed {
			if i < first || i > last {
				delete(l.failed, i)
			}
		}

		changed := false
		for i := first; i <= last; i++ {
			if _, ok := l.rendered[i]; ok {
				continue
			}
			if _, ok := l.failed[i]; ok {
				continue
			}
			if l.populate(i) {
				changed = true
			}
		}

		if !changed {
			return
		}
		l.clampScroll()
	}
}

// populate binds a template to row i and reports whether measuring the
// row changed its height.
func (l *ListView) populate(i int) bool {
	row := l.rows[i]
	kind := l.delegate.TemplateKind(row.cell)

	r, ok := l.renderers[kind]
	if !ok {
		l.failed[i] = fmt.Errorf("no renderer for %q cells", kind)
		return false
	}

	tpl, err := l.acquire(r)
	if err != nil {
		l.log.Error().Err(err).Int("index", i).Str("kind", string(kind)).Msg("create row template")
		l.failed[i] = err
		return false
	}

	r.RenderElement(row.cell, i, tpl, row.height)
	l.rendered[i] = tpl

	if !l.delegate.HasDynamicHeight(row.cell) {
		return false
	}

	h := l.delegate.MeasuredHeight(tpl.Body())
	row.measured = true
	if h == row.height {
		return false
	}
	row.height = h
	return true
}

func (l *ListView) acquire(r Renderer) (*RowTemplate, error) {
	kind := r.TemplateKind()
	if pool := l.pool[kind]; len(pool) > 0 {
		tpl := pool[len(pool)-1]
		l.pool[kind] = pool[:len(pool)-1]
		return tpl, nil
	}
	return r.RenderTemplate(l.container)
}

func (l *ListView) release(i int) {
	tpl, ok := l.rendered[i]
	if !ok {
		return
	}
	delete(l.rendered, i)

	r := l.renderers[tpl.Kind()]
	r.DisposeElement(tpl.Cell(), i, tpl)
	l.pool[tpl.Kind()] = append(l.pool[tpl.Kind()], tpl)
}

func (l *ListView) releaseFrom(start int) {
	for _, i := range slices.Sorted(maps.Keys(l.rendered)) {
		if i >= start {
			l.release(i)
		}
	}
	for i := range l.failed {
		if i >= start {
			delete(l.failed, i)
		}
	}
}

func (l *ListView) trimPool() {
	for kind, pool := range l.pool {
		r := l.renderers[kind]
		for _, tpl := range pool {
			r.DisposeTemplate(tpl)
		}
		delete(l.pool, kind)
	}
}

func (l *ListView) clampFocus() {
	l.focus = min(max(l.focus, 0), max(len(l.rows)-1, 0))
}

func (l *ListView) clampScroll() {
	maxTop := max(l.TotalHeight()-l.height, 0)
	l.scrollTop = min(max(l.scrollTop, 0), maxTop)
}
