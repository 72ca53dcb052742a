package notebook

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hay-kot/nbview/internal/core/logging"
	"github.com/hay-kot/nbview/internal/core/notebook"
	"github.com/hay-kot/nbview/internal/core/styles"
)

// ErrNoDocument is returned by operations that need an open notebook.
var ErrNoDocument = errors.New("no notebook open")

// wheelStep is the number of lines scrolled per mouse wheel notch.
const wheelStep = 3

// Options configures an Editor. Zero values select defaults.
type Options struct {
	Resolver         notebook.Resolver
	Metrics          Metrics
	HorizontalMargin int
	Editor           EditorOptions
	EditorFactory    EditorFactory
	MarkdownEngine   MarkdownEngineFactory
	Theme            Theme
	Menu             *ContextMenu
	Logger           zerolog.Logger
}

// DocumentOpenedMsg carries a resolved notebook back to the event loop.
type DocumentOpenedMsg struct {
	Generation uint64
	URI        string
	Document   *notebook.Document
}

// DocumentOpenFailedMsg reports a failed resolve.
type DocumentOpenFailedMsg struct {
	Generation uint64
	URI        string
	Err        error
}

// Editor is the notebook panel. It owns the document of the open notebook
// and the list view that displays it, and keeps the two in step.
type Editor struct {
	resolver notebook.Resolver
	delegate *RowDelegate
	list     *ListView
	menu     *ContextMenu
	keys     KeyMap
	margin   int
	log      zerolog.Logger

	doc     *notebook.Document
	input   string
	gen     uint64
	cancel  context.CancelFunc
	loading bool
	err     error

	editCell *notebook.Cell

	width, height int
}

var _ InsertHandler = (*Editor)(nil)

// New creates an empty notebook panel.
func New(opts Options) *Editor {
	if opts.Resolver == nil {
		opts.Resolver = notebook.NewFileResolver()
	}
	if opts.Metrics == (Metrics{}) {
		opts.Metrics = DefaultMetrics
	}
	if opts.EditorFactory == nil {
		opts.EditorFactory = TextareaFactory
	}
	if opts.Editor.Features == nil {
		opts.Editor = InlineCellOptions()
	}
	if opts.MarkdownEngine == nil {
		opts.MarkdownEngine = GlamourEngineFactory(styles.GlamourStyle())
	}
	if opts.Theme == nil {
		opts.Theme = styles.CurrentPalette
	}
	if opts.Menu == nil {
		opts.Menu = NewContextMenu()
	}

	log := opts.Logger.With().Str("component", "notebook").Logger()

	e := &Editor{
		resolver: opts.Resolver,
		delegate: NewRowDelegate(opts.Metrics),
		menu:     opts.Menu,
		keys:     DefaultKeyMap(),
		margin:   max(opts.HorizontalMargin, 0),
		log:      log,
	}

	rlog := opts.Logger.With().Str("component", "renderer").Logger()
	markdown := NewMarkdownRenderer(opts.MarkdownEngine, e.menu, e, rlog)
	code := NewCodeRenderer(e.delegate, opts.EditorFactory, opts.Editor, e.menu, e, rlog)

	llog := opts.Logger.With().Str("component", "list").Logger()
	e.list = NewListView(e.delegate, opts.Theme, llog, markdown, code)

	return e
}

// Document returns the open document or nil.
func (e *Editor) Document() *notebook.Document { return e.doc }

// List returns the list view.
func (e *Editor) List() *ListView { return e.list }

// Menu returns the row context menu.
func (e *Editor) Menu() *ContextMenu { return e.menu }

// Delegate returns the row delegate.
func (e *Editor) Delegate() *RowDelegate { return e.delegate }

// Input returns the URI of the latest requested notebook.
func (e *Editor) Input() string { return e.input }

// Loading reports whether an open is in flight.
func (e *Editor) Loading() bool { return e.loading }

// Err returns the last error shown in the status line.
func (e *Editor) Err() error { return e.err }

// Keys returns the panel key bindings.
func (e *Editor) Keys() KeyMap { return e.keys }

// Editing reports whether a code cell editor has focus.
func (e *Editor) Editing() bool { return e.editCell != nil }

// SetInput starts resolving uri. Only the latest request is applied: a
// result for an older request is dropped and its resolve is cancelled.
func (e *Editor) SetInput(ctx context.Context, uri string) tea.Cmd {
	if e.cancel != nil {
		e.cancel()
	}

	e.gen++
	gen := e.gen

	ctx, cancel := context.WithCancel(ctx)
	ctx = logging.WithNotebook(ctx, uri)
	ctx = logging.WithOpenID(ctx, uuid.NewString())

	e.cancel = cancel
	e.input = uri
	e.loading = true
	e.err = nil

	resolver, log := e.resolver, e.log
	return func() tea.Msg {
		log.Debug().Ctx(ctx).Uint64("generation", gen).Msg("resolving notebook")

		doc, err := resolver.Resolve(ctx, uri)
		if err != nil {
			return DocumentOpenFailedMsg{Generation: gen, URI: uri, Err: err}
		}
		return DocumentOpenedMsg{Generation: gen, URI: uri, Document: doc}
	}
}

// Layout sizes the panel. The list gets the width minus the horizontal
// margin and the height minus the status line.
func (e *Editor) Layout(width, height int) {
	if width != e.width {
		e.leaveEditing()
	}
	e.width, e.height = width, height
	e.list.Layout(max(height-1, 0), max(width-e.margin, 0))
}

// InsertEmptyNotebookCell inserts an empty code cell above or below cell and
// mirrors the insert into the list view at the same index.
func (e *Editor) InsertEmptyNotebookCell(cell *notebook.Cell, dir notebook.Direction) error {
	if e.doc == nil {
		return ErrNoDocument
	}
	e.leaveEditing()

	added, idx, err := e.doc.InsertCell(cell, dir)
	if err != nil {
		return fmt.Errorf("insert cell %s: %w", dir, err)
	}

	e.list.Splice(idx, 0, []*notebook.Cell{added})
	e.list.Focus(idx)

	e.log.Debug().Str("direction", string(dir)).Int("index", idx).Int("cells", e.doc.Len()).Msg("inserted cell")
	return nil
}

// Update handles messages for the panel.
func (e *Editor) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case DocumentOpenedMsg:
		e.handleOpened(msg)
	case DocumentOpenFailedMsg:
		e.handleOpenFailed(msg)
	case tea.KeyPressMsg:
		return e.handleKey(msg)
	case tea.MouseWheelMsg:
		e.handleWheel(msg)
	case tea.MouseClickMsg:
		e.handleClick(msg)
	default:
		if e.editCell != nil {
			return e.forwardToEditor(msg)
		}
	}
	return nil
}

// View renders the panel and the status line.
func (e *Editor) View() string {
	if e.height <= 0 {
		return ""
	}

	pad := strings.Repeat(" ", e.margin/2)
	lines := strings.Split(e.list.View(), "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	if e.height == 1 {
		lines = nil
	}
	lines = append(lines, e.statusLine())

	return e.menu.Overlay(strings.Join(lines, "\n"), e.width, e.height)
}

// Dispose cancels any pending open and releases every row.
func (e *Editor) Dispose() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.editCell = nil
	e.menu.Close()
	e.list.Dispose()
	e.doc = nil
}

func (e *Editor) handleOpened(msg DocumentOpenedMsg) {
	if msg.Generation != e.gen {
		e.log.Debug().Uint64("generation", msg.Generation).Str("uri", msg.URI).Msg("dropping stale notebook")
		return
	}
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}

	e.leaveEditing()
	e.menu.Close()

	reload := e.doc != nil && e.doc.URI == msg.Document.URI
	e.doc = msg.Document
	e.loading = false
	e.err = nil

	// Splicing over the old rows keeps the focused index on reload.
	e.list.Splice(0, e.list.Len(), e.doc.Cells())
	e.Layout(e.width, e.height)
	if !reload {
		e.list.Focus(0)
	}

	e.log.Info().Str("uri", msg.URI).Int("cells", e.doc.Len()).Msg("notebook opened")
}

func (e *Editor) handleOpenFailed(msg DocumentOpenFailedMsg) {
	if msg.Generation != e.gen {
		return
	}
	e.cancel = nil
	e.loading = false
	e.err = fmt.Errorf("open %s: %w", msg.URI, msg.Err)
	e.log.Error().Err(msg.Err).Str("uri", msg.URI).Msg("open notebook failed")
}

func (e *Editor) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if e.menu.IsOpen() {
		if _, err := e.menu.HandleKey(msg); err != nil {
			e.err = err
		}
		return nil
	}

	if e.editCell != nil {
		if key.Matches(msg, e.keys.Leave) {
			e.leaveEditing()
			return nil
		}
		return e.forwardToEditor(msg)
	}

	switch {
	case key.Matches(msg, e.keys.Quit):
		return tea.Quit
	case key.Matches(msg, e.keys.Down):
		e.list.FocusNext()
	case key.Matches(msg, e.keys.Up):
		e.list.FocusPrev()
	case key.Matches(msg, e.keys.HalfDown):
		e.list.ScrollBy(e.list.height / 2)
	case key.Matches(msg, e.keys.HalfUp):
		e.list.ScrollBy(-e.list.height / 2)
	case key.Matches(msg, e.keys.Edit):
		return e.enterEditing()
	case key.Matches(msg, e.keys.Menu):
		e.openFocusedMenu()
	case key.Matches(msg, e.keys.InsertAbove):
		e.insertAtFocus(notebook.DirectionAbove)
	case key.Matches(msg, e.keys.InsertBelow):
		e.insertAtFocus(notebook.DirectionBelow)
	}
	return nil
}

func (e *Editor) handleWheel(msg tea.MouseWheelMsg) {
	switch msg.Mouse().Button {
	case tea.MouseWheelUp:
		e.list.ScrollBy(-wheelStep)
	case tea.MouseWheelDown:
		e.list.ScrollBy(wheelStep)
	}
	e.syncEditing()
}

func (e *Editor) handleClick(msg tea.MouseClickMsg) {
	m := msg.Mouse()
	if m.Button != tea.MouseLeft {
		return
	}
	p := Point{X: m.X, Y: m.Y}

	if consumed, err := e.menu.HandleClick(p); consumed {
		if err != nil {
			e.err = err
		}
		return
	}

	lp := Point{X: p.X - e.margin/2, Y: p.Y}
	if i, ok := e.list.GearAt(lp); ok {
		e.leaveEditing()
		e.list.Focus(i)
		e.clickGear(i, p)
		return
	}

	if i, ok := e.list.RowAt(lp.Y); ok {
		if e.editCell != nil && e.list.rows[i].cell != e.editCell {
			e.leaveEditing()
		}
		e.list.Focus(i)
	}
}

// clickGear dispatches a click to the gear of row i. The screen point
// anchors the menu.
func (e *Editor) clickGear(i int, at Point) {
	if tpl, ok := e.list.TemplateFor(i); ok {
		tpl.Gear().Click(ClickEvent{At: at})
	}
}

func (e *Editor) openFocusedMenu() {
	i := e.list.Focused()
	if i < 0 {
		return
	}
	gp, ok := e.list.GearPosition(i)
	if !ok {
		return
	}
	e.clickGear(i, Point{X: gp.X + e.margin/2, Y: gp.Y})
}

func (e *Editor) insertAtFocus(dir notebook.Direction) {
	cell := e.list.FocusedCell()
	if cell == nil {
		return
	}
	if err := e.InsertEmptyNotebookCell(cell, dir); err != nil {
		e.err = err
	}
}

func (e *Editor) editingRow() (int, *RowTemplate, bool) {
	if e.editCell == nil || e.doc == nil {
		return 0, nil, false
	}
	i, ok := e.doc.IndexOf(e.editCell)
	if !ok {
		return 0, nil, false
	}
	tpl, ok := e.list.TemplateFor(i)
	if !ok || tpl.Cell() != e.editCell || tpl.Editor() == nil {
		return 0, nil, false
	}
	return i, tpl, true
}

func (e *Editor) enterEditing() tea.Cmd {
	i := e.list.Focused()
	if i < 0 {
		return nil
	}
	tpl, ok := e.list.TemplateFor(i)
	if !ok || tpl.Editor() == nil {
		return nil
	}
	e.editCell = tpl.Cell()
	return tpl.Editor().Focus()
}

// leaveEditing commits the editor text into the cell and drops focus.
func (e *Editor) leaveEditing() {
	if e.editCell == nil {
		return
	}
	if i, tpl, ok := e.editingRow(); ok {
		e.commit(i, tpl)
		tpl.Editor().Blur()
	}
	e.editCell = nil
}

// syncEditing ends editing when the edited row scrolled out of view.
func (e *Editor) syncEditing() {
	if e.editCell == nil {
		return
	}
	if _, _, ok := e.editingRow(); !ok {
		e.editCell = nil
	}
}

func (e *Editor) forwardToEditor(msg tea.Msg) tea.Cmd {
	i, tpl, ok := e.editingRow()
	if !ok {
		e.editCell = nil
		return nil
	}
	cmd := tpl.Editor().Update(msg)
	e.commit(i, tpl)
	return cmd
}

// commit writes the editor text into the cell and resizes the row to the
// new line count.
func (e *Editor) commit(i int, tpl *RowTemplate) {
	cell := tpl.Cell()
	text := tpl.Editor().Value()
	if text == cell.Text() {
		return
	}

	cell.SetText(text)
	tpl.Editor().Layout(tpl.container.Width(), e.delegate.Metrics().CodeEditorHeight(cell.LineCount()))
	e.list.UpdateElementHeight(i, e.delegate.Height(cell))
}

func (e *Editor) statusLine() string {
	switch {
	case e.err != nil:
		return styles.StatusErrorStyle.Render(styles.IconWarning + " " + e.err.Error())
	case e.loading:
		return styles.StatusBarStyle.Render("opening " + e.input + "...")
	case e.doc == nil:
		return styles.StatusBarStyle.Render("no notebook")
	}

	parts := []string{
		styles.IconNotebook + " " + filepath.Base(e.doc.URI),
		fmt.Sprintf("cell %d/%d", e.list.Focused()+1, e.doc.Len()),
	}
	if e.editCell != nil {
		parts = append(parts, "editing")
	}
	return styles.StatusBarStyle.Render(strings.Join(parts, " · "))
}
