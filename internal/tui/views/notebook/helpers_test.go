package notebook

import (
	"context"
	"errors"
	"strings"
	"sync"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/hay-kot/nbview/internal/core/notebook"
	"github.com/hay-kot/nbview/internal/core/styles"
)

// fakeEditor is an EmbeddedEditor that renders its text verbatim.
type fakeEditor struct {
	opts          EditorOptions
	model         *TextModel
	value         string
	width, height int
	focused       bool
	disposed      bool
}

func (f *fakeEditor) SetModel(m *TextModel) { f.model, f.value = m, m.Text }
func (f *fakeEditor) Model() *TextModel      { return f.model }
func (f *fakeEditor) Layout(w, h int)        { f.width, f.height = w, h }
func (f *fakeEditor) Focus() tea.Cmd         { f.focused = true; return nil }
func (f *fakeEditor) Blur()                  { f.focused = false }
func (f *fakeEditor) Focused() bool          { return f.focused }
func (f *fakeEditor) Value() string          { return f.value }
func (f *fakeEditor) Options() EditorOptions { return f.opts }
func (f *fakeEditor) Dispose()               { f.disposed = true }

func (f *fakeEditor) Update(msg tea.Msg) tea.Cmd {
	kp, ok := msg.(tea.KeyPressMsg)
	if !ok || !f.focused {
		return nil
	}
	switch {
	case kp.Code == tea.KeyEnter:
		f.value += "\n"
	case kp.Text != "":
		f.value += kp.Text
	}
	return nil
}

func (f *fakeEditor) View() string {
	lines := strings.Split(f.value, "\n")
	for len(lines) < f.height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:min(len(lines), max(f.height, 0))], "\n")
}

// editorFactory records every editor it creates.
type editorFactory struct {
	editors []*fakeEditor
	fail    error
}

func (f *editorFactory) NewEditor(opts EditorOptions) (EmbeddedEditor, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	ed := &fakeEditor{opts: opts}
	f.editors = append(f.editors, ed)
	return ed, nil
}

func (f *editorFactory) disposed() int {
	n := 0
	for _, ed := range f.editors {
		if ed.disposed {
			n++
		}
	}
	return n
}

var errRender = errors.New("boom")

// echoEngine renders markdown source unchanged. Sources containing
// "!fail" return errRender.
type echoEngine struct{}

func (echoEngine) Render(source string, _ int) (string, error) {
	if strings.Contains(source, "!fail") {
		return "", errRender
	}
	return source, nil
}

type engineFactory struct {
	created int
}

func (f *engineFactory) factory() MarkdownEngineFactory {
	return func() (MarkdownEngine, error) {
		f.created++
		return echoEngine{}, nil
	}
}

type menuCall struct {
	anchor  Point
	actions []MenuAction
}

type recordingMenu struct {
	calls []menuCall
}

func (m *recordingMenu) Show(anchor Point, actions []MenuAction) {
	m.calls = append(m.calls, menuCall{anchor: anchor, actions: actions})
}

type insertCall struct {
	cell *notebook.Cell
	dir  notebook.Direction
}

type recordingHandler struct {
	calls []insertCall
}

func (h *recordingHandler) InsertEmptyNotebookCell(cell *notebook.Cell, dir notebook.Direction) error {
	h.calls = append(h.calls, insertCall{cell: cell, dir: dir})
	return nil
}

// newTestList builds a list view with fake engines and editors.
func newTestList(menu ContextMenuService, handler InsertHandler) (*ListView, *editorFactory, *CodeRenderer) {
	delegate := NewRowDelegate(DefaultMetrics)
	editors := &editorFactory{}
	engines := &engineFactory{}
	log := zerolog.Nop()

	md := NewMarkdownRenderer(engines.factory(), menu, handler, log)
	code := NewCodeRenderer(delegate, editors, InlineCellOptions(), menu, handler, log)
	return NewListView(delegate, styles.CurrentPalette, log, md, code), editors, code
}

// memResolver serves documents from memory.
type memResolver struct {
	mu   sync.Mutex
	docs map[string]*notebook.Document
	ctxs map[string]context.Context
}

func newMemResolver(docs ...*notebook.Document) *memResolver {
	r := &memResolver{docs: map[string]*notebook.Document{}, ctxs: map[string]context.Context{}}
	for _, d := range docs {
		r.docs[d.URI] = d
	}
	return r
}

func (r *memResolver) Resolve(ctx context.Context, uri string) (*notebook.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctxs[uri] = ctx
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, ok := r.docs[uri]
	if !ok {
		return nil, errors.New("not found")
	}
	return doc, nil
}

func newTestEditor(resolver notebook.Resolver) (*Editor, *editorFactory) {
	editors := &editorFactory{}
	engines := &engineFactory{}
	e := New(Options{
		Resolver:       resolver,
		Metrics:        DefaultMetrics,
		EditorFactory:  editors,
		MarkdownEngine: engines.factory(),
		Logger:         zerolog.Nop(),
	})
	return e, editors
}

// open resolves uri synchronously and applies the result.
func open(e *Editor, uri string) {
	cmd := e.SetInput(context.Background(), uri)
	e.Update(cmd())
}
