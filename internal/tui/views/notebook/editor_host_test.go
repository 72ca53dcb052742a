package notebook

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/nbview/internal/core/notebook"
	"github.com/hay-kot/nbview/internal/tui/testutil"
	"github.com/hay-kot/nbview/pkg/tuitest"
)

func TestEditor_OpenSingleCodeCell(t *testing.T) {
	doc := notebook.NewDocument("mem://one.ipynb", []*notebook.Cell{notebook.NewCodeCell("x=1")})
	e, _ := newTestEditor(newMemResolver(doc))
	e.Layout(40, 20)

	open(e, "mem://one.ipynb")

	require.Same(t, doc, e.Document())
	require.Equal(t, 1, e.List().Len())

	tpl, ok := e.List().TemplateFor(0)
	require.True(t, ok)
	assert.Equal(t, KindCode, tpl.Kind())

	m := e.Delegate().Metrics()
	assert.Equal(t, 4*m.LineHeight+m.CodeChrome, e.List().ElementHeight(0))
}

func TestEditor_InsertBelowSingleCell(t *testing.T) {
	doc := notebook.NewDocument("mem://one.ipynb", []*notebook.Cell{notebook.NewCodeCell("x=1")})
	e, _ := newTestEditor(newMemResolver(doc))
	e.Layout(40, 20)
	open(e, "mem://one.ipynb")

	require.NoError(t, e.InsertEmptyNotebookCell(doc.At(0), notebook.DirectionBelow))

	require.Equal(t, 2, doc.Len())
	added := doc.At(1)
	assert.Equal(t, notebook.CellTypeCode, added.Type)
	assert.Empty(t, added.Source)
	assert.Equal(t, 2, e.List().Len())
	assert.Equal(t, doc.Cells(), e.List().Cells())
	assert.Equal(t, 1, e.List().Focused())
}

func TestEditor_InsertAboveShiftsAnchor(t *testing.T) {
	a, b := notebook.NewMarkdownCell("# a"), notebook.NewCodeCell("b")
	doc := notebook.NewDocument("mem://nb.md", []*notebook.Cell{a, b})
	e, _ := newTestEditor(newMemResolver(doc))
	e.Layout(40, 30)
	open(e, "mem://nb.md")

	require.NoError(t, e.InsertEmptyNotebookCell(b, notebook.DirectionAbove))

	assert.Same(t, a, doc.At(0))
	assert.Same(t, b, doc.At(2))
	assert.Equal(t, doc.Cells(), e.List().Cells())
}

func TestEditor_InsertUnknownCell(t *testing.T) {
	doc := notebook.NewDocument("mem://one.ipynb", []*notebook.Cell{notebook.NewCodeCell("x=1")})
	e, _ := newTestEditor(newMemResolver(doc))
	e.Layout(40, 20)
	open(e, "mem://one.ipynb")

	err := e.InsertEmptyNotebookCell(notebook.NewCodeCell("stranger"), notebook.DirectionAbove)

	require.ErrorIs(t, err, notebook.ErrCellNotFound)
	var nf *notebook.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, 1, doc.Len())
	assert.Equal(t, 1, e.List().Len())
}

func TestEditor_InsertWithoutDocument(t *testing.T) {
	e, _ := newTestEditor(newMemResolver())
	err := e.InsertEmptyNotebookCell(notebook.NewCodeCell(), notebook.DirectionBelow)
	require.ErrorIs(t, err, ErrNoDocument)
}

func TestEditor_StaleOpenIsDropped(t *testing.T) {
	first := notebook.NewDocument("mem://first", []*notebook.Cell{notebook.NewCodeCell("1")})
	second := notebook.NewDocument("mem://second", []*notebook.Cell{notebook.NewCodeCell("2"), notebook.NewCodeCell("3")})
	resolver := newMemResolver(first, second)
	e, _ := newTestEditor(resolver)
	e.Layout(40, 20)

	cmdFirst := e.SetInput(context.Background(), "mem://first")
	cmdSecond := e.SetInput(context.Background(), "mem://second")

	e.Update(cmdSecond())
	require.Same(t, second, e.Document())

	// The first resolve was cancelled when the second started.
	msg := cmdFirst()
	require.ErrorIs(t, resolver.ctxs["mem://first"].Err(), context.Canceled)
	e.Update(msg)

	assert.Same(t, second, e.Document())
	assert.Equal(t, 2, e.List().Len())
	assert.NoError(t, e.Err())
}

func TestEditor_StaleSuccessIsDropped(t *testing.T) {
	first := notebook.NewDocument("mem://first", []*notebook.Cell{notebook.NewCodeCell("1")})
	second := notebook.NewDocument("mem://second", []*notebook.Cell{notebook.NewCodeCell("2")})
	e, _ := newTestEditor(newMemResolver(first, second))
	e.Layout(40, 20)

	cmd := e.SetInput(context.Background(), "mem://second")
	e.Update(DocumentOpenedMsg{Generation: 0, URI: "mem://first", Document: first})
	assert.Nil(t, e.Document())

	e.Update(cmd())
	assert.Same(t, second, e.Document())
}

func TestEditor_OpenFailure(t *testing.T) {
	e, _ := newTestEditor(newMemResolver())
	e.Layout(40, 10)

	open(e, "mem://missing")

	assert.Nil(t, e.Document())
	assert.False(t, e.Loading())
	require.Error(t, e.Err())
	assert.Contains(t, testutil.StripANSI(e.View()), "open mem://missing")
}

func TestEditor_ReloadKeepsFocus(t *testing.T) {
	doc := notebook.NewDocument("mem://nb", codeCells(5))
	resolver := newMemResolver(doc)
	e, _ := newTestEditor(resolver)
	e.Layout(40, 40)
	open(e, "mem://nb")

	e.List().Focus(3)

	resolver.docs["mem://nb"] = notebook.NewDocument("mem://nb", codeCells(5))
	open(e, "mem://nb")

	assert.Equal(t, 3, e.List().Focused())
}

func TestEditor_KeyboardInsert(t *testing.T) {
	doc := notebook.NewDocument("mem://nb", []*notebook.Cell{notebook.NewCodeCell("a"), notebook.NewCodeCell("b")})
	e, _ := newTestEditor(newMemResolver(doc))
	e.Layout(40, 40)
	open(e, "mem://nb")

	e.Update(tuitest.Key("j"))
	assert.Equal(t, 1, e.List().Focused())

	e.Update(tuitest.Key("b"))
	require.Equal(t, 3, doc.Len())
	assert.Empty(t, doc.At(2).Source)
	assert.Equal(t, 2, e.List().Focused())

	e.Update(tuitest.Key("a"))
	require.Equal(t, 4, doc.Len())
	assert.Empty(t, doc.At(2).Source)
	assert.Equal(t, doc.Cells(), e.List().Cells())
}

func TestEditor_MenuFromKeyboard(t *testing.T) {
	first := notebook.NewCodeCell("a")
	doc := notebook.NewDocument("mem://nb", []*notebook.Cell{first})
	e, _ := newTestEditor(newMemResolver(doc))
	e.Layout(40, 20)
	open(e, "mem://nb")

	e.Update(tuitest.Key("m"))
	require.True(t, e.Menu().IsOpen())

	view := testutil.StripANSI(e.View())
	assert.Contains(t, view, "Insert Code Cell Above")
	assert.Contains(t, view, "Insert Code Cell Below")

	e.Update(tuitest.Key("j"))
	e.Update(tuitest.Key("enter"))

	assert.False(t, e.Menu().IsOpen())
	require.Equal(t, 2, doc.Len())
	assert.Same(t, first, doc.At(0))
}

func TestEditor_GearClickOpensMenu(t *testing.T) {
	doc := notebook.NewDocument("mem://nb", codeCells(2))
	e, _ := newTestEditor(newMemResolver(doc))
	e.Layout(40, 20)
	open(e, "mem://nb")

	gp, ok := e.List().GearPosition(1)
	require.True(t, ok)

	e.Update(tuitest.Click(gp.X, gp.Y))
	require.True(t, e.Menu().IsOpen())
	assert.Equal(t, 1, e.List().Focused())
	assert.Equal(t, gp, e.Menu().Anchor())

	require.NoError(t, e.Menu().Select(ActionInsertAbove))
	require.Equal(t, 3, doc.Len())
	assert.Equal(t, 1, e.List().Focused())
	assert.Empty(t, doc.At(1).Source)
}

func TestEditor_EditCommitsSource(t *testing.T) {
	cell := notebook.NewCodeCell("x = 1")
	doc := notebook.NewDocument("mem://nb", []*notebook.Cell{cell})
	e, editors := newTestEditor(newMemResolver(doc))
	e.Layout(40, 30)
	open(e, "mem://nb")

	e.Update(tuitest.Key("enter"))
	require.True(t, e.Editing())
	require.True(t, editors.editors[0].Focused())

	for _, k := range []string{"enter", "y", "enter", "z", "enter", "w", "enter", "v"} {
		e.Update(tuitest.Key(k))
	}
	e.Update(tuitest.Key("esc"))

	assert.False(t, e.Editing())
	assert.Equal(t, []string{"x = 1", "y", "z", "w", "v"}, cell.Source)
	assert.Equal(t, DefaultMetrics.CodeRowHeight(5), e.List().ElementHeight(0))
	assert.Equal(t, 6, editors.editors[0].height)
}

func TestEditor_MarkdownIsNotEditable(t *testing.T) {
	doc := notebook.NewDocument("mem://nb", []*notebook.Cell{notebook.NewMarkdownCell("# hi")})
	e, _ := newTestEditor(newMemResolver(doc))
	e.Layout(40, 20)
	open(e, "mem://nb")

	e.Update(tuitest.Key("enter"))
	assert.False(t, e.Editing())
}

func TestEditor_QuitKey(t *testing.T) {
	e, _ := newTestEditor(newMemResolver())
	cmd := e.Update(tuitest.Key("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestEditor_Dispose(t *testing.T) {
	doc := notebook.NewDocument("mem://nb", codeCells(3))
	e, editors := newTestEditor(newMemResolver(doc))
	e.Layout(40, 40)
	open(e, "mem://nb")

	e.Dispose()

	assert.Nil(t, e.Document())
	assert.Equal(t, len(editors.editors), editors.disposed())
}

func TestEditor_MenuActionErrorShownInStatus(t *testing.T) {
	doc := notebook.NewDocument("mem://nb", codeCells(1))
	e, _ := newTestEditor(newMemResolver(doc))
	e.Layout(40, 20)
	open(e, "mem://nb")

	e.Menu().Show(Point{}, []MenuAction{{ID: "x", Label: "Broken", Run: func() error { return errors.New("nope") }}})
	e.Update(tuitest.Key("enter"))

	require.Error(t, e.Err())
	assert.Contains(t, testutil.StripANSI(e.View()), "nope")
}

func TestEditor_Scrolling(t *testing.T) {
	doc := notebook.NewDocument("mem://nb", codeCells(10))
	e, _ := newTestEditor(newMemResolver(doc))
	e.Layout(40, 13)
	open(e, "mem://nb")

	e.Update(tuitest.Wheel(1))
	assert.Equal(t, wheelStep, e.List().ScrollTop())

	e.Update(tuitest.Wheel(-1))
	assert.Equal(t, 0, e.List().ScrollTop())

	e.Update(tuitest.Key("ctrl+d"))
	assert.Equal(t, 6, e.List().ScrollTop())

	e.Update(tuitest.Key("ctrl+u"))
	assert.Equal(t, 0, e.List().ScrollTop())
}

func TestEditor_ClickFocusesRow(t *testing.T) {
	doc := notebook.NewDocument("mem://nb", codeCells(3))
	e, _ := newTestEditor(newMemResolver(doc))
	e.Layout(40, 30)
	open(e, "mem://nb")

	e.Update(tuitest.Click(10, 8))
	assert.Equal(t, 1, e.List().Focused())
	assert.False(t, e.Menu().IsOpen())
}

func TestEditor_View(t *testing.T) {
	doc := notebook.NewDocument("mem://view.ipynb", []*notebook.Cell{
		notebook.NewMarkdownCell("# Notes"),
		notebook.NewCodeCell("print(1)"),
	})
	engines := &engineFactory{}
	e := New(Options{
		Resolver:         newMemResolver(doc),
		HorizontalMargin: 2,
		EditorFactory:    &editorFactory{},
		MarkdownEngine:   engines.factory(),
		Logger:           zerolog.Nop(),
	})
	e.Layout(34, 10)
	open(e, "mem://view.ipynb")

	testutil.RequireGolden(t, tuitest.StripANSI(e.View()))
}
