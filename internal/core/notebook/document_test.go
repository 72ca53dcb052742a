package notebook

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeCells() (*Document, []*Cell) {
	cells := []*Cell{
		NewMarkdownCell("# Title"),
		NewCodeCell("x = 1"),
		NewCodeCell("print(x)"),
	}
	orig := append([]*Cell(nil), cells...)
	return NewDocument("test.ipynb", cells), orig
}

func TestDocument_InsertCell(t *testing.T) {
	tests := []struct {
		name      string
		anchor    int
		dir       Direction
		wantIndex int
		wantOrder []int // original indices around the new cell (-1 marks the new cell)
	}{
		{name: "above first", anchor: 0, dir: DirectionAbove, wantIndex: 0, wantOrder: []int{-1, 0, 1, 2}},
		{name: "below first", anchor: 0, dir: DirectionBelow, wantIndex: 1, wantOrder: []int{0, -1, 1, 2}},
		{name: "above middle", anchor: 1, dir: DirectionAbove, wantIndex: 1, wantOrder: []int{0, -1, 1, 2}},
		{name: "below last", anchor: 2, dir: DirectionBelow, wantIndex: 3, wantOrder: []int{0, 1, 2, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, orig := threeCells()

			cell, idx, err := doc.InsertCell(orig[tt.anchor], tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIndex, idx)
			assert.Equal(t, CellTypeCode, cell.Type)
			assert.Empty(t, cell.Source)
			require.Equal(t, 4, doc.Len())

			for i, want := range tt.wantOrder {
				if want < 0 {
					assert.Same(t, cell, doc.At(i))
					continue
				}
				assert.Same(t, orig[want], doc.At(i), "position %d", i)
			}
		})
	}
}

func TestDocument_InsertCell_NotFound(t *testing.T) {
	doc, _ := threeCells()
	stranger := NewCodeCell("not mine")

	cell, _, err := doc.InsertCell(stranger, DirectionBelow)
	require.Error(t, err)
	assert.Nil(t, cell)
	assert.True(t, errors.Is(err, ErrCellNotFound))

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Same(t, stranger, nf.Cell)
	assert.Equal(t, 3, doc.Len(), "document must not change on a miss")
}

func TestDocument_InsertCell_NilAnchor(t *testing.T) {
	doc, _ := threeCells()

	_, _, err := doc.InsertCell(nil, DirectionAbove)
	require.ErrorIs(t, err, ErrCellNotFound)
	assert.Equal(t, 3, doc.Len())
}

func TestDocument_InsertCell_InvalidDirection(t *testing.T) {
	doc, orig := threeCells()

	_, _, err := doc.InsertCell(orig[0], Direction("sideways"))
	require.Error(t, err)
	assert.Equal(t, 3, doc.Len())
}

func TestDocument_CellsIsLiveView(t *testing.T) {
	doc, orig := threeCells()
	view := doc.Cells()
	assert.Same(t, orig[1], view[1])

	view[1].SetText("y = 2\nz = 3")
	assert.Equal(t, []string{"y = 2", "z = 3"}, doc.At(1).Source)
}

func TestDocument_IndexOfIsIdentityBased(t *testing.T) {
	a := NewCodeCell("same")
	b := NewCodeCell("same")
	doc := NewDocument("x", []*Cell{a, b})

	i, ok := doc.IndexOf(b)
	require.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("above")
	require.NoError(t, err)
	assert.Equal(t, DirectionAbove, d)

	_, err = ParseDirection("left")
	assert.Error(t, err)
}

func TestCell_TextRoundTrip(t *testing.T) {
	c := NewCodeCell()
	c.SetText("")
	assert.Empty(t, c.Source)
	assert.Equal(t, "", c.Text())

	c.SetText("a\n\nb")
	assert.Equal(t, 3, c.LineCount())
	assert.Equal(t, "a\n\nb", c.Text())
}
