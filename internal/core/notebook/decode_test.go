package notebook

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPynbDecoder(t *testing.T) {
	data := []byte(`{
  "nbformat": 4,
  "cells": [
    {"cell_type": "markdown", "source": ["# Heading\n", "Some text"]},
    {"cell_type": "code", "source": "x = 1\nprint(x)\n", "outputs": []},
    {"cell_type": "raw", "source": []},
    {"cell_type": "code", "source": null}
  ]
}`)

	cells, err := IPynbDecoder{}.Decode(data)
	require.NoError(t, err)
	require.Len(t, cells, 4)

	assert.Equal(t, CellTypeMarkdown, cells[0].Type)
	assert.Equal(t, []string{"# Heading", "Some text"}, cells[0].Source)

	assert.Equal(t, CellTypeCode, cells[1].Type)
	assert.Equal(t, []string{"x = 1", "print(x)"}, cells[1].Source)

	assert.Equal(t, CellTypeMarkdown, cells[2].Type)
	assert.Empty(t, cells[2].Source)

	assert.Empty(t, cells[3].Source)
}

func TestIPynbDecoder_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "invalid json", data: `{`},
		{name: "unknown type", data: `{"cells":[{"cell_type":"widget","source":""}]}`},
		{name: "bad source", data: `{"cells":[{"cell_type":"code","source":42}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := IPynbDecoder{}.Decode([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestMarkdownDecoder(t *testing.T) {
	src := "# Intro\n\nSome prose.\n\n```python\nx = 1\nprint(x)\n```\n\nMiddle text.\n\n```\nplain\n```\n"

	cells, err := MarkdownDecoder{}.Decode([]byte(src))
	require.NoError(t, err)
	require.Len(t, cells, 4)

	assert.Equal(t, CellTypeMarkdown, cells[0].Type)
	assert.Equal(t, []string{"# Intro", "", "Some prose."}, cells[0].Source)

	assert.Equal(t, CellTypeCode, cells[1].Type)
	assert.Equal(t, []string{"x = 1", "print(x)"}, cells[1].Source)

	assert.Equal(t, CellTypeMarkdown, cells[2].Type)
	assert.Equal(t, []string{"Middle text."}, cells[2].Source)

	assert.Equal(t, CellTypeCode, cells[3].Type)
	assert.Equal(t, []string{"plain"}, cells[3].Source)
}

func TestMarkdownDecoder_ProseOnly(t *testing.T) {
	cells, err := MarkdownDecoder{}.Decode([]byte("just text\n"))
	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.True(t, cells[0].IsMarkdown())
}

func TestMarkdownDecoder_UnterminatedFence(t *testing.T) {
	cells, err := MarkdownDecoder{}.Decode([]byte("intro\n\n```go\nfunc main() {}\n"))
	require.NoError(t, err)
	require.Len(t, cells, 2)
	assert.Equal(t, []string{"func main() {}"}, cells[1].Source)
}

func TestFileResolver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nb.ipynb")
	require.NoError(t, os.WriteFile(path, []byte(`{"cells":[{"cell_type":"code","source":["x=1"]}]}`), 0o644))

	r := NewFileResolver()
	doc, err := r.Resolve(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.URI)
	require.Equal(t, 1, doc.Len())
	assert.Equal(t, []string{"x=1"}, doc.At(0).Source)
}

func TestFileResolver_Errors(t *testing.T) {
	r := NewFileResolver()

	_, err := r.Resolve(context.Background(), "notes.txt")
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = r.Resolve(context.Background(), filepath.Join(t.TempDir(), "missing.ipynb"))
	require.Error(t, err)

	assert.True(t, r.Supports("A.IPYNB"))
	assert.False(t, r.Supports("a.py"))
}

func TestFileResolver_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nb.md")
	require.NoError(t, os.WriteFile(path, []byte("text"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileResolver().Resolve(ctx, path)
	require.ErrorIs(t, err, context.Canceled)
}
