package notebook

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/nbview/internal/core/config"
)

func TestWordBefore(t *testing.T) {
	tests := []struct {
		line string
		col  int
		want string
	}{
		{"print(val", 9, "val"},
		{"x.pri", 5, "pri"},
		{"abc def", 3, "abc"},
		{"abc def", 4, ""},
		{"", 0, ""},
		{"abc", 99, "abc"},
		{"héllo wörld", 11, "rld"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, wordBefore(tt.line, tt.col), "%q@%d", tt.line, tt.col)
	}
}

func TestTokenBefore(t *testing.T) {
	assert.Equal(t, "def", tokenBefore("    def", 7))
	assert.Equal(t, "x.pri", tokenBefore("a = x.pri", 9))
	assert.Equal(t, "", tokenBefore("a ", 2))
}

func TestIdentifiers(t *testing.T) {
	got := identifiers("value = compute(value, other_value)\nprint(value)")
	assert.Equal(t, []string{"value", "compute", "other_value", "print"}, got)
}

func TestCompletionFor(t *testing.T) {
	words := []string{"value", "validate", "other_value", "val"}

	got, ok := completionFor("val", words)
	require.True(t, ok)
	assert.Contains(t, []string{"value", "validate"}, got)

	_, ok = completionFor("zzz", words)
	assert.False(t, ok)

	_, ok = completionFor("value", []string{"value"})
	assert.False(t, ok, "the word itself is not a completion")
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig().Editor
	cfg.Features = []string{config.FeatureSuggest}
	cfg.TabSize = 2

	opts := OptionsFromConfig(cfg)

	assert.True(t, opts.Has(FeatureSuggest))
	assert.False(t, opts.Has(FeatureSnippets))
	assert.Equal(t, 2, opts.TabSize)
	assert.False(t, opts.Minimap)
}

func TestTextareaEditor_Basics(t *testing.T) {
	var copied string
	opts := InlineCellOptions()
	opts.Clipboard = func(s string) error { copied = s; return nil }

	ed := NewTextareaEditor(opts)
	ed.SetModel(&TextModel{URI: "notebook-cell://0/1-1", Text: "a = 1\nb = 2"})
	ed.Layout(30, 4)

	assert.Equal(t, "a = 1\nb = 2", ed.Value())
	assert.Equal(t, "notebook-cell://0/1-1", ed.Model().URI)

	ed.Focus()
	require.True(t, ed.Focused())

	ed.Update(tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl})
	assert.Equal(t, "a = 1\nb = 2", copied)

	ed.Blur()
	assert.False(t, ed.Focused())

	ed.Dispose()
	assert.Nil(t, ed.Model())
	assert.Nil(t, ed.Update(tea.KeyPressMsg{Code: 'x', Text: "x"}))
}

func TestTextareaEditor_TabInsertsSpaces(t *testing.T) {
	opts := InlineCellOptions()
	opts.Features = nil
	opts.TabSize = 2

	ed := NewTextareaEditor(opts)
	ed.SetModel(&TextModel{Text: ""})
	ed.Layout(30, 4)
	ed.Focus()

	ed.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, "  ", ed.Value())
}

func TestTextareaEditor_SnippetExpansion(t *testing.T) {
	opts := InlineCellOptions()
	opts.Snippets = map[string]string{"pr": "print()"}

	ed := NewTextareaEditor(opts)
	ed.SetModel(&TextModel{Text: ""})
	ed.Layout(30, 4)
	ed.Focus()

	ed.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})
	ed.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	ed.Update(tea.KeyPressMsg{Code: tea.KeyTab})

	assert.Equal(t, "print()", ed.Value())
}
