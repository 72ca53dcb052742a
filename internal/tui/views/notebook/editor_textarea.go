package notebook

import (
	"errors"
	"regexp"
	"slices"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/sahilm/fuzzy"
)

var errEditorDisposed = errors.New("editor disposed")

var editorKeys = struct {
	Tab     key.Binding
	Suggest key.Binding
	Copy    key.Binding
}{
	Tab:     key.NewBinding(key.WithKeys("tab")),
	Suggest: key.NewBinding(key.WithKeys("ctrl+space", "ctrl+@")),
	Copy:    key.NewBinding(key.WithKeys("ctrl+y")),
}

// deleteWordBackward is the textarea binding that removes the word left of
// the cursor.
var deleteWordBackward = tea.KeyPressMsg{Code: 'w', Mod: tea.ModCtrl}

// TextareaEditor is an EmbeddedEditor backed by a bubbles textarea.
type TextareaEditor struct {
	ta       textarea.Model
	opts     EditorOptions
	model    *TextModel
	copy     func(string) error
	disposed bool
}

var _ EmbeddedEditor = (*TextareaEditor)(nil)

// TextareaFactory creates TextareaEditors.
var TextareaFactory = EditorFactoryFunc(func(opts EditorOptions) (EmbeddedEditor, error) {
	return NewTextareaEditor(opts), nil
})

// NewTextareaEditor creates an editor configured by opts.
func NewTextareaEditor(opts EditorOptions) *TextareaEditor {
	ta := textarea.New()
	ta.Prompt = ""
	ta.ShowLineNumbers = opts.LineNumbers
	ta.CharLimit = 0
	ta.MaxHeight = 0

	cp := opts.Clipboard
	if cp == nil {
		cp = clipboard.WriteAll
	}

	if opts.TabSize < 1 {
		opts.TabSize = 4
	}

	return &TextareaEditor{ta: ta, opts: opts, copy: cp}
}

// SetModel binds a fresh text model.
func (e *TextareaEditor) SetModel(m *TextModel) {
	e.model = m
	e.ta.SetValue(m.Text)
	e.ta.MoveToBegin()
}

// Model returns the bound text model.
func (e *TextareaEditor) Model() *TextModel { return e.model }

// Layout sizes the editor.
func (e *TextareaEditor) Layout(width, height int) {
	e.ta.SetWidth(max(width, 1))
	e.ta.SetHeight(max(height, 1))
}

func (e *TextareaEditor) Focus() tea.Cmd { return e.ta.Focus() }
func (e *TextareaEditor) Blur()          { e.ta.Blur() }
func (e *TextareaEditor) Focused() bool  { return e.ta.Focused() }

// Value returns the current text and keeps the bound model in sync.
func (e *TextareaEditor) Value() string {
	v := e.ta.Value()
	if e.model != nil {
		e.model.Text = v
	}
	return v
}

// Options returns the options the editor was created with.
func (e *TextareaEditor) Options() EditorOptions { return e.opts }

// Update handles feature keys before passing msg to the textarea.
func (e *TextareaEditor) Update(msg tea.Msg) tea.Cmd {
	if e.disposed {
		return nil
	}

	if kp, ok := msg.(tea.KeyPressMsg); ok && e.ta.Focused() {
		switch {
		case key.Matches(kp, editorKeys.Tab):
			e.handleTab()
			return nil
		case key.Matches(kp, editorKeys.Suggest) && e.opts.Has(FeatureSuggest):
			e.complete()
			return nil
		case key.Matches(kp, editorKeys.Copy) && e.opts.Has(FeatureSelectionClipboard):
			_ = e.copy(e.ta.Value())
			return nil
		}
	}

	var cmd tea.Cmd
	e.ta, cmd = e.ta.Update(msg)
	return cmd
}

// View renders the editor.
func (e *TextareaEditor) View() string {
	if e.disposed {
		return errEditorDisposed.Error()
	}
	return e.ta.View()
}

// Dispose releases the editor. It renders nothing useful afterwards.
func (e *TextareaEditor) Dispose() {
	e.ta.Blur()
	e.ta.Reset()
	e.model = nil
	e.disposed = true
}

func (e *TextareaEditor) currentLine() (string, int) {
	lines := strings.Split(e.ta.Value(), "\n")
	row := e.ta.Line()
	if row < 0 || row >= len(lines) {
		return "", 0
	}
	info := e.ta.LineInfo()
	col := info.StartColumn + info.ColumnOffset
	return lines[row], col
}

func (e *TextareaEditor) handleTab() {
	line, col := e.currentLine()

	if e.opts.Has(FeatureSnippets) {
		if body, ok := e.opts.Snippets[tokenBefore(line, col)]; ok {
			e.ta, _ = e.ta.Update(deleteWordBackward)
			e.ta.InsertString(body)
			return
		}
	}

	if e.opts.Has(FeatureTabCompletion) && wordBefore(line, col) != "" {
		if e.complete() {
			return
		}
	}

	e.ta.InsertString(strings.Repeat(" ", e.opts.TabSize))
}

// complete inserts the rest of the best completion for the word left of
// the cursor. It reports whether anything was inserted.
func (e *TextareaEditor) complete() bool {
	line, col := e.currentLine()
	prefix := wordBefore(line, col)
	if prefix == "" {
		return false
	}

	candidate, ok := completionFor(prefix, identifiers(e.ta.Value()))
	if !ok {
		return false
	}
	e.ta.InsertString(candidate[len(prefix):])
	return true
}

var identRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// identifiers returns the distinct identifiers in text in order of first use.
func identifiers(text string) []string {
	var out []string
	for _, w := range identRe.FindAllString(text, -1) {
		if !slices.Contains(out, w) {
			out = append(out, w)
		}
	}
	return out
}

// completionFor picks the best-ranked word that extends prefix.
func completionFor(prefix string, words []string) (string, bool) {
	for _, m := range fuzzy.Find(prefix, words) {
		if m.Str != prefix && strings.HasPrefix(m.Str, prefix) {
			return m.Str, true
		}
	}
	return "", false
}

func isIdentRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// wordBefore returns the identifier characters immediately left of col.
func wordBefore(line string, col int) string {
	runes := []rune(line)
	col = min(max(col, 0), len(runes))
	start := col
	for start > 0 && isIdentRune(runes[start-1]) {
		start--
	}
	return string(runes[start:col])
}

// tokenBefore returns the non-space characters immediately left of col.
func tokenBefore(line string, col int) string {
	runes := []rune(line)
	col = min(max(col, 0), len(runes))
	start := col
	for start > 0 && runes[start-1] != ' ' && runes[start-1] != '\t' {
		start--
	}
	return string(runes[start:col])
}
