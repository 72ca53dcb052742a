package notebook

import (
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/hay-kot/nbview/internal/core/config"
)

// EditorFeature names an optional capability of the embedded editor.
type EditorFeature string

const (
	FeatureMenuPrevention     EditorFeature = config.FeatureMenuPrevention
	FeatureSelectionClipboard EditorFeature = config.FeatureSelectionClipboard
	FeatureSuggest            EditorFeature = config.FeatureSuggest
	FeatureSnippets           EditorFeature = config.FeatureSnippets
	FeatureTabCompletion      EditorFeature = config.FeatureTabCompletion
)

// CellEditorFeatures is the curated feature set of an inline cell editor.
var CellEditorFeatures = []EditorFeature{
	FeatureMenuPrevention,
	FeatureSelectionClipboard,
	FeatureSuggest,
	FeatureSnippets,
	FeatureTabCompletion,
}

// EditorOptions configures an embedded editor. Features are passed in
// explicitly; there is no global registry of editor contributions.
type EditorOptions struct {
	Features    []EditorFeature
	LineNumbers bool
	TabSize     int
	Snippets    map[string]string

	// Display options of an inline cell.
	Minimap              bool
	FixedOverflowWidgets bool
	ScrollbarSize        int
	GutterDigits         int

	// Clipboard receives copied text. Nil uses the system clipboard.
	Clipboard func(string) error
}

// InlineCellOptions returns the options used for code cells.
func InlineCellOptions() EditorOptions {
	return EditorOptions{
		Features:             slices.Clone(CellEditorFeatures),
		LineNumbers:          true,
		TabSize:              4,
		Minimap:              false,
		FixedOverflowWidgets: true,
		ScrollbarSize:        1,
		GutterDigits:         1,
	}
}

// OptionsFromConfig builds inline cell options from the editor config.
func OptionsFromConfig(cfg config.EditorConfig) EditorOptions {
	opts := InlineCellOptions()
	opts.Features = opts.Features[:0]
	for _, f := range cfg.Features {
		opts.Features = append(opts.Features, EditorFeature(f))
	}
	opts.LineNumbers = cfg.LineNumbers
	opts.TabSize = cfg.TabSize
	opts.Snippets = cfg.Snippets
	return opts
}

// Has reports whether feature is enabled.
func (o EditorOptions) Has(feature EditorFeature) bool {
	return slices.Contains(o.Features, feature)
}

// TextModel is the text document bound to an editor.
type TextModel struct {
	URI  string
	Text string
}

var cellURISeq atomic.Uint64

// NewCellURI returns a virtual document identity for a cell rendered at
// row. The timestamp and sequence keep repeated renders of the same row
// distinct.
func NewCellURI(row int, now time.Time) string {
	return fmt.Sprintf("notebook-cell://%d/%d-%d", row, now.UnixNano(), cellURISeq.Add(1))
}

// EmbeddedEditor is a text-editing widget hosted inside a code row.
type EmbeddedEditor interface {
	SetModel(m *TextModel)
	Model() *TextModel
	Layout(width, height int)
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Value() string
	Update(msg tea.Msg) tea.Cmd
	View() string
	Options() EditorOptions
	Dispose()
}

// EditorFactory creates embedded editors.
type EditorFactory interface {
	NewEditor(opts EditorOptions) (EmbeddedEditor, error)
}

// EditorFactoryFunc adapts a function to EditorFactory.
type EditorFactoryFunc func(opts EditorOptions) (EmbeddedEditor, error)

func (f EditorFactoryFunc) NewEditor(opts EditorOptions) (EmbeddedEditor, error) {
	return f(opts)
}
