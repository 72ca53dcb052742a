package tui

import (
	"context"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/hay-kot/nbview/internal/core/config"
	corenb "github.com/hay-kot/nbview/internal/core/notebook"
	"github.com/hay-kot/nbview/internal/core/styles"
	"github.com/hay-kot/nbview/internal/tui/components"
	nbview "github.com/hay-kot/nbview/internal/tui/views/notebook"
)

// NotebookOptions configures the notebook TUI.
type NotebookOptions struct {
	Path     string
	Config   *config.Config
	Resolver corenb.Resolver // nil reads from disk
	Watcher  *NotebookWatcher
	Logger   zerolog.Logger
}

// NotebookModel is the full-screen notebook editor.
type NotebookModel struct {
	ctx      context.Context
	editor   *nbview.Editor
	watcher  *NotebookWatcher
	path     string
	mouse    bool
	quitting bool

	help          *components.HelpDialog
	helpOpen      bool
	width, height int
}

// NewNotebook creates the notebook TUI model.
func NewNotebook(ctx context.Context, opts NotebookOptions) *NotebookModel {
	cfg := opts.Config
	if cfg == nil {
		def := config.DefaultConfig()
		cfg = &def
	}

	editor := nbview.New(nbview.Options{
		Resolver: opts.Resolver,
		Metrics: nbview.Metrics{
			LineHeight:          cfg.Notebook.LineHeight,
			CodeChrome:          cfg.Notebook.CodeChrome,
			MarkdownPlaceholder: cfg.Notebook.MarkdownPlaceholder,
		},
		HorizontalMargin: cfg.Notebook.HorizontalMargin,
		Editor:           nbview.OptionsFromConfig(cfg.Editor),
		MarkdownEngine:   nbview.GlamourEngineFactory(styles.GlamourStyle()),
		Theme:            styles.CurrentPalette,
		Logger:           opts.Logger,
	})

	return &NotebookModel{
		ctx:     ctx,
		editor:  editor,
		watcher: opts.Watcher,
		path:    opts.Path,
		mouse:   cfg.TUI.MouseEnabled(),
		help:    newHelpDialog(editor.Keys()),
	}
}

func newHelpDialog(keys nbview.KeyMap) *components.HelpDialog {
	groups := keys.FullHelp()
	return components.NewHelpDialog("Keyboard shortcuts",
		components.HelpSection{Title: "Navigate", Bindings: groups[0]},
		components.HelpSection{Title: "Edit", Bindings: groups[1]},
		components.HelpSection{Title: "Cells", Bindings: groups[2]},
	)
}

// HelpOpen reports whether the help dialog is shown.
func (m *NotebookModel) HelpOpen() bool { return m.helpOpen }

// Editor returns the notebook panel.
func (m *NotebookModel) Editor() *nbview.Editor { return m.editor }

// Init implements tea.Model.
func (m *NotebookModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.editor.SetInput(m.ctx, m.path)}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.Start())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *NotebookModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.editor.Layout(msg.Width, msg.Height)
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.helpOpen {
			if msg.String() == "esc" || key.Matches(msg, m.editor.Keys().Help) {
				m.helpOpen = false
			}
			return m, nil
		}
		if !m.editor.Editing() && !m.editor.Menu().IsOpen() && key.Matches(msg, m.editor.Keys().Help) {
			m.helpOpen = true
			return m, nil
		}

	case notebookChangedMsg:
		// A file that was edited in the TUI is not reloaded over the edits.
		if m.editor.Editing() {
			return m, m.watcher.Start()
		}
		return m, tea.Batch(m.editor.SetInput(m.ctx, m.path), m.watcher.Start())
	}

	cmd := m.editor.Update(msg)
	return m, cmd
}

func (m *NotebookModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// Close releases the panel and stops watching. Call it after the program
// exits.
func (m *NotebookModel) Close() error {
	m.editor.Dispose()
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}

// View implements tea.Model.
func (m *NotebookModel) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	content := m.editor.View()
	if m.helpOpen {
		content = m.help.Overlay(content, m.width, m.height)
	}

	v := tea.NewView(content)
	v.AltScreen = true
	if m.mouse {
		v.MouseMode = tea.MouseModeCellMotion
	}
	return v
}
