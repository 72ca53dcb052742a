package tui

import (
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// notebookChangedMsg is sent when the watched notebook changes on disk.
type notebookChangedMsg struct {
	path string
}

// NotebookWatcher watches a single notebook file for changes.
//
// Editors usually save by writing a temp file and renaming it over the
// original, which drops a watch on the file itself, so the parent directory
// is watched and events are filtered by name.
type NotebookWatcher struct {
	watcher     *fsnotify.Watcher
	path        string
	debounceDur time.Duration
	log         zerolog.Logger
}

// NewNotebookWatcher creates a watcher for path.
func NewNotebookWatcher(path string, log zerolog.Logger) (*NotebookWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return &NotebookWatcher{
		watcher:     watcher,
		path:        abs,
		debounceDur: 100 * time.Millisecond,
		log:         log.With().Str("component", "watcher").Logger(),
	}, nil
}

// Start returns a command that blocks until the notebook changes.
func (w *NotebookWatcher) Start() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if !w.relevant(event) {
					continue
				}

				// Debounce: wait for changes to settle
				time.Sleep(w.debounceDur)

				drained := false
				for !drained {
					select {
					case <-w.watcher.Events:
					default:
						drained = true
					}
				}

				w.log.Debug().Str("path", w.path).Str("op", event.Op.String()).Msg("notebook changed")
				return notebookChangedMsg{path: w.path}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				w.log.Warn().Err(err).Msg("watch error")
			}
		}
	}
}

func (w *NotebookWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// Close stops the watcher.
func (w *NotebookWatcher) Close() error {
	return w.watcher.Close()
}
