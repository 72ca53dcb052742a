package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/nbview/internal/core/notebook"
	"github.com/hay-kot/nbview/internal/tui"
	"github.com/hay-kot/nbview/pkg/profiler"
	"github.com/hay-kot/nbview/pkg/utils"
)

type OpenCmd struct {
	flags *Flags

	noWatch      bool
	profilerPort int
}

// NewOpenCmd creates a new open command
func NewOpenCmd(flags *Flags) *OpenCmd {
	return &OpenCmd{flags: flags}
}

// Flags returns the TUI flags, shared by the open command and the root
// default action.
func (cmd *OpenCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "no-watch",
			Usage:       "do not reload the notebook when it changes on disk",
			Destination: &cmd.noWatch,
		},
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("NBVIEW_PROFILER_PORT"),
			Destination: &cmd.profilerPort,
		},
	}
}

// Register adds the open command to the application
func (cmd *OpenCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "open",
		Usage:     "Open a notebook in the terminal editor",
		UsageText: "nbview open <file>",
		Description: `Opens a Jupyter (.ipynb) or markdown (.md) notebook in a full-screen editor.

Keys: j/k move between cells, enter edits a code cell, esc stops editing,
m opens the cell menu, a/b insert a code cell above/below, q quits.`,
		Flags:  cmd.Flags(),
		Action: cmd.Run,
	})

	return app
}

// Run opens the notebook named by the first argument. Exported for use as
// the default action.
func (cmd *OpenCmd) Run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one notebook file")
	}
	path := c.Args().First()

	resolver := notebook.NewFileResolver()
	if !resolver.Supports(path) {
		return fmt.Errorf("open %s: %w", path, notebook.ErrUnsupportedFormat)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open notebook: %w", err)
	}

	if cmd.profilerPort > 0 {
		profServer := profiler.New(cmd.profilerPort)
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s/debug/pprof/", profServer.Addr())).
			Msg("profiler endpoint available")
	}

	cfg := cmd.flags.Config

	// Messages produced while the TUI owns the terminal are printed after it exits.
	notices := &utils.DeferredWriter{}
	defer func() { _ = notices.Flush(c.Root().ErrWriter) }()

	var watcher *tui.NotebookWatcher
	if cfg.Notebook.Watch && !cmd.noWatch {
		w, err := tui.NewNotebookWatcher(path, log.Logger)
		if err != nil {
			log.Warn().Err(err).Msg("file watching disabled")
			notices.Printf("warning: not watching %s: %v\n", path, err)
		} else {
			watcher = w
		}
	}

	for _, w := range cfg.Warnings() {
		notices.Printf("config: %s: %s\n", w.Category, w.Message)
	}

	m := tui.NewNotebook(ctx, tui.NotebookOptions{
		Path:     path,
		Config:   cfg,
		Resolver: resolver,
		Watcher:  watcher,
		Logger:   log.Logger,
	})

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, runErr := p.Run()

	if err := m.Close(); err != nil {
		log.Warn().Err(err).Msg("close notebook")
	}

	if runErr != nil {
		return fmt.Errorf("run notebook TUI: %w", runErr)
	}

	if err := m.Editor().Err(); err != nil {
		notices.Printf("%v\n", err)
	}
	return nil
}
