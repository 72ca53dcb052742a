package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/nbview/internal/core/notebook"
	"github.com/hay-kot/nbview/pkg/iojson"
)

type LsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	pattern    string
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List notebooks under a directory",
		UsageText: "nbview ls [dir] [--json] [--glob pattern]",
		Description: `Finds notebooks matching notebook.discover_glob (default "**/*.{ipynb,md}")
and prints each path with its cell counts.

Use --json for one JSON object per notebook.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.StringFlag{
				Name:        "glob",
				Usage:       "override the discovery pattern",
				Destination: &cmd.pattern,
			},
		},
		Action: cmd.run,
	})

	return app
}

// notebookInfo is the JSON output format for nbview ls --json.
type notebookInfo struct {
	Path     string `json:"path"`
	Cells    int    `json:"cells"`
	Code     int    `json:"code"`
	Markdown int    `json:"markdown"`
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	dir := "."
	if c.Args().Len() > 0 {
		dir = c.Args().First()
	}

	pattern := cmd.pattern
	if pattern == "" {
		pattern = cmd.flags.Config.Notebook.DiscoverGlob
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("find notebooks: %w", err)
	}
	slices.Sort(matches)

	out := c.Root().Writer
	errOut := c.Root().ErrWriter

	if len(matches) == 0 {
		if !cmd.jsonOutput {
			_, _ = fmt.Fprintf(errOut, "No notebooks found in %s\n", dir)
		}
		return nil
	}

	resolver := notebook.NewFileResolver()

	var (
		infos  []notebookInfo
		broken []string
		errs   []error
	)
	for _, m := range matches {
		path := filepath.Join(dir, filepath.FromSlash(m))
		if !resolver.Supports(path) {
			continue
		}

		doc, err := resolver.Resolve(ctx, path)
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("skip notebook")
			broken = append(broken, path)
			errs = append(errs, err)
			continue
		}
		infos = append(infos, summarize(path, doc))
	}

	if cmd.jsonOutput {
		for _, info := range infos {
			if err := iojson.WriteLine(out, info); err != nil {
				return fmt.Errorf("encode notebook: %w", err)
			}
		}
		for i, p := range broken {
			_ = iojson.WriteError(errOut, "read notebook", map[string]any{"path": p, "error": errs[i].Error()})
		}
		return nil
	}

	if len(infos) > 0 {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "PATH\tCELLS\tCODE\tMARKDOWN")
		for _, info := range infos {
			_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", info.Path, info.Cells, info.Code, info.Markdown)
		}
		_ = w.Flush()
	}

	if len(broken) > 0 {
		_, _ = fmt.Fprintf(errOut, "Could not read %d notebook(s):\n", len(broken))
		for _, p := range broken {
			_, _ = fmt.Fprintf(errOut, "  %s\n", p)
		}
	}

	return nil
}

func summarize(path string, doc *notebook.Document) notebookInfo {
	info := notebookInfo{Path: path, Cells: doc.Len()}
	for _, cell := range doc.Cells() {
		if cell.IsMarkdown() {
			info.Markdown++
		} else {
			info.Code++
		}
	}
	return info
}
