package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/nbview/internal/core/notebook"
	"github.com/hay-kot/nbview/internal/core/styles"
	nbview "github.com/hay-kot/nbview/internal/tui/views/notebook"
	"github.com/hay-kot/nbview/pkg/iojson"
)

type CellsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	width      int
	input      *iojson.FileReader[json.RawMessage]

	// engine measures markdown rows; nil uses glamour with the active theme.
	engine nbview.MarkdownEngine
}

// NewCellsCmd creates a new cells command
func NewCellsCmd(flags *Flags) *CellsCmd {
	return &CellsCmd{
		flags: flags,
		input: iojson.NewFileReader[json.RawMessage]("path to .ipynb JSON (reads from stdin if no notebook argument is given)"),
	}
}

// Register adds the cells command to the application
func (cmd *CellsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "cells",
		Usage:     "Print the cell layout of a notebook",
		UsageText: "nbview cells [file] [--width N] [--json]\ncat nb.ipynb | nbview cells",
		Description: `Prints every cell with its kind, line count and row height as the editor
would lay it out at the given width. Markdown rows are rendered to measure
their height.

Without a file argument, nbformat JSON is read from -f or stdin.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.IntFlag{
				Name:        "width",
				Usage:       "row width used to measure markdown cells",
				Value:       80,
				Destination: &cmd.width,
			},
			cmd.input.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

// cellInfo is the JSON output format for nbview cells --json.
type cellInfo struct {
	Index    int    `json:"index"`
	Kind     string `json:"kind"`
	Lines    int    `json:"lines"`
	Height   int    `json:"height"`
	Measured bool   `json:"measured"`
}

func (cmd *CellsCmd) run(ctx context.Context, c *cli.Command) error {
	doc, err := cmd.load(ctx, c)
	if err != nil {
		return err
	}

	nb := cmd.flags.Config.Notebook
	delegate := nbview.NewRowDelegate(nbview.Metrics{
		LineHeight:          nb.LineHeight,
		CodeChrome:          nb.CodeChrome,
		MarkdownPlaceholder: nb.MarkdownPlaceholder,
	})

	engine := cmd.engine
	if engine == nil {
		engine = nbview.NewGlamourEngine(styles.GlamourStyle())
	}

	infos := make([]cellInfo, 0, doc.Len())
	for i, cell := range doc.Cells() {
		info := cellInfo{
			Index:  i,
			Kind:   string(cell.Type),
			Lines:  cell.LineCount(),
			Height: delegate.Height(cell),
		}

		if delegate.HasDynamicHeight(cell) {
			body, err := engine.Render(cell.Text(), delegate.BodyWidth(cmd.width))
			if err != nil {
				log.Warn().Err(err).Int("index", i).Msg("measure markdown cell")
			} else {
				info.Height = delegate.MeasuredHeight(body)
				info.Measured = true
			}
		}
		infos = append(infos, info)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, info := range infos {
			if err := iojson.WriteLine(out, info); err != nil {
				return fmt.Errorf("encode cell: %w", err)
			}
		}
		return nil
	}

	total := 0
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "INDEX\tKIND\tLINES\tHEIGHT")
	for _, info := range infos {
		height := fmt.Sprint(info.Height)
		if !info.Measured && info.Kind == string(notebook.CellTypeMarkdown) {
			height += "*"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", info.Index, info.Kind, info.Lines, height)
		total += info.Height
	}
	_ = w.Flush()
	_, _ = fmt.Fprintf(out, "\n%d cells, %d rows\n", len(infos), total)

	return nil
}

// load resolves the notebook argument, or decodes nbformat JSON from the
// file flag or stdin.
func (cmd *CellsCmd) load(ctx context.Context, c *cli.Command) (*notebook.Document, error) {
	if c.Args().Len() > 0 {
		path := c.Args().First()
		doc, err := notebook.NewFileResolver().Resolve(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("load notebook: %w", err)
		}
		return doc, nil
	}

	raw, err := cmd.input.Read()
	if err != nil {
		return nil, fmt.Errorf("read notebook: %w", err)
	}

	cells, err := notebook.IPynbDecoder{}.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", cmd.input.Source(), err)
	}

	return notebook.NewDocument(cmd.input.Source(), cells), nil
}
