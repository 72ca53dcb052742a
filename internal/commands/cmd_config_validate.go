package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/nbview/internal/core/config"
	"github.com/hay-kot/nbview/internal/core/styles"
	"github.com/hay-kot/nbview/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "nbview config validate [options]",
				Description: "Validates the configuration file, checking the theme, discovery glob, editor features and snippets.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationError is one failed check.
type validationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type validationReport struct {
	Valid    bool                       `json:"valid"`
	Path     string                     `json:"path"`
	Errors   []validationError          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	report := buildReport(cmd.flags.Config, cmd.flags.ConfigPath)

	out := c.Root().Writer
	if cmd.format == "json" {
		if err := iojson.WriteWith(out, c.Root().ErrWriter, report); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	} else {
		writeReport(out, report)
	}

	if !report.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func buildReport(cfg *config.Config, path string) validationReport {
	report := validationReport{Path: path, Warnings: cfg.Warnings()}

	err := cfg.ValidateDeep(path)
	if err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				report.Errors = append(report.Errors, validationError{Field: fe.Field, Message: fe.Err.Error()})
			}
		} else {
			report.Errors = append(report.Errors, validationError{Message: err.Error()})
		}
	}

	report.Valid = len(report.Errors) == 0
	return report
}

func writeReport(w io.Writer, report validationReport) {
	_, _ = fmt.Fprintln(w, styles.CommandHeaderStyle.Render("config: "+report.Path))

	for _, warn := range report.Warnings {
		line := fmt.Sprintf("warning %s: %s", warn.Category, warn.Message)
		if warn.Item != "" {
			line += fmt.Sprintf(" (%s)", warn.Item)
		}
		_, _ = fmt.Fprintln(w, styles.TextMutedStyle.Render(line))
	}

	for _, e := range report.Errors {
		line := e.Message
		if e.Field != "" {
			line = e.Field + ": " + line
		}
		_, _ = fmt.Fprintln(w, styles.ErrorTextStyle.Render("✗ "+line))
	}

	_, _ = fmt.Fprintln(w)
	if report.Valid {
		_, _ = fmt.Fprintln(w, styles.SuccessTextStyle.Render("✓ Configuration is valid"))
		return
	}
	_, _ = fmt.Fprintln(w, styles.ErrorTextStyle.Render(fmt.Sprintf("%d error(s) found", len(report.Errors))))
}
