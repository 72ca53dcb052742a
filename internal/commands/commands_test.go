package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/nbview/internal/core/config"
)

type registrar interface {
	Register(app *cli.Command) *cli.Command
}

type output struct {
	stdout, stderr bytes.Buffer
}

func runApp(t *testing.T, cmd registrar, args ...string) (*output, error) {
	t.Helper()

	out := &output{}
	app := &cli.Command{
		Name:           "nbview",
		Writer:         &out.stdout,
		ErrWriter:      &out.stderr,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	cmd.Register(app)

	err := app.Run(context.Background(), append([]string{"nbview"}, args...))
	return out, err
}

func testFlags(t *testing.T) *Flags {
	t.Helper()
	cfg := config.DefaultConfig()
	return &Flags{Config: &cfg}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const sampleIPynb = `{
  "nbformat": 4,
  "cells": [
    {"cell_type": "markdown", "source": ["# Title\n", "body"]},
    {"cell_type": "code", "source": "x = 1\ny = 2"}
  ]
}`
