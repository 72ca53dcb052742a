package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader decodes a JSON document named by a --file flag, or piped on
// stdin when the flag is absent.
type FileReader[T any] struct {
	fileFlagValue string
	usage         string

	// stdin and isTerminal default to the process stdin.
	stdin      io.Reader
	isTerminal func() bool
}

// NewFileReader creates a reader whose flag shows usage.
func NewFileReader[T any](usage string) *FileReader[T] {
	return &FileReader[T]{usage: usage}
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	usage := fr.usage
	if usage == "" {
		usage = "path to JSON file (reads from stdin if not provided)"
	}
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       usage,
		Destination: &fr.fileFlagValue,
	}
}

// Source names where Read takes its input from.
func (fr *FileReader[T]) Source() string {
	if fr.fileFlagValue != "" {
		return fr.fileFlagValue
	}
	return "<stdin>"
}

func (fr *FileReader[T]) Read() (T, error) {
	var reader io.Reader
	var input T

	if fr.fileFlagValue != "" {
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	} else {
		stdin, isTerminal := fr.stdin, fr.isTerminal
		if stdin == nil {
			stdin = os.Stdin
			isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
		}
		if isTerminal != nil && isTerminal() {
			return input, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe JSON input")
		}
		reader = stdin
	}

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}
