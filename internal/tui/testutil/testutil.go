// Package testutil holds helpers shared by TUI tests.
package testutil

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"
)

// RequireGolden compares output with a golden file using golden.RequireEqual().
func RequireGolden(t *testing.T, output string) {
	t.Helper()
	golden.RequireEqual(t, []byte(output))
}

// StripANSI removes ANSI escape codes from content.
func StripANSI(content string) string {
	return ansi.Strip(content)
}

// TrimLines strips ANSI codes and trailing spaces from every line.
func TrimLines(content string) string {
	lines := strings.Split(StripANSI(content), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}
