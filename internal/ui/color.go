// Package ui provides terminal output helpers for skillref.
package ui

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Color functions for styled output.
var (
	// Success is used for valid skills (green).
	Success = color.New(color.FgGreen).SprintFunc()
	// Failure is used for validation failures (red).
	Failure = color.New(color.FgRed).SprintFunc()
	// Info is used for informational messages (cyan).
	Info = color.New(color.FgCyan).SprintFunc()
	// Bold is used for skill names and emphasis.
	Bold = color.New(color.Bold).SprintFunc()
	// Dim is used for secondary details like paths.
	Dim = color.New(color.Faint).SprintFunc()
)

// Status symbols.
const (
	SymbolValid   = "✓"
	SymbolInvalid = "✗"
)

// StatusValid returns a green checkmark with optional message.
func StatusValid(msg string) string {
	if msg == "" {
		return Success(SymbolValid)
	}
	return Success(SymbolValid) + " " + msg
}

// StatusInvalid returns a red X with optional message.
func StatusInvalid(msg string) string {
	if msg == "" {
		return Failure(SymbolInvalid)
	}
	return Failure(SymbolInvalid) + " " + msg
}

// DisableColors disables all color output, for piped output or --no-color.
func DisableColors() {
	color.NoColor = true
}

// EnableColors enables color output.
func EnableColors() {
	color.NoColor = false
}

// IsColorEnabled returns whether colors are currently enabled.
func IsColorEnabled() bool {
	return !color.NoColor
}

// IsTerminal reports whether w is attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Truncate shortens s to at most width display cells, appending an ellipsis
// when content was cut. Widths are measured per cell so CJK descriptions
// truncate cleanly.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
