// Package terminal wraps terminal capability queries for text renderers.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// IsInteractive reports whether stdout is attached to a terminal.
// Renderers use this to decide between live redraws and plain output.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
