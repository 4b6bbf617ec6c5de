// Package terminal reports properties of the terminal a report is printed to.
package terminal

import (
	"io"
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24

	// MaxWidth caps the report width on very wide terminals.
	MaxWidth = 120
)

// GetSize returns the width and height of the terminal behind w.
// Falls back to defaults if w is not a terminal.
func GetSize(w io.Writer) (width, height int) {
	f, ok := w.(*os.File)
	if !ok {
		return DefaultWidth, DefaultHeight
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// GetWidth returns the usable report width for w, between DefaultWidth/2
// and MaxWidth.
func GetWidth(w io.Writer) int {
	width, _ := GetSize(w)
	if width > MaxWidth {
		return MaxWidth
	}
	if width < DefaultWidth/2 {
		return DefaultWidth / 2
	}
	return width
}

// IsTerminal returns true if w is attached to a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
