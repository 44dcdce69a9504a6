// Package terminal reports the geometry of the output the preview is drawn to.
package terminal

import (
	"io"
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SizeOf returns the width and height of w when it is a terminal.
// Files, pipes and buffers get the defaults.
func SizeOf(w io.Writer) (width, height int) {
	f, ok := w.(*os.File)
	if !ok {
		return DefaultWidth, DefaultHeight
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// GetSize returns the size of standard output.
func GetSize() (width, height int) {
	return SizeOf(os.Stdout)
}
