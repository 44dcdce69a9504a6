package renderer

import (
	"io"

	"dungeonlayout/pkg/game/generator"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleRoom
	StyleCorridor
	StyleDoorStep
	StylePadding
	StyleStart
	StyleBoss
	StyleAction
	StyleDenied
	StyleSubtle
)

// Renderer defines the interface for layout preview backends.
type Renderer interface {
	// Init initializes the renderer (colors, markup)
	Init()

	// RenderLayout draws the layout, clipped to the viewport, to w
	RenderLayout(w io.Writer, l *generator.LevelLayout) error

	// StyleText applies a style to text and returns the styled string
	StyleText(text string, style TextStyle) string

	// FormatText formats a message with the renderer's markup system
	FormatText(msg string, args ...any) string

	// GetViewportSize returns the current viewport dimensions (rows, cols)
	GetViewportSize() (rows, cols int)
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Init initializes the current renderer
func Init() {
	if Current != nil {
		Current.Init()
	}
}

// RenderLayout draws l with the current renderer. Without one it does nothing.
func RenderLayout(w io.Writer, l *generator.LevelLayout) error {
	if Current != nil {
		return Current.RenderLayout(w, l)
	}
	return nil
}

// StyleText applies a style to text
func StyleText(text string, style TextStyle) string {
	if Current != nil {
		return Current.StyleText(text, style)
	}
	return text
}

// FormatText formats a message with markup
func FormatText(msg string, args ...any) string {
	if Current != nil {
		return Current.FormatText(msg, args...)
	}
	return msg
}

