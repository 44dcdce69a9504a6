package tui

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/gookit/color"

	"dungeonlayout/pkg/engine/terminal"
	"dungeonlayout/pkg/engine/world"
	"dungeonlayout/pkg/game/generator"
	"dungeonlayout/pkg/game/renderer"
	"dungeonlayout/pkg/game/text"
)

// Viewport margins and minimum sizes
const (
	ViewportMinRows    = 7
	ViewportMinCols    = 15
	ViewportSideMargin = 1
	// Lines needed outside viewport:
	// - Header + blank (2)
	// - Legend + blank (2)
	// - Clipping note, unreachable note (2)
	// - Prompt (1)
	ViewportTopMargin = 7
)

// dynamicGet is used for runtime translation key lookups from markup.
var dynamicGet = text.Get

// TUIRenderer draws layout previews to a terminal
type TUIRenderer struct {
	out io.Writer

	colorRoom     color.Style
	colorCorridor color.Style
	colorDoorStep color.Style
	colorPadding  color.Style
	colorStart    color.Style
	colorBoss     color.Style
	colorAction   color.Style
	colorDenied   color.Style
	colorSubtle   color.Style

	regexpStringFunctions *regexp.Regexp
}

// New creates a renderer whose viewport follows the size of out
func New(out io.Writer) *TUIRenderer {
	return &TUIRenderer{out: out}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.colorRoom = color.Style{color.FgGray}
	t.colorCorridor = color.Style{color.FgYellow}
	t.colorDoorStep = color.Style{color.FgCyan, color.OpBold}
	t.colorPadding = color.Style{color.FgGray}
	t.colorStart = color.Style{color.FgGreen, color.OpBold}
	t.colorBoss = color.Style{color.FgRed, color.OpBold}
	t.colorAction = color.Style{color.FgMagenta}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}

	t.regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:-]+)}`)
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(s string, style renderer.TextStyle) string {
	switch style {
	case renderer.StyleRoom:
		return t.colorRoom.Sprint(s)
	case renderer.StyleCorridor:
		return t.colorCorridor.Sprint(s)
	case renderer.StyleDoorStep:
		return t.colorDoorStep.Sprint(s)
	case renderer.StylePadding:
		return t.colorPadding.Sprint(s)
	case renderer.StyleStart:
		return t.colorStart.Sprint(s)
	case renderer.StyleBoss:
		return t.colorBoss.Sprint(s)
	case renderer.StyleAction:
		return t.colorAction.Sprint(s)
	case renderer.StyleDenied:
		return t.colorDenied.Sprint(s)
	case renderer.StyleSubtle:
		return t.colorSubtle.Sprint(s)
	default:
		return s
	}
}

// FormatText formats a message with the markup system
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	ret := fmt.Sprintf(msg, args...)

	matches := t.regexpStringFunctions.FindAllStringSubmatch(ret, -1)

	for _, match := range matches {
		function := match[1]
		operand := match[2]

		var val string

		switch function {
		case "GT":
			val = dynamicGet(operand)
		case "ACTION":
			val = t.colorAction.Sprint(operand)
		case "DENIED":
			val = t.colorDenied.Sprint(operand)
		case "SUBTLE":
			val = t.colorSubtle.Sprint(operand)
		default:
			ret = fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand)
			continue
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

// GetViewportSize returns the viewport dimensions based on terminal size
func (t *TUIRenderer) GetViewportSize() (rows, cols int) {
	termWidth, termHeight := terminal.SizeOf(t.out)

	cols = termWidth - (ViewportSideMargin * 2)
	rows = termHeight - ViewportTopMargin

	if cols < ViewportMinCols {
		cols = ViewportMinCols
	}
	if rows < ViewportMinRows {
		rows = ViewportMinRows
	}
	return rows, cols
}

// RenderLayout draws the occupied part of the layout, north up, clipped to
// the viewport.
func (t *TUIRenderer) RenderLayout(w io.Writer, l *generator.LevelLayout) error {
	rows, cols := t.GetViewportSize()
	win := renderer.Frame(l, rows, cols)
	kinds := roomKinds(l, win)

	var b strings.Builder
	b.WriteString(t.colorAction.Sprint(fmt.Sprintf(text.Get("PREVIEW_HEADER"), l.Seed(), l.Size(), l.Size(), len(l.Rooms()))))
	b.WriteString("\n\n")

	for y := win.MinY + win.Rows - 1; y >= win.MinY; y-- {
		b.WriteString(strings.Repeat(" ", ViewportSideMargin))
		for x := win.MinX; x < win.MinX+win.Cols; x++ {
			p := world.Pt(x, y)
			k, inRoom := kinds[p]
			icon, style := renderer.TileStyle(l.At(p), k, inRoom)
			b.WriteString(t.StyleText(icon, style))
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	b.WriteString(t.colorSubtle.Sprint(text.Get("PREVIEW_LEGEND")))
	b.WriteByte('\n')
	if win.Clipped(l) {
		b.WriteString(t.colorSubtle.Sprint(fmt.Sprintf(text.Get("PREVIEW_CLIPPED"), win.MinX, win.MinX+win.Cols-1, win.MinY, win.MinY+win.Rows-1)))
		b.WriteByte('\n')
	}
	if u := l.Unreachable(); len(u) > 0 {
		b.WriteString(t.colorDenied.Sprint(fmt.Sprintf(text.Get("PREVIEW_UNREACHABLE"), u)))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// roomKinds maps every room tile inside the window to its room's kind.
func roomKinds(l *generator.LevelLayout, win renderer.Window) map[world.Point]generator.RoomKind {
	kinds := make(map[world.Point]generator.RoomKind)
	for _, r := range l.Rooms() {
		if r.Kind == generator.KindBiome {
			continue
		}
		fw, fh := r.Footprint()
		for y := r.Origin.Y; y < r.Origin.Y+fh; y++ {
			for x := r.Origin.X; x < r.Origin.X+fw; x++ {
				if p := world.Pt(x, y); win.Contains(p) {
					kinds[p] = r.Kind
				}
			}
		}
	}
	return kinds
}
