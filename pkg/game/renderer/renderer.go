package renderer

import (
	"dungeonlayout/pkg/engine/world"
	"dungeonlayout/pkg/game/generator"
)

// Icon constants for the layout preview
const (
	IconRoom     = "▒"
	IconCorridor = "░"
	IconDoorStep = "□"
	IconPadding  = "·"
	IconVoid     = " "
	IconStart    = "◎"
	IconBoss     = "◆"
)

// Window is the part of the grid a preview shows. MinY is the bottom row;
// previews print rows from MinY+Rows-1 down to MinY so north is up.
type Window struct {
	MinX, MinY int
	Cols, Rows int
}

// Contains reports whether p is inside the window.
func (w Window) Contains(p world.Point) bool {
	return p.X >= w.MinX && p.X < w.MinX+w.Cols && p.Y >= w.MinY && p.Y < w.MinY+w.Rows
}

// Clipped reports whether the window hides part of the occupied area.
func (w Window) Clipped(l *generator.LevelLayout) bool {
	lo, hi, ok := Bounds(l)
	if !ok {
		return false
	}
	return !w.Contains(lo) || !w.Contains(hi)
}

// Bounds returns the corners of the smallest rectangle holding every
// non-void tile. ok is false for an empty grid.
func Bounds(l *generator.LevelLayout) (lo, hi world.Point, ok bool) {
	size := l.Size()
	lo = world.Pt(size, size)
	hi = world.Pt(-1, -1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if l.At(world.Pt(x, y)) == world.Void {
				continue
			}
			lo.X, lo.Y = min(lo.X, x), min(lo.Y, y)
			hi.X, hi.Y = max(hi.X, x), max(hi.Y, y)
		}
	}
	return lo, hi, hi.X >= 0
}

// Frame picks a window of at most rows×cols tiles centered on the occupied
// area of l, with a one tile margin when it fits, and kept on the grid.
func Frame(l *generator.LevelLayout, rows, cols int) Window {
	size := l.Size()
	rows, cols = min(max(rows, 1), size), min(max(cols, 1), size)

	lo, hi, ok := Bounds(l)
	if !ok {
		c := world.Pt(size/2, size/2)
		lo, hi = c, c
	}
	lo = world.Pt(max(lo.X-1, 0), max(lo.Y-1, 0))
	hi = world.Pt(min(hi.X+1, size-1), min(hi.Y+1, size-1))

	w := Window{Cols: min(cols, hi.X-lo.X+1), Rows: min(rows, hi.Y-lo.Y+1)}
	w.MinX = fit(lo.X, hi.X, w.Cols, size)
	w.MinY = fit(lo.Y, hi.Y, w.Rows, size)
	return w
}

// fit places a span of n tiles over [lo,hi]: flush with lo when it covers
// the range, centered on it otherwise.
func fit(lo, hi, n, size int) int {
	if hi-lo+1 <= n {
		return lo
	}
	return max(0, min((lo+hi)/2-n/2, size-n))
}

// TileStyle returns the icon and style for one tile, with the start and boss
// rooms picked out.
func TileStyle(t world.TileState, kind generator.RoomKind, inRoom bool) (string, TextStyle) {
	switch t {
	case world.Room:
		if inRoom && kind == generator.KindStart {
			return IconStart, StyleStart
		}
		if inRoom && kind == generator.KindBoss {
			return IconBoss, StyleBoss
		}
		return IconRoom, StyleRoom
	case world.Corridor:
		return IconCorridor, StyleCorridor
	case world.DoorStep:
		return IconDoorStep, StyleDoorStep
	case world.Padding:
		return IconPadding, StylePadding
	default:
		return IconVoid, StyleNormal
	}
}
