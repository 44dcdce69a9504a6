package generator

import (
	"fmt"

	"dungeonlayout/pkg/engine/world"
)

// GeometryKind is the hallway piece a renderer should place on a tile.
type GeometryKind int

const (
	Straight GeometryKind = iota
	Corner
	TJunction
	Cross
)

func (k GeometryKind) String() string {
	switch k {
	case Straight:
		return "straight"
	case Corner:
		return "corner"
	case TJunction:
		return "t-junction"
	case Cross:
		return "cross"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k GeometryKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *GeometryKind) UnmarshalText(b []byte) error {
	for _, c := range []GeometryKind{Straight, Corner, TJunction, Cross} {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown geometry kind %q", b)
}

// Neighbors records which cardinal neighbors of a tile are hallway.
type Neighbors struct {
	N, S, E, W bool
}

// Count returns how many sides are open.
func (n Neighbors) Count() int {
	c := 0
	for _, b := range [4]bool{n.N, n.S, n.E, n.W} {
		if b {
			c++
		}
	}
	return c
}

// Directive tells the renderer which piece to place where.
type Directive struct {
	Pos      world.Point  `json:"pos"`
	Kind     GeometryKind `json:"kind"`
	Rotation int          `json:"rotation"`
}

// Classify maps a neighbor pattern to a hallway piece and its rotation.
func Classify(n Neighbors) (GeometryKind, int) {
	switch n.Count() {
	case 4:
		return Cross, 0
	case 3:
		switch {
		case !n.N:
			return TJunction, 0
		case !n.E:
			return TJunction, 90
		case !n.S:
			return TJunction, 180
		default:
			return TJunction, 270
		}
	case 2:
		switch {
		case n.N && n.S:
			return Straight, 0
		case n.E && n.W:
			return Straight, 90
		case n.S && n.E:
			return Corner, 0
		case n.S && n.W:
			return Corner, 90
		case n.N && n.W:
			return Corner, 180
		default: // N && E
			return Corner, 270
		}
	case 1:
		if n.E || n.W {
			return Straight, 90
		}
		return Straight, 0
	default:
		return Straight, 0
	}
}

// NeighborsAt samples the hallway pattern around p.
func NeighborsAt(grid *world.Grid, p world.Point) Neighbors {
	return Neighbors{
		N: grid.At(p.Step(world.North)).Walkable(),
		S: grid.At(p.Step(world.South)).Walkable(),
		E: grid.At(p.Step(world.East)).Walkable(),
		W: grid.At(p.Step(world.West)).Walkable(),
	}
}

// Sweep classifies every corridor tile of the grid in row-major order.
// Door steps count as open neighbors but are left to the renderer.
func Sweep(grid *world.Grid) []Directive {
	var out []Directive
	grid.ForEachTile(func(p world.Point, t world.TileState) {
		if t != world.Corridor {
			return
		}
		kind, rot := Classify(NeighborsAt(grid, p))
		out = append(out, Directive{Pos: p, Kind: kind, Rotation: rot})
	})
	return out
}
