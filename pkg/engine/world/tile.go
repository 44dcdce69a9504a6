// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based generator.
package world

// TileState is the occupancy of a single grid cell.
type TileState uint8

const (
	Void TileState = iota // free; the only state new rooms and corridors may claim
	Room
	Corridor
	DoorStep
	Padding // 1-tile ring kept around every room
)

// String returns the string representation of a tile state
func (t TileState) String() string {
	switch t {
	case Void:
		return "Void"
	case Room:
		return "Room"
	case Corridor:
		return "Corridor"
	case DoorStep:
		return "DoorStep"
	case Padding:
		return "Padding"
	default:
		return "Unknown"
	}
}

// Walkable reports whether corridors connect through this tile.
func (t TileState) Walkable() bool {
	return t == Corridor || t == DoorStep
}

// Blocking reports whether the corridor pathfinder must route around this tile.
func (t TileState) Blocking() bool {
	return t == Room || t == Padding
}

// Symbol returns the single-character symbol used in map dumps.
func (t TileState) Symbol() rune {
	switch t {
	case Room:
		return '#'
	case Corridor:
		return '.'
	case DoorStep:
		return 'D'
	case Padding:
		return ':'
	default:
		return ' '
	}
}
