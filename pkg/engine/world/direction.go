package world

// Direction represents a cardinal direction on the grid.
// +Y is North and +X is East.
type Direction int

// Direction constants
const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns all valid directions for iteration.
// The order is fixed; searches that iterate it are deterministic.
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is a valid cardinal direction
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Delta returns the unit offset for this direction
func (d Direction) Delta() Point {
	switch d {
	case North:
		return Point{X: 0, Y: 1}
	case East:
		return Point{X: 1, Y: 0}
	case South:
		return Point{X: 0, Y: -1}
	case West:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

// Degrees returns the clockwise rotation from North, seen from above.
func (d Direction) Degrees() int {
	if !d.IsValid() {
		return 0
	}
	return int(d) * 90
}

// FromDegrees maps a rotation to the cardinal it faces.
// Angles are normalized and snapped to the nearest quarter turn.
func FromDegrees(deg int) Direction {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return Direction(((deg + 45) / 90) % 4)
}
