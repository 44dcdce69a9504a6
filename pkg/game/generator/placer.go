package generator

import (
	"fmt"

	"dungeonlayout/pkg/engine/world"
)

// RoomKind distinguishes the start and boss rooms from ordinary biome rooms.
type RoomKind int

const (
	KindStart RoomKind = iota
	KindBiome
	KindBoss
)

func (k RoomKind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindBiome:
		return "biome"
	case KindBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k RoomKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *RoomKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "start":
		*k = KindStart
	case "biome":
		*k = KindBiome
	case "boss":
		*k = KindBoss
	default:
		return fmt.Errorf("unknown room kind %q", b)
	}
	return nil
}

// RoomSpec is a room waiting to be placed.
type RoomSpec struct {
	Kind        RoomKind
	Width       int
	Height      int
	DoorOffset  world.Point // prefab-local, on the DoorSide edge
	DoorSide    int
	RotationFix int
	BiomeID     int
}

// RoomPlacement records where a room landed.
type RoomPlacement struct {
	Index           int         `json:"index"`
	Kind            RoomKind    `json:"kind"`
	Origin          world.Point `json:"origin"`
	Width           int         `json:"width"`
	Height          int         `json:"height"`
	RotationDegrees int         `json:"rotation"`    // prefab rotation for the renderer
	DoorSide        int         `json:"door_side"`   // door side in the prefab's own frame
	DoorFacing      int         `json:"door_facing"` // grid facing of the doorway
	LocalDoorOffset world.Point `json:"local_door_offset"`
	BiomeID         int         `json:"biome_id"`
	Door            DoorInfo    `json:"door"`
}

// Footprint returns the grid extent of the room: the prefab turned by its
// rotation.
func (r RoomPlacement) Footprint() (w, h int) {
	return Footprint(r.Width, r.Height, r.RotationDegrees)
}

// Contains reports whether p lies in the room interior.
func (r RoomPlacement) Contains(p world.Point) bool {
	fw, fh := r.Footprint()
	return p.X >= r.Origin.X && p.X < r.Origin.X+fw && p.Y >= r.Origin.Y && p.Y < r.Origin.Y+fh
}

// Overlaps reports whether the interiors of r and o intersect.
func (r RoomPlacement) Overlaps(o RoomPlacement) bool {
	rw, rh := r.Footprint()
	ow, oh := o.Footprint()
	return r.Origin.X < o.Origin.X+ow && o.Origin.X < r.Origin.X+rw &&
		r.Origin.Y < o.Origin.Y+oh && o.Origin.Y < r.Origin.Y+rh
}

// ConnectionPoint is a door step used as a corridor endpoint.
type ConnectionPoint struct {
	Pos     world.Point `json:"pos"`
	BiomeID int         `json:"biome_id"`
	Room    int         `json:"room"`
}

// Placer sites rooms on a grid and accumulates their connection points.
type Placer struct {
	grid        *world.Grid
	clearance   int
	spiralLimit int

	rooms  []RoomPlacement
	points []ConnectionPoint
}

// NewPlacer creates a placer writing into grid.
func NewPlacer(grid *world.Grid, clearance, spiralLimit int) *Placer {
	return &Placer{
		grid:        grid,
		clearance:   clearance,
		spiralLimit: spiralLimit,
	}
}

// Rooms returns the rooms placed so far, in placement order.
func (p *Placer) Rooms() []RoomPlacement {
	return append([]RoomPlacement(nil), p.rooms...)
}

// Points returns one connection point per placed room, in placement order.
func (p *Placer) Points() []ConnectionPoint {
	return append([]ConnectionPoint(nil), p.points...)
}

// TrySite attempts to place spec with its footprint's minimum corner at
// candidate and its door turned toward target. On success the grid is marked
// and the placement recorded. A spec whose door offset is off its door edge
// never fits.
func (p *Placer) TrySite(candidate world.Point, spec RoomSpec, target world.Point) (RoomPlacement, ConnectionPoint, bool) {
	if !OnDoorEdge(spec.Width, spec.Height, spec.DoorSide, spec.DoorOffset) {
		return RoomPlacement{}, ConnectionPoint{}, false
	}
	rotation := ComputeRotationTowardTarget(candidate, spec.Width, spec.Height, target, spec.DoorSide, spec.RotationFix)
	fw, fh := Footprint(spec.Width, spec.Height, rotation)

	if !p.grid.IsAreaVoid(candidate, fw, fh, p.clearance) {
		return RoomPlacement{}, ConnectionPoint{}, false
	}

	door := ComputeDoorOnSide(candidate, spec.Width, spec.Height, rotation, spec.DoorSide, spec.DoorOffset)
	if !p.grid.InBounds(door.StepPos) || p.grid.At(door.StepPos) != world.Void {
		return RoomPlacement{}, ConnectionPoint{}, false
	}

	p.grid.MarkPadding(candidate, fw, fh)
	p.grid.MarkRoom(candidate, fw, fh, spec.BiomeID)
	p.grid.Set(door.StepPos, world.DoorStep)
	p.grid.SetBiome(door.StepPos, spec.BiomeID)
	p.grid.ClearEntryPoint(door.StepPos, door.Direction)

	room := RoomPlacement{
		Index:           len(p.rooms),
		Kind:            spec.Kind,
		Origin:          candidate,
		Width:           spec.Width,
		Height:          spec.Height,
		RotationDegrees: rotation,
		DoorSide:        SnapCardinal(spec.DoorSide),
		DoorFacing:      door.Direction.Degrees(),
		LocalDoorOffset: spec.DoorOffset,
		BiomeID:         spec.BiomeID,
		Door:            door,
	}
	point := ConnectionPoint{Pos: door.StepPos, BiomeID: spec.BiomeID, Room: room.Index}
	p.rooms = append(p.rooms, room)
	p.points = append(p.points, point)
	return room, point, true
}

// PlaceAround walks the spiral from seed until spec fits or the search cap
// is reached. The number of candidates tried is returned either way.
func (p *Placer) PlaceAround(seed world.Point, spec RoomSpec, target world.Point) (RoomPlacement, int, bool) {
	tried := 0
	for candidate := range Spiral(seed, p.spiralLimit) {
		tried++
		if room, _, ok := p.TrySite(candidate, spec, target); ok {
			return room, tried, true
		}
	}
	return RoomPlacement{}, tried, false
}
