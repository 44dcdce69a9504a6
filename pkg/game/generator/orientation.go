package generator

import (
	"dungeonlayout/pkg/engine/world"
)

// DoorInfo locates a room's doorway on the grid.
type DoorInfo struct {
	GridPos   world.Point     `json:"grid_pos"`  // room edge tile the doorway is cut into
	StepPos   world.Point     `json:"step_pos"`  // DoorStep tile just outside; the pathfinding endpoint
	Direction world.Direction `json:"direction"` // outward from the room
}

// NormalizeDegrees maps any angle into [0,360).
func NormalizeDegrees(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

// SnapCardinal rounds an angle to the nearest of 0, 90, 180 or 270.
func SnapCardinal(deg int) int {
	return world.FromDegrees(deg).Degrees()
}

// Footprint returns the grid extent of a w×h room turned by rotation.
// Quarter turns swap the axes.
func Footprint(w, h, rotation int) (fw, fh int) {
	switch SnapCardinal(rotation) {
	case 90, 270:
		return h, w
	default:
		return w, h
	}
}

// ComputeDoor maps a room-local door offset to grid coordinates.
//
// In the room's own frame the door faces +Y and offset is (dx, h-1) with
// 0 <= dx < w. origin is the minimum corner of the rotated footprint.
// Rotation is clockwise seen from above.
func ComputeDoor(origin world.Point, w, h, rotation int, offset world.Point) DoorInfo {
	return ComputeDoorOnSide(origin, w, h, rotation, 0, offset)
}

// ComputeDoorOnSide is ComputeDoor for a prefab whose door sits on side
// doorSide of its own frame. The doorway faces doorSide turned by rotation.
func ComputeDoorOnSide(origin world.Point, w, h, rotation, doorSide int, offset world.Point) DoorInfo {
	var pos world.Point
	switch SnapCardinal(rotation) {
	case 90:
		pos = world.Pt(origin.X+offset.Y, origin.Y+w-1-offset.X)
	case 180:
		pos = world.Pt(origin.X+w-1-offset.X, origin.Y+h-1-offset.Y)
	case 270:
		pos = world.Pt(origin.X+h-1-offset.Y, origin.Y+offset.X)
	default:
		pos = world.Pt(origin.X+offset.X, origin.Y+offset.Y)
	}
	dir := world.FromDegrees(SnapCardinal(rotation) + SnapCardinal(doorSide))
	return DoorInfo{
		GridPos:   pos,
		StepPos:   pos.Step(dir),
		Direction: dir,
	}
}

// OnDoorEdge reports whether offset lies on side doorSide of a w×h prefab,
// in the prefab's own frame.
func OnDoorEdge(w, h, doorSide int, offset world.Point) bool {
	if offset.X < 0 || offset.X >= w || offset.Y < 0 || offset.Y >= h {
		return false
	}
	switch SnapCardinal(doorSide) {
	case 90:
		return offset.X == w-1
	case 180:
		return offset.Y == 0
	case 270:
		return offset.X == 0
	default:
		return offset.Y == h-1
	}
}

// DoorEdgeOffset returns the middle tile of side doorSide of a w×h prefab.
func DoorEdgeOffset(w, h, doorSide int) world.Point {
	switch SnapCardinal(doorSide) {
	case 90:
		return world.Pt(w-1, h/2)
	case 180:
		return world.Pt(w/2, 0)
	case 270:
		return world.Pt(0, h/2)
	default:
		return world.Pt(w/2, h-1)
	}
}

// ComputeRotationTowardTarget picks the quarter turn that points a room's
// door at target.
//
// The dominant axis of the vector from the room center to target picks the
// facing; ties go to the vertical axis. The prefab's own door side is then
// subtracted and globalFix added. The result is always 0, 90, 180 or 270.
func ComputeRotationTowardTarget(origin world.Point, w, h int, target world.Point, defaultDoorSide, globalFix int) int {
	facing := facingToward(origin, w, h, target)
	return SnapCardinal(NormalizeDegrees(facing.Degrees() - defaultDoorSide + globalFix))
}

func facingToward(origin world.Point, w, h int, target world.Point) world.Direction {
	center := world.Pt(origin.X+w/2, origin.Y+h/2)
	d := target.Sub(center)
	adx, ady := d.X, d.Y
	if adx < 0 {
		adx = -adx
	}
	if ady < 0 {
		ady = -ady
	}
	if adx > ady {
		if d.X > 0 {
			return world.East
		}
		return world.West
	}
	if d.Y >= 0 {
		return world.North
	}
	return world.South
}

// DoorFacing recovers the grid facing from a prefab rotation.
// It is the inverse of the adjustment ComputeRotationTowardTarget applies.
func DoorFacing(rotation, defaultDoorSide, globalFix int) int {
	return SnapCardinal(NormalizeDegrees(rotation + defaultDoorSide - globalFix))
}
