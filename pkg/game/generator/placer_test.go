package generator

import (
	"testing"

	"dungeonlayout/pkg/engine/world"
)

func TestTrySite_MarksRoomPaddingAndStep(t *testing.T) {
	grid := world.NewGrid(40)
	p := NewPlacer(grid, 4, 100)
	spec := RoomSpec{Kind: KindBiome, Width: 3, Height: 3, DoorOffset: world.Pt(1, 2), BiomeID: 2}

	room, point, ok := p.TrySite(world.Pt(10, 10), spec, world.Pt(11, 30))
	if !ok {
		t.Fatal("expected site on an empty grid to be accepted")
	}
	if room.DoorFacing != 0 || room.Door.Direction != world.North {
		t.Errorf("door facing = %d %v, want 0 N", room.DoorFacing, room.Door.Direction)
	}
	if room.Door.GridPos != world.Pt(11, 12) || room.Door.StepPos != world.Pt(11, 13) {
		t.Errorf("door = %+v", room.Door)
	}
	if point.Pos != room.Door.StepPos || point.Room != 0 || point.BiomeID != 2 {
		t.Errorf("connection point = %+v", point)
	}

	if got := grid.Count(world.Room); got != 9 {
		t.Errorf("room tiles = %d, want 9", got)
	}
	if got := grid.Count(world.DoorStep); got != 1 {
		t.Errorf("door steps = %d, want 1", got)
	}
	// 5×5 ring minus the room and the door step
	if got := grid.Count(world.Padding); got != 15 {
		t.Errorf("padding tiles = %d, want 15", got)
	}
	if grid.Biome(world.Pt(11, 11)) != 2 || grid.Biome(room.Door.StepPos) != 2 {
		t.Error("room and door step should carry the biome tag")
	}
	if len(p.Rooms()) != 1 || len(p.Points()) != 1 {
		t.Errorf("placer recorded %d rooms / %d points", len(p.Rooms()), len(p.Points()))
	}
}

func TestTrySite_RotatedFootprint(t *testing.T) {
	grid := world.NewGrid(40)
	p := NewPlacer(grid, 4, 100)
	spec := RoomSpec{Kind: KindBiome, Width: 5, Height: 3, DoorOffset: world.Pt(2, 2)}

	room, _, ok := p.TrySite(world.Pt(30, 30), spec, world.Pt(20, 32))
	if !ok {
		t.Fatal("expected west-facing site to be accepted")
	}
	if room.DoorFacing != 270 {
		t.Fatalf("facing = %d, want 270", room.DoorFacing)
	}
	fw, fh := room.Footprint()
	if fw != 3 || fh != 5 {
		t.Errorf("footprint = %dx%d, want 3x5", fw, fh)
	}
	if room.Door.GridPos != world.Pt(30, 32) || room.Door.StepPos != world.Pt(29, 32) {
		t.Errorf("door = %+v", room.Door)
	}
	for y := 30; y < 35; y++ {
		for x := 30; x < 33; x++ {
			if grid.At(world.Pt(x, y)) != world.Room {
				t.Fatalf("tile (%d,%d) = %v, want room", x, y, grid.At(world.Pt(x, y)))
			}
		}
	}
}

func TestTrySite_PrefabDoorSides(t *testing.T) {
	cases := []struct {
		name      string
		w, h      int
		side, fix int
		target    world.Point
		rotation  int
		facing    int
		fw, fh    int
		door      world.Point
		step      world.Point
	}{
		// door on the prefab's east side, target north: turned a quarter
		// counterclockwise, so the 3x7 prefab lies 7x3 on the grid
		{"east door facing north", 3, 7, 90, 0, world.Pt(21, 35), 270, 0, 7, 3, world.Pt(23, 22), world.Pt(23, 23)},
		{"south door facing north", 3, 3, 180, 0, world.Pt(21, 35), 180, 0, 3, 3, world.Pt(21, 22), world.Pt(21, 23)},
		{"west door facing east", 3, 5, 270, 0, world.Pt(35, 22), 180, 90, 3, 5, world.Pt(22, 22), world.Pt(23, 22)},
		// the fix turns the whole prefab, door included
		{"north door with half-turn fix", 3, 3, 0, 180, world.Pt(21, 35), 180, 180, 3, 3, world.Pt(21, 20), world.Pt(21, 19)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			grid := world.NewGrid(40)
			p := NewPlacer(grid, 4, 100)
			spec := RoomSpec{
				Kind:        KindBiome,
				Width:       c.w,
				Height:      c.h,
				DoorOffset:  DoorEdgeOffset(c.w, c.h, c.side),
				DoorSide:    c.side,
				RotationFix: c.fix,
			}
			room, _, ok := p.TrySite(world.Pt(20, 20), spec, c.target)
			if !ok {
				t.Fatal("expected site on an empty grid to be accepted")
			}
			if room.RotationDegrees != c.rotation || room.DoorFacing != c.facing || room.DoorSide != c.side {
				t.Errorf("rotation=%d facing=%d side=%d, want %d %d %d", room.RotationDegrees, room.DoorFacing, room.DoorSide, c.rotation, c.facing, c.side)
			}
			if fw, fh := room.Footprint(); fw != c.fw || fh != c.fh {
				t.Errorf("footprint = %dx%d, want %dx%d", fw, fh, c.fw, c.fh)
			}
			if fw, fh := Footprint(room.Width, room.Height, room.RotationDegrees); grid.Count(world.Room) != fw*fh {
				t.Errorf("room tiles = %d, want %d", grid.Count(world.Room), fw*fh)
			}
			if room.Door.GridPos != c.door || room.Door.StepPos != c.step {
				t.Errorf("door = %+v, want %v step %v", room.Door, c.door, c.step)
			}
			if grid.At(room.Door.GridPos) != world.Room || grid.At(room.Door.StepPos) != world.DoorStep {
				t.Errorf("door tile %v step tile %v", grid.At(room.Door.GridPos), grid.At(room.Door.StepPos))
			}
		})
	}
}

func TestTrySite_DoorOffEdgeNeverFits(t *testing.T) {
	for _, offset := range []world.Point{world.Pt(1, 0), world.Pt(1, 1), world.Pt(3, 2)} {
		grid := world.NewGrid(40)
		p := NewPlacer(grid, 4, 100)
		spec := RoomSpec{Kind: KindBiome, Width: 3, Height: 3, DoorOffset: offset}
		if _, _, ok := p.TrySite(world.Pt(10, 10), spec, world.Pt(11, 30)); ok {
			t.Errorf("offset %v: site accepted", offset)
		}
		if grid.Count(world.Void) != 40*40 {
			t.Errorf("offset %v: rejected site marked the grid", offset)
		}
	}
}

func TestTrySite_Rejections(t *testing.T) {
	grid := world.NewGrid(40)
	p := NewPlacer(grid, 4, 100)
	spec := RoomSpec{Kind: KindBiome, Width: 3, Height: 3, DoorOffset: world.Pt(1, 2)}

	if _, _, ok := p.TrySite(world.Pt(10, 10), spec, world.Pt(11, 30)); !ok {
		t.Fatal("first room should fit")
	}
	before := grid.Clone()

	cases := []struct {
		name      string
		candidate world.Point
	}{
		{"inside clearance of the first room", world.Pt(14, 10)},
		{"overlapping the first room", world.Pt(11, 11)},
		{"clearance crosses the west border", world.Pt(2, 20)},
		{"clearance crosses the north border", world.Pt(20, 35)},
	}
	for _, c := range cases {
		if _, _, ok := p.TrySite(c.candidate, spec, world.Pt(20, 20)); ok {
			t.Errorf("%s: site %v accepted", c.name, c.candidate)
		}
	}
	if !grid.Equal(before) {
		t.Error("rejected sites must not touch the grid")
	}
	if len(p.Rooms()) != 1 {
		t.Errorf("rooms = %d, want 1", len(p.Rooms()))
	}
}

func TestPlaceAround(t *testing.T) {
	grid := world.NewGrid(40)
	p := NewPlacer(grid, 4, 400)
	spec := RoomSpec{Kind: KindBiome, Width: 3, Height: 3, DoorOffset: world.Pt(1, 2)}
	seed := world.Pt(20, 20)

	first, tried, ok := p.PlaceAround(seed, spec, seed)
	if !ok || tried != 1 {
		t.Fatalf("first placement ok=%v tried=%d, want true 1", ok, tried)
	}
	if first.Origin != seed {
		t.Errorf("origin = %v, want %v", first.Origin, seed)
	}

	second, tried, ok := p.PlaceAround(seed, spec, seed)
	if !ok {
		t.Fatal("second placement should fit somewhere on a 40 grid")
	}
	if tried <= 1 {
		t.Errorf("second placement tried %d candidates, want more than 1", tried)
	}
	if first.Overlaps(second) {
		t.Error("rooms overlap")
	}
	if second.Index != 1 {
		t.Errorf("second index = %d, want 1", second.Index)
	}
}

func TestPlaceAround_SearchCap(t *testing.T) {
	grid := world.NewGrid(40)
	p := NewPlacer(grid, 4, 3)
	spec := RoomSpec{Kind: KindBiome, Width: 3, Height: 3, DoorOffset: world.Pt(1, 2)}
	seed := world.Pt(20, 20)

	if _, _, ok := p.PlaceAround(seed, spec, seed); !ok {
		t.Fatal("first placement should succeed")
	}
	_, tried, ok := p.PlaceAround(seed, spec, seed)
	if ok {
		t.Fatal("expected the capped search to give up")
	}
	if tried != 3 {
		t.Errorf("tried %d candidates, want 3", tried)
	}
}

func TestRoomKindText(t *testing.T) {
	for _, k := range []RoomKind{KindStart, KindBiome, KindBoss} {
		b, err := k.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got RoomKind
		if err := got.UnmarshalText(b); err != nil || got != k {
			t.Errorf("%v: round trip gave %v, %v", k, got, err)
		}
	}
	var k RoomKind
	if err := k.UnmarshalText([]byte("attic")); err == nil {
		t.Error("expected error for unknown kind")
	}
}
