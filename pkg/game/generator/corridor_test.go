package generator

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"dungeonlayout/pkg/engine/world"
	"dungeonlayout/pkg/game/config"
)

func checkPath(t *testing.T, grid *world.Grid, path []world.Point, start, target world.Point) {
	t.Helper()
	if len(path) == 0 {
		t.Fatal("empty path")
	}
	if path[0] != start || path[len(path)-1] != target {
		t.Fatalf("path runs %v -> %v, want %v -> %v", path[0], path[len(path)-1], start, target)
	}
	for i := 1; i < len(path); i++ {
		if world.Manhattan(path[i-1], path[i]) != 1 {
			t.Fatalf("step %d jumps from %v to %v", i, path[i-1], path[i])
		}
		if i < len(path)-1 && grid.At(path[i]).Blocking() {
			t.Fatalf("path crosses %v at %v", grid.At(path[i]), path[i])
		}
	}
}

func TestFindPath_Straight(t *testing.T) {
	grid := world.NewGrid(10)
	path, err := FindPath(grid, world.Pt(2, 2), world.Pt(2, 6), 1000)
	if err != nil {
		t.Fatal(err)
	}
	checkPath(t, grid, path, world.Pt(2, 2), world.Pt(2, 6))
	if len(path) != 5 {
		t.Errorf("path length = %d, want 5", len(path))
	}
}

func TestFindPath_SameTile(t *testing.T) {
	grid := world.NewGrid(10)
	path, err := FindPath(grid, world.Pt(4, 4), world.Pt(4, 4), 1)
	if err != nil || len(path) != 1 {
		t.Fatalf("path = %v, err = %v", path, err)
	}
}

func TestFindPath_AroundWall(t *testing.T) {
	grid := world.NewGrid(12)
	for y := 1; y <= 9; y++ {
		grid.Set(world.Pt(5, y), world.Room)
	}
	path, err := FindPath(grid, world.Pt(2, 5), world.Pt(8, 5), 10000)
	if err != nil {
		t.Fatal(err)
	}
	checkPath(t, grid, path, world.Pt(2, 5), world.Pt(8, 5))
	// the only gap is at y=10: 5 up, 6 across, 5 down
	if len(path) != 17 {
		t.Errorf("path length = %d, want 17", len(path))
	}
}

func TestFindPath_TargetMayBeBlocking(t *testing.T) {
	grid := world.NewGrid(10)
	grid.Set(world.Pt(3, 3), world.Padding)
	path, err := FindPath(grid, world.Pt(3, 6), world.Pt(3, 3), 1000)
	if err != nil {
		t.Fatal(err)
	}
	if len(path) != 4 {
		t.Errorf("path length = %d, want 4", len(path))
	}
}

func TestFindPath_NeverUsesBorder(t *testing.T) {
	grid := world.NewGrid(8)
	// wall off the interior except through the border row
	for x := 1; x <= 6; x++ {
		grid.Set(world.Pt(x, 3), world.Padding)
	}
	_, err := FindPath(grid, world.Pt(3, 1), world.Pt(3, 5), 1000)
	if !errors.Is(err, ErrNoPath) {
		t.Fatalf("err = %v, want ErrNoPath", err)
	}
}

func TestFindPath_Enclosed(t *testing.T) {
	grid := world.NewGrid(10)
	target := world.Pt(5, 5)
	for _, d := range world.AllDirections() {
		grid.Set(target.Step(d), world.Room)
	}
	_, err := FindPath(grid, world.Pt(1, 1), target, 10000)
	if !errors.Is(err, ErrNoPath) {
		t.Fatalf("err = %v, want ErrNoPath", err)
	}
}

func TestFindPath_ExpansionCap(t *testing.T) {
	grid := world.NewGrid(50)
	_, err := FindPath(grid, world.Pt(1, 1), world.Pt(48, 48), 10)
	if !errors.Is(err, ErrNoPath) {
		t.Fatalf("err = %v, want ErrNoPath", err)
	}
}

func TestStamp_KeepsDoorSteps(t *testing.T) {
	grid := world.NewGrid(10)
	grid.Set(world.Pt(2, 2), world.DoorStep)
	grid.SetBiome(world.Pt(2, 2), 0)
	path := []world.Point{world.Pt(2, 2), world.Pt(3, 2), world.Pt(4, 2)}

	Stamp(grid, path, 3)

	if grid.At(world.Pt(2, 2)) != world.DoorStep || grid.Biome(world.Pt(2, 2)) != 0 {
		t.Error("door step was overwritten")
	}
	for _, p := range path[1:] {
		if grid.At(p) != world.Corridor || grid.Biome(p) != 3 {
			t.Errorf("%v = %v biome %d, want corridor biome 3", p, grid.At(p), grid.Biome(p))
		}
	}
}

func cp(room, x, y int) ConnectionPoint {
	return ConnectionPoint{Pos: world.Pt(x, y), Room: room}
}

func rooms(edges []Edge) [][2]int {
	out := make([][2]int, len(edges))
	for i, e := range edges {
		out[i] = [2]int{e.From.Room, e.To.Room}
	}
	return out
}

func TestOrderNearest(t *testing.T) {
	points := []ConnectionPoint{cp(0, 0, 0), cp(1, 10, 0), cp(2, 1, 0), cp(3, 5, 0)}
	got := OrderNearest(points)
	want := []int{0, 2, 3, 1}
	for i, p := range got {
		if p.Room != want[i] {
			t.Fatalf("order = %v, want rooms %v", got, want)
		}
	}
}

func TestOrderNearest_TieKeepsFirst(t *testing.T) {
	points := []ConnectionPoint{cp(0, 0, 0), cp(1, 2, 0), cp(2, 0, 2)}
	got := OrderNearest(points)
	if got[1].Room != 1 || got[2].Room != 2 {
		t.Errorf("order = %v, want rooms 0 1 2", got)
	}
	if OrderNearest(nil) != nil {
		t.Error("empty input should give nil")
	}
}

func TestNearestEdges(t *testing.T) {
	points := []ConnectionPoint{cp(0, 0, 0), cp(1, 10, 0), cp(2, 1, 0)}
	got := rooms(NearestEdges(points))
	want := [][2]int{{0, 2}, {2, 1}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("edges = %v, want %v", got, want)
	}
	if NearestEdges(points[:1]) != nil {
		t.Error("a single point has no edges")
	}
}

func TestSpanningEdges(t *testing.T) {
	points := []ConnectionPoint{cp(0, 0, 0), cp(1, 5, 0), cp(2, 0, 5), cp(3, 6, 1)}
	got := rooms(SpanningEdges(points))
	want := [][2]int{{0, 1}, {1, 3}, {0, 2}}
	if len(got) != len(want) {
		t.Fatalf("edges = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("edges = %v, want %v", got, want)
		}
	}
}

func TestConnectAll_RecordsDropped(t *testing.T) {
	grid := world.NewGrid(20)
	a, b, c := world.Pt(3, 3), world.Pt(10, 3), world.Pt(15, 15)
	for _, p := range []world.Point{a, b, c} {
		grid.Set(p, world.DoorStep)
	}
	// seal c off completely
	for _, d := range world.AllDirections() {
		grid.Set(c.Step(d), world.Room)
	}

	var buf bytes.Buffer
	conn := NewConnector(grid, 10000, config.TourNearest, log.New(&buf, "", 0))
	linked, dropped := conn.ConnectAll([]ConnectionPoint{
		{Pos: a, Room: 0, BiomeID: world.NoBiome},
		{Pos: b, Room: 1, BiomeID: 0},
		{Pos: c, Room: 2, BiomeID: 1},
	})

	if len(linked) != 1 || linked[0].FromRoom != 0 || linked[0].ToRoom != 1 || linked[0].Length != 8 {
		t.Errorf("linked = %+v", linked)
	}
	if len(dropped) != 1 || dropped[0].FromRoom != 1 || dropped[0].ToRoom != 2 || dropped[0].Length != 0 {
		t.Errorf("dropped = %+v", dropped)
	}
	if !strings.Contains(buf.String(), "room 1 to room 2 dropped") {
		t.Errorf("log = %q", buf.String())
	}
	if grid.Biome(world.Pt(5, 3)) != 0 {
		t.Error("corridor should carry the destination biome")
	}
}

func TestConnector_EdgesByStrategy(t *testing.T) {
	points := []ConnectionPoint{cp(0, 0, 0), cp(1, 5, 0), cp(2, 0, 5), cp(3, 6, 1)}
	grid := world.NewGrid(10)
	nearest := rooms(NewConnector(grid, 1, config.TourNearest, nil).Edges(points))
	mst := rooms(NewConnector(grid, 1, config.TourMST, nil).Edges(points))
	if len(nearest) != 3 || len(mst) != 3 {
		t.Fatalf("nearest=%v mst=%v", nearest, mst)
	}
	// nearest walks 0 -> 1 -> 3 -> 2, the tree branches at 0
	if nearest[2] != [2]int{3, 2} || mst[2] != [2]int{0, 2} {
		t.Errorf("nearest=%v mst=%v", nearest, mst)
	}
}
