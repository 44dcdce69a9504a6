package generator

import (
	"github.com/zyedidia/generic/queue"

	"dungeonlayout/pkg/engine/world"
)

// Unreached marks tiles a distance field never reached.
const Unreached = -1

// SpawnSite is what spawners get for each room: where it is, which biome
// owns it and how far it is from the start by corridor.
type SpawnSite struct {
	Room         int      `json:"room"`
	Kind         RoomKind `json:"kind"`
	BiomeID      int      `json:"biome_id"`
	PathDistance int      `json:"path_distance"` // corridor steps from the start door step, Unreached if cut off
	Reachable    bool     `json:"reachable"`
}

// DistanceField returns the step distance from from to every hallway tile
// (Corridor or DoorStep), indexed like the grid. Other tiles read Unreached.
func DistanceField(grid *world.Grid, from world.Point) []int {
	n := grid.Size() * grid.Size()
	dist := make([]int, n)
	for i := range dist {
		dist[i] = Unreached
	}
	if !grid.Valid(from) || !grid.At(from).Walkable() {
		return dist
	}

	frontier := queue.New[int]()
	start := grid.Index(from)
	dist[start] = 0
	frontier.Enqueue(start)

	for !frontier.Empty() {
		cur := frontier.Dequeue()
		cp := grid.PointAt(cur)
		for _, d := range world.AllDirections() {
			np := cp.Step(d)
			if !grid.Valid(np) || !grid.At(np).Walkable() {
				continue
			}
			ni := grid.Index(np)
			if dist[ni] != Unreached {
				continue
			}
			dist[ni] = dist[cur] + 1
			frontier.Enqueue(ni)
		}
	}
	return dist
}

// FurthestRoom returns the index of the reachable room with the longest
// corridor distance from the start, or -1 if no other room is reachable.
func FurthestRoom(sites []SpawnSite) int {
	best, bestDist := -1, -1
	for _, s := range sites {
		if s.Reachable && s.PathDistance > bestDist {
			best, bestDist = s.Room, s.PathDistance
		}
	}
	return best
}

// spawnSites measures every non-start room against the start room's door step.
func spawnSites(grid *world.Grid, rooms []RoomPlacement) []SpawnSite {
	if len(rooms) == 0 {
		return nil
	}
	field := DistanceField(grid, rooms[0].Door.StepPos)
	sites := make([]SpawnSite, 0, len(rooms)-1)
	for _, r := range rooms[1:] {
		d := field[grid.Index(r.Door.StepPos)]
		sites = append(sites, SpawnSite{
			Room:         r.Index,
			Kind:         r.Kind,
			BiomeID:      r.BiomeID,
			PathDistance: d,
			Reachable:    d != Unreached,
		})
	}
	return sites
}
