package generator

import (
	"fmt"
	"io"
	"log"

	"github.com/zyedidia/generic/queue"

	"dungeonlayout/pkg/engine/world"
	"dungeonlayout/pkg/game/config"
	"dungeonlayout/pkg/game/text"
)

// Link is a corridor between two rooms' door steps.
type Link struct {
	FromRoom int         `json:"from_room"`
	ToRoom   int         `json:"to_room"`
	From     world.Point `json:"from"`
	To       world.Point `json:"to"`
	Length   int         `json:"length"` // tiles on the path, endpoints included; 0 when dropped
}

// FindPath runs a 4-connected breadth-first search from start to target.
//
// Room and Padding tiles are impassable except the target itself. The search
// stops with ErrNoPath after limit expansions. The returned path includes
// both endpoints.
func FindPath(grid *world.Grid, start, target world.Point, limit int) ([]world.Point, error) {
	if !grid.Valid(start) || !grid.Valid(target) {
		return nil, fmt.Errorf("%w: endpoint off grid %v -> %v", ErrNoPath, start, target)
	}
	if start == target {
		return []world.Point{start}, nil
	}

	n := grid.Size() * grid.Size()
	visited := make([]bool, n)
	parent := make([]int, n)

	startIdx := grid.Index(start)
	targetIdx := grid.Index(target)
	visited[startIdx] = true
	parent[startIdx] = -1

	frontier := queue.New[int]()
	frontier.Enqueue(startIdx)

	for expansions := 0; !frontier.Empty(); expansions++ {
		if expansions >= limit {
			return nil, fmt.Errorf("%w: gave up after %d expansions", ErrNoPath, limit)
		}
		cur := frontier.Dequeue()
		cp := grid.PointAt(cur)
		for _, d := range world.AllDirections() {
			np := cp.Step(d)
			if !grid.InBounds(np) {
				continue
			}
			ni := grid.Index(np)
			if visited[ni] {
				continue
			}
			if ni != targetIdx && grid.At(np).Blocking() {
				continue
			}
			visited[ni] = true
			parent[ni] = cur
			if ni == targetIdx {
				return tracePath(grid, parent, targetIdx), nil
			}
			frontier.Enqueue(ni)
		}
	}
	return nil, fmt.Errorf("%w: target unreachable", ErrNoPath)
}

func tracePath(grid *world.Grid, parent []int, target int) []world.Point {
	var rev []world.Point
	for at := target; at >= 0; at = parent[at] {
		rev = append(rev, grid.PointAt(at))
	}
	path := make([]world.Point, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}

// Stamp writes path into the grid as corridor tagged with biomeID.
// Door steps keep their state.
func Stamp(grid *world.Grid, path []world.Point, biomeID int) {
	for _, p := range path {
		if grid.At(p) == world.DoorStep {
			continue
		}
		grid.Set(p, world.Corridor)
		grid.SetBiome(p, biomeID)
	}
}

// Connector digs corridors between connection points.
type Connector struct {
	grid     *world.Grid
	limit    int
	strategy string
	logger   *log.Logger
}

// NewConnector creates a connector with the given expansion cap and tour
// strategy (config.TourNearest or config.TourMST).
func NewConnector(grid *world.Grid, limit int, strategy string, logger *log.Logger) *Connector {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Connector{
		grid:     grid,
		limit:    limit,
		strategy: strategy,
		logger:   logger,
	}
}

// Edges returns the corridors ConnectAll would dig, in digging order.
func (c *Connector) Edges(points []ConnectionPoint) []Edge {
	if c.strategy == config.TourMST {
		return SpanningEdges(points)
	}
	return NearestEdges(points)
}

// ConnectAll digs one corridor per edge of the tour. Edges the search cannot
// complete are skipped and returned as dropped; nothing is retried.
func (c *Connector) ConnectAll(points []ConnectionPoint) (linked, dropped []Link) {
	for _, e := range c.Edges(points) {
		link := Link{FromRoom: e.From.Room, ToRoom: e.To.Room, From: e.From.Pos, To: e.To.Pos}
		path, err := FindPath(c.grid, e.From.Pos, e.To.Pos, c.limit)
		if err != nil {
			c.logger.Printf(text.Get("WARN_CORRIDOR_DROPPED"), e.From.Room, e.To.Room, err)
			dropped = append(dropped, link)
			continue
		}
		Stamp(c.grid, path, e.To.BiomeID)
		link.Length = len(path)
		linked = append(linked, link)
	}
	return linked, dropped
}
