package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"dungeonlayout/pkg/engine/world"
)

// WorldVec is a position on the world ground plane.
type WorldVec struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Shortfall records a biome that got fewer rooms than requested.
type Shortfall struct {
	BiomeID   int    `json:"biome_id"`
	Biome     string `json:"biome"`
	Requested int    `json:"requested"`
	Placed    int    `json:"placed"`
}

// LevelLayout is the finished artifact of one generation pass.
// It is never mutated after Generate returns; accessors hand out copies.
type LevelLayout struct {
	seed        int64
	tileSize    float64
	worldOffset WorldVec
	biomeNames  []string

	grid       *world.Grid
	rooms      []RoomPlacement
	links      []Link
	dropped    []Link
	shortfalls []Shortfall
	directives []Directive
	spawns     []SpawnSite
}

// Seed returns the seed the layout was generated from.
func (l *LevelLayout) Seed() int64 { return l.seed }

// TileSize returns the world size of one tile.
func (l *LevelLayout) TileSize() float64 { return l.tileSize }

// WorldOffset returns the world position of the grid's (0,0) corner.
func (l *LevelLayout) WorldOffset() WorldVec { return l.worldOffset }

// Size returns the grid dimension.
func (l *LevelLayout) Size() int { return l.grid.Size() }

// Grid returns a copy of the tile grid.
func (l *LevelLayout) Grid() *world.Grid { return l.grid.Clone() }

// At reads one tile of the layout without copying the grid.
func (l *LevelLayout) At(p world.Point) world.TileState { return l.grid.At(p) }

// BiomeAt reads one biome tag of the layout without copying the grid.
func (l *LevelLayout) BiomeAt(p world.Point) int { return l.grid.Biome(p) }

// BiomeName returns the configured name of biome id, or "" if unknown.
func (l *LevelLayout) BiomeName(id int) string {
	if id < 0 || id >= len(l.biomeNames) {
		return ""
	}
	return l.biomeNames[id]
}

// Rooms returns every placed room; index 0 is the start room.
func (l *LevelLayout) Rooms() []RoomPlacement { return append([]RoomPlacement(nil), l.rooms...) }

// Doors returns one door per room, in room order.
func (l *LevelLayout) Doors() []DoorInfo {
	doors := make([]DoorInfo, len(l.rooms))
	for i, r := range l.rooms {
		doors[i] = r.Door
	}
	return doors
}

// Links returns the corridors that were dug.
func (l *LevelLayout) Links() []Link { return append([]Link(nil), l.links...) }

// Dropped returns the corridors the search could not complete.
func (l *LevelLayout) Dropped() []Link { return append([]Link(nil), l.dropped...) }

// Shortfalls returns biomes that were placed short.
func (l *LevelLayout) Shortfalls() []Shortfall { return append([]Shortfall(nil), l.shortfalls...) }

// Directives returns the hallway pieces for the renderer.
func (l *LevelLayout) Directives() []Directive { return append([]Directive(nil), l.directives...) }

// Spawns returns one spawn site per non-start room.
func (l *LevelLayout) Spawns() []SpawnSite { return append([]SpawnSite(nil), l.spawns...) }

// GridToWorld returns the world position of the center of tile p.
func (l *LevelLayout) GridToWorld(p world.Point) WorldVec {
	return WorldVec{
		X: l.worldOffset.X + (float64(p.X)+0.5)*l.tileSize,
		Z: l.worldOffset.Z + (float64(p.Y)+0.5)*l.tileSize,
	}
}

// centeredOffset places the grid's center on the world origin.
func centeredOffset(size int, tileSize float64) WorldVec {
	half := float64(size) * tileSize / 2
	return WorldVec{X: -half, Z: -half}
}

// Unreachable returns the rooms whose door step cannot be reached from the
// start room's door step over corridors, in room order.
func (l *LevelLayout) Unreachable() []int {
	var out []int
	for _, s := range l.spawns {
		if !s.Reachable {
			out = append(out, s.Room)
		}
	}
	return out
}

// Validate re-checks the structural rules of the layout: room interiors are
// disjoint, no two rooms touch without a separating tile, and every door
// step sits on the padding ring facing exactly one room tile.
func (l *LevelLayout) Validate() error {
	var errs []error
	size := l.grid.Size()

	owner := make([]int, size*size)
	for i := range owner {
		owner[i] = -1
	}
	overlapping := mapset.New[int]()
	for _, r := range l.rooms {
		fw, fh := r.Footprint()
		for y := r.Origin.Y; y < r.Origin.Y+fh; y++ {
			for x := r.Origin.X; x < r.Origin.X+fw; x++ {
				p := world.Pt(x, y)
				if !l.grid.Valid(p) {
					errs = append(errs, fmt.Errorf("room %d extends off the grid at %v", r.Index, p))
					continue
				}
				idx := l.grid.Index(p)
				if owner[idx] >= 0 {
					overlapping.Put(r.Index)
					overlapping.Put(owner[idx])
				}
				owner[idx] = r.Index
				if l.grid.At(p) != world.Room {
					errs = append(errs, fmt.Errorf("room %d tile %v is %v", r.Index, p, l.grid.At(p)))
				}
			}
		}
	}
	if overlapping.Size() > 0 {
		errs = append(errs, fmt.Errorf("overlapping rooms %v", sortedKeys(overlapping)))
	}

	touching := mapset.New[int]()
	l.grid.ForEachTile(func(p world.Point, t world.TileState) {
		if t != world.Room {
			return
		}
		me := owner[l.grid.Index(p)]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				q := world.Pt(p.X+dx, p.Y+dy)
				if !l.grid.Valid(q) || l.grid.At(q) != world.Room {
					continue
				}
				if other := owner[l.grid.Index(q)]; other != me {
					touching.Put(me)
				}
			}
		}
	})
	if touching.Size() > 0 {
		errs = append(errs, fmt.Errorf("rooms without padding between them %v", sortedKeys(touching)))
	}

	for _, r := range l.rooms {
		step := r.Door.StepPos
		if l.grid.At(step) != world.DoorStep {
			errs = append(errs, fmt.Errorf("room %d door step %v is %v", r.Index, step, l.grid.At(step)))
			continue
		}
		rooms := 0
		for _, d := range world.AllDirections() {
			if l.grid.At(step.Step(d)) == world.Room {
				rooms++
			}
		}
		if rooms != 1 || l.grid.At(r.Door.GridPos) != world.Room {
			errs = append(errs, fmt.Errorf("room %d door step %v borders %d room tiles", r.Index, step, rooms))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrLayoutInvariant, errors.Join(errs...))
}

func sortedKeys(s mapset.Set[int]) []int {
	var keys []int
	s.Each(func(k int) {
		keys = append(keys, k)
	})
	sort.Ints(keys)
	return keys
}

// layoutJSON is the wire form of a LevelLayout.
type layoutJSON struct {
	Seed        int64             `json:"seed"`
	TileSize    float64           `json:"tile_size"`
	WorldOffset WorldVec          `json:"world_offset"`
	Size        int               `json:"size"`
	Tiles       []world.TileState `json:"tiles"`
	BiomeTags   []int             `json:"biome_tags"`
	BiomeNames  []string          `json:"biome_names"`
	Rooms       []RoomPlacement   `json:"rooms"`
	Links       []Link            `json:"links"`
	Dropped     []Link            `json:"dropped,omitempty"`
	Shortfalls  []Shortfall       `json:"shortfalls,omitempty"`
	Directives  []Directive       `json:"directives"`
	Spawns      []SpawnSite       `json:"spawns"`
}

// MarshalJSON encodes the whole layout, grid layers included.
func (l *LevelLayout) MarshalJSON() ([]byte, error) {
	return json.Marshal(layoutJSON{
		Seed:        l.seed,
		TileSize:    l.tileSize,
		WorldOffset: l.worldOffset,
		Size:        l.grid.Size(),
		Tiles:       l.grid.Tiles(),
		BiomeTags:   l.grid.BiomeTags(),
		BiomeNames:  l.biomeNames,
		Rooms:       l.rooms,
		Links:       l.links,
		Dropped:     l.dropped,
		Shortfalls:  l.shortfalls,
		Directives:  l.directives,
		Spawns:      l.spawns,
	})
}

// UnmarshalJSON restores a layout encoded by MarshalJSON.
func (l *LevelLayout) UnmarshalJSON(data []byte) error {
	var w layoutJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	grid := world.FromTiles(w.Size, w.Tiles, w.BiomeTags)
	if grid == nil {
		return fmt.Errorf("%w: grid layers do not match size %d", ErrLayoutInvariant, w.Size)
	}
	*l = LevelLayout{
		seed:        w.Seed,
		tileSize:    w.TileSize,
		worldOffset: w.WorldOffset,
		biomeNames:  w.BiomeNames,
		grid:        grid,
		rooms:       w.Rooms,
		links:       w.Links,
		dropped:     w.Dropped,
		shortfalls:  w.Shortfalls,
		directives:  w.Directives,
		spawns:      w.Spawns,
	}
	return nil
}
