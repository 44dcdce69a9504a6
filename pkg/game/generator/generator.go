package generator

import (
	"fmt"
	"io"
	"log"
	"math/rand"

	"dungeonlayout/pkg/engine/world"
	"dungeonlayout/pkg/game/config"
	"dungeonlayout/pkg/game/text"
)

// LayoutGenerator is an interface for level layout algorithms
type LayoutGenerator interface {
	Generate(cfg config.Config) (*LevelLayout, error)
	Name() string
}

// DefaultGenerator is the default layout generator
var DefaultGenerator LayoutGenerator = New()

// SpiralGenerator places rooms with a spiral search and joins their doors
// with breadth-first corridors.
type SpiralGenerator struct {
	logger *log.Logger
	rng    *rand.Rand
}

// Option configures a SpiralGenerator.
type Option func(*SpiralGenerator)

// WithLogger routes warnings about short placements and dropped corridors.
func WithLogger(l *log.Logger) Option {
	return func(g *SpiralGenerator) {
		g.logger = l
	}
}

// WithRand makes every Generate call draw from r instead of a generator
// seeded from the profile. Successive calls then continue r's sequence.
func WithRand(r *rand.Rand) Option {
	return func(g *SpiralGenerator) {
		g.rng = r
	}
}

// New creates a spiral generator.
func New(opts ...Option) *SpiralGenerator {
	g := &SpiralGenerator{}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard, "", 0)
	}
	return g
}

// Name returns the name of this generator
func (g *SpiralGenerator) Name() string {
	return "Spiral Rooms"
}

// Generate builds a complete level from cfg. The same profile and seed
// always produce the same layout.
func (g *SpiralGenerator) Generate(cfg config.Config) (*LevelLayout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	rng := g.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	grid := world.NewGrid(cfg.GridSize)
	placer := NewPlacer(grid, cfg.Clearance, cfg.SpiralLimit)

	// Start room
	start := RoomSpec{
		Kind:       KindStart,
		Width:      cfg.Start.Width,
		Height:     cfg.Start.Height,
		DoorOffset: cfg.Start.DoorOffset,
		BiomeID:    world.NoBiome,
	}
	seed := grid.Center()
	if cfg.Start.Origin != nil {
		seed = *cfg.Start.Origin
	} else {
		fw, fh := start.Width, start.Height
		seed = world.Pt(seed.X-fw/2, seed.Y-fh/2)
	}
	startRoom, _, ok := placer.PlaceAround(seed, start, grid.Center())
	if !ok {
		return nil, fmt.Errorf("%w: %dx%d near %v", ErrStartPlacement, start.Width, start.Height, seed)
	}

	// Biome rooms, each seeded at the previous door and facing it
	var shortfalls []Shortfall
	prev := startRoom.Door.StepPos
	lastBiome := world.NoBiome
	for id, b := range cfg.Biomes {
		placed := 0
		for placed < b.RoomCount {
			spec := biomeRoom(rng, id, b)
			room, _, ok := placer.PlaceAround(prev, spec, prev)
			if !ok {
				break
			}
			prev = room.Door.StepPos
			placed++
		}
		if placed > 0 {
			lastBiome = id
		}
		if placed < b.RoomCount {
			shortfalls = append(shortfalls, Shortfall{BiomeID: id, Biome: b.Name, Requested: b.RoomCount, Placed: placed})
			g.logger.Printf(text.Get("WARN_SHORTFALL"), b.Name, placed, b.RoomCount)
		}
	}

	// Boss room, after every biome
	if !cfg.Boss.Disabled {
		spec := RoomSpec{
			Kind:       KindBoss,
			Width:      cfg.Boss.Width,
			Height:     cfg.Boss.Height,
			DoorOffset: cfg.Boss.EntryOffset,
			BiomeID:    lastBiome,
		}
		if _, _, ok := placer.PlaceAround(prev, spec, prev); !ok {
			g.logger.Print(text.Get("WARN_BOSS_UNPLACED"))
		}
	}

	rooms := placer.Rooms()
	connector := NewConnector(grid, cfg.PathLimit, cfg.TourStrategy(), g.logger)
	links, dropped := connector.ConnectAll(placer.Points())

	names := make([]string, len(cfg.Biomes))
	for i, b := range cfg.Biomes {
		names[i] = b.Name
	}

	layout := &LevelLayout{
		seed:        cfg.Seed,
		tileSize:    cfg.TileSize,
		worldOffset: centeredOffset(cfg.GridSize, cfg.TileSize),
		biomeNames:  names,
		grid:        grid,
		rooms:       rooms,
		links:       links,
		dropped:     dropped,
		shortfalls:  shortfalls,
		directives:  Sweep(grid),
		spawns:      spawnSites(grid, rooms),
	}
	g.logger.Printf(text.Get("INFO_GENERATED"), cfg.Seed, len(rooms), len(links), len(dropped))
	return layout, nil
}

// biomeRoom rolls the size of one biome room. The side the door sits on
// leans odd so the centered door offset lands on the middle tile.
func biomeRoom(rng *rand.Rand, id int, b config.Biome) RoomSpec {
	w := b.MinRoomSize + rng.Intn(b.MaxRoomSize-b.MinRoomSize+1)
	h := b.MinRoomSize + rng.Intn(b.MaxRoomSize-b.MinRoomSize+1)
	switch SnapCardinal(b.DoorSide) {
	case 90, 270:
		h = oddInRange(h, b.MinRoomSize, b.MaxRoomSize)
	default:
		w = oddInRange(w, b.MinRoomSize, b.MaxRoomSize)
	}
	return RoomSpec{
		Kind:        KindBiome,
		Width:       w,
		Height:      h,
		DoorOffset:  DoorEdgeOffset(w, h, b.DoorSide),
		DoorSide:    b.DoorSide,
		RotationFix: b.RotationFix,
		BiomeID:     id,
	}
}

func oddInRange(n, lo, hi int) int {
	if n%2 != 0 {
		return n
	}
	if n+1 <= hi {
		return n + 1
	}
	if n-1 >= lo {
		return n - 1
	}
	return n
}
