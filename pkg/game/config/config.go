// Package config holds the generation profile: grid dimensions, room shapes,
// biome definitions and search limits. A profile is validated once, before
// generation starts.
package config

import (
	"errors"
	"fmt"
	"strings"

	"dungeonlayout/pkg/engine/world"
)

// Tour strategies for ordering connection points.
const (
	TourNearest = "nearest" // greedy nearest neighbor from the start room
	TourMST     = "mst"     // minimum spanning tree rooted at the start room
)

// Defaults used by Default and to fill zero values of loaded profiles.
const (
	DefaultGridSize    = 250
	DefaultTileSize    = 4.0
	DefaultClearance   = 4
	DefaultSpiralLimit = 10000
	DefaultPathLimit   = 10000
	minGridSize        = 8
)

// StartRoom describes the room every level begins in.
type StartRoom struct {
	Width      int          `yaml:"width" json:"width"`
	Height     int          `yaml:"height" json:"height"`
	DoorOffset world.Point  `yaml:"door_offset" json:"door_offset"`
	Origin     *world.Point `yaml:"origin,omitempty" json:"origin,omitempty"` // nil places it at the grid center
}

// Biome is a themed section of the dungeon.
type Biome struct {
	Name        string `yaml:"name" json:"name"`
	RoomCount   int    `yaml:"room_count" json:"room_count"`
	MinRoomSize int    `yaml:"min_room_size" json:"min_room_size"`
	MaxRoomSize int    `yaml:"max_room_size" json:"max_room_size"`
	// DoorSide is the side the prefab's door sits on at rotation 0, in degrees.
	DoorSide int `yaml:"door_side" json:"door_side"`
	// RotationFix is added to every computed rotation for this biome's prefabs.
	RotationFix int `yaml:"rotation_fix" json:"rotation_fix"`
}

// BossRoom is placed after every biome room.
type BossRoom struct {
	Disabled    bool        `yaml:"disabled" json:"disabled"`
	Width       int         `yaml:"width" json:"width"`
	Height      int         `yaml:"height" json:"height"`
	EntryOffset world.Point `yaml:"entry_offset" json:"entry_offset"`
}

// Config is a full generation profile.
type Config struct {
	GridSize    int       `yaml:"grid_size" json:"grid_size"`
	TileSize    float64   `yaml:"tile_size" json:"tile_size"`
	Seed        int64     `yaml:"seed" json:"seed"`
	Clearance   int       `yaml:"clearance" json:"clearance"`
	SpiralLimit int       `yaml:"spiral_limit" json:"spiral_limit"`
	PathLimit   int       `yaml:"path_limit" json:"path_limit"`
	Tour        string    `yaml:"tour" json:"tour"`
	Start       StartRoom `yaml:"start" json:"start"`
	Biomes      []Biome   `yaml:"biomes" json:"biomes"`
	Boss        BossRoom  `yaml:"boss" json:"boss"`
}

// Default returns the stock profile: a 250×250 grid with three biomes.
func Default() Config {
	return Config{
		GridSize:    DefaultGridSize,
		TileSize:    DefaultTileSize,
		Seed:        1,
		Clearance:   DefaultClearance,
		SpiralLimit: DefaultSpiralLimit,
		PathLimit:   DefaultPathLimit,
		Tour:        TourNearest,
		Start: StartRoom{
			Width:      5,
			Height:     5,
			DoorOffset: world.Pt(2, 4),
		},
		Biomes: []Biome{
			{Name: "crypt", RoomCount: 4, MinRoomSize: 3, MaxRoomSize: 7},
			{Name: "caverns", RoomCount: 4, MinRoomSize: 5, MaxRoomSize: 9},
			{Name: "forge", RoomCount: 3, MinRoomSize: 5, MaxRoomSize: 11},
		},
		Boss: BossRoom{
			Width:       9,
			Height:      9,
			EntryOffset: world.Pt(4, 8),
		},
	}
}

// Sentinel errors returned (joined) by Validate.
var (
	ErrGridSize     = errors.New("config: grid size too small")
	ErrRoomSize     = errors.New("config: invalid room size")
	ErrDoorOffset   = errors.New("config: door offset outside room")
	ErrDoorEdge     = errors.New("config: door offset not on the room's north edge")
	ErrRotation     = errors.New("config: rotation must be a multiple of 90")
	ErrLimit        = errors.New("config: search limits must be positive")
	ErrTourStrategy = errors.New("config: unknown tour strategy")
	ErrOrigin       = errors.New("config: start origin outside grid interior")
	ErrRoomCount    = errors.New("config: negative room count")
)

// Validate reports every problem with the profile at once.
func (c Config) Validate() error {
	var errs []error

	if c.GridSize < minGridSize {
		errs = append(errs, fmt.Errorf("%w: %d < %d", ErrGridSize, c.GridSize, minGridSize))
		// every size check below depends on the grid size
		return errors.Join(errs...)
	}
	if c.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: tile size %v", ErrRoomSize, c.TileSize))
	}
	if c.Clearance < 1 || c.SpiralLimit <= 0 || c.PathLimit <= 0 {
		errs = append(errs, fmt.Errorf("%w: clearance=%d spiral=%d path=%d", ErrLimit, c.Clearance, c.SpiralLimit, c.PathLimit))
	}
	switch strings.ToLower(c.Tour) {
	case TourNearest, TourMST, "":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrTourStrategy, c.Tour))
	}

	// interior minus the clearance margin on both sides
	usable := c.GridSize - 2 - 2*c.Clearance

	errs = append(errs, c.checkRoom("start room", c.Start.Width, c.Start.Height, c.Start.DoorOffset, usable)...)
	if o := c.Start.Origin; o != nil {
		if o.X < 1 || o.Y < 1 || o.X > c.GridSize-2 || o.Y > c.GridSize-2 {
			errs = append(errs, fmt.Errorf("%w: %v", ErrOrigin, *o))
		}
	}

	for i, b := range c.Biomes {
		name := b.Name
		if name == "" {
			name = fmt.Sprintf("biome %d", i)
		}
		if b.RoomCount < 0 {
			errs = append(errs, fmt.Errorf("%w: %s has %d", ErrRoomCount, name, b.RoomCount))
		}
		if b.MinRoomSize < 1 || b.MinRoomSize > b.MaxRoomSize {
			errs = append(errs, fmt.Errorf("%w: %s range [%d,%d]", ErrRoomSize, name, b.MinRoomSize, b.MaxRoomSize))
		} else if b.MaxRoomSize > usable {
			errs = append(errs, fmt.Errorf("%w: %s max %d exceeds usable interior %d", ErrRoomSize, name, b.MaxRoomSize, usable))
		}
		if b.DoorSide%90 != 0 || b.RotationFix%90 != 0 {
			errs = append(errs, fmt.Errorf("%w: %s door_side=%d rotation_fix=%d", ErrRotation, name, b.DoorSide, b.RotationFix))
		}
	}

	if !c.Boss.Disabled {
		errs = append(errs, c.checkRoom("boss room", c.Boss.Width, c.Boss.Height, c.Boss.EntryOffset, usable)...)
	}

	return errors.Join(errs...)
}

func (c Config) checkRoom(name string, w, h int, door world.Point, usable int) []error {
	var errs []error
	if w < 1 || h < 1 || w > usable || h > usable {
		errs = append(errs, fmt.Errorf("%w: %s %dx%d exceeds usable interior %d of grid %d", ErrRoomSize, name, w, h, usable, c.GridSize))
		return errs
	}
	if door.X < 0 || door.X >= w || door.Y < 0 || door.Y >= h {
		errs = append(errs, fmt.Errorf("%w: %s offset %v for %dx%d", ErrDoorOffset, name, door, w, h))
	} else if door.Y != h-1 {
		// the doorway faces local +Y, so it must be cut into the last row
		errs = append(errs, fmt.Errorf("%w: %s offset %v, want y=%d", ErrDoorEdge, name, door, h-1))
	}
	return errs
}

// TotalRooms returns how many rooms the profile asks for, start and boss included.
func (c Config) TotalRooms() int {
	n := 1
	for _, b := range c.Biomes {
		n += b.RoomCount
	}
	if !c.Boss.Disabled {
		n++
	}
	return n
}

// TourStrategy returns the normalized tour strategy name.
func (c Config) TourStrategy() string {
	if t := strings.ToLower(c.Tour); t != "" {
		return t
	}
	return TourNearest
}
