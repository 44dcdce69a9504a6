package devtools

import (
	"dungeonlayout/pkg/engine/world"
	"dungeonlayout/pkg/game/config"
)

// DevProfile returns a small profile for iterating on the generator: a 64
// tile grid that fits in one terminal screen, two biomes with rotated
// prefabs, a boss room and the spanning-tree tour.
func DevProfile() config.Config {
	cfg := config.Default()
	cfg.GridSize = 64
	cfg.Clearance = 3
	cfg.SpiralLimit = 4000
	cfg.PathLimit = 64 * 64
	cfg.Tour = config.TourMST
	cfg.Start = config.StartRoom{
		Width:      5,
		Height:     3,
		DoorOffset: world.Pt(2, 2),
	}
	cfg.Biomes = []config.Biome{
		{Name: "crypt", RoomCount: 3, MinRoomSize: 3, MaxRoomSize: 5},
		{Name: "forge", RoomCount: 3, MinRoomSize: 3, MaxRoomSize: 7, DoorSide: 90, RotationFix: 180},
	}
	cfg.Boss = config.BossRoom{
		Width:       7,
		Height:      5,
		EntryOffset: world.Pt(3, 4),
	}
	return cfg
}
