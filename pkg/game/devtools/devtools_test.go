package devtools

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dungeonlayout/pkg/engine/world"
	"dungeonlayout/pkg/game/config"
	"dungeonlayout/pkg/game/generator"
)

func smallLayout(t *testing.T) *generator.LevelLayout {
	t.Helper()
	cfg := config.Default()
	cfg.GridSize = 20
	origin := world.Pt(5, 5)
	cfg.Start = config.StartRoom{Width: 3, Height: 2, DoorOffset: world.Pt(1, 1), Origin: &origin}
	cfg.Biomes = []config.Biome{{Name: "crypt", RoomCount: 1, MinRoomSize: 3, MaxRoomSize: 3}}
	cfg.Boss.Disabled = true
	l, err := generator.New().Generate(cfg)
	require.NoError(t, err)
	return l
}

func section(t *testing.T, dump, name string) []string {
	t.Helper()
	header := "--- " + name + " ---\n"
	i := strings.Index(dump, header)
	require.GreaterOrEqual(t, i, 0, "missing section %s", name)
	body := dump[i+len(header):]
	if end := strings.Index(body, "\n\n"); end >= 0 {
		body = body[:end]
	}
	return strings.Split(strings.TrimRight(body, "\n"), "\n")
}

func TestWriteDump(t *testing.T) {
	l := smallLayout(t)
	var buf bytes.Buffer
	require.NoError(t, WriteDump(&buf, l))
	dump := buf.String()

	meta := section(t, dump, "Metadata")
	assert.Contains(t, meta, "seed: 1")
	assert.Contains(t, meta, "grid_size: 20")
	assert.Contains(t, meta, "tile_size: 4")
	assert.Contains(t, meta, "world_offset: -40,-40")
	assert.Contains(t, meta, "unreachable_rooms: []")

	grid := section(t, dump, "Map")
	require.Len(t, grid, 20)
	// row 0 of the printout is y=19; the start room spans y=5..6
	assert.Equal(t, "    :SSS:           ", grid[19-6])
	assert.Equal(t, 6, strings.Count(strings.Join(grid, ""), "S"))
	assert.Equal(t, 9, strings.Count(strings.Join(grid, ""), "#"))
	assert.Equal(t, 2, strings.Count(strings.Join(grid, ""), "D"))

	rooms := section(t, dump, "Rooms")
	require.Len(t, rooms, 2)
	assert.Contains(t, rooms[0], "kind: Start biome: none origin: 5,5 size: 3x2")
	assert.Contains(t, rooms[1], "kind: Biome biome: crypt origin: 11,12 size: 3x3")

	doors := section(t, dump, "Doors")
	assert.Equal(t, "  room: 1 door: 12,12 step: 12,11 direction: South", doors[1])

	corridors := section(t, dump, "Corridors")
	assert.Equal(t, "  from_room: 0 to_room: 1 from: 6,7 to: 12,11 length: 11", corridors[0])

	spawns := section(t, dump, "Spawns")
	assert.Equal(t, "  room: 1 kind: Biome biome: crypt path_distance: 10", spawns[0])
	assert.Equal(t, "  furthest_room: 1", spawns[1])

	assert.NotContains(t, dump, "--- Dropped corridors ---")
	assert.NotContains(t, dump, "--- Shortfalls ---")
}

func TestTileSymbol_OnlyStartAndBossAreOverlaid(t *testing.T) {
	l := smallLayout(t)
	owners := specialRooms(l)
	rooms := l.Rooms()
	require.Len(t, rooms, 2)

	assert.Equal(t, 'S', tileSymbol(l, rooms[0].Origin, owners))
	assert.Equal(t, world.Room.Symbol(), tileSymbol(l, rooms[1].Origin, owners))
	assert.Equal(t, world.DoorStep.Symbol(), tileSymbol(l, rooms[1].Door.StepPos, owners))
	assert.Equal(t, world.Void.Symbol(), tileSymbol(l, world.Pt(0, 0), owners))
}

func TestWriteDump_Shortfall(t *testing.T) {
	cfg := config.Default()
	cfg.GridSize = 20
	cfg.SpiralLimit = 2000
	cfg.Biomes = []config.Biome{{Name: "crypt", RoomCount: 3, MinRoomSize: 3, MaxRoomSize: 3}}
	cfg.Boss.Disabled = true
	l, err := generator.New().Generate(cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDump(&buf, l))
	lines := section(t, buf.String(), "Shortfalls")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "biome: crypt requested: 3")
}

func TestDumpLayoutToFile(t *testing.T) {
	l := smallLayout(t)
	path := filepath.Join(t.TempDir(), "dump.txt")

	got, err := DumpLayoutToFile(l, path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "=== LAYOUT DUMP ==="))

	_, err = DumpLayoutToFile(nil, path)
	assert.Error(t, err)
}

func TestSaveScreenshotHTML(t *testing.T) {
	l := smallLayout(t)
	dir := t.TempDir()
	at := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

	path, err := SaveScreenshotHTML(l, dir, at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "layout-1-20260301-123000.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(data)
	assert.Contains(t, page, "<!DOCTYPE html>")
	assert.Equal(t, 14, strings.Count(page, `<div class="map-row">`))
	assert.Equal(t, 6, strings.Count(page, `<span class="start">`))
	assert.Equal(t, 2, strings.Count(page, `<span class="door">`))
	assert.NotContains(t, page, `class="messages"`)
}

func TestDevProfile(t *testing.T) {
	cfg := DevProfile()
	require.NoError(t, cfg.Validate())

	l, err := generator.New().Generate(cfg)
	require.NoError(t, err)
	assert.NoError(t, l.Validate())
	assert.NotEmpty(t, l.Links())
}
