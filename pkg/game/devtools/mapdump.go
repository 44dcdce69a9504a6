// Package devtools provides developer tools for inspecting generated layouts.
package devtools

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"dungeonlayout/pkg/engine/world"
	"dungeonlayout/pkg/game/generator"
	"dungeonlayout/pkg/game/text"
)

const mapDumpFilename = "map.txt"

// tileSymbol returns the single-character symbol for a tile, with the start
// and boss rooms overlaid.
func tileSymbol(l *generator.LevelLayout, p world.Point, owners map[world.Point]generator.RoomKind) rune {
	t := l.At(p)
	if kind, ok := owners[p]; ok && t == world.Room {
		switch kind {
		case generator.KindStart:
			return 'S'
		case generator.KindBoss:
			return 'B'
		}
	}
	return t.Symbol()
}

// specialRooms maps the tiles of the start and boss rooms to their kind.
func specialRooms(l *generator.LevelLayout) map[world.Point]generator.RoomKind {
	owners := make(map[world.Point]generator.RoomKind)
	for _, r := range l.Rooms() {
		if r.Kind == generator.KindBiome {
			continue
		}
		fw, fh := r.Footprint()
		for y := r.Origin.Y; y < r.Origin.Y+fh; y++ {
			for x := r.Origin.X; x < r.Origin.X+fw; x++ {
				owners[world.Pt(x, y)] = r.Kind
			}
		}
	}
	return owners
}

// writeMapGrid writes the whole grid, north up, one character per tile.
func writeMapGrid(w io.Writer, l *generator.LevelLayout) {
	owners := specialRooms(l)
	size := l.Size()
	for y := size - 1; y >= 0; y-- {
		row := make([]rune, size)
		for x := 0; x < size; x++ {
			row[x] = tileSymbol(l, world.Pt(x, y), owners)
		}
		fmt.Fprintln(w, string(row))
	}
}

func biomeLabel(l *generator.LevelLayout, id int) string {
	if name := l.BiomeName(id); name != "" {
		return name
	}
	return text.Get("NO_BIOME")
}

// WriteDump writes a full debug dump of l: metadata, legend, the map and
// every record the generator produced. The format is sectioned key: value
// text meant for people and diff tools alike.
func WriteDump(w io.Writer, l *generator.LevelLayout) error {
	bw := bufio.NewWriter(w)
	rooms := l.Rooms()
	links := l.Links()
	dropped := l.Dropped()
	off := l.WorldOffset()

	// --- Metadata ---
	fmt.Fprintln(bw, "=== LAYOUT DUMP ===")
	fmt.Fprintln(bw, "")
	fmt.Fprintln(bw, "--- Metadata ---")
	fmt.Fprintf(bw, "seed: %d\n", l.Seed())
	fmt.Fprintf(bw, "grid_size: %d\n", l.Size())
	fmt.Fprintf(bw, "tile_size: %g\n", l.TileSize())
	fmt.Fprintf(bw, "world_offset: %g,%g\n", off.X, off.Z)
	fmt.Fprintln(bw, "coordinate_system: x,y (0-based, +x east, +y north; map printed north up)")
	fmt.Fprintf(bw, "rooms: %d\n", len(rooms))
	fmt.Fprintf(bw, "corridors: %d\n", len(links))
	fmt.Fprintf(bw, "dropped_corridors: %d\n", len(dropped))
	fmt.Fprintf(bw, "unreachable_rooms: %v\n", l.Unreachable())
	fmt.Fprintln(bw, "")

	// --- Legend ---
	fmt.Fprintln(bw, "--- Legend (tile symbols) ---")
	fmt.Fprintln(bw, text.Get("LEGEND"))
	fmt.Fprintln(bw, "")

	// --- Map ---
	fmt.Fprintln(bw, "--- Map ---")
	writeMapGrid(bw, l)
	fmt.Fprintln(bw, "")

	// --- Rooms ---
	fmt.Fprintln(bw, "--- Rooms ---")
	for _, r := range rooms {
		fw, fh := r.Footprint()
		fmt.Fprintf(bw, "  index: %d kind: %s biome: %s origin: %d,%d size: %dx%d footprint: %dx%d rotation: %d facing: %d\n",
			r.Index, text.Kind(r.Kind.String()), biomeLabel(l, r.BiomeID), r.Origin.X, r.Origin.Y, r.Width, r.Height, fw, fh, r.RotationDegrees, r.DoorFacing)
	}
	fmt.Fprintln(bw, "")

	// --- Doors ---
	fmt.Fprintln(bw, "--- Doors ---")
	for i, d := range l.Doors() {
		fmt.Fprintf(bw, "  room: %d door: %d,%d step: %d,%d direction: %s\n", i, d.GridPos.X, d.GridPos.Y, d.StepPos.X, d.StepPos.Y, d.Direction)
	}
	fmt.Fprintln(bw, "")

	// --- Corridors ---
	fmt.Fprintln(bw, "--- Corridors ---")
	for _, k := range links {
		fmt.Fprintf(bw, "  from_room: %d to_room: %d from: %d,%d to: %d,%d length: %d\n", k.FromRoom, k.ToRoom, k.From.X, k.From.Y, k.To.X, k.To.Y, k.Length)
	}
	fmt.Fprintln(bw, "")

	if len(dropped) > 0 {
		fmt.Fprintln(bw, "--- Dropped corridors ---")
		for _, k := range dropped {
			fmt.Fprintf(bw, "  from_room: %d to_room: %d from: %d,%d to: %d,%d\n", k.FromRoom, k.ToRoom, k.From.X, k.From.Y, k.To.X, k.To.Y)
		}
		fmt.Fprintln(bw, "")
	}

	if s := l.Shortfalls(); len(s) > 0 {
		fmt.Fprintln(bw, "--- Shortfalls ---")
		for _, f := range s {
			fmt.Fprintf(bw, "  biome: %s requested: %d placed: %d\n", f.Biome, f.Requested, f.Placed)
		}
		fmt.Fprintln(bw, "")
	}

	// --- Hallway pieces ---
	directives := l.Directives()
	fmt.Fprintln(bw, "--- Hallway pieces ---")
	counts := make(map[string]int)
	for _, d := range directives {
		counts[d.Kind.String()]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(bw, "  %s: %d\n", text.Geometry(name), counts[name])
	}
	for _, d := range directives {
		fmt.Fprintf(bw, "  at: %d,%d piece: %s rotation: %d\n", d.Pos.X, d.Pos.Y, text.Geometry(d.Kind.String()), d.Rotation)
	}
	fmt.Fprintln(bw, "")

	// --- Spawns ---
	fmt.Fprintln(bw, "--- Spawns ---")
	for _, s := range l.Spawns() {
		dist := fmt.Sprint(s.PathDistance)
		if !s.Reachable {
			dist = text.Get("UNREACHABLE")
		}
		fmt.Fprintf(bw, "  room: %d kind: %s biome: %s path_distance: %s\n", s.Room, text.Kind(s.Kind.String()), biomeLabel(l, s.BiomeID), dist)
	}
	if far := generator.FurthestRoom(l.Spawns()); far >= 0 {
		fmt.Fprintf(bw, "  furthest_room: %d\n", far)
	}

	return bw.Flush()
}

// DumpLayoutToFile writes the dump to path, or to map.txt in the working
// directory when path is empty. It returns the absolute path written.
func DumpLayoutToFile(l *generator.LevelLayout, path string) (string, error) {
	if l == nil {
		return "", fmt.Errorf("no layout")
	}
	if path == "" {
		path = mapDumpFilename
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteDump(f, l); err != nil {
		return "", fmt.Errorf("write %s: %w", absPath, err)
	}
	return absPath, nil
}
