package world

// NoBiome is the biome tag of a tile no biome owns.
const NoBiome = -1

// Grid is a square tile map with a parallel biome-tag layer.
// Tiles are stored row-major in one allocation and addressed by index.
type Grid struct {
	size   int
	tiles  []TileState
	biomes []int
}

// NewGrid creates a size×size grid with every tile Void and every tag unset
func NewGrid(size int) *Grid {
	g := &Grid{}
	g.Build(size)
	return g
}

// Build initializes the grid with the given dimension, discarding any previous content
func (g *Grid) Build(size int) {
	if size <= 0 {
		panic("Grid dimensions must be positive")
	}

	g.size = size
	g.tiles = make([]TileState, size*size)
	g.biomes = make([]int, size*size)
	for i := range g.biomes {
		g.biomes[i] = NoBiome
	}
}

// Size returns the number of tiles along each axis
func (g *Grid) Size() int {
	return g.size
}

// Index returns the row-major index of p. p must be Valid.
func (g *Grid) Index(p Point) int {
	return p.Y*g.size + p.X
}

// PointAt is the inverse of Index.
func (g *Grid) PointAt(idx int) Point {
	return Point{X: idx % g.size, Y: idx / g.size}
}

// Valid checks if p addresses a tile of the backing array
func (g *Grid) Valid(p Point) bool {
	return p.X >= 0 && p.X < g.size && p.Y >= 0 && p.Y < g.size
}

// InBounds checks if p is within the usable interior.
// The 1-tile border is never written by generation.
func (g *Grid) InBounds(p Point) bool {
	return p.X > 0 && p.X < g.size-1 && p.Y > 0 && p.Y < g.size-1
}

// Center returns the middle tile of the grid
func (g *Grid) Center() Point {
	return Point{X: g.size / 2, Y: g.size / 2}
}

// At returns the tile state at p, or Void outside the grid
func (g *Grid) At(p Point) TileState {
	if !g.Valid(p) {
		return Void
	}
	return g.tiles[g.Index(p)]
}

// Set writes the tile state at p. Writes outside the grid are ignored.
func (g *Grid) Set(p Point, t TileState) {
	if !g.Valid(p) {
		return
	}
	g.tiles[g.Index(p)] = t
}

// Biome returns the biome tag at p, or NoBiome outside the grid
func (g *Grid) Biome(p Point) int {
	if !g.Valid(p) {
		return NoBiome
	}
	return g.biomes[g.Index(p)]
}

// SetBiome stamps a biome tag at p. Writes outside the grid are ignored.
func (g *Grid) SetBiome(p Point, id int) {
	if !g.Valid(p) {
		return
	}
	g.biomes[g.Index(p)] = id
}

// MarkPadding turns the ring around the w×h rectangle at origin into Padding.
// Only Void tiles inside the usable interior change.
func (g *Grid) MarkPadding(origin Point, w, h int) {
	for y := origin.Y - 1; y <= origin.Y+h; y++ {
		for x := origin.X - 1; x <= origin.X+w; x++ {
			p := Point{X: x, Y: y}
			if g.InBounds(p) && g.At(p) == Void {
				g.Set(p, Padding)
			}
		}
	}
}

// MarkRoom sets the w×h rectangle at origin to Room and stamps biomeID
func (g *Grid) MarkRoom(origin Point, w, h, biomeID int) {
	for y := origin.Y; y < origin.Y+h; y++ {
		for x := origin.X; x < origin.X+w; x++ {
			p := Point{X: x, Y: y}
			if !g.Valid(p) {
				continue
			}
			g.Set(p, Room)
			g.SetBiome(p, biomeID)
		}
	}
}

// ClearEntryPoint reopens up to two Padding tiles outward from doorPos so
// corridors can reach the doorway.
func (g *Grid) ClearEntryPoint(doorPos Point, dir Direction) {
	p := doorPos
	for i := 0; i < 2; i++ {
		p = p.Step(dir)
		if !g.InBounds(p) {
			return
		}
		if g.At(p) == Padding {
			g.Set(p, Void)
		}
	}
}

// IsAreaVoid reports whether the w×h rectangle at origin, grown by margin on
// every side, lies inside the usable interior and is entirely Void.
func (g *Grid) IsAreaVoid(origin Point, w, h, margin int) bool {
	minP := Point{X: origin.X - margin, Y: origin.Y - margin}
	maxP := Point{X: origin.X + w - 1 + margin, Y: origin.Y + h - 1 + margin}
	if !g.InBounds(minP) || !g.InBounds(maxP) {
		return false
	}
	for y := minP.Y; y <= maxP.Y; y++ {
		for x := minP.X; x <= maxP.X; x++ {
			if g.tiles[y*g.size+x] != Void {
				return false
			}
		}
	}
	return true
}

// ForEachTile iterates over all tiles in row-major order
func (g *Grid) ForEachTile(fn func(p Point, t TileState)) {
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			fn(Point{X: x, Y: y}, g.tiles[y*g.size+x])
		}
	}
}

// Count returns how many tiles are in state t
func (g *Grid) Count(t TileState) int {
	n := 0
	for _, s := range g.tiles {
		if s == t {
			n++
		}
	}
	return n
}

// Tiles returns a copy of the tile layer
func (g *Grid) Tiles() []TileState {
	return append([]TileState(nil), g.tiles...)
}

// BiomeTags returns a copy of the biome layer
func (g *Grid) BiomeTags() []int {
	return append([]int(nil), g.biomes...)
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	return &Grid{
		size:   g.size,
		tiles:  g.Tiles(),
		biomes: g.BiomeTags(),
	}
}

// Equal reports whether both layers of g and o are identical
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.size != o.size {
		return false
	}
	for i := range g.tiles {
		if g.tiles[i] != o.tiles[i] || g.biomes[i] != o.biomes[i] {
			return false
		}
	}
	return true
}

// FromTiles rebuilds a grid from published layers, e.g. a stored layout.
// It returns nil if the layers do not describe a square grid of size.
func FromTiles(size int, tiles []TileState, biomes []int) *Grid {
	if size <= 0 || len(tiles) != size*size || len(biomes) != size*size {
		return nil
	}
	return &Grid{
		size:   size,
		tiles:  append([]TileState(nil), tiles...),
		biomes: append([]int(nil), biomes...),
	}
}
