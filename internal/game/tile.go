package game

import (
	"errors"
	"fmt"
	"math"
)

// Tile is one immutable grid cell.
type Tile struct {
	Name  string `json:"name"`
	Solid bool   `json:"solid"`
	Glyph byte   `json:"-"`
}

// Stock tiles. Spawn and goal markers are walkable air.
var (
	TileAir   = Tile{Name: "air", Glyph: '.'}
	TileBox   = Tile{Name: "box", Solid: true, Glyph: '#'}
	TileMetal = Tile{Name: "metal", Solid: true, Glyph: '='}
	TileSpawn = Tile{Name: "spawn", Glyph: 'S'}
	TileGoal  = Tile{Name: "goal", Glyph: 'G'}
)

var (
	ErrEmptyGrid      = errors.New("tile grid is empty")
	ErrRaggedGrid     = errors.New("tile grid is not rectangular")
	ErrMultipleSpawns = errors.New("tile grid has more than one spawn tile")
)

// TileGrid is a dense row-major grid of tiles. Geometry is fixed after
// construction; only solidity of individual cells may be toggled.
type TileGrid struct {
	tiles [][]Tile // [row][col]
	cols  int
	rows  int
}

// NewTileGrid validates and wraps tiles addressed [row][col].
func NewTileGrid(tiles [][]Tile) (*TileGrid, error) {
	if len(tiles) == 0 || len(tiles[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	cols := len(tiles[0])
	spawns := 0
	for r, row := range tiles {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d tiles, want %d: %w", r, len(row), cols, ErrRaggedGrid)
		}
		for _, t := range row {
			if t.Name == TileSpawn.Name {
				spawns++
			}
		}
	}
	if spawns > 1 {
		return nil, ErrMultipleSpawns
	}
	return &TileGrid{tiles: tiles, cols: cols, rows: len(tiles)}, nil
}

// Width and Height are measured in tiles.
func (g *TileGrid) Width() int  { return g.cols }
func (g *TileGrid) Height() int { return g.rows }

// PixelWidth and PixelHeight are measured in world units.
func (g *TileGrid) PixelWidth() float64  { return float64(g.cols * TileSize) }
func (g *TileGrid) PixelHeight() float64 { return float64(g.rows * TileSize) }

// Get returns the tile at grid indices. Out-of-range indices panic.
func (g *TileGrid) Get(col, row int) Tile {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		panic(fmt.Sprintf("tile index (%d,%d) outside %dx%d grid", col, row, g.cols, g.rows))
	}
	return g.tiles[row][col]
}

// SetSolid toggles solidity of one cell, for destructible tiles.
func (g *TileGrid) SetSolid(col, row int, solid bool) {
	t := g.Get(col, row)
	t.Solid = solid
	g.tiles[row][col] = t
}

// TilePos converts a non-negative world coordinate to a tile index.
func TilePos(p float64) int {
	return int(p / TileSize)
}

// tileSpan returns the tiles covered by the interval [lo, lo+size], both ends
// converted independently. A far edge lying on a boundary includes the tile
// it touches.
func tileSpan(lo, size float64) (int, int) {
	return TilePos(lo), TilePos(lo + size)
}

// overlapSpan returns the tiles the interval [lo, lo+size] overlaps by a
// positive length. A far edge on a boundary does not reach the next tile.
func overlapSpan(lo, size float64) (int, int) {
	return TilePos(lo), int(math.Ceil((lo+size)/TileSize)) - 1
}

func (g *TileGrid) solid(col, row int) bool {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return false
	}
	return g.tiles[row][col].Solid
}

// IsSolidAt reports whether the world point lies inside a solid tile. Points
// outside the grid are never solid.
func (g *TileGrid) IsSolidAt(x, y float64) bool {
	if x < 0 || y < 0 {
		return false
	}
	return g.solid(TilePos(x), TilePos(y))
}

// IntersectsWith reports whether any tile covered by the body's rectangle is
// solid. A body whose edge lies on a solid tile's boundary intersects it.
func (g *TileGrid) IntersectsWith(b *Body) bool {
	c0, c1 := tileSpan(b.X, b.W)
	r0, r1 := tileSpan(b.Y, b.H)
	return g.anySolid(c0, c1, r0, r1)
}

func (g *TileGrid) anySolid(c0, c1, r0, r1 int) bool {
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			if g.solid(c, r) {
				return true
			}
		}
	}
	return false
}

// RightSideIntersection returns how far the body's right edge reaches into the
// first solid tile in the column under that edge, or 0.
func (g *TileGrid) RightSideIntersection(b *Body) float64 {
	r0, r1 := tileSpan(b.Y, b.H)
	d, _ := g.rightDepth(b, r0, r1)
	return d
}

// LeftSideIntersection returns how far the body's left edge reaches into the
// first solid tile in the column under that edge, or 0.
func (g *TileGrid) LeftSideIntersection(b *Body) float64 {
	r0, r1 := tileSpan(b.Y, b.H)
	d, _ := g.leftDepth(b, r0, r1)
	return d
}

// BottomSideIntersection returns how far the body's bottom edge reaches into
// the first solid tile in the row under that edge, or 0.
func (g *TileGrid) BottomSideIntersection(b *Body) float64 {
	c0, c1 := tileSpan(b.X, b.W)
	d, _ := g.bottomDepth(b, c0, c1)
	return d
}

// TopSideIntersection returns how far the body's top edge reaches into the
// first solid tile in the row under that edge, or 0.
func (g *TileGrid) TopSideIntersection(b *Body) float64 {
	c0, c1 := tileSpan(b.X, b.W)
	d, _ := g.topDepth(b, c0, c1)
	return d
}

// The depth helpers scan the edge's column or row between the given indices
// and also return that column or row.

func (g *TileGrid) rightDepth(b *Body, r0, r1 int) (float64, int) {
	col := TilePos(b.X + b.W)
	for r := r0; r <= r1; r++ {
		if g.solid(col, r) {
			return b.X + b.W - float64(col*TileSize), col
		}
	}
	return 0, col
}

func (g *TileGrid) leftDepth(b *Body, r0, r1 int) (float64, int) {
	col := TilePos(b.X)
	for r := r0; r <= r1; r++ {
		if g.solid(col, r) {
			return float64((col+1)*TileSize) - b.X, col
		}
	}
	return 0, col
}

func (g *TileGrid) bottomDepth(b *Body, c0, c1 int) (float64, int) {
	row := TilePos(b.Y + b.H)
	for c := c0; c <= c1; c++ {
		if g.solid(c, row) {
			return b.Y + b.H - float64(row*TileSize), row
		}
	}
	return 0, row
}

func (g *TileGrid) topDepth(b *Body, c0, c1 int) (float64, int) {
	row := TilePos(b.Y)
	for c := c0; c <= c1; c++ {
		if g.solid(c, row) {
			return float64((row+1)*TileSize) - b.Y, row
		}
	}
	return 0, row
}

// SpawnPoint returns the top-left corner of the spawn tile.
func (g *TileGrid) SpawnPoint() (x, y float64, ok bool) {
	for r, row := range g.tiles {
		for c, t := range row {
			if t.Name == TileSpawn.Name {
				return float64(c * TileSize), float64(r * TileSize), true
			}
		}
	}
	return 0, 0, false
}

// HasGoal reports whether any goal tile exists.
func (g *TileGrid) HasGoal() bool {
	for _, row := range g.tiles {
		for _, t := range row {
			if t.Name == TileGoal.Name {
				return true
			}
		}
	}
	return false
}

// TouchesGoal reports whether the body covers or touches a goal tile.
func (g *TileGrid) TouchesGoal(b *Body) bool {
	c0, c1 := tileSpan(b.X, b.W)
	r0, r1 := tileSpan(b.Y, b.H)
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			if c < 0 || c >= g.cols || r < 0 || r >= g.rows {
				continue
			}
			if g.tiles[r][c].Name == TileGoal.Name {
				return true
			}
		}
	}
	return false
}

// Rows renders the grid as one glyph string per row.
func (g *TileGrid) Rows() []string {
	out := make([]string, g.rows)
	buf := make([]byte, g.cols)
	for r, row := range g.tiles {
		for c, t := range row {
			glyph := t.Glyph
			if glyph == 0 {
				glyph = '?'
			}
			buf[c] = glyph
		}
		out[r] = string(buf)
	}
	return out
}
