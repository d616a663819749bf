// Package spatial provides the broad phase for rectangle collision pairing.
package spatial

import "math"

// SpatialGrid buckets rectangles into fixed-size cells. A rectangle is stored
// in every cell it covers, so a query only has to look at the cells its own
// rectangle covers. IDs are indices into the caller's entity slice.
//
// Memory layout: cells are stored in row-major order (cells[row*cols+col])
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64
	cols, rows  int
	cells       [][]uint32
	scratch     []uint32
	marks       []uint32 // query generation per ID, for deduplication
	generation  uint32
}

// NewSpatialGrid creates a grid covering the world bounds. maxEntities sizes
// the initial per-cell capacity.
func NewSpatialGrid(worldWidth, worldHeight, cellSize float64, maxEntities int) *SpatialGrid {
	cols := int(math.Ceil(worldWidth / cellSize))
	rows := int(math.Ceil(worldHeight / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	cells := make([][]uint32, cols*rows)
	perCell := maxEntities / len(cells)
	if perCell < 4 {
		perCell = 4
	}
	for i := range cells {
		cells[i] = make([]uint32, 0, perCell)
	}

	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       cells,
		scratch:     make([]uint32, 0, 16),
		marks:       make([]uint32, maxEntities),
	}
}

// Clear empties every cell, keeping capacity.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// cellRange returns the clamped inclusive cell span of a rectangle.
func (g *SpatialGrid) cellRange(x, y, w, h float64) (c0, c1, r0, r1 int) {
	c0 = g.clampCol(int(math.Floor(x * g.invCellSize)))
	c1 = g.clampCol(int(math.Floor((x + w) * g.invCellSize)))
	r0 = g.clampRow(int(math.Floor(y * g.invCellSize)))
	r1 = g.clampRow(int(math.Floor((y + h) * g.invCellSize)))
	return
}

func (g *SpatialGrid) clampCol(c int) int {
	if c < 0 {
		return 0
	}
	if c >= g.cols {
		return g.cols - 1
	}
	return c
}

func (g *SpatialGrid) clampRow(r int) int {
	if r < 0 {
		return 0
	}
	if r >= g.rows {
		return g.rows - 1
	}
	return r
}

// Insert adds entity id with the given rectangle.
func (g *SpatialGrid) Insert(id uint32, x, y, w, h float64) {
	c0, c1, r0, r1 := g.cellRange(x, y, w, h)
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			idx := r*g.cols + c
			g.cells[idx] = append(g.cells[idx], id)
		}
	}
	if int(id) >= len(g.marks) {
		grown := make([]uint32, int(id)+1)
		copy(grown, g.marks)
		g.marks = grown
	}
}

// QueryRect returns each entity sharing a cell with the rectangle once.
// The returned slice is reused by the next query. Candidates still need an
// exact overlap test.
func (g *SpatialGrid) QueryRect(x, y, w, h float64) []uint32 {
	g.scratch = g.scratch[:0]
	g.generation++
	if g.generation == 0 {
		clear(g.marks)
		g.generation = 1
	}

	c0, c1, r0, r1 := g.cellRange(x, y, w, h)
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			for _, id := range g.cells[r*g.cols+c] {
				if g.marks[id] == g.generation {
					continue
				}
				g.marks[id] = g.generation
				g.scratch = append(g.scratch, id)
			}
		}
	}
	return g.scratch
}

// Stats returns grid statistics for debugging/profiling.
func (g *SpatialGrid) Stats() GridStats {
	var total, maxInCell, nonEmpty int
	for _, cell := range g.cells {
		n := len(cell)
		total += n
		if n > maxInCell {
			maxInCell = n
		}
		if n > 0 {
			nonEmpty++
		}
	}
	return GridStats{
		TotalCells:    len(g.cells),
		NonEmptyCells: nonEmpty,
		Entries:       total,
		MaxInCell:     maxInCell,
	}
}

// GridStats contains grid statistics for debugging.
type GridStats struct {
	TotalCells    int
	NonEmptyCells int
	Entries       int
	MaxInCell     int
}

// Dimensions returns the grid dimensions.
func (g *SpatialGrid) Dimensions() (cols, rows int, cellSize float64) {
	return g.cols, g.rows, g.cellSize
}
