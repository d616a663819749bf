package game

import "math"

// IsAirborne reports whether neither bottom corner of the body rests on a
// solid tile. The corners are probed just below the bottom edge.
func IsAirborne(g *TileGrid, b *Body) bool {
	y := b.Y + b.H + edgeEpsilon
	return !g.IsSolidAt(b.X, y) && !g.IsSolidAt(b.X+b.W-edgeEpsilon, y)
}

// The came-from tests compare the previous edges with the boundary of the
// tile the current edge lies in.

func cameFromLeft(b *Body) bool {
	return b.PX+b.W-edgeEpsilon <= float64(TilePos(b.X+b.W)*TileSize)
}

func cameFromRight(b *Body) bool {
	return b.PX >= float64((TilePos(b.X)+1)*TileSize)
}

func cameFromAbove(b *Body) bool {
	return b.PY+b.H-edgeEpsilon <= float64(TilePos(b.Y+b.H)*TileSize)
}

func cameFromBelow(b *Body) bool {
	return b.PY >= float64((TilePos(b.Y)+1)*TileSize)
}

// restingOn reports whether the body stood on top of row before its last move.
func restingOn(b *Body, row int) bool {
	return math.Abs(b.PY+b.H-float64(row*TileSize)) <= edgeEpsilon
}

// penetrates reports whether the body overlaps a solid tile by a positive
// area. Tiles it only touches along an edge do not count.
func (g *TileGrid) penetrates(b *Body) bool {
	c0, c1 := overlapSpan(b.X, b.W)
	r0, r1 := overlapSpan(b.Y, b.H)
	return g.anySolid(c0, c1, r0, r1)
}

// ResolveNormalForce pushes a body that penetrated solid tiles back out.
//
// The horizontal axis is resolved first, over the rows the body overlaps now.
// The floor row a body was standing on before the move is left out so
// walking across floor seams is never read as hitting a wall. If the body
// still overlaps a solid tile afterwards, the vertical axis is resolved the
// same way. On a diagonal entry where both axes qualify, the horizontal push
// wins. Which side the body entered from is decided by its previous position.
// Each push leaves the edge flush on the tile boundary and zeroes the velocity
// component of that axis.
//
// Bodies that cross a whole tile in one step are not caught.
func ResolveNormalForce(g *TileGrid, b *Body) {
	if !g.IntersectsWith(b) {
		return
	}

	r0, r1 := overlapSpan(b.Y, b.H)
	if restingOn(b, r1) {
		r1--
	}
	switch {
	case cameFromLeft(b):
		if d, col := g.rightDepth(b, r0, r1); d > 0 {
			b.X = float64(col*TileSize) - b.W
			b.Vel.X = 0
		}
	case cameFromRight(b):
		if d, col := g.leftDepth(b, r0, r1); d > 0 {
			b.X = float64((col + 1) * TileSize)
			b.Vel.X = 0
		}
	}

	if !g.penetrates(b) {
		return
	}

	c0, c1 := overlapSpan(b.X, b.W)
	switch {
	case cameFromAbove(b):
		if d, row := g.bottomDepth(b, c0, c1); d > 0 {
			b.Y = float64(row*TileSize) - b.H
			b.Vel.Y = 0
		}
	case cameFromBelow(b):
		if d, row := g.topDepth(b, c0, c1); d > 0 {
			b.Y = float64((row + 1) * TileSize)
			b.Vel.Y = 0
		}
	}
}
