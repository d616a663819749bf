package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveIsReversible(t *testing.T) {
	b := NewBody(40, 17, 10, 10)
	b.Vel = Vector2d{X: 37.5, Y: -12.25}

	b.Move(0.25)
	assert.Equal(t, 40.0, b.PX)
	assert.Equal(t, 17.0, b.PY)

	b.Vel = b.Vel.Scaled(-1)
	b.Move(0.25)
	assert.InDelta(t, 40.0, b.X, 1e-9)
	assert.InDelta(t, 17.0, b.Y, 1e-9)
}

func TestApplyGravityAccumulates(t *testing.T) {
	b := NewBody(0, 0, 10, 10)
	b.Vel = Vector2d{X: 40, Y: -150}

	b.ApplyGravity(Gravity, 0.5)
	assert.Equal(t, Vector2d{X: 40, Y: 0}, b.Vel)
	b.ApplyGravity(Gravity, 0.5)
	assert.Equal(t, Vector2d{X: 40, Y: 150}, b.Vel)
}

func TestNewTileGridValidation(t *testing.T) {
	tests := []struct {
		name  string
		tiles [][]Tile
		want  error
	}{
		{"empty", nil, ErrEmptyGrid},
		{"empty row", [][]Tile{{}}, ErrEmptyGrid},
		{"ragged", [][]Tile{{TileAir, TileAir}, {TileAir}}, ErrRaggedGrid},
		{"two spawns", [][]Tile{{TileSpawn, TileSpawn}}, ErrMultipleSpawns},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTileGrid(tt.tiles)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestTileGridQueries(t *testing.T) {
	g := gridFrom(t,
		"S..",
		"..G",
		"###",
	)

	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, 96.0, g.PixelWidth())
	assert.True(t, g.IsSolidAt(5, 70))
	assert.False(t, g.IsSolidAt(5, 60))
	assert.False(t, g.IsSolidAt(-1, 70), "left of the grid")
	assert.False(t, g.IsSolidAt(5, 500), "below the grid")
	assert.Equal(t, TileBox, g.Get(1, 2))
	assert.Panics(t, func() { g.Get(3, 0) })
	assert.Panics(t, func() { g.Get(0, -1) })

	x, y, ok := g.SpawnPoint()
	require.True(t, ok)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)

	assert.True(t, g.HasGoal())
	goal := NewBody(60, 40, 10, 10)
	assert.True(t, g.TouchesGoal(&goal))
	away := NewBody(0, 40, 10, 10)
	assert.False(t, g.TouchesGoal(&away))

	assert.Equal(t, []string{"S..", "..G", "###"}, g.Rows())

	g.SetSolid(1, 2, false)
	assert.False(t, g.IsSolidAt(40, 70))
}

func TestNonSolidGridNeverIntersects(t *testing.T) {
	g := gridFrom(t,
		"....",
		"....",
		"....",
	)
	bodies := []Body{
		NewBody(0, 0, 32, 32),
		NewBody(10, 10, 100, 80),
		NewBody(-20, -20, 30, 30),
		NewBody(120, 90, 50, 50),
	}
	for _, b := range bodies {
		assert.False(t, g.IntersectsWith(&b), "body at (%v,%v)", b.X, b.Y)
	}
}

func TestSideIntersectionDepth(t *testing.T) {
	g := gridFrom(t,
		".#.",
		"...",
	)

	right := NewBody(20, 4, 20, 10)
	assert.Equal(t, 8.0, g.RightSideIntersection(&right))

	left := NewBody(60, 4, 20, 10)
	assert.Equal(t, 4.0, g.LeftSideIntersection(&left))

	open := NewBody(0, 40, 20, 10)
	assert.Zero(t, g.RightSideIntersection(&open))
	assert.Zero(t, g.BottomSideIntersection(&open))
}

func TestIsAirborne(t *testing.T) {
	g := gridFrom(t,
		"...",
		"#..",
	)
	tests := []struct {
		name string
		body Body
		want bool
	}{
		{"resting on tile", NewBody(4, 12, 20, 20), false},
		{"one corner over the ledge", NewBody(20, 12, 20, 20), false},
		{"past the ledge", NewBody(40, 12, 20, 20), true},
		{"above the ground", NewBody(4, 2, 20, 20), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAirborne(g, &tt.body); got != tt.want {
				t.Errorf("IsAirborne = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEdgeTouchIntersects(t *testing.T) {
	right := (*TileGrid).RightSideIntersection
	bottom := (*TileGrid).BottomSideIntersection
	tests := []struct {
		name  string
		rows  []string
		body  Body
		want  bool
		side  func(*TileGrid, *Body) float64
		depth float64
	}{
		{"right edge on wall boundary", []string{".#."}, NewBody(12, 0, 20, 20), true, right, 0},
		{"one unit short of the wall", []string{".#."}, NewBody(11, 0, 20, 20), false, right, 0},
		{"bottom edge on floor", []string{"...", ".#."}, NewBody(36, 12, 20, 20), true, bottom, 0},
		{"bottom edge into floor", []string{"...", ".#."}, NewBody(36, 14, 20, 20), true, bottom, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gridFrom(t, tt.rows...)
			assert.Equal(t, tt.want, g.IntersectsWith(&tt.body))
			assert.InDelta(t, tt.depth, tt.side(g, &tt.body), 1e-9)
		})
	}
}

func TestResolveLeavesTouchingBodyAlone(t *testing.T) {
	g := gridFrom(t,
		".#.",
	)
	b := NewBody(12, 0, 20, 20)
	b.Vel.X = 50
	require.True(t, g.IntersectsWith(&b))

	ResolveNormalForce(g, &b)

	assert.Equal(t, 12.0, b.X)
	assert.Equal(t, 0.0, b.Y)
	assert.Equal(t, 50.0, b.Vel.X)
}

func TestResolveFromAbove(t *testing.T) {
	g := gridFrom(t,
		"...",
		".#.",
	)
	b := NewBody(36, 10, 20, 20)
	b.Vel = Vector2d{X: 50, Y: 100}
	b.Move(0.1)
	require.True(t, g.IntersectsWith(&b))

	ResolveNormalForce(g, &b)

	assert.Equal(t, 32.0, b.Bottom(), "bottom flush on the tile")
	assert.Zero(t, b.Vel.Y)
	assert.InDelta(t, 41.0, b.X, 1e-9)
	assert.Equal(t, 50.0, b.Vel.X)
	assert.False(t, g.penetrates(&b))
	assert.Zero(t, g.BottomSideIntersection(&b))
}

func TestResolveFromLeftWithVerticalOverlap(t *testing.T) {
	g := gridFrom(t,
		".#",
	)
	b := NewBody(5, 5, 20, 20)
	b.Vel.X = 100
	b.Move(0.1)
	require.Equal(t, b.PY, b.Y)

	ResolveNormalForce(g, &b)

	assert.Equal(t, 12.0, b.X)
	assert.Zero(t, b.Vel.X)
	assert.Equal(t, 5.0, b.Y)
	assert.False(t, g.penetrates(&b))
}

func TestResolveDiagonalEntryPrefersHorizontal(t *testing.T) {
	tests := []struct {
		name  string
		start Body
		vel   Vector2d
		wantY float64
	}{
		{"corner entry", NewBody(0, 0, 20, 20), Vector2d{X: 150, Y: 150}, 15},
		{"deep vertical overlap", NewBody(0, 14, 20, 20), Vector2d{X: 150, Y: 200}, 34},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gridFrom(t,
				"..",
				".#",
			)
			b := tt.start
			b.Vel = tt.vel
			b.Move(0.1)
			require.GreaterOrEqual(t, g.BottomSideIntersection(&b), g.RightSideIntersection(&b),
				"vertical penetration is at least as deep")

			ResolveNormalForce(g, &b)

			assert.Equal(t, 12.0, b.X, "pushed back left of the tile")
			assert.Zero(t, b.Vel.X)
			assert.InDelta(t, tt.wantY, b.Y, 1e-9)
			assert.Equal(t, tt.vel.Y, b.Vel.Y)
			assert.False(t, g.penetrates(&b))
		})
	}
}

func TestResolveWalkingAcrossFloorSeam(t *testing.T) {
	g := gridFrom(t,
		"...",
		"###",
	)
	b := NewBody(10, 12, 20, 20)
	b.Vel = Vector2d{X: 100, Y: 5}
	b.Move(0.1)
	require.Equal(t, 1, TilePos(b.Right()), "right edge entered the next floor tile")

	ResolveNormalForce(g, &b)

	assert.InDelta(t, 20.0, b.X, 1e-9)
	assert.Equal(t, 100.0, b.Vel.X)
	assert.Equal(t, 32.0, b.Bottom())
	assert.Zero(t, b.Vel.Y)
}

func TestResolveFromRight(t *testing.T) {
	g := gridFrom(t,
		"#..",
	)
	b := NewBody(40, 5, 20, 20)
	b.Vel.X = -100
	b.Move(0.1)

	ResolveNormalForce(g, &b)

	assert.Equal(t, 32.0, b.X)
	assert.Zero(t, b.Vel.X)
}

func TestResolveFromBelow(t *testing.T) {
	g := gridFrom(t,
		"#",
		".",
		".",
	)
	b := NewBody(10, 40, 20, 20)
	b.Vel.Y = -100
	b.Move(0.1)

	ResolveNormalForce(g, &b)

	assert.Equal(t, 32.0, b.Y)
	assert.Zero(t, b.Vel.Y)
}

func TestFallingBodySettlesOnTile(t *testing.T) {
	g := gridFrom(t,
		".",
		"#",
		".",
	)
	b := NewBody(10, 0, 20, 20)

	for i := 0; i < 120; i++ {
		b.ApplyGravity(Gravity, 1.0/60)
		b.Move(1.0 / 60)
		ResolveNormalForce(g, &b)
	}

	assert.Equal(t, 32.0, b.Bottom())
	assert.Zero(t, b.Vel.Y)
	assert.False(t, IsAirborne(g, &b))
}
