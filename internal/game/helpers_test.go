package game

import "testing"

// gridFrom builds a grid from glyph rows: '.' air, '#' box, 'S' spawn, 'G' goal.
func gridFrom(t testing.TB, rows ...string) *TileGrid {
	t.Helper()
	tiles := make([][]Tile, len(rows))
	for r, row := range rows {
		tiles[r] = make([]Tile, len(row))
		for c := 0; c < len(row); c++ {
			switch row[c] {
			case '#':
				tiles[r][c] = TileBox
			case 'S':
				tiles[r][c] = TileSpawn
			case 'G':
				tiles[r][c] = TileGoal
			default:
				tiles[r][c] = TileAir
			}
		}
	}
	g, err := NewTileGrid(tiles)
	if err != nil {
		t.Fatalf("NewTileGrid: %v", err)
	}
	return g
}

type fakeProgress struct {
	unlocked int
	saves    int
	err      error
}

func (f *fakeProgress) SetUnlockedLevels(n int) {
	if n > f.unlocked {
		f.unlocked = n
	}
}

func (f *fakeProgress) Save() error {
	f.saves++
	return f.err
}

func (f *fakeProgress) UnlockedLevels() int {
	return f.unlocked
}

func tick(l *Level, n int) {
	for i := 0; i < n; i++ {
		l.Update(1.0 / 60)
	}
}
