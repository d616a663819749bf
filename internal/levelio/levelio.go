// Package levelio reads level files into game.LevelData.
//
// A level file is YAML with a name and one string per tile row:
//
//	name: Foundry
//	rows:
//	  - "##########"
//	  - "#S..h...G#"
//	  - "##########"
//
// Glyphs: '#' box, '=' metal, '.' air, 'S' spawn, 'G' goal, 'T' tankbot,
// 'B' bucketbot, 'h' health pack, 'u' upgrade points, 'l' laser pistol,
// 'r' rocket launcher. Entity glyphs stand on an air tile.
package levelio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"rsmg/internal/game"
)

var ErrUnknownGlyph = errors.New("unknown tile glyph")

// File is the on-disk shape of a level.
type File struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// Parse decodes and validates one level file.
func Parse(data []byte) (game.LevelData, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return game.LevelData{}, fmt.Errorf("decode level: %w", err)
	}
	return Build(f)
}

// ParseFile reads and parses a level file from disk.
func ParseFile(p string) (game.LevelData, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return game.LevelData{}, err
	}
	ld, err := Parse(data)
	if err != nil {
		return game.LevelData{}, fmt.Errorf("%s: %w", p, err)
	}
	return ld, nil
}

// Build turns glyph rows into a tile grid plus enemy and item spawns.
func Build(f File) (game.LevelData, error) {
	ld := game.LevelData{Name: f.Name}
	tiles := make([][]game.Tile, len(f.Rows))
	for r, row := range f.Rows {
		tiles[r] = make([]game.Tile, len(row))
		for c := 0; c < len(row); c++ {
			tile, err := place(&ld, row[c], c, r)
			if err != nil {
				return game.LevelData{}, fmt.Errorf("row %d col %d: %w", r, c, err)
			}
			tiles[r][c] = tile
		}
	}

	grid, err := game.NewTileGrid(tiles)
	if err != nil {
		return game.LevelData{}, err
	}
	ld.Grid = grid
	return ld, nil
}

func place(ld *game.LevelData, glyph byte, col, row int) (game.Tile, error) {
	x := float64(col * game.TileSize)
	floor := float64((row + 1) * game.TileSize)

	switch glyph {
	case '.', ' ':
		return game.TileAir, nil
	case '#':
		return game.TileBox, nil
	case '=':
		return game.TileMetal, nil
	case 'S':
		return game.TileSpawn, nil
	case 'G':
		return game.TileGoal, nil
	case 'T', 'B':
		kind := game.KindTankbot
		if glyph == 'B' {
			kind = game.KindBucketBot
		}
		w, h := kind.Size()
		y := floor - h
		if kind.Flying() {
			y = floor - game.TileSize/2 - h/2
		}
		ld.Enemies = append(ld.Enemies, game.EnemySpawn{Kind: kind, X: x + (game.TileSize-w)/2, Y: y})
		return game.TileAir, nil
	case 'h', 'u', 'l', 'r':
		s := game.ItemSpawn{X: x + (game.TileSize-game.ItemSize)/2, Y: floor - game.ItemSize}
		switch glyph {
		case 'h':
			s.Kind = game.ItemHealthPack
		case 'u':
			s.Kind = game.ItemUpgradePoints
		case 'l':
			s.Kind, s.WeaponID = game.ItemWeapon, game.WeaponLaserPistol
		case 'r':
			s.Kind, s.WeaponID = game.ItemWeapon, game.WeaponRocketLauncher
		}
		ld.Items = append(ld.Items, s)
		return game.TileAir, nil
	}
	return game.Tile{}, fmt.Errorf("%w %q", ErrUnknownGlyph, glyph)
}

// Catalog is an ordered set of level files; level n is the n-th file by name.
type Catalog struct {
	fsys  fs.FS
	files []string
}

// NewCatalog indexes every *.yaml file at the root of fsys.
func NewCatalog(fsys fs.FS) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := path.Ext(e.Name()); ext == ".yaml" || ext == ".yml" {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return nil, errors.New("no level files found")
	}
	sort.Strings(files)
	return &Catalog{fsys: fsys, files: files}, nil
}

// Count returns the number of levels.
func (c *Catalog) Count() int {
	return len(c.files)
}

// Names lists level file names without extension, in level order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.files))
	for i, f := range c.files {
		out[i] = strings.TrimSuffix(f, path.Ext(f))
	}
	return out
}

// Load parses level n, counting from 1.
func (c *Catalog) Load(n int) (game.LevelData, error) {
	if n < 1 || n > len(c.files) {
		return game.LevelData{}, fmt.Errorf("level %d: %w", n, game.ErrNoSuchLevel)
	}
	name := c.files[n-1]
	data, err := fs.ReadFile(c.fsys, name)
	if err != nil {
		return game.LevelData{}, err
	}
	ld, err := Parse(data)
	if err != nil {
		return game.LevelData{}, fmt.Errorf("%s: %w", name, err)
	}
	if ld.Name == "" {
		ld.Name = strings.TrimSuffix(name, path.Ext(name))
	}
	return ld, nil
}
