package levelio

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsmg/internal/game"
)

func TestBuildPlacesEntities(t *testing.T) {
	ld, err := Build(File{
		Name: "test",
		Rows: []string{
			"#####",
			"#STh#",
			"#####",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, ld.Grid.Width())
	assert.Equal(t, 3, ld.Grid.Height())

	x, y, ok := ld.Grid.SpawnPoint()
	require.True(t, ok)
	assert.Equal(t, 32.0, x)
	assert.Equal(t, 32.0, y)

	require.Len(t, ld.Enemies, 1)
	tank := ld.Enemies[0]
	assert.Equal(t, game.KindTankbot, tank.Kind)
	_, h := game.KindTankbot.Size()
	assert.Equal(t, 64.0-h, tank.Y, "tankbot stands on the floor")

	require.Len(t, ld.Items, 1)
	assert.Equal(t, game.ItemHealthPack, ld.Items[0].Kind)
	assert.Equal(t, 64.0-game.ItemSize, ld.Items[0].Y)

	assert.False(t, ld.Grid.Get(2, 1).Solid, "entity glyphs leave air behind")
}

func TestBuildRejectsBadLevels(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want error
	}{
		{"empty", nil, game.ErrEmptyGrid},
		{"ragged", []string{"###", "##"}, game.ErrRaggedGrid},
		{"two spawns", []string{"S.S", "###"}, game.ErrMultipleSpawns},
		{"unknown glyph", []string{"#?#"}, ErrUnknownGlyph},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(File{Rows: tt.rows})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuildWithoutSpawnIsAccepted(t *testing.T) {
	ld, err := Build(File{Rows: []string{"...", "###"}})
	require.NoError(t, err)

	_, _, ok := ld.Grid.SpawnPoint()
	assert.False(t, ok)
}

func TestParseWeaponPickups(t *testing.T) {
	ld, err := Parse([]byte("name: arms\nrows:\n  - \"lr\"\n  - \"##\"\n"))
	require.NoError(t, err)

	require.Len(t, ld.Items, 2)
	assert.Equal(t, game.WeaponLaserPistol, ld.Items[0].WeaponID)
	assert.Equal(t, game.WeaponRocketLauncher, ld.Items[1].WeaponID)
	assert.Equal(t, "arms", ld.Name)
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("rows: [\n"))
	assert.Error(t, err)
}

func TestCatalogOrdersByFileName(t *testing.T) {
	fsys := fstest.MapFS{
		"02-b.yaml":  {Data: []byte("name: Second\nrows: [\"S.\", \"##\"]\n")},
		"01-a.yaml":  {Data: []byte("rows: [\"S.\", \"##\"]\n")},
		"notes.txt":  {Data: []byte("ignored")},
		"sub/x.yaml": {Data: []byte("rows: [\"#\"]\n")},
	}

	cat, err := NewCatalog(fsys)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Count())
	assert.Equal(t, []string{"01-a", "02-b"}, cat.Names())

	first, err := cat.Load(1)
	require.NoError(t, err)
	assert.Equal(t, "01-a", first.Name, "falls back to the file name")

	second, err := cat.Load(2)
	require.NoError(t, err)
	assert.Equal(t, "Second", second.Name)

	_, err = cat.Load(3)
	assert.ErrorIs(t, err, game.ErrNoSuchLevel)
}

func TestBuiltinLevelsLoad(t *testing.T) {
	cat, err := Builtin()
	require.NoError(t, err)
	require.GreaterOrEqual(t, cat.Count(), 3)

	for n := 1; n <= cat.Count(); n++ {
		ld, err := cat.Load(n)
		require.NoError(t, err, "level %d", n)
		_, _, ok := ld.Grid.SpawnPoint()
		assert.True(t, ok, "level %d has a spawn", n)
	}
}
