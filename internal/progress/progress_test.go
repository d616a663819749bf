package progress

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFileStartsAtLevelOne(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "progress.sav"))
	require.NoError(t, err)
	assert.Equal(t, 1, s.UnlockedLevels())
}

func TestSetUnlockedLevelsOnlyRaises(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "progress.sav"))
	require.NoError(t, err)

	s.SetUnlockedLevels(3)
	s.SetUnlockedLevels(2)
	assert.Equal(t, 3, s.UnlockedLevels())
	assert.False(t, s.UpdatedAt().IsZero())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.sav")
	s, err := Open(path)
	require.NoError(t, err)

	s.SetUnlockedLevels(4)
	require.NoError(t, s.Save())

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 4, reopened.UnlockedLevels())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file is cleaned up")
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.sav")
	require.NoError(t, os.WriteFile(path, []byte{0xc1}, 0o644))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestSaveIntoMissingDirectoryFails(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "missing", "progress.sav"))
	require.NoError(t, err)
	assert.Error(t, s.Save())
}
