// Package progress persists which levels the player has unlocked.
package progress

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// saveVersion is bumped when the save layout changes.
const saveVersion = 1

// save is the on-disk record.
type save struct {
	Version        int       `msgpack:"v"`
	UnlockedLevels int       `msgpack:"unlocked"`
	UpdatedAt      time.Time `msgpack:"updated_at"`
}

// Store is a msgpack-encoded save file. It satisfies game.ProgressStore.
type Store struct {
	mu   sync.Mutex
	path string
	data save
}

// Open loads the save at path. A missing file starts fresh with level 1 unlocked.
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: save{Version: saveVersion, UnlockedLevels: 1}}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}
	var loaded save
	if err := msgpack.Unmarshal(raw, &loaded); err != nil {
		return nil, fmt.Errorf("decode save %s: %w", path, err)
	}
	if loaded.Version > saveVersion {
		return nil, fmt.Errorf("save %s has version %d, newer than %d", path, loaded.Version, saveVersion)
	}
	if loaded.UnlockedLevels > s.data.UnlockedLevels {
		s.data.UnlockedLevels = loaded.UnlockedLevels
	}
	s.data.UpdatedAt = loaded.UpdatedAt
	return s, nil
}

// UnlockedLevels returns the highest unlocked level.
func (s *Store) UnlockedLevels() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.UnlockedLevels
}

// UpdatedAt returns when progress last changed.
func (s *Store) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.UpdatedAt
}

// SetUnlockedLevels raises the unlocked level. Lower values are ignored so a
// replayed early level never relocks later ones.
func (s *Store) SetUnlockedLevels(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > s.data.UnlockedLevels {
		s.data.UnlockedLevels = n
		s.data.UpdatedAt = time.Now().UTC()
	}
}

// Save writes the file atomically through a temp file in the same directory.
func (s *Store) Save() error {
	s.mu.Lock()
	raw, err := msgpack.Marshal(&s.data)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".progress-*")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close save: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace save: %w", err)
	}
	return nil
}
