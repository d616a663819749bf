package game

// EnemySpawn places one enemy in world coordinates.
type EnemySpawn struct {
	Kind Kind
	X, Y float64
}

// ItemSpawn places one pickup in world coordinates.
type ItemSpawn struct {
	Kind     ItemKind
	WeaponID string
	X, Y     float64
}

// LevelData is what a level loader hands to NewLevel.
type LevelData struct {
	Name    string
	Grid    *TileGrid
	Enemies []EnemySpawn
	Items   []ItemSpawn
}

// ProgressStore persists unlocked levels. Level calls it only on a win and
// does not wait on or fail because of Save.
type ProgressStore interface {
	SetUnlockedLevels(n int)
	Save() error
}
