package game

import (
	"sync/atomic"
	"time"
)

// ResourceLimits caps how many entities a snapshot carries.
type ResourceLimits struct {
	MaxEnemies int
	MaxBullets int
	MaxItems   int
}

// DefaultLimits provides production-safe default limits
var DefaultLimits = ResourceLimits{
	MaxEnemies: 128,
	MaxBullets: 512,
	MaxItems:   128,
}

// CharacterSnapshot is an immutable copy of the character for rendering.
type CharacterSnapshot struct {
	ID            uint64  `json:"id"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	W             float64 `json:"w"`
	H             float64 `json:"h"`
	VX            float64 `json:"vx"`
	VY            float64 `json:"vy"`
	Health        int     `json:"health"`
	MaxHealth     int     `json:"maxHealth"`
	FacingRight   bool    `json:"facingRight"`
	Invulnerable  bool    `json:"invulnerable"`
	Weapon        string  `json:"weapon"`
	UpgradePoints int     `json:"upgradePoints"`
	MotionState
}

// EnemySnapshot is an immutable copy of one enemy.
type EnemySnapshot struct {
	ID          uint64  `json:"id"`
	Kind        string  `json:"kind"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	W           float64 `json:"w"`
	H           float64 `json:"h"`
	Health      int     `json:"health"`
	MaxHealth   int     `json:"maxHealth"`
	FacingRight bool    `json:"facingRight"`
	Flash       bool    `json:"flash"`
	MotionState
}

// BulletSnapshot is an immutable copy of one bullet or explosion.
type BulletSnapshot struct {
	ID      uint64  `json:"id"`
	Kind    string  `json:"kind"`
	Faction string  `json:"faction"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	W       float64 `json:"w"`
	H       float64 `json:"h"`
	Age     float64 `json:"age,omitempty"`
}

// ItemSnapshot is an immutable copy of one pickup.
type ItemSnapshot struct {
	ID   uint64  `json:"id"`
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
}

// GameSnapshot is a complete immutable game state for rendering
// All slices are pre-allocated and capped to prevent memory attacks
type GameSnapshot struct {
	Sequence   uint64    `json:"sequence"`
	Timestamp  time.Time `json:"timestamp"`
	TickNumber uint64    `json:"tick"`
	RunID      string    `json:"runId"`

	Level     int     `json:"level"`
	LevelName string  `json:"levelName"`
	Clock     float64 `json:"clock"` // simulated seconds since level start
	Won       bool    `json:"won"`
	Lost      bool    `json:"lost"`

	Character CharacterSnapshot `json:"character"`
	Enemies   []EnemySnapshot   `json:"enemies"`
	Bullets   []BulletSnapshot  `json:"bullets"`
	Items     []ItemSnapshot    `json:"items"`
}

// SnapshotPool pre-allocates snapshots to avoid GC pressure
// Uses triple buffering for lock-free producer/consumer
type SnapshotPool struct {
	snapshots [3]GameSnapshot
	limits    ResourceLimits
	writeIdx  uint32 // atomic - producer index
	readIdx   uint32 // atomic - consumer index
	sequence  uint64 // atomic - monotonic sequence
}

// NewSnapshotPool creates a pool with pre-allocated slices
func NewSnapshotPool(limits ResourceLimits) *SnapshotPool {
	pool := &SnapshotPool{limits: limits}
	for i := range pool.snapshots {
		pool.snapshots[i] = GameSnapshot{
			Enemies: make([]EnemySnapshot, 0, limits.MaxEnemies),
			Bullets: make([]BulletSnapshot, 0, limits.MaxBullets),
			Items:   make([]ItemSnapshot, 0, limits.MaxItems),
		}
	}
	return pool
}

// AcquireWrite gets the next write slot (producer only, called from game tick)
// Returns a snapshot with reset slices but preserved capacity
func (p *SnapshotPool) AcquireWrite() *GameSnapshot {
	idx := atomic.AddUint32(&p.writeIdx, 1) % 3
	snap := &p.snapshots[idx]

	snap.Enemies = snap.Enemies[:0]
	snap.Bullets = snap.Bullets[:0]
	snap.Items = snap.Items[:0]

	snap.Sequence = atomic.AddUint64(&p.sequence, 1)
	snap.Timestamp = time.Now()
	return snap
}

// PublishWrite marks write complete and advances read pointer
func (p *SnapshotPool) PublishWrite() {
	atomic.StoreUint32(&p.readIdx, atomic.LoadUint32(&p.writeIdx))
}

// AcquireRead gets the latest complete snapshot (consumer only)
func (p *SnapshotPool) AcquireRead() *GameSnapshot {
	idx := atomic.LoadUint32(&p.readIdx) % 3
	return &p.snapshots[idx]
}

// GetLimits returns the resource limits
func (p *SnapshotPool) GetLimits() ResourceLimits {
	return p.limits
}

// Fill copies the level's post-tick state into snap, honouring the pool limits.
func (p *SnapshotPool) Fill(snap *GameSnapshot, l *Level) {
	now := l.Clock()
	snap.Level = l.Number()
	snap.LevelName = l.Name()
	snap.Clock = now.Seconds()
	snap.Won = l.HasWon()
	snap.Lost = l.HasLost()

	c := l.Character()
	weapon := ""
	if w := c.Weapon(); w != nil {
		weapon = w.ID()
	}
	snap.Character = CharacterSnapshot{
		ID: c.ID, X: c.X, Y: c.Y, W: c.W, H: c.H, VX: c.Vel.X, VY: c.Vel.Y,
		Health: c.Health, MaxHealth: c.MaxHealth, FacingRight: c.FacingRight,
		Invulnerable: c.Invulnerable(now), Weapon: weapon,
		UpgradePoints: c.UpgradePoints, MotionState: c.State,
	}

	for _, e := range l.Enemies() {
		if len(snap.Enemies) >= p.limits.MaxEnemies {
			break
		}
		snap.Enemies = append(snap.Enemies, EnemySnapshot{
			ID: e.ID, Kind: e.Kind.Name(), X: e.X, Y: e.Y, W: e.W, H: e.H,
			Health: e.Health, MaxHealth: e.MaxHealth, FacingRight: e.FacingRight,
			Flash: e.RecentlyTookDamage(now), MotionState: e.State,
		})
	}
	for _, b := range l.Bullets() {
		if len(snap.Bullets) >= p.limits.MaxBullets {
			break
		}
		snap.Bullets = append(snap.Bullets, BulletSnapshot{
			ID: b.ID, Kind: b.Kind.String(), Faction: b.Faction.String(),
			X: b.X, Y: b.Y, W: b.W, H: b.H, Age: b.Age,
		})
	}
	for _, it := range l.Items() {
		if len(snap.Items) >= p.limits.MaxItems {
			break
		}
		snap.Items = append(snap.Items, ItemSnapshot{
			ID: it.ID, Name: it.Name(), X: it.X, Y: it.Y, W: it.W, H: it.H,
		})
	}
}
