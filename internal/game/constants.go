package game

import "time"

// TileSize is the edge length of one grid cell in world units.
const TileSize = 32

// Physics defaults. Tunable copies live in Tuning.
const (
	Gravity        = 300.0
	CharacterSpeed = 100.0
	JumpStrength   = 150.0
	DashSpeed      = 300.0
	DashDuration   = 150 * time.Millisecond
	DashCooldown   = 1 * time.Second

	CharacterWidth     = 32.0
	CharacterHeight    = 21.0
	CharacterMaxHealth = 100

	// CharacterInvulnerability is the grace window after the character takes damage.
	CharacterInvulnerability = 1 * time.Second
)

// Enemy timing windows.
const (
	ExplosionTick      = 600 * time.Millisecond
	EnemyFlashDuration = 100 * time.Millisecond
)

// AI tuning.
const (
	AggroRange     = 200.0
	AttackInterval = 0.8 // seconds between AI shots
)

// Explosion geometry and lifetime.
const (
	ExplosionSize     = 64.0
	ExplosionDamage   = 25
	ExplosionLifetime = 0.5 // seconds
)

// Item effects.
const (
	HealthPackAmount = 25
	ItemSize         = 16.0
)

// edgeEpsilon keeps far edges and probe points off exact tile boundaries.
const edgeEpsilon = 1e-5

// Tuning carries the physics constants a Level runs with.
type Tuning struct {
	Gravity        float64
	CharacterSpeed float64
	JumpStrength   float64
	DashSpeed      float64
	DashDuration   time.Duration
	DashCooldown   time.Duration
	Invulnerable   time.Duration
}

// DefaultTuning returns the stock physics constants.
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:        Gravity,
		CharacterSpeed: CharacterSpeed,
		JumpStrength:   JumpStrength,
		DashSpeed:      DashSpeed,
		DashDuration:   DashDuration,
		DashCooldown:   DashCooldown,
		Invulnerable:   CharacterInvulnerability,
	}
}

// withDefaults fills zero fields so partially specified tunings stay playable.
func (t Tuning) withDefaults() Tuning {
	d := DefaultTuning()
	if t.Gravity == 0 {
		t.Gravity = d.Gravity
	}
	if t.CharacterSpeed == 0 {
		t.CharacterSpeed = d.CharacterSpeed
	}
	if t.JumpStrength == 0 {
		t.JumpStrength = d.JumpStrength
	}
	if t.DashSpeed == 0 {
		t.DashSpeed = d.DashSpeed
	}
	if t.DashDuration == 0 {
		t.DashDuration = d.DashDuration
	}
	if t.DashCooldown == 0 {
		t.DashCooldown = d.DashCooldown
	}
	if t.Invulnerable == 0 {
		t.Invulnerable = d.Invulnerable
	}
	return t
}
