package game

import "time"

// Enemy is a hostile living entity driven by an Ai.
type Enemy struct {
	Living
	Ai     Ai
	Weapon Weapon

	lastAttacked time.Duration
	attacked     bool
	vulnerable   bool
}

// NewEnemy spawns an enemy of the given kind facing left.
func NewEnemy(id uint64, kind Kind, x, y float64) *Enemy {
	e := &Enemy{
		Living:     newLiving(id, kind, x, y),
		Weapon:     NewLaserPistol(),
		vulnerable: true,
	}
	e.FacingRight = false
	switch kind {
	case KindTankbot:
		e.Ai = &TankBotAi{}
	default:
		e.Ai = &BucketBotAi{}
	}
	return e
}

// Shoot fires the enemy's weapon.
func (e *Enemy) Shoot() Bullet {
	return e.Weapon.Shoot(e)
}

// Collide applies a bullet hit at simulated time now. An explosion landing
// while the enemy is still inside the throttle window of an earlier hit is
// ignored. Reports whether damage was applied.
func (e *Enemy) Collide(b *Bullet, now time.Duration) bool {
	if b.IsExplosion() && !e.vulnerable {
		return false
	}
	e.lastAttacked = now
	e.attacked = true
	e.vulnerable = false
	e.Damage(b.Damage)
	return true
}

// UpdateVulnerability re-arms explosion damage once ExplosionTick has passed.
func (e *Enemy) UpdateVulnerability(now time.Duration) {
	if e.attacked && e.lastAttacked+ExplosionTick < now {
		e.vulnerable = true
	}
}

// VulnerableToExplosions reports whether an explosion would hurt right now.
func (e *Enemy) VulnerableToExplosions() bool {
	return e.vulnerable
}

// RecentlyTookDamage drives the hit flash.
func (e *Enemy) RecentlyTookDamage(now time.Duration) bool {
	return e.attacked && e.lastAttacked+EnemyFlashDuration > now
}
