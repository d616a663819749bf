package game

import (
	"sync/atomic"
	"time"
)

// WeaponSpec is the static configuration of a weapon type.
type WeaponSpec struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Bullet      BulletKind    `json:"-"`
	BulletW     float64       `json:"bulletWidth"`
	BulletH     float64       `json:"bulletHeight"`
	Damage      int           `json:"damage"`
	Speed       float64       `json:"speed"`
	OffsetRight Vector2d      `json:"offsetRight"`
	OffsetLeft  Vector2d      `json:"offsetLeft"`
	Cooldown    time.Duration `json:"cooldown"`
}

// Weapon IDs.
const (
	WeaponLaserPistol    = "laserPistol"
	WeaponRocketLauncher = "rocketLauncher"
)

// WeaponSpecs lists every weapon the game knows. Offsets differ per facing
// because the wielder sprite is asymmetric.
var WeaponSpecs = map[string]WeaponSpec{
	WeaponLaserPistol: {
		ID:          WeaponLaserPistol,
		Name:        "Laser Pistol",
		Bullet:      BulletLaser,
		BulletW:     5,
		BulletH:     3,
		Damage:      10,
		Speed:       500,
		OffsetRight: Vector2d{X: 25, Y: 5},
		OffsetLeft:  Vector2d{X: -5, Y: 5},
		Cooldown:    300 * time.Millisecond,
	},
	WeaponRocketLauncher: {
		ID:          WeaponRocketLauncher,
		Name:        "Rocket Launcher",
		Bullet:      BulletRocket,
		BulletW:     15,
		BulletH:     8,
		Damage:      20,
		Speed:       250,
		OffsetRight: Vector2d{X: 25, Y: 4},
		OffsetLeft:  Vector2d{X: -15, Y: 4},
		Cooldown:    1000 * time.Millisecond,
	},
}

// Wielder is anything that can hold and fire a weapon.
type Wielder interface {
	Position() (x, y float64)
	Facing() (right bool)
	Faction() Faction
}

// Weapon spawns bullets on demand. Shoot does not enforce Cooldown; callers
// decide when firing is allowed. Shot reports a fired shot exactly once.
type Weapon interface {
	ID() string
	Shoot(by Wielder) Bullet
	Cooldown() time.Duration
	Shot() bool
}

// shotSignal is a single-slot pending event: set on fire, cleared by the read.
type shotSignal struct {
	pending atomic.Bool
}

func (s *shotSignal) fire() { s.pending.Store(true) }

// Shot consumes the pending shot, if any.
func (s *shotSignal) Shot() bool { return s.pending.Swap(false) }

type projectileWeapon struct {
	spec WeaponSpec
	shotSignal
}

func (w *projectileWeapon) ID() string              { return w.spec.ID }
func (w *projectileWeapon) Cooldown() time.Duration { return w.spec.Cooldown }

// Shoot returns the bullet for the level to spawn.
func (w *projectileWeapon) Shoot(by Wielder) Bullet {
	x, y := by.Position()
	off, vx := w.spec.OffsetLeft, -w.spec.Speed
	if by.Facing() {
		off, vx = w.spec.OffsetRight, w.spec.Speed
	}
	b := Bullet{
		Kind:    w.spec.Bullet,
		Faction: by.Faction(),
		Body:    NewBody(x+off.X, y+off.Y, w.spec.BulletW, w.spec.BulletH),
		Damage:  w.spec.Damage,
	}
	b.Vel.X = vx
	w.fire()
	return b
}

// LaserPistol fires fast, light lasers.
type LaserPistol struct{ projectileWeapon }

func NewLaserPistol() *LaserPistol {
	return &LaserPistol{projectileWeapon{spec: WeaponSpecs[WeaponLaserPistol]}}
}

// RocketLauncher fires slow rockets that detonate on impact.
type RocketLauncher struct{ projectileWeapon }

func NewRocketLauncher() *RocketLauncher {
	return &RocketLauncher{projectileWeapon{spec: WeaponSpecs[WeaponRocketLauncher]}}
}

// NewWeapon builds a weapon by ID.
func NewWeapon(id string) (Weapon, bool) {
	switch id {
	case WeaponLaserPistol:
		return NewLaserPistol(), true
	case WeaponRocketLauncher:
		return NewRocketLauncher(), true
	}
	return nil, false
}
