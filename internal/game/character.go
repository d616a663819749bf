package game

import "time"

// Character is the player-controlled entity. Intent methods are called by the
// input controller before each Level.Update and only record what the player
// asked for; the level applies them during the tick.
type Character struct {
	Living
	UpgradePoints int

	tuning  Tuning
	weapons []Weapon
	active  int

	attackRequested bool
	hasFired        bool
	lastShot        time.Duration

	dashRequested bool
	dashUntil     time.Duration
	dashReadyAt   time.Duration

	invulnerableUntil time.Duration
}

// NewCharacter places the character at (x, y) armed with a laser pistol.
func NewCharacter(id uint64, x, y float64, tuning Tuning) *Character {
	return &Character{
		Living:  newLiving(id, KindCharacter, x, y),
		tuning:  tuning.withDefaults(),
		weapons: []Weapon{NewLaserPistol()},
	}
}

func (c *Character) MoveLeft()  { c.Vel.X = -c.tuning.CharacterSpeed }
func (c *Character) MoveRight() { c.Vel.X = c.tuning.CharacterSpeed }

// Jump only takes off from the ground.
func (c *Character) Jump() {
	if c.State.Airborne {
		return
	}
	c.Vel.Y = -c.tuning.JumpStrength
}

// JumpReleased cuts the rise short for a lower jump.
func (c *Character) JumpReleased() {
	if c.Vel.Y < 0 {
		c.Vel.Y /= 2
	}
}

func (c *Character) Attack() { c.attackRequested = true }
func (c *Character) Dash()   { c.dashRequested = true }

// Weapon returns the equipped weapon.
func (c *Character) Weapon() Weapon {
	if len(c.weapons) == 0 {
		return nil
	}
	return c.weapons[c.active]
}

// Weapons returns the inventory in pickup order.
func (c *Character) Weapons() []Weapon {
	return c.weapons
}

// AddWeapon equips w, or the already owned weapon with the same ID.
func (c *Character) AddWeapon(w Weapon) {
	for i, have := range c.weapons {
		if have.ID() == w.ID() {
			c.active = i
			return
		}
	}
	c.weapons = append(c.weapons, w)
	c.active = len(c.weapons) - 1
}

// NextWeapon cycles through the inventory.
func (c *Character) NextWeapon() {
	if len(c.weapons) > 0 {
		c.active = (c.active + 1) % len(c.weapons)
	}
}

// fire consumes a pending attack intent. The equipped weapon's cooldown is
// enforced here against the level clock.
func (c *Character) fire(now time.Duration) (Bullet, bool) {
	if !c.attackRequested {
		return Bullet{}, false
	}
	c.attackRequested = false
	w := c.Weapon()
	if w == nil {
		return Bullet{}, false
	}
	if c.hasFired && now-c.lastShot < w.Cooldown() {
		return Bullet{}, false
	}
	c.hasFired = true
	c.lastShot = now
	return w.Shoot(c), true
}

// updateDash starts a requested dash and drives an active one.
func (c *Character) updateDash(now time.Duration) {
	if c.dashRequested {
		c.dashRequested = false
		if now >= c.dashReadyAt && now >= c.dashUntil {
			c.dashUntil = now + c.tuning.DashDuration
			c.dashReadyAt = now + c.tuning.DashCooldown
		}
	}
	c.State.Dashing = now < c.dashUntil
	if c.State.Dashing {
		right := c.FacingRight
		if c.Vel.X != 0 {
			right = c.Vel.X > 0
		}
		if right {
			c.Vel.X = c.tuning.DashSpeed
		} else {
			c.Vel.X = -c.tuning.DashSpeed
		}
		c.Vel.Y = 0
	}
}

// Invulnerable reports whether the post-hit grace window is active.
func (c *Character) Invulnerable(now time.Duration) bool {
	return now < c.invulnerableUntil
}

func (c *Character) hurt(n int, now time.Duration) bool {
	if n <= 0 || c.Invulnerable(now) {
		return false
	}
	c.Damage(n)
	c.invulnerableUntil = now + c.tuning.Invulnerable
	return true
}

// Collide applies an enemy bullet. Reports whether damage was taken.
func (c *Character) Collide(b *Bullet, now time.Duration) bool {
	if b.Faction != FactionEnemy {
		return false
	}
	return c.hurt(b.Damage, now)
}

// Touch applies contact damage from an enemy.
func (c *Character) Touch(e *Enemy, now time.Duration) bool {
	return c.hurt(e.Kind.TouchDamage(), now)
}
