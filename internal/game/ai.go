package game

// Ai decides one enemy's behaviour each tick. The enemy is passed in rather
// than stored, and any bullets fired are returned for the level to spawn.
type Ai interface {
	Update(e *Enemy, delta, playerX, playerY float64) []Bullet
}

// BucketBotAi always faces the player and fires on a fixed cadence,
// regardless of distance.
type BucketBotAi struct {
	Cooldown float64
}

func (a *BucketBotAi) Update(e *Enemy, delta, playerX, _ float64) []Bullet {
	e.FacingRight = playerX >= e.X
	a.Cooldown += delta
	if a.Cooldown > AttackInterval {
		a.Cooldown = 0
		return []Bullet{e.Shoot()}
	}
	return nil
}

// TankBotAi engages only while the player is within AggroRange horizontally.
// Out of range it stops and keeps whatever cooldown it had accumulated.
type TankBotAi struct {
	Cooldown   float64
	Aggressive bool
}

func (a *TankBotAi) Update(e *Enemy, delta, playerX, _ float64) []Bullet {
	xDiff := playerX - e.X
	switch {
	case xDiff > 0 && xDiff < AggroRange:
		e.FacingRight = true
		a.Aggressive = true
	case xDiff < 0 && -xDiff < AggroRange:
		e.FacingRight = false
		a.Aggressive = true
	default:
		a.idle(e)
	}

	if !a.Aggressive {
		return nil
	}
	a.Cooldown += delta
	if a.Cooldown > AttackInterval {
		a.Cooldown = 0
		return []Bullet{e.Shoot()}
	}
	return nil
}

func (a *TankBotAi) idle(e *Enemy) {
	e.Vel.X = 0
	a.Aggressive = false
}
