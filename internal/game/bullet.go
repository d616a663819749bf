package game

// BulletKind distinguishes projectile variants.
type BulletKind uint8

const (
	BulletLaser BulletKind = iota
	BulletRocket
	BulletExplosion
)

func (k BulletKind) String() string {
	switch k {
	case BulletLaser:
		return "laser"
	case BulletRocket:
		return "rocket"
	case BulletExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// Faction of the entity that fired a bullet.
type Faction uint8

const (
	FactionPlayer Faction = iota
	FactionEnemy
)

func (f Faction) String() string {
	if f == FactionEnemy {
		return "enemy"
	}
	return "player"
}

// Bullet is a projectile moving with its own velocity. Explosions are
// stationary bullets that grow old and expire instead of travelling.
type Bullet struct {
	ID      uint64
	Kind    BulletKind
	Faction Faction
	Body
	Damage int
	Age    float64 // seconds, explosions only
}

func (b *Bullet) IsExplosion() bool {
	return b.Kind == BulletExplosion
}

// Detonates reports whether the bullet turns into an explosion on impact.
func (b *Bullet) Detonates() bool {
	return b.Kind == BulletRocket
}

// Advance moves the bullet, or ages it if it is an explosion.
func (b *Bullet) Advance(delta float64) {
	if b.IsExplosion() {
		b.Age += delta
		return
	}
	b.Move(delta)
}

// Expired is true once an explosion has outlived ExplosionLifetime.
func (b *Bullet) Expired() bool {
	return b.IsExplosion() && b.Age > ExplosionLifetime
}

// NewExplosion builds a square blast centred on the detonating bullet.
func NewExplosion(from *Bullet) Bullet {
	cx, cy := from.Center()
	return Bullet{
		Kind:    BulletExplosion,
		Faction: from.Faction,
		Body:    NewBody(cx-ExplosionSize/2, cy-ExplosionSize/2, ExplosionSize, ExplosionSize),
		Damage:  ExplosionDamage,
	}
}
