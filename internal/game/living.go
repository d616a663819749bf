package game

// Kind tags the behaviour variant of a living entity.
type Kind uint8

const (
	KindCharacter Kind = iota
	KindTankbot
	KindBucketBot
)

func (k Kind) Name() string {
	switch k {
	case KindCharacter:
		return "character"
	case KindTankbot:
		return "tankbot"
	case KindBucketBot:
		return "bucketbot"
	default:
		return "unknown"
	}
}

// ParseKind maps a name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "character":
		return KindCharacter, true
	case "tankbot":
		return KindTankbot, true
	case "bucketbot":
		return KindBucketBot, true
	}
	return 0, false
}

// TouchDamage is dealt to the character on contact.
func (k Kind) TouchDamage() int {
	switch k {
	case KindTankbot:
		return 20
	case KindBucketBot:
		return 10
	default:
		return 0
	}
}

// Flying kinds ignore gravity and tiles.
func (k Kind) Flying() bool {
	return k == KindBucketBot
}

func (k Kind) MaxHealth() int {
	switch k {
	case KindCharacter:
		return CharacterMaxHealth
	case KindTankbot:
		return 60
	case KindBucketBot:
		return 30
	default:
		return 1
	}
}

// Size returns the fixed width and height of the kind's body.
func (k Kind) Size() (w, h float64) {
	switch k {
	case KindCharacter:
		return CharacterWidth, CharacterHeight
	case KindTankbot:
		return 32, 22
	case KindBucketBot:
		return 26, 26
	default:
		return TileSize, TileSize
	}
}

// MotionState holds the derived flags a renderer selects sprites from.
type MotionState struct {
	Airborne bool `json:"airborne"`
	Standing bool `json:"standing"`
	Running  bool `json:"running"`
	Dashing  bool `json:"dashing"`
}

// Living is the flat record shared by the character and every enemy.
type Living struct {
	ID   uint64
	Kind Kind
	Body

	Health    int
	MaxHealth int

	FacingRight bool
	State       MotionState
}

func newLiving(id uint64, kind Kind, x, y float64) Living {
	w, h := kind.Size()
	return Living{
		ID:          id,
		Kind:        kind,
		Body:        NewBody(x, y, w, h),
		Health:      kind.MaxHealth(),
		MaxHealth:   kind.MaxHealth(),
		FacingRight: true,
	}
}

// Damage lowers health, never below zero.
func (l *Living) Damage(n int) {
	l.Health -= n
	if l.Health < 0 {
		l.Health = 0
	}
}

// Heal raises health, never above MaxHealth.
func (l *Living) Heal(n int) {
	l.Health += n
	if l.Health > l.MaxHealth {
		l.Health = l.MaxHealth
	}
}

func (l *Living) Dead() bool {
	return l.Health <= 0
}

// UpdateFacing follows the sign of horizontal velocity; zero keeps the current facing.
func (l *Living) UpdateFacing() {
	switch {
	case l.Vel.X > 0:
		l.FacingRight = true
	case l.Vel.X < 0:
		l.FacingRight = false
	}
}

// updateMotionState derives standing and running from airborne and velocity.
func (l *Living) updateMotionState() {
	l.State.Standing = !l.State.Airborne && l.Vel.X == 0
	l.State.Running = !l.State.Airborne && l.Vel.X != 0
}

// Position and Facing let a Living wield a weapon.
func (l *Living) Position() (float64, float64) { return l.X, l.Y }
func (l *Living) Facing() bool                 { return l.FacingRight }

// Faction decides whom a living entity's bullets can hurt.
func (l *Living) Faction() Faction {
	if l.Kind == KindCharacter {
		return FactionPlayer
	}
	return FactionEnemy
}
