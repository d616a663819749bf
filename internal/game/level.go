package game

import (
	"fmt"
	"log"
	"time"

	"rsmg/internal/game/spatial"
)

// broadCellSize is the broad-phase cell edge used for bullet pairing.
const broadCellSize = 4 * TileSize

// LevelConfig holds everything NewLevel needs.
type LevelConfig struct {
	Number   int
	Data     LevelData
	Tuning   Tuning
	Progress ProgressStore
}

// Level owns one running level: the tile grid, the character, and every
// bullet, enemy and item. It is not safe for concurrent use; the Engine
// serialises access.
type Level struct {
	number   int
	name     string
	grid     *TileGrid
	hasGoal  bool
	tuning   Tuning
	progress ProgressStore

	character *Character
	enemies   []*Enemy
	bullets   []Bullet
	items     []Item

	// placedEnemies counts every enemy ever put in the level. Clearing the
	// enemies only wins a level that had some.
	placedEnemies int

	clock  time.Duration
	nextID uint64
	won    bool
	lost   bool

	broad       *spatial.SpatialGrid
	events      []Event
	orphanShots []ShotEvent
}

// NewLevel builds a level from loader output. A grid without a spawn tile
// puts the character at the origin.
func NewLevel(cfg LevelConfig) *Level {
	grid := cfg.Data.Grid
	l := &Level{
		number:   cfg.Number,
		name:     cfg.Data.Name,
		grid:     grid,
		hasGoal:  grid.HasGoal(),
		tuning:   cfg.Tuning.withDefaults(),
		progress: cfg.Progress,
		broad:    spatial.NewSpatialGrid(grid.PixelWidth(), grid.PixelHeight(), broadCellSize, len(cfg.Data.Enemies)),
	}

	var x, y float64
	if sx, sy, ok := grid.SpawnPoint(); ok {
		x, y = sx, sy+TileSize-CharacterHeight
	} else {
		log.Printf("⚠️ Level %d (%s) has no spawn tile, character starts at origin", cfg.Number, cfg.Data.Name)
	}
	l.character = NewCharacter(l.newID(), x, y, l.tuning)

	l.placedEnemies = len(cfg.Data.Enemies)
	l.enemies = make([]*Enemy, 0, len(cfg.Data.Enemies))
	for _, s := range cfg.Data.Enemies {
		l.enemies = append(l.enemies, NewEnemy(l.newID(), s.Kind, s.X, s.Y))
	}
	l.items = make([]Item, 0, len(cfg.Data.Items))
	for _, s := range cfg.Data.Items {
		l.items = append(l.items, Item{
			ID:       l.newID(),
			Kind:     s.Kind,
			WeaponID: s.WeaponID,
			Body:     NewBody(s.X, s.Y, ItemSize, ItemSize),
		})
	}

	l.emit(EventTypeLevelLoaded, "", LevelLoadedPayload{Level: l.number, Name: l.name, SpawnX: x, SpawnY: y})
	return l
}

func (l *Level) newID() uint64 {
	l.nextID++
	return l.nextID
}

func (l *Level) emit(t EventType, source string, payload interface{}) {
	l.events = append(l.events, NewEvent(t, 0, source, payload))
}

func (l *Level) spawn(b Bullet) {
	b.ID = l.newID()
	l.bullets = append(l.bullets, b)
}

func (l *Level) Number() int           { return l.number }
func (l *Level) Name() string          { return l.name }
func (l *Level) Grid() *TileGrid       { return l.grid }
func (l *Level) Character() *Character { return l.character }
func (l *Level) Enemies() []*Enemy     { return l.enemies }
func (l *Level) Bullets() []Bullet     { return l.bullets }
func (l *Level) Items() []Item         { return l.items }
func (l *Level) Clock() time.Duration  { return l.clock }
func (l *Level) HasWon() bool          { return l.won }
func (l *Level) HasLost() bool         { return l.lost }
func (l *Level) Finished() bool        { return l.won || l.lost }

func (l *Level) String() string {
	return fmt.Sprintf("level %d (%s)", l.number, l.name)
}

// SpawnBullet adds a bullet the level did not fire itself.
func (l *Level) SpawnBullet(b Bullet) {
	l.spawn(b)
}

// AddEnemy places an extra enemy after construction.
func (l *Level) AddEnemy(kind Kind, x, y float64) *Enemy {
	e := NewEnemy(l.newID(), kind, x, y)
	l.enemies = append(l.enemies, e)
	l.placedEnemies++
	return e
}

// DrainEvents hands over the domain events recorded since the last call.
func (l *Level) DrainEvents() []Event {
	ev := l.events
	l.events = nil
	return ev
}

// Update advances the level by delta seconds. A finished level no longer changes.
func (l *Level) Update(delta float64) {
	if delta < 0 {
		delta = 0
	}
	if l.Finished() {
		return
	}
	l.clock += time.Duration(delta * float64(time.Second))
	now := l.clock
	c := l.character

	if b, ok := c.fire(now); ok {
		l.spawn(b)
	}

	l.clampCharacter()

	for i := range l.bullets {
		l.bullets[i].Advance(delta)
	}

	c.State.Airborne = IsAirborne(l.grid, &c.Body)
	c.updateDash(now)
	if !c.State.Dashing {
		c.ApplyGravity(l.tuning.Gravity, delta)
	}
	c.Move(delta)
	c.UpdateFacing()
	ResolveNormalForce(l.grid, &c.Body)
	c.updateMotionState()
	c.Vel.X = 0

	l.updateEnemies(delta, now)
	l.resolveBullets(now)
	l.touchEnemies(now)
	l.pickUpItems()
	l.removeDeadEnemies()
	l.checkOutcome()
}

// clampCharacter keeps the character inside the map horizontally and below the top edge.
func (l *Level) clampCharacter() {
	c := l.character
	c.clampMin()
	if maxX := l.grid.PixelWidth() - c.W; c.X > maxX {
		c.X = maxX
	}
}

// updateEnemies runs every enemy's AI and then its physics, in list order.
func (l *Level) updateEnemies(delta float64, now time.Duration) {
	c := l.character
	for _, e := range l.enemies {
		for _, b := range e.Ai.Update(e, delta, c.X, c.Y) {
			l.spawn(b)
		}
		e.UpdateVulnerability(now)

		if e.Kind.Flying() {
			e.Move(delta)
		} else {
			e.State.Airborne = IsAirborne(l.grid, &e.Body)
			e.ApplyGravity(l.tuning.Gravity, delta)
			e.Move(delta)
			e.clampMin()
			ResolveNormalForce(l.grid, &e.Body)
			if e.Y > l.grid.PixelHeight() {
				e.Health = 0
			}
		}
		e.updateMotionState()
	}
}

func (l *Level) bulletOffMap(b *Bullet) bool {
	return b.X < 0 || b.Y < 0 ||
		b.X+b.W > l.grid.PixelWidth() || b.Y+b.H > l.grid.PixelHeight()
}

// resolveBullets pairs bullets with their targets and with the tile grid,
// then compacts the bullet list in place.
func (l *Level) resolveBullets(now time.Duration) {
	l.broad.Clear()
	for i, e := range l.enemies {
		if !e.Dead() {
			l.broad.Insert(uint32(i), e.X, e.Y, e.W, e.H)
		}
	}

	c := l.character
	var blasts []Bullet
	n := 0
	for i := range l.bullets {
		b := &l.bullets[i]
		if b.Expired() {
			continue
		}
		if !b.IsExplosion() && l.bulletOffMap(b) {
			continue
		}

		if b.Faction == FactionPlayer {
			if l.hitEnemies(b, now) {
				if b.Detonates() {
					blasts = append(blasts, NewExplosion(b))
				}
				continue
			}
		} else if b.Overlaps(&c.Body) {
			if c.Collide(b, now) {
				l.emit(EventTypeDamage, fmt.Sprint(c.ID), DamagePayload{
					Source: b.Kind.String(), VictimID: c.ID, Victim: c.Kind.Name(),
					Damage: b.Damage, VictimHP: c.Health,
				})
			}
			continue
		}

		if !b.IsExplosion() && l.grid.IntersectsWith(&b.Body) {
			if b.Detonates() {
				blasts = append(blasts, NewExplosion(b))
			}
			continue
		}

		l.bullets[n] = *b
		n++
	}
	l.bullets = l.bullets[:n]

	for _, x := range blasts {
		l.spawn(x)
	}
}

// hitEnemies applies a player bullet to overlapping enemies. A travelling
// bullet stops at the first enemy it touches; an explosion reaches them all.
// Reports whether the bullet was used up.
func (l *Level) hitEnemies(b *Bullet, now time.Duration) bool {
	for _, idx := range l.broad.QueryRect(b.X, b.Y, b.W, b.H) {
		e := l.enemies[idx]
		if e.Dead() || !b.Overlaps(&e.Body) {
			continue
		}
		if e.Collide(b, now) {
			l.emit(EventTypeDamage, fmt.Sprint(e.ID), DamagePayload{
				Source: b.Kind.String(), VictimID: e.ID, Victim: e.Kind.Name(),
				Damage: b.Damage, VictimHP: e.Health,
			})
		}
		if !b.IsExplosion() {
			return true
		}
	}
	return false
}

func (l *Level) touchEnemies(now time.Duration) {
	c := l.character
	for _, e := range l.enemies {
		if e.Dead() || !c.Overlaps(&e.Body) {
			continue
		}
		if c.Touch(e, now) {
			l.emit(EventTypeDamage, fmt.Sprint(c.ID), DamagePayload{
				Source: e.Kind.Name(), VictimID: c.ID, Victim: c.Kind.Name(),
				Damage: e.Kind.TouchDamage(), VictimHP: c.Health,
			})
		}
	}
}

func (l *Level) pickUpItems() {
	c := l.character
	n := 0
	for _, it := range l.items {
		if c.Overlaps(&it.Body) {
			it.Apply(c)
			l.emit(EventTypeItemPicked, fmt.Sprint(it.ID), ItemPayload{ItemID: it.ID, Item: it.Name(), Health: c.Health})
			continue
		}
		l.items[n] = it
		n++
	}
	l.items = l.items[:n]
}

// removeDeadEnemies drops dead enemies, keeping any shot they fired this tick
// for the next PollShots.
func (l *Level) removeDeadEnemies() {
	n := 0
	for _, e := range l.enemies {
		if e.Dead() {
			if e.Weapon.Shot() {
				l.orphanShots = append(l.orphanShots, shotOf(e.Weapon, &e.Living))
			}
			l.emit(EventTypeEnemyKilled, fmt.Sprint(e.ID), KillPayload{EnemyID: e.ID, Kind: e.Kind.Name(), X: e.X, Y: e.Y})
			continue
		}
		l.enemies[n] = e
		n++
	}
	clear(l.enemies[n:])
	l.enemies = l.enemies[:n]
}

func (l *Level) checkOutcome() {
	c := l.character
	if c.Y > l.grid.PixelHeight() {
		c.Health = 0
	}
	if c.Dead() {
		l.lost = true
		l.emit(EventTypeCharacterDied, fmt.Sprint(c.ID), OutcomePayload{Level: l.number, ElapsedSec: l.clock.Seconds()})
		return
	}

	reached := l.placedEnemies > 0 && len(l.enemies) == 0
	if l.hasGoal {
		reached = l.grid.TouchesGoal(&c.Body)
	}
	if !reached {
		return
	}
	l.won = true
	l.emit(EventTypeLevelWon, "", OutcomePayload{Level: l.number, ElapsedSec: l.clock.Seconds()})
	if l.progress != nil {
		l.progress.SetUnlockedLevels(l.number + 1)
		if err := l.progress.Save(); err != nil {
			log.Printf("⚠️ Failed to save progress after %s: %v", l, err)
		}
	}
}

func shotOf(w Weapon, by *Living) ShotEvent {
	return ShotEvent{
		WeaponID:  w.ID(),
		Faction:   by.Faction().String(),
		ShooterID: by.ID,
		X:         by.X,
		Y:         by.Y,
	}
}

// PollShots reads every weapon's shot signal exactly once. Call it once per tick.
func (l *Level) PollShots() []ShotEvent {
	shots := l.orphanShots
	l.orphanShots = nil
	c := l.character
	for _, w := range c.weapons {
		if w.Shot() {
			shots = append(shots, shotOf(w, &c.Living))
		}
	}
	for _, e := range l.enemies {
		if e.Weapon.Shot() {
			shots = append(shots, shotOf(e.Weapon, &e.Living))
		}
	}
	return shots
}
