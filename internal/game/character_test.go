package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacterFireCooldown(t *testing.T) {
	c := NewCharacter(1, 0, 0, DefaultTuning())

	_, ok := c.fire(0)
	assert.False(t, ok, "no attack requested")

	c.Attack()
	b, ok := c.fire(0)
	require.True(t, ok)
	assert.Equal(t, FactionPlayer, b.Faction)
	assert.Equal(t, BulletLaser, b.Kind)

	c.Attack()
	_, ok = c.fire(100 * time.Millisecond)
	assert.False(t, ok, "laser pistol is still cooling down")

	_, ok = c.fire(400 * time.Millisecond)
	assert.False(t, ok, "a refused attack is not retried")

	c.Attack()
	_, ok = c.fire(400 * time.Millisecond)
	assert.True(t, ok)
}

func TestCharacterJump(t *testing.T) {
	c := NewCharacter(1, 0, 0, DefaultTuning())

	c.State.Airborne = true
	c.Jump()
	assert.Zero(t, c.Vel.Y, "no jumping in mid-air")

	c.State.Airborne = false
	c.Jump()
	assert.Equal(t, -JumpStrength, c.Vel.Y)

	c.JumpReleased()
	assert.Equal(t, -JumpStrength/2, c.Vel.Y)

	c.Vel.Y = 40
	c.JumpReleased()
	assert.Equal(t, 40.0, c.Vel.Y, "falling is not affected")
}

func TestCharacterDash(t *testing.T) {
	c := NewCharacter(1, 0, 0, DefaultTuning())
	c.FacingRight = false

	c.Dash()
	c.updateDash(0)
	assert.True(t, c.State.Dashing)
	assert.Equal(t, -DashSpeed, c.Vel.X)

	c.Vel.X = 0
	c.updateDash(100 * time.Millisecond)
	assert.True(t, c.State.Dashing)

	c.updateDash(200 * time.Millisecond)
	assert.False(t, c.State.Dashing)

	c.Dash()
	c.updateDash(500 * time.Millisecond)
	assert.False(t, c.State.Dashing, "dash is on cooldown")

	c.MoveRight()
	c.Dash()
	c.updateDash(time.Second)
	assert.True(t, c.State.Dashing)
	assert.Equal(t, DashSpeed, c.Vel.X, "dash follows the run direction")
}

func TestCharacterInvulnerability(t *testing.T) {
	c := NewCharacter(1, 0, 0, DefaultTuning())
	tank := NewEnemy(2, KindTankbot, 0, 0)

	assert.True(t, c.Touch(tank, 0))
	assert.Equal(t, 80, c.Health)

	assert.False(t, c.Touch(tank, 500*time.Millisecond))
	assert.True(t, c.Invulnerable(999*time.Millisecond))

	assert.True(t, c.Touch(tank, time.Second))
	assert.Equal(t, 60, c.Health)

	own := &Bullet{Kind: BulletLaser, Faction: FactionPlayer, Damage: 10}
	assert.False(t, c.Collide(own, 5*time.Second), "own bullets never hurt")

	hostile := &Bullet{Kind: BulletLaser, Faction: FactionEnemy, Damage: 10}
	assert.True(t, c.Collide(hostile, 5*time.Second))
	assert.Equal(t, 50, c.Health)
}

func TestItemsApply(t *testing.T) {
	c := NewCharacter(1, 0, 0, DefaultTuning())
	c.Damage(10)

	health := Item{Kind: ItemHealthPack}
	health.Apply(c)
	assert.Equal(t, CharacterMaxHealth, c.Health, "healing is capped")

	points := Item{Kind: ItemUpgradePoints}
	points.Apply(c)
	points.Apply(c)
	assert.Equal(t, 2, c.UpgradePoints)

	rocket := Item{Kind: ItemWeapon, WeaponID: WeaponRocketLauncher}
	assert.Equal(t, WeaponRocketLauncher, rocket.Name())
	rocket.Apply(c)
	require.Len(t, c.Weapons(), 2)
	assert.Equal(t, WeaponRocketLauncher, c.Weapon().ID())

	c.NextWeapon()
	assert.Equal(t, WeaponLaserPistol, c.Weapon().ID())

	rocket.Apply(c)
	assert.Len(t, c.Weapons(), 2, "picking up an owned weapon only equips it")
	assert.Equal(t, WeaponRocketLauncher, c.Weapon().ID())
}
