package game

import (
	"testing"
	"time"
)

func explosionAt(x, y float64) *Bullet {
	return &Bullet{Kind: BulletExplosion, Faction: FactionPlayer, Body: NewBody(x, y, ExplosionSize, ExplosionSize), Damage: ExplosionDamage}
}

// TestExplosionThrottle verifies an enemy takes explosion damage at most once per ExplosionTick
func TestExplosionThrottle(t *testing.T) {
	e := NewEnemy(1, KindTankbot, 0, 0)
	blast := explosionAt(0, 0)

	if !e.Collide(blast, 0) {
		t.Fatal("first explosion should hit")
	}
	if e.Health != 35 {
		t.Fatalf("expected 35 HP, got %d", e.Health)
	}

	if e.Collide(blast, 100*time.Millisecond) {
		t.Error("explosion inside the throttle window should be ignored")
	}

	e.UpdateVulnerability(500 * time.Millisecond)
	if e.VulnerableToExplosions() {
		t.Error("still inside the throttle window at 500ms")
	}

	e.UpdateVulnerability(700 * time.Millisecond)
	if !e.VulnerableToExplosions() {
		t.Fatal("should be vulnerable again after 600ms")
	}
	if !e.Collide(blast, 700*time.Millisecond) || e.Health != 10 {
		t.Errorf("second explosion should land, HP=%d", e.Health)
	}
}

// TestDirectHitsIgnoreThrottle verifies travelling bullets always land
func TestDirectHitsIgnoreThrottle(t *testing.T) {
	e := NewEnemy(1, KindBucketBot, 0, 0)
	laser := &Bullet{Kind: BulletLaser, Faction: FactionPlayer, Body: NewBody(0, 0, 5, 3), Damage: 10}

	e.Collide(explosionAt(0, 0), 0)
	if !e.Collide(laser, 10*time.Millisecond) {
		t.Fatal("laser should hit a throttled enemy")
	}
	if e.Health != 0 || !e.Dead() {
		t.Errorf("expected dead bucketbot, HP=%d", e.Health)
	}
}

func TestRecentlyTookDamage(t *testing.T) {
	e := NewEnemy(1, KindTankbot, 0, 0)
	if e.RecentlyTookDamage(0) {
		t.Fatal("untouched enemy should not flash")
	}
	e.Collide(&Bullet{Kind: BulletLaser, Damage: 1}, time.Second)
	if !e.RecentlyTookDamage(time.Second + 50*time.Millisecond) {
		t.Error("should flash right after a hit")
	}
	if e.RecentlyTookDamage(time.Second + 150*time.Millisecond) {
		t.Error("flash should be over after 100ms")
	}
}

func TestNewEnemyDefaults(t *testing.T) {
	tests := []struct {
		kind   Kind
		w, h   float64
		health int
		touch  int
		flying bool
	}{
		{KindTankbot, 32, 22, 60, 20, false},
		{KindBucketBot, 26, 26, 30, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind.Name(), func(t *testing.T) {
			e := NewEnemy(7, tt.kind, 10, 20)
			if e.W != tt.w || e.H != tt.h {
				t.Errorf("size %vx%v", e.W, e.H)
			}
			if e.Health != tt.health || e.MaxHealth != tt.health {
				t.Errorf("health %d/%d", e.Health, e.MaxHealth)
			}
			if e.Kind.TouchDamage() != tt.touch || e.Kind.Flying() != tt.flying {
				t.Errorf("unexpected kind traits for %s", tt.kind.Name())
			}
			if e.FacingRight {
				t.Error("enemies spawn facing left")
			}
			if e.Faction() != FactionEnemy {
				t.Error("enemy faction expected")
			}
		})
	}
}
