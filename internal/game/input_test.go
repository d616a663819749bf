package game

import (
	"testing"
)

func TestParseIntentRoundTrip(t *testing.T) {
	for intent, name := range intentNames {
		t.Run(name, func(t *testing.T) {
			got, err := ParseIntent(name)
			if err != nil {
				t.Fatalf("ParseIntent(%q): %v", name, err)
			}
			if got != intent || got.String() != name {
				t.Errorf("got %v (%s)", got, got)
			}
		})
	}

	if _, err := ParseIntent("fly"); err == nil {
		t.Error("expected error for unknown intent")
	}
	if _, err := ParseIntents([]string{"jump", "fly"}); err == nil {
		t.Error("expected ParseIntents to fail on the first unknown name")
	}
}

// TestControlsHoldMovement verifies horizontal movement persists until stopped
func TestControlsHoldMovement(t *testing.T) {
	var ctl Controls
	c := NewCharacter(1, 0, 0, DefaultTuning())

	ctl.Apply(c, []Intent{IntentMoveRight})
	if c.Vel.X != CharacterSpeed {
		t.Fatalf("expected vx %v, got %v", CharacterSpeed, c.Vel.X)
	}

	c.Vel.X = 0
	ctl.Apply(c, nil)
	if c.Vel.X != CharacterSpeed {
		t.Error("held movement should reapply every tick")
	}

	c.Vel.X = 0
	ctl.Apply(c, []Intent{IntentMoveLeft})
	if c.Vel.X != -CharacterSpeed {
		t.Error("opposite direction should replace the held one")
	}

	c.Vel.X = 0
	ctl.Apply(c, []Intent{IntentStop})
	if c.Vel.X != 0 {
		t.Error("stop should release movement")
	}

	ctl.Apply(c, []Intent{IntentMoveRight})
	ctl.Reset()
	c.Vel.X = 0
	ctl.Apply(c, nil)
	if c.Vel.X != 0 {
		t.Error("reset should release movement")
	}
}

func TestControlsOneShotIntents(t *testing.T) {
	var ctl Controls
	c := NewCharacter(1, 0, 0, DefaultTuning())
	c.AddWeapon(NewRocketLauncher())

	ctl.Apply(c, []Intent{IntentJump, IntentAttack, IntentDash, IntentNextWeapon})

	if c.Vel.Y != -JumpStrength {
		t.Errorf("expected jump, vy=%v", c.Vel.Y)
	}
	if !c.attackRequested || !c.dashRequested {
		t.Error("attack and dash should be requested")
	}
	if c.Weapon().ID() != WeaponLaserPistol {
		t.Errorf("expected weapon cycle back to laser, got %s", c.Weapon().ID())
	}
}

// TestInputQueueBackpressure verifies the queue drops batches instead of blocking
func TestInputQueueBackpressure(t *testing.T) {
	q := NewInputQueue(InputQueueConfig{BufferSize: 2})

	if !q.Enqueue(nil) {
		t.Error("empty batch should be accepted")
	}
	if !q.Enqueue([]Intent{IntentMoveRight}) || !q.Enqueue([]Intent{IntentJump, IntentAttack}) {
		t.Fatal("first two batches should fit")
	}
	if q.Enqueue([]Intent{IntentDash}) {
		t.Error("third batch should be dropped")
	}

	got := q.Drain()
	want := []Intent{IntentMoveRight, IntentJump, IntentAttack}
	if len(got) != len(want) {
		t.Fatalf("drained %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("intent %d: got %v, want %v", i, got[i], want[i])
		}
	}

	enqueued, dropped := q.Stats()
	if enqueued != 2 || dropped != 1 {
		t.Errorf("stats enqueued=%d dropped=%d", enqueued, dropped)
	}
	if len(q.Drain()) != 0 {
		t.Error("queue should be empty after drain")
	}
}
