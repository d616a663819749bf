package game

import (
	"fmt"
	"sync/atomic"
)

// Intent is one player command coming from outside the simulation.
type Intent uint8

const (
	IntentNone Intent = iota
	IntentMoveLeft
	IntentMoveRight
	IntentStop
	IntentJump
	IntentJumpReleased
	IntentAttack
	IntentDash
	IntentNextWeapon
)

var intentNames = map[Intent]string{
	IntentMoveLeft:     "moveLeft",
	IntentMoveRight:    "moveRight",
	IntentStop:         "stop",
	IntentJump:         "jump",
	IntentJumpReleased: "jumpReleased",
	IntentAttack:       "attack",
	IntentDash:         "dash",
	IntentNextWeapon:   "nextWeapon",
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "none"
}

// ParseIntent maps a wire name to an Intent.
func ParseIntent(name string) (Intent, error) {
	for i, n := range intentNames {
		if n == name {
			return i, nil
		}
	}
	return IntentNone, fmt.Errorf("unknown intent %q", name)
}

// ParseIntents maps a list of wire names, failing on the first unknown one.
func ParseIntents(names []string) ([]Intent, error) {
	out := make([]Intent, 0, len(names))
	for _, n := range names {
		i, err := ParseIntent(n)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, nil
}

// Controls turns intents into character calls. Horizontal movement is held
// until stopped or reversed; everything else fires once.
type Controls struct {
	held Intent
}

// Apply runs one tick's worth of intents against c.
func (ctl *Controls) Apply(c *Character, intents []Intent) {
	for _, in := range intents {
		switch in {
		case IntentMoveLeft, IntentMoveRight:
			ctl.held = in
		case IntentStop:
			ctl.held = IntentNone
		case IntentJump:
			c.Jump()
		case IntentJumpReleased:
			c.JumpReleased()
		case IntentAttack:
			c.Attack()
		case IntentDash:
			c.Dash()
		case IntentNextWeapon:
			c.NextWeapon()
		}
	}
	switch ctl.held {
	case IntentMoveLeft:
		c.MoveLeft()
	case IntentMoveRight:
		c.MoveRight()
	}
}

// Reset forgets held movement, used when a level restarts.
func (ctl *Controls) Reset() {
	ctl.held = IntentNone
}

// InputQueueConfig holds configuration for the input queue
type InputQueueConfig struct {
	BufferSize int // Batches buffered between ticks (default: 64)
}

// DefaultInputQueueConfig returns sensible defaults
func DefaultInputQueueConfig() InputQueueConfig {
	return InputQueueConfig{BufferSize: 64}
}

// InputQueue decouples HTTP and WebSocket producers from the tick loop.
// Enqueue never blocks; the tick drains whatever arrived since the last tick.
type InputQueue struct {
	batches chan []Intent

	enqueued atomic.Uint64
	dropped  atomic.Uint64
}

// NewInputQueue creates a bounded queue.
func NewInputQueue(cfg InputQueueConfig) *InputQueue {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 64
	}
	return &InputQueue{batches: make(chan []Intent, cfg.BufferSize)}
}

// Enqueue adds a batch, returning false if the queue is full.
func (q *InputQueue) Enqueue(intents []Intent) bool {
	if len(intents) == 0 {
		return true
	}
	select {
	case q.batches <- intents:
		q.enqueued.Add(1)
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Drain returns every queued intent in arrival order without blocking.
func (q *InputQueue) Drain() []Intent {
	var out []Intent
	for {
		select {
		case batch := <-q.batches:
			out = append(out, batch...)
		default:
			return out
		}
	}
}

// Stats returns queue counters.
func (q *InputQueue) Stats() (enqueued, dropped uint64) {
	return q.enqueued.Load(), q.dropped.Load()
}
