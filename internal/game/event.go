package game

import (
	"encoding/json"
	"time"
)

// EventType enum for event classification
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypeTick              // Tick boundary
	EventTypeLevelLoaded
	EventTypeShot
	EventTypeDamage
	EventTypeEnemyKilled
	EventTypeItemPicked
	EventTypeLevelWon
	EventTypeCharacterDied
)

// EventVersion for backwards compatibility in replay
const EventVersion uint8 = 1

// Event is the core event structure for the event log
type Event struct {
	Version   uint8     `json:"version"`
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"` // Unix nano
	Sequence  uint64    `json:"sequence"`
	TickNum   uint64    `json:"tickNum"`
	SourceID  string    `json:"sourceId"` // Entity that caused it (for rate limiting)
	Payload   []byte    `json:"payload"`
}

// String returns human-readable event type
func (t EventType) String() string {
	switch t {
	case EventTypeTick:
		return "tick"
	case EventTypeLevelLoaded:
		return "level_loaded"
	case EventTypeShot:
		return "shot"
	case EventTypeDamage:
		return "damage"
	case EventTypeEnemyKilled:
		return "enemy_killed"
	case EventTypeItemPicked:
		return "item_picked"
	case EventTypeLevelWon:
		return "level_won"
	case EventTypeCharacterDied:
		return "character_died"
	default:
		return "unknown"
	}
}

// TickPayload contains tick boundary information for replay
type TickPayload struct {
	Level       int   `json:"level"`
	DeltaTimeNs int64 `json:"deltaTimeNs"`
	Bullets     int   `json:"bullets"`
	Enemies     int   `json:"enemies"`
}

// LevelLoadedPayload describes a freshly constructed level.
type LevelLoadedPayload struct {
	Level  int     `json:"level"`
	Name   string  `json:"name"`
	SpawnX float64 `json:"spawnX"`
	SpawnY float64 `json:"spawnY"`
}

// ShotEvent is one fired shot, polled once per tick from every weapon.
type ShotEvent struct {
	WeaponID  string  `json:"weaponId"`
	Faction   string  `json:"faction"`
	ShooterID uint64  `json:"shooterId"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// DamagePayload contains damage event details
type DamagePayload struct {
	Source   string `json:"source"` // bullet kind or enemy kind on touch
	VictimID uint64 `json:"victimId"`
	Victim   string `json:"victim"`
	Damage   int    `json:"damage"`
	VictimHP int    `json:"victimHp"`
}

// KillPayload contains kill event details
type KillPayload struct {
	EnemyID uint64  `json:"enemyId"`
	Kind    string  `json:"kind"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// ItemPayload describes a collected pickup.
type ItemPayload struct {
	ItemID uint64 `json:"itemId"`
	Item   string `json:"item"`
	Health int    `json:"health"`
}

// OutcomePayload closes a level run.
type OutcomePayload struct {
	Level      int     `json:"level"`
	ElapsedSec float64 `json:"elapsedSec"`
}

// EncodePayload marshals a payload to JSON bytes
func EncodePayload(payload interface{}) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}

// NewEvent creates a new event with the current timestamp
func NewEvent(eventType EventType, tickNum uint64, sourceID string, payload interface{}) Event {
	return Event{
		Version:   EventVersion,
		Type:      eventType,
		Timestamp: time.Now().UnixNano(),
		TickNum:   tickNum,
		SourceID:  sourceID,
		Payload:   EncodePayload(payload),
	}
}
