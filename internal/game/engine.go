package game

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoSuchLevel = errors.New("no such level")
	ErrLevelLocked = errors.New("level is locked")
)

// LevelSource supplies level data by number, starting at 1.
type LevelSource interface {
	Load(n int) (LevelData, error)
	Count() int
}

// ProgressReader is implemented by progress stores that can report what is unlocked.
type ProgressReader interface {
	UnlockedLevels() int
}

// EngineConfig configures an Engine.
type EngineConfig struct {
	TickRate     int
	StartLevel   int
	Tuning       Tuning
	Levels       LevelSource
	Progress     ProgressStore
	Input        InputQueueConfig
	EventLog     EventLogConfig
	Limits       ResourceLimits
	OutcomeDelay time.Duration // how long a won or lost level stays on screen
}

// TickStats summarises one tick for metrics hooks. Won and Lost are set only
// on the tick the level finished.
type TickStats struct {
	Duration time.Duration
	Level    int
	Bullets  int
	Enemies  int
	Shots    []ShotEvent
	Won      bool
	Lost     bool
}

// LevelInfo is the static part of the running level a renderer needs.
type LevelInfo struct {
	Number   int      `json:"number"`
	Name     string   `json:"name"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	TileSize int      `json:"tileSize"`
	Rows     []string `json:"rows"`
	Count    int      `json:"count"`
}

// Engine is the controller around a Level: it runs the tick loop, feeds
// queued input to the character, moves between levels, and publishes
// snapshots and events for everything outside the simulation.
type Engine struct {
	mu sync.RWMutex

	cfg      EngineConfig
	level    *Level
	controls Controls
	input    *InputQueue

	tickRate int
	running  bool
	ticker   *time.Ticker
	stopChan chan struct{}

	tickCount   uint64
	finishedFor time.Duration
	runID       string

	snapshotPool *SnapshotPool
	eventLog     *EventLog

	shotListeners []func([]ShotEvent)
	tickListeners []func(TickStats)
}

// NewEngine creates an engine with the start level loaded.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Levels == nil {
		return nil, errors.New("engine needs a level source")
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.StartLevel <= 0 {
		cfg.StartLevel = 1
	}
	if cfg.Limits == (ResourceLimits{}) {
		cfg.Limits = DefaultLimits
	}
	if cfg.OutcomeDelay <= 0 {
		cfg.OutcomeDelay = 2 * time.Second
	}

	e := &Engine{
		cfg:          cfg,
		input:        NewInputQueue(cfg.Input),
		tickRate:     cfg.TickRate,
		stopChan:     make(chan struct{}),
		runID:        uuid.NewString(),
		snapshotPool: NewSnapshotPool(cfg.Limits),
		eventLog:     NewEventLog(cfg.EventLog),
	}
	if err := e.loadLocked(cfg.StartLevel); err != nil {
		return nil, err
	}
	return e, nil
}

// Start begins the game loop
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.ticker = time.NewTicker(time.Second / time.Duration(e.tickRate))
	e.mu.Unlock()

	go func() {
		for {
			select {
			case <-e.ticker.C:
				e.Step(1.0 / float64(e.tickRate))
			case <-e.stopChan:
				return
			}
		}
	}()

	log.Printf("🎮 Game engine started at %d TPS (run %s)", e.tickRate, e.runID)
}

// Stop stops the game loop
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}

	e.running = false
	if e.ticker != nil {
		e.ticker.Stop()
	}
	close(e.stopChan)
	log.Println("🛑 Game engine stopped")
}

// Step applies queued input and advances the level by delta seconds. The tick
// loop calls it; tests and the headless simulator call it directly.
func (e *Engine) Step(delta float64) TickStats {
	start := time.Now()

	e.mu.Lock()
	e.tickCount++
	l := e.level
	wasFinished := l.Finished()

	e.controls.Apply(l.Character(), e.input.Drain())
	l.Update(delta)
	shots := l.PollShots()

	e.eventLog.EmitSimple(EventTypeTick, e.tickCount, "", TickPayload{
		Level:       l.Number(),
		DeltaTimeNs: int64(delta * 1e9),
		Bullets:     len(l.Bullets()),
		Enemies:     len(l.Enemies()),
	})
	for _, ev := range l.DrainEvents() {
		ev.TickNum = e.tickCount
		e.eventLog.Emit(ev)
	}
	for _, s := range shots {
		e.eventLog.EmitSimple(EventTypeShot, e.tickCount, fmt.Sprint(s.ShooterID), s)
	}

	e.produceSnapshotLocked()

	stats := TickStats{
		Level:   l.Number(),
		Bullets: len(l.Bullets()),
		Enemies: len(l.Enemies()),
		Shots:   shots,
		Won:     !wasFinished && l.HasWon(),
		Lost:    !wasFinished && l.HasLost(),
	}
	e.advanceLocked(delta)

	shotListeners := e.shotListeners
	tickListeners := e.tickListeners
	e.mu.Unlock()

	stats.Duration = time.Since(start)
	if len(shots) > 0 {
		for _, fn := range shotListeners {
			fn(shots)
		}
	}
	for _, fn := range tickListeners {
		fn(stats)
	}
	return stats
}

// advanceLocked moves on from a finished level once the outcome has been shown.
func (e *Engine) advanceLocked(delta float64) {
	l := e.level
	if !l.Finished() {
		return
	}
	e.finishedFor += time.Duration(delta * float64(time.Second))
	if e.finishedFor < e.cfg.OutcomeDelay {
		return
	}

	next := l.Number()
	if l.HasWon() {
		if l.Number() < e.cfg.Levels.Count() {
			next = l.Number() + 1
		} else {
			log.Printf("🏆 Final level %d cleared, replaying it", l.Number())
		}
	}
	if err := e.loadLocked(next); err != nil {
		log.Printf("❌ Failed to load level %d: %v", next, err)
	}
}

func (e *Engine) loadLocked(n int) error {
	if n < 1 || n > e.cfg.Levels.Count() {
		return fmt.Errorf("level %d: %w", n, ErrNoSuchLevel)
	}
	data, err := e.cfg.Levels.Load(n)
	if err != nil {
		return fmt.Errorf("load level %d: %w", n, err)
	}
	e.level = NewLevel(LevelConfig{
		Number:   n,
		Data:     data,
		Tuning:   e.cfg.Tuning,
		Progress: e.cfg.Progress,
	})
	e.controls.Reset()
	e.input.Drain()
	e.finishedFor = 0
	for _, ev := range e.level.DrainEvents() {
		ev.TickNum = e.tickCount
		e.eventLog.Emit(ev)
	}
	e.produceSnapshotLocked()
	log.Printf("🗺️ Loaded %s", e.level)
	return nil
}

// LoadLevel switches to level n if it exists and is unlocked.
func (e *Engine) LoadLevel(n int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n > e.unlockedLocked() {
		return fmt.Errorf("level %d: %w", n, ErrLevelLocked)
	}
	return e.loadLocked(n)
}

// RestartLevel reloads the current level from its source.
func (e *Engine) RestartLevel() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadLocked(e.level.Number())
}

// UnlockedLevels reports the highest playable level.
func (e *Engine) UnlockedLevels() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.unlockedLocked()
}

func (e *Engine) unlockedLocked() int {
	n := 1
	if r, ok := e.cfg.Progress.(ProgressReader); ok && r.UnlockedLevels() > n {
		n = r.UnlockedLevels()
	}
	if e.level != nil && e.level.Number() > n {
		n = e.level.Number()
	}
	if c := e.cfg.Levels.Count(); n > c {
		n = c
	}
	return n
}

// QueueIntents hands player input to the next tick. False means the queue was full.
func (e *Engine) QueueIntents(intents []Intent) bool {
	return e.input.Enqueue(intents)
}

// InputStats returns accepted and dropped input batch counts.
func (e *Engine) InputStats() (enqueued, dropped uint64) {
	return e.input.Stats()
}

// OnShots registers a listener for the shots fired in each tick.
func (e *Engine) OnShots(fn func([]ShotEvent)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shotListeners = append(e.shotListeners, fn)
}

// OnTick registers a listener called after every tick.
func (e *Engine) OnTick(fn func(TickStats)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickListeners = append(e.tickListeners, fn)
}

// LevelInfo describes the running level's static layout.
func (e *Engine) LevelInfo() LevelInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	g := e.level.Grid()
	return LevelInfo{
		Number:   e.level.Number(),
		Name:     e.level.Name(),
		Width:    g.Width(),
		Height:   g.Height(),
		TileSize: TileSize,
		Rows:     g.Rows(),
		Count:    e.cfg.Levels.Count(),
	}
}

// produceSnapshotLocked publishes the current level state. Caller holds e.mu.
func (e *Engine) produceSnapshotLocked() {
	snap := e.snapshotPool.AcquireWrite()
	snap.TickNumber = e.tickCount
	snap.RunID = e.runID
	e.snapshotPool.Fill(snap, e.level)
	e.snapshotPool.PublishWrite()
}

// GetSnapshot returns the latest immutable snapshot for lock-free reading.
func (e *Engine) GetSnapshot() *GameSnapshot {
	return e.snapshotPool.AcquireRead()
}

// RunID identifies this engine instance in snapshots and logs.
func (e *Engine) RunID() string {
	return e.runID
}

// TickCount returns the number of ticks run so far.
func (e *Engine) TickCount() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tickCount
}

// StartEventLog starts the event log with file output
func (e *Engine) StartEventLog(filePath string) error {
	return e.eventLog.Start(filePath)
}

// StopEventLog stops the event log
func (e *Engine) StopEventLog() {
	e.eventLog.Stop()
}

// GetEventLogStats returns event log statistics
func (e *Engine) GetEventLogStats() map[string]interface{} {
	return e.eventLog.GetStats()
}

// EventLog exposes the event log for counters.
func (e *Engine) EventLog() *EventLog {
	return e.eventLog
}
