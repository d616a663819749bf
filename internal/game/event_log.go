package game

import (
	"bufio"
	"encoding/json"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

const (
	EventBufferSize      = 1024                   // Ring slots between the tick and the writer
	MaxEventsPerSec      = 5000                   // Global rate limit
	MaxEventsPerSource   = 50                     // Per-entity rate limit per second
	TickSampleEvery      = 30                     // Default: one tick event per half second at 60 Hz
	BatchFlushSize       = 64                     // Events per batch write
	BatchFlushInterval   = 100 * time.Millisecond // How often to flush
	SourceLimiterCleanup = 5 * time.Minute        // Cleanup interval for source limiters
)

const eventTypeCount = int(EventTypeCharacterDied) + 1

// EventPolicy decides how the log treats one event type.
type EventPolicy struct {
	// SampleEvery keeps ticks 1, 1+N, 1+2N... of this type. 0 or 1 keeps all.
	SampleEvery uint64
	// PerSource rate limits each entity separately.
	PerSource bool
	// Always skips the rate limiters. Level outcomes are never limited away.
	Always bool
}

// keeps reports whether an event on tick n survives sampling.
func (p EventPolicy) keeps(n uint64) bool {
	return p.SampleEvery <= 1 || n%p.SampleEvery == 1
}

// EventLogConfig tunes the event log. Zero values use defaults.
type EventLogConfig struct {
	TickSampleEvery uint64
}

func defaultEventPolicies(cfg EventLogConfig) [eventTypeCount]EventPolicy {
	every := cfg.TickSampleEvery
	if every == 0 {
		every = TickSampleEvery
	}
	var p [eventTypeCount]EventPolicy
	p[EventTypeTick] = EventPolicy{SampleEvery: every}
	p[EventTypeLevelLoaded] = EventPolicy{Always: true}
	p[EventTypeShot] = EventPolicy{PerSource: true}
	p[EventTypeDamage] = EventPolicy{PerSource: true}
	p[EventTypeEnemyKilled] = EventPolicy{PerSource: true}
	p[EventTypeItemPicked] = EventPolicy{PerSource: true}
	p[EventTypeLevelWon] = EventPolicy{Always: true}
	p[EventTypeCharacterDied] = EventPolicy{Always: true}
	return p
}

// EventLog records game events to an append-only JSONL file. Producers are
// serialised by emitMu; the writer goroutine drains the ring without locking.
// When the ring is full new events are dropped.
type EventLog struct {
	buffer    [EventBufferSize]Event
	emitMu    sync.Mutex
	committed atomic.Uint64 // slots fully written; the writer reads below this
	consumed  atomic.Uint64 // slots handed to the writer

	policies       [eventTypeCount]EventPolicy
	globalLimiter  *rate.Limiter
	sourceLimiters sync.Map // map[string]*sourceLimiterEntry

	writerWg sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool

	file   *os.File
	fileMu sync.Mutex

	totalCount   atomic.Uint64
	droppedCount atomic.Uint64
	sampledCount atomic.Uint64
	invalidCount atomic.Uint64
	byType       [eventTypeCount]atomic.Uint64
}

// sourceLimiterEntry tracks per-source rate limiting
type sourceLimiterEntry struct {
	limiter  *rate.Limiter
	lastUsed atomic.Int64 // unix nano
}

// NewEventLog creates a stopped event log.
func NewEventLog(cfg EventLogConfig) *EventLog {
	return &EventLog{
		policies:      defaultEventPolicies(cfg),
		globalLimiter: rate.NewLimiter(MaxEventsPerSec, MaxEventsPerSec/10),
		stopChan:      make(chan struct{}),
	}
}

// Policy returns how events of type t are treated.
func (el *EventLog) Policy(t EventType) EventPolicy {
	if int(t) >= eventTypeCount {
		return EventPolicy{}
	}
	return el.policies[t]
}

// Start begins the async writer. An empty path keeps counters without file output.
func (el *EventLog) Start(filePath string) error {
	if el.running.Load() {
		return nil
	}

	if filePath != "" {
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		el.file = file
	}

	el.running.Store(true)
	el.writerWg.Add(2)
	go el.writerLoop()
	go el.cleanupLoop()

	return nil
}

// Stop flushes what is pending and closes the file.
func (el *EventLog) Stop() {
	el.stopOnce.Do(func() {
		el.running.Store(false)
		close(el.stopChan)
		el.writerWg.Wait()

		el.fileMu.Lock()
		if el.file != nil {
			el.file.Close()
		}
		el.fileMu.Unlock()
	})
}

// Emit records an event. It returns false when the event was not kept:
// the log is stopped, the type is unknown, the tick was sampled out, a rate
// limit refused it, or the ring is full.
func (el *EventLog) Emit(event Event) bool {
	if !el.running.Load() {
		return false
	}
	if event.Type == EventTypeUnknown || int(event.Type) >= eventTypeCount || event.Payload == nil {
		el.invalidCount.Add(1)
		return false
	}

	policy := el.policies[event.Type]
	if !policy.keeps(event.TickNum) {
		el.sampledCount.Add(1)
		return false
	}
	if !policy.Always {
		if !el.globalLimiter.Allow() {
			el.droppedCount.Add(1)
			return false
		}
		if policy.PerSource && event.SourceID != "" && !el.sourceLimiter(event.SourceID).Allow() {
			el.droppedCount.Add(1)
			return false
		}
	}

	el.emitMu.Lock()
	next := el.committed.Load()
	if next-el.consumed.Load() >= EventBufferSize {
		el.emitMu.Unlock()
		el.droppedCount.Add(1)
		return false
	}
	event.Sequence = next + 1
	el.buffer[next%EventBufferSize] = event
	el.committed.Store(next + 1)
	el.emitMu.Unlock()

	el.totalCount.Add(1)
	el.byType[event.Type].Add(1)
	return true
}

// EmitSimple builds and emits an event in one call.
func (el *EventLog) EmitSimple(eventType EventType, tickNum uint64, sourceID string, payload interface{}) bool {
	return el.Emit(NewEvent(eventType, tickNum, sourceID, payload))
}

func (el *EventLog) sourceLimiter(sourceID string) *rate.Limiter {
	now := time.Now().UnixNano()
	if v, ok := el.sourceLimiters.Load(sourceID); ok {
		e := v.(*sourceLimiterEntry)
		e.lastUsed.Store(now)
		return e.limiter
	}

	entry := &sourceLimiterEntry{limiter: rate.NewLimiter(MaxEventsPerSource, MaxEventsPerSource/5)}
	entry.lastUsed.Store(now)
	actual, _ := el.sourceLimiters.LoadOrStore(sourceID, entry)
	return actual.(*sourceLimiterEntry).limiter
}

// writerLoop batches and writes events until Stop, then drains the ring.
func (el *EventLog) writerLoop() {
	defer el.writerWg.Done()

	ticker := time.NewTicker(BatchFlushInterval)
	defer ticker.Stop()

	batch := make([]Event, 0, BatchFlushSize)
	for {
		select {
		case <-el.stopChan:
			for {
				batch = el.collectBatch(batch[:0])
				if len(batch) == 0 {
					return
				}
				el.flushBatch(batch)
			}

		case <-ticker.C:
			for {
				batch = el.collectBatch(batch[:0])
				if len(batch) == 0 {
					break
				}
				el.flushBatch(batch)
			}
		}
	}
}

// cleanupLoop removes limiters of entities that stopped producing; entity
// ids are never reused within a run.
func (el *EventLog) cleanupLoop() {
	defer el.writerWg.Done()

	ticker := time.NewTicker(SourceLimiterCleanup)
	defer ticker.Stop()

	for {
		select {
		case <-el.stopChan:
			return
		case <-ticker.C:
			el.cleanupSourceLimiters(time.Now().Add(-SourceLimiterCleanup))
		}
	}
}

func (el *EventLog) cleanupSourceLimiters(cutoff time.Time) {
	el.sourceLimiters.Range(func(key, value interface{}) bool {
		if value.(*sourceLimiterEntry).lastUsed.Load() < cutoff.UnixNano() {
			el.sourceLimiters.Delete(key)
		}
		return true
	})
}

// collectBatch copies committed events out of the ring and releases their slots.
func (el *EventLog) collectBatch(batch []Event) []Event {
	from := el.consumed.Load()
	to := el.committed.Load()
	for i := from; i < to && len(batch) < BatchFlushSize; i++ {
		batch = append(batch, el.buffer[i%EventBufferSize])
	}
	el.consumed.Store(from + uint64(len(batch)))
	return batch
}

// eventLine is the on-disk form of an event: the type is written by name and
// the payload is embedded as JSON rather than base64.
type eventLine struct {
	Version   uint8           `json:"version"`
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Sequence  uint64          `json:"sequence"`
	TickNum   uint64          `json:"tickNum"`
	SourceID  string          `json:"sourceId,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

// flushBatch appends events as newline-delimited JSON.
func (el *EventLog) flushBatch(batch []Event) {
	el.fileMu.Lock()
	defer el.fileMu.Unlock()

	if el.file == nil {
		return
	}

	w := bufio.NewWriter(el.file)
	enc := json.NewEncoder(w)
	for _, ev := range batch {
		line := eventLine{
			Version:   ev.Version,
			Type:      ev.Type.String(),
			Timestamp: ev.Timestamp,
			Sequence:  ev.Sequence,
			TickNum:   ev.TickNum,
			SourceID:  ev.SourceID,
			Payload:   ev.Payload,
		}
		if err := enc.Encode(line); err != nil {
			log.Printf("⚠️ Event log encode %s #%d: %v", line.Type, ev.Sequence, err)
		}
	}
	if err := w.Flush(); err != nil {
		log.Printf("⚠️ Event log write failed: %v", err)
	}
}

// GetStats returns counters for monitoring.
func (el *EventLog) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"total":   el.totalCount.Load(),
		"dropped": el.droppedCount.Load(),
		"sampled": el.sampledCount.Load(),
		"invalid": el.invalidCount.Load(),
		"pending": el.committed.Load() - el.consumed.Load(),
		"running": el.running.Load(),
	}
}

// CountByType returns how many events of type t were kept.
func (el *EventLog) CountByType(t EventType) uint64 {
	if int(t) >= eventTypeCount {
		return 0
	}
	return el.byType[t].Load()
}

// GetDroppedCount returns how many events a rate limit or a full ring refused.
func (el *EventLog) GetDroppedCount() uint64 {
	return el.droppedCount.Load()
}

// GetSampledCount returns how many events were skipped by sampling.
func (el *EventLog) GetSampledCount() uint64 {
	return el.sampledCount.Load()
}

// GetTotalCount returns how many events were kept.
func (el *EventLog) GetTotalCount() uint64 {
	return el.totalCount.Load()
}
