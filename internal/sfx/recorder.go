package sfx

import (
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"

	"rsmg/internal/game"
)

// cue is one sound placed on the timeline.
type cue struct {
	at     time.Duration
	weapon string
	pan    float64
}

// Recorder collects shot batches against simulated time and renders them to
// a single stereo track.
type Recorder struct {
	bank       *Bank
	worldWidth float64
	cues       []cue
	end        time.Duration
}

// NewRecorder pans each shot by its x position across a world worldWidth wide.
func NewRecorder(bank *Bank, worldWidth float64) *Recorder {
	return &Recorder{bank: bank, worldWidth: worldWidth}
}

// Record places one tick's shots at simulated time at. Unknown weapons are skipped.
func (r *Recorder) Record(at time.Duration, shots []game.ShotEvent) {
	for _, s := range shots {
		length := r.bank.Length(s.WeaponID)
		if length == 0 {
			continue
		}
		pan := 0.0
		if r.worldWidth > 0 {
			pan = s.X/r.worldWidth*2 - 1
			pan = max(-1, min(1, pan))
		}
		r.cues = append(r.cues, cue{at: at, weapon: s.WeaponID, pan: pan})
		if end := at + length; end > r.end {
			r.end = end
		}
	}
}

// Cues returns how many sounds have been recorded.
func (r *Recorder) Cues() int {
	return len(r.cues)
}

// Duration is the length of the rendered track.
func (r *Recorder) Duration() time.Duration {
	return r.end
}

// Streamer mixes every cue into one track of Duration length.
func (r *Recorder) Streamer() beep.Streamer {
	sr := r.bank.Format().SampleRate
	tracks := make([]beep.Streamer, 0, len(r.cues))
	for _, c := range r.cues {
		s, ok := r.bank.Sound(c.weapon)
		if !ok {
			continue
		}
		panned := &effects.Pan{Streamer: s, Pan: c.pan}
		tracks = append(tracks, beep.Seq(beep.Silence(sr.N(c.at)), panned))
	}
	return beep.Take(sr.N(r.end), beep.Mix(tracks...))
}

// WriteWAV encodes the track as 16-bit stereo WAV.
func (r *Recorder) WriteWAV(w io.WriteSeeker) error {
	if err := wav.Encode(w, r.Streamer(), r.bank.Format()); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return nil
}
