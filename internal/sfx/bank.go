package sfx

import (
	"fmt"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/vorbis"

	"rsmg/internal/game"
)

// Options configure a Bank.
type Options struct {
	SampleRate  int
	Volume      float64
	LaserSample string // optional OGG file
}

// Bank holds one pre-rendered sound per weapon.
type Bank struct {
	format beep.Format
	sounds map[string]*beep.Buffer
}

// NewBank renders every weapon sound.
func NewBank(opts Options) (*Bank, error) {
	if opts.SampleRate <= 0 {
		opts.SampleRate = 44100
	}
	sr := beep.SampleRate(opts.SampleRate)
	b := &Bank{
		format: beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2},
		sounds: make(map[string]*beep.Buffer),
	}

	laser := NewDecay(NewSweep(1400, 300, 120*time.Millisecond, WaveSquare, sr), 120*time.Millisecond, sr)
	if opts.LaserSample != "" {
		s, err := loadSample(opts.LaserSample, sr)
		if err != nil {
			return nil, err
		}
		laser = s
	}
	b.store(game.WeaponLaserPistol, withVolume(laser, opts.Volume*0.6))

	thump, err := generators.SineTone(sr, 55)
	if err != nil {
		return nil, fmt.Errorf("rocket tone: %w", err)
	}
	rocket := beep.Mix(
		NewDecay(NewSweep(0, 0, 350*time.Millisecond, WaveNoise, sr), 350*time.Millisecond, sr),
		NewDecay(thump, 350*time.Millisecond, sr),
	)
	b.store(game.WeaponRocketLauncher, withVolume(rocket, opts.Volume))

	return b, nil
}

func (b *Bank) store(id string, s beep.Streamer) {
	buf := beep.NewBuffer(b.format)
	buf.Append(s)
	b.sounds[id] = buf
}

// loadSample decodes an OGG file and resamples it to the bank rate.
func loadSample(path string, sr beep.SampleRate) (beep.Streamer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open laser sample: %w", err)
	}
	s, format, err := vorbis.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode laser sample %s: %w", path, err)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2})
	buf.Append(beep.Resample(4, format.SampleRate, sr, s))
	if err := s.Close(); err != nil {
		return nil, fmt.Errorf("close laser sample: %w", err)
	}
	return buf.Streamer(0, buf.Len()), nil
}

// Format returns the sample format sounds are rendered in.
func (b *Bank) Format() beep.Format {
	return b.format
}

// Sound returns a fresh streamer for the weapon's sound.
func (b *Bank) Sound(weaponID string) (beep.Streamer, bool) {
	buf, ok := b.sounds[weaponID]
	if !ok {
		return nil, false
	}
	return buf.Streamer(0, buf.Len()), true
}

// Length returns how long the weapon's sound lasts.
func (b *Bank) Length(weaponID string) time.Duration {
	buf, ok := b.sounds[weaponID]
	if !ok {
		return 0
	}
	return b.format.SampleRate.D(buf.Len())
}
