// Command sim runs one level headless with a scripted input pattern and
// prints what happened. With -wav it also renders the shot sounds.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"rsmg/internal/config"
	"rsmg/internal/game"
	"rsmg/internal/levelio"
	"rsmg/internal/sfx"
)

func main() {
	level := flag.Int("level", 1, "level number to run")
	seconds := flag.Float64("seconds", 10, "simulated seconds")
	fps := flag.Int("fps", 60, "ticks per simulated second")
	script := flag.String("script", "moveRight", "comma separated intents sent every tick")
	levelDir := flag.String("levels", "", "level directory (default: built-in levels)")
	wavPath := flag.String("wav", "", "write shot sounds to this WAV file")
	flag.Parse()

	if *fps <= 0 || *seconds <= 0 {
		log.Fatal("❌ -fps and -seconds must be positive")
	}

	intents, err := parseScript(*script)
	if err != nil {
		log.Fatalf("❌ Script: %v", err)
	}

	physics, err := config.PhysicsFromEnv()
	if err != nil {
		log.Fatalf("❌ Physics: %v", err)
	}

	var catalog *levelio.Catalog
	if *levelDir != "" {
		catalog, err = levelio.Open(*levelDir)
	} else {
		catalog, err = levelio.Builtin()
	}
	if err != nil {
		log.Fatalf("❌ Levels: %v", err)
	}

	engine, err := game.NewEngine(game.EngineConfig{
		TickRate:   *fps,
		StartLevel: *level,
		Tuning:     physics.Tuning(),
		Levels:     catalog,
	})
	if err != nil {
		log.Fatalf("❌ Engine: %v", err)
	}
	if err := engine.StartEventLog(""); err != nil {
		log.Fatalf("❌ Event log: %v", err)
	}

	var recorder *sfx.Recorder
	if *wavPath != "" {
		audio := config.AudioFromEnv()
		bank, err := sfx.NewBank(sfx.Options{
			SampleRate:  audio.SampleRate,
			Volume:      audio.Volume,
			LaserSample: audio.LaserSamplePath,
		})
		if err != nil {
			log.Fatalf("❌ Sound bank: %v", err)
		}
		info := engine.LevelInfo()
		recorder = sfx.NewRecorder(bank, float64(info.Width*info.TileSize))
	}

	delta := 1.0 / float64(*fps)
	ticks := int(*seconds * float64(*fps))

	shots := map[string]int{}
	won, lost := 0, 0
	var simulated time.Duration
	wallStart := time.Now()

	engine.OnShots(func(batch []game.ShotEvent) {
		for _, s := range batch {
			shots[s.WeaponID]++
		}
		if recorder != nil {
			recorder.Record(simulated, batch)
		}
	})

	for i := 0; i < ticks; i++ {
		if len(intents) > 0 {
			engine.QueueIntents(intents)
		}
		stats := engine.Step(delta)
		if stats.Won {
			won++
		}
		if stats.Lost {
			lost++
		}
		simulated += time.Duration(delta * float64(time.Second))
	}
	engine.StopEventLog()

	snap := engine.GetSnapshot()
	fmt.Printf("run %s: %d ticks (%.1fs simulated) in %v\n", engine.RunID(), ticks, *seconds, time.Since(wallStart).Round(time.Millisecond))
	fmt.Printf("level %d %q  won %d  lost %d\n", snap.Level, snap.LevelName, won, lost)
	fmt.Printf("character at (%.1f, %.1f) health %d/%d weapon %s\n",
		snap.Character.X, snap.Character.Y, snap.Character.Health, snap.Character.MaxHealth, snap.Character.Weapon)
	fmt.Printf("enemies %d  bullets %d  items %d\n", len(snap.Enemies), len(snap.Bullets), len(snap.Items))
	for id, n := range shots {
		fmt.Printf("shots %-16s %d\n", id, n)
	}
	stats := engine.GetEventLogStats()
	fmt.Printf("events %v dropped %v sampled out %v\n", stats["total"], stats["dropped"], stats["sampled"])
	enqueued, dropped := engine.InputStats()
	fmt.Printf("input batches %d dropped %d\n", enqueued, dropped)

	if recorder != nil {
		if err := writeWAV(*wavPath, recorder); err != nil {
			log.Fatalf("❌ WAV: %v", err)
		}
		fmt.Printf("wrote %d cues (%v) to %s\n", recorder.Cues(), recorder.Duration().Round(time.Millisecond), *wavPath)
	}
}

func parseScript(s string) ([]game.Intent, error) {
	var names []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return game.ParseIntents(names)
}

func writeWAV(path string, r *sfx.Recorder) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.WriteWAV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
