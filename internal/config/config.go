// Package config provides centralized configuration management.
// Defaults live here; environment variables and an optional YAML tuning file
// override them.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"rsmg/internal/game"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// SIMULATION CONFIGURATION
// =============================================================================

// SimulationConfig controls the tick loop and where game data lives.
type SimulationConfig struct {
	TickRate     int    // Ticks per second
	StartLevel   int    // Level loaded at boot
	LevelDir     string // Directory of level YAML files; empty uses the built-in set
	ProgressPath string // Save file for unlocked levels
	EventLogPath string // JSONL event log; empty disables file output
	InputBuffer  int    // Input batches buffered between ticks

	// EventTickSample keeps one tick event in every N ticks
	EventTickSample int
}

// DefaultSimulation returns the default simulation configuration.
func DefaultSimulation() SimulationConfig {
	return SimulationConfig{
		TickRate:     60,
		StartLevel:   1,
		ProgressPath: "progress.sav",
		InputBuffer:  64,

		EventTickSample: game.TickSampleEvery,
	}
}

// SimulationFromEnv returns simulation configuration with environment overrides.
func SimulationFromEnv() SimulationConfig {
	cfg := DefaultSimulation()

	if v := getEnvInt("TICK_RATE", 0); v > 0 {
		cfg.TickRate = v
	}
	if v := getEnvInt("START_LEVEL", 0); v > 0 {
		cfg.StartLevel = v
	}
	cfg.LevelDir = getEnvString("LEVEL_DIR", cfg.LevelDir)
	cfg.ProgressPath = getEnvString("PROGRESS_PATH", cfg.ProgressPath)
	cfg.EventLogPath = getEnvString("EVENT_LOG_PATH", cfg.EventLogPath)
	if v := getEnvInt("INPUT_BUFFER", 0); v > 0 {
		cfg.InputBuffer = v
	}
	if v := getEnvInt("EVENT_TICK_SAMPLE", 0); v > 0 {
		cfg.EventTickSample = v
	}

	return cfg
}

// =============================================================================
// PHYSICS TUNING
// =============================================================================

// PhysicsConfig holds the tunable movement constants.
type PhysicsConfig struct {
	Gravity        float64       `yaml:"gravity"`
	CharacterSpeed float64       `yaml:"characterSpeed"`
	JumpStrength   float64       `yaml:"jumpStrength"`
	DashSpeed      float64       `yaml:"dashSpeed"`
	DashDuration   time.Duration `yaml:"dashDuration"`
	DashCooldown   time.Duration `yaml:"dashCooldown"`
	Invulnerable   time.Duration `yaml:"invulnerable"`
}

// DefaultPhysics returns the stock tuning.
func DefaultPhysics() PhysicsConfig {
	return PhysicsConfig{
		Gravity:        300,
		CharacterSpeed: 100,
		JumpStrength:   150,
		DashSpeed:      300,
		DashDuration:   150 * time.Millisecond,
		DashCooldown:   time.Second,
		Invulnerable:   time.Second,
	}
}

// LoadPhysicsFile overlays a YAML tuning file on the defaults. Keys missing
// from the file keep their default values.
func LoadPhysicsFile(path string) (PhysicsConfig, error) {
	cfg := DefaultPhysics()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse tuning file %s: %w", path, err)
	}
	if cfg.Gravity < 0 || cfg.CharacterSpeed < 0 || cfg.JumpStrength < 0 {
		return cfg, fmt.Errorf("tuning file %s: negative gravity, speed or jump strength", path)
	}
	return cfg, nil
}

// Tuning converts the configuration into the values a Level runs with.
func (p PhysicsConfig) Tuning() game.Tuning {
	return game.Tuning{
		Gravity:        p.Gravity,
		CharacterSpeed: p.CharacterSpeed,
		JumpStrength:   p.JumpStrength,
		DashSpeed:      p.DashSpeed,
		DashDuration:   p.DashDuration,
		DashCooldown:   p.DashCooldown,
		Invulnerable:   p.Invulnerable,
	}
}

// PhysicsFromEnv loads TUNING_FILE when set.
func PhysicsFromEnv() (PhysicsConfig, error) {
	if path := os.Getenv("TUNING_FILE"); path != "" {
		return LoadPhysicsFile(path)
	}
	return DefaultPhysics(), nil
}

// =============================================================================
// AUDIO CONFIGURATION
// =============================================================================

// AudioConfig holds sound-effect rendering settings.
type AudioConfig struct {
	SampleRate      int     // Audio sample rate in Hz
	Volume          float64 // Master volume (0.0 to 1.0)
	LaserSamplePath string  // Optional OGG sample replacing the synthesized laser
}

// DefaultAudio returns the default audio configuration.
func DefaultAudio() AudioConfig {
	return AudioConfig{
		SampleRate: 44100,
		Volume:     0.5,
	}
}

// AudioFromEnv returns audio configuration with environment variable overrides.
func AudioFromEnv() AudioConfig {
	cfg := DefaultAudio()

	if v := getEnvInt("SFX_SAMPLE_RATE", 0); v > 0 {
		cfg.SampleRate = v
	}
	if v := getEnvFloat("SFX_VOLUME", -1); v >= 0 {
		cfg.Volume = v
	}
	cfg.LaserSamplePath = getEnvString("SFX_LASER_SAMPLE", cfg.LaserSamplePath)

	return cfg
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int
	AllowedOrigins []string
	BroadcastEvery time.Duration // WebSocket state push interval
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:           3000,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		BroadcastEvery: 100 * time.Millisecond,
	}
}

// ServerFromEnv returns server configuration with environment variable overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	if origins := getEnvString("ALLOWED_ORIGINS", ""); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}
	if ms := getEnvInt("BROADCAST_MS", 0); ms > 0 {
		cfg.BroadcastEvery = time.Duration(ms) * time.Millisecond
	}

	return cfg
}

// RateLimitConfig configures per-IP request limiting on the API.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	CleanupInterval   time.Duration
}

// DefaultRateLimit returns the default API rate limit.
func DefaultRateLimit() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 30,
		Burst:             60,
		CleanupInterval:   5 * time.Minute,
	}
}

// =============================================================================
// OBSERVABILITY
// =============================================================================

// ObservabilityConfig controls the loopback debug server.
type ObservabilityConfig struct {
	DebugAddr   string
	EnablePprof bool
}

// DefaultObservability returns the default observability configuration.
func DefaultObservability() ObservabilityConfig {
	return ObservabilityConfig{
		DebugAddr:   "127.0.0.1:6060",
		EnablePprof: true,
	}
}

// ObservabilityFromEnv returns observability configuration with environment overrides.
func ObservabilityFromEnv() ObservabilityConfig {
	cfg := DefaultObservability()
	cfg.DebugAddr = getEnvString("DEBUG_ADDR", cfg.DebugAddr)
	cfg.EnablePprof = getEnvBool("ENABLE_PPROF", cfg.EnablePprof)
	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Simulation    SimulationConfig
	Physics       PhysicsConfig
	Audio         AudioConfig
	Server        ServerConfig
	RateLimit     RateLimitConfig
	Observability ObservabilityConfig
}

// Load returns the complete configuration with environment overrides.
func Load() (AppConfig, error) {
	physics, err := PhysicsFromEnv()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{
		Simulation:    SimulationFromEnv(),
		Physics:       physics,
		Audio:         AudioFromEnv(),
		Server:        ServerFromEnv(),
		RateLimit:     DefaultRateLimit(),
		Observability: ObservabilityFromEnv(),
	}, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}
