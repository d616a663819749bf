package api

//go:generate go tool mockgen -destination=./mocks/engine_mock.go -package=mocks . EngineInterface

import (
	"rsmg/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// EngineInterface defines the game engine methods used by the API.
// Keep this minimal - only include methods the API layer actually calls.
type EngineInterface interface {
	// GetSnapshot returns the latest lock-free immutable snapshot
	GetSnapshot() *game.GameSnapshot
	// LevelInfo returns the static layout of the running level
	LevelInfo() game.LevelInfo
	// QueueIntents hands player input to the next tick; false means dropped
	QueueIntents(intents []game.Intent) bool
	// LoadLevel switches to an unlocked level
	LoadLevel(n int) error
	// RestartLevel reloads the running level
	RestartLevel() error
	// UnlockedLevels reports the highest playable level
	UnlockedLevels() int
	// RunID identifies the engine instance
	RunID() string
}

// RouterConfig contains all dependencies needed to construct the HTTP router.
//
// Example usage in tests:
//
//	cfg := api.RouterConfig{
//	    Engine: mockEngine,
//	    RateLimitConfig: &api.RateLimitConfig{
//	        RequestsPerSecond: 1000, // High limit for tests
//	        Burst:             1000,
//	    },
//	}
//	router := api.NewRouter(cfg)
//	ts := httptest.NewServer(router)
type RouterConfig struct {
	// Engine is the game engine (required)
	Engine EngineInterface

	// LevelNames lists level names in level order for /api/levels.
	LevelNames []string

	// RateLimiter is an optional pre-configured rate limiter.
	// If nil, a new one will be created using RateLimitConfig.
	RateLimiter *IPRateLimiter

	// RateLimitConfig is optional configuration for the rate limiter.
	// Only used if RateLimiter is nil. If both are nil, uses DefaultRateLimitConfig.
	RateLimitConfig *RateLimitConfig

	// CORSOrigins is an optional list of allowed CORS origins.
	// If nil, only localhost origins are allowed.
	CORSOrigins []string

	// DisableLogging disables the request logger middleware (useful for benchmarks).
	DisableLogging bool
}

// routerHandlers holds the handler functions for the router.
type routerHandlers struct {
	engine     EngineInterface
	levelNames []string
}

// NewRouter constructs the HTTP router with all middleware and routes.
//
// IMPORTANT: This function is PURE apart from the rate limiter's cleanup
// goroutine when no RateLimiter is passed in:
//   - No network listeners are opened
//   - No game state is touched
//
// This makes it safe to use in tests with httptest.NewServer.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware - Order matters!
	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{
			"http://localhost:*",
			"http://127.0.0.1:*",
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	h := &routerHandlers{
		engine:     cfg.Engine,
		levelNames: cfg.LevelNames,
	}

	r.Get("/health", h.handleHealth)

	// Rate limiting applies to the API only; health checks stay cheap
	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rateLimitCfg)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(rateLimiter.Middleware)

		// Simulation state
		r.Get("/state", h.handleGetState)
		r.Get("/level", h.handleGetLevel)
		r.Get("/levels", h.handleGetLevels)
		r.Get("/progress", h.handleGetProgress)
		r.Get("/weapons", h.handleGetWeapons)

		// Control
		r.Post("/input", h.handleInput)
		r.Post("/level/load", h.handleLoadLevel)
		r.Post("/level/restart", h.handleRestartLevel)
	})

	return r
}
