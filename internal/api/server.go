package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"rsmg/internal/game"

	"github.com/go-chi/chi/v5"
)

// ServerConfig configures the public API server
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
	BroadcastEvery time.Duration
	RateLimit      RateLimitConfig
	LevelNames     []string
	DisableLogging bool
}

// Server is the HTTP API server with WebSocket support.
// It combines the HTTP router with WebSocket hub for real-time updates.
type Server struct {
	engine      EngineInterface
	cfg         ServerConfig
	router      *chi.Mux
	wsHub       *WebSocketHub
	rateLimiter *IPRateLimiter
}

// NewServer wires the router and WebSocket hub around the engine.
//
// IMPORTANT: Background workers do NOT start until Run() is called.
// This enables testing by allowing the server to be constructed without
// starting goroutines or opening network listeners.
//
// For testing HTTP endpoints without WebSocket support, use NewRouter() directly.
func NewServer(engine EngineInterface, cfg ServerConfig) *Server {
	if cfg.BroadcastEvery <= 0 {
		cfg.BroadcastEvery = 100 * time.Millisecond
	}
	if cfg.RateLimit.RequestsPerSecond <= 0 {
		cfg.RateLimit = DefaultRateLimitConfig
	}

	s := &Server{
		engine:      engine,
		cfg:         cfg,
		wsHub:       NewWebSocketHub(engine, NewOriginPolicy(cfg.AllowedOrigins)),
		rateLimiter: NewIPRateLimiter(cfg.RateLimit),
	}

	var corsOrigins []string
	if len(cfg.AllowedOrigins) > 0 {
		corsOrigins = append([]string{"http://localhost:*", "http://127.0.0.1:*"}, cfg.AllowedOrigins...)
	}

	s.router = NewRouter(RouterConfig{
		Engine:         engine,
		LevelNames:     cfg.LevelNames,
		RateLimiter:    s.rateLimiter,
		CORSOrigins:    corsOrigins,
		DisableLogging: cfg.DisableLogging,
	})

	// The hub is per-server, so its route lives here rather than in NewRouter
	s.router.Get("/ws", s.wsHub.HandleWebSocket)

	return s
}

// Run serves HTTP and runs the hub until ctx is done, then shuts down gracefully.
// This is the ONLY method that starts goroutines or opens network listeners.
func (s *Server) Run(ctx context.Context) error {
	defer s.rateLimiter.Stop()

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go s.wsHub.Run(hubCtx)
	go s.wsHub.RunBroadcastLoop(hubCtx, s.cfg.BroadcastEvery)

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🌐 API server starting on %s", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Println("🌐 API server shutting down")
	return srv.Shutdown(shutdownCtx)
}

// Router returns the HTTP handler for use with httptest.
// Use this in integration tests instead of calling Run().
func (s *Server) Router() http.Handler {
	return s.router
}

// Hub exposes the WebSocket hub
func (s *Server) Hub() *WebSocketHub {
	return s.wsHub
}

// BroadcastShots forwards fired shots to WebSocket clients
func (s *Server) BroadcastShots(shots []game.ShotEvent) {
	s.wsHub.BroadcastShots(shots)
}
