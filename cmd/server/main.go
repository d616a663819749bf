package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"rsmg/internal/api"
	"rsmg/internal/config"
	"rsmg/internal/game"
	"rsmg/internal/levelio"
	"rsmg/internal/progress"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("💡 No .env file found, using environment variables only")
	} else {
		log.Println("✅ Loaded environment from .env")
	}

	log.Println("🎮 ================================")
	log.Println("🎮  ROBOT SIDE-SCROLLER - SIM CORE")
	log.Println("🎮 ================================")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config: %v", err)
	}

	catalog, err := openLevels(cfg.Simulation.LevelDir)
	if err != nil {
		log.Fatalf("❌ Levels: %v", err)
	}
	log.Printf("🗺️ %d levels: %v", catalog.Count(), catalog.Names())

	store, err := progress.Open(cfg.Simulation.ProgressPath)
	if err != nil {
		log.Fatalf("❌ Progress: %v", err)
	}
	log.Printf("💾 Progress %s: %d level(s) unlocked", cfg.Simulation.ProgressPath, store.UnlockedLevels())

	engine, err := game.NewEngine(game.EngineConfig{
		TickRate:   cfg.Simulation.TickRate,
		StartLevel: cfg.Simulation.StartLevel,
		Tuning:     cfg.Physics.Tuning(),
		Levels:     catalog,
		Progress:   store,
		Input:      game.InputQueueConfig{BufferSize: cfg.Simulation.InputBuffer},
		EventLog:   game.EventLogConfig{TickSampleEvery: uint64(cfg.Simulation.EventTickSample)},
	})
	if err != nil {
		log.Fatalf("❌ Engine: %v", err)
	}

	if err := engine.StartEventLog(cfg.Simulation.EventLogPath); err != nil {
		log.Printf("⚠️ Event log disabled: %v", err)
	} else if cfg.Simulation.EventLogPath != "" {
		log.Printf("📝 Event log: %s", cfg.Simulation.EventLogPath)
	}

	server := api.NewServer(engine, api.ServerConfig{
		Addr:           ":" + strconv.Itoa(cfg.Server.Port),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		BroadcastEvery: cfg.Server.BroadcastEvery,
		RateLimit: api.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
			CleanupInterval:   cfg.RateLimit.CleanupInterval,
		},
		LevelNames: catalog.Names(),
	})

	engine.OnTick(api.RecordTick)
	if err := api.RegisterInputStats(prometheus.DefaultRegisterer, engine.InputStats); err != nil {
		log.Printf("⚠️ Input metrics: %v", err)
	}
	engine.OnShots(server.BroadcastShots)

	debug := api.NewDebugServer(api.DebugServerConfig{
		ListenAddr:    cfg.Observability.DebugAddr,
		EnablePprof:   cfg.Observability.EnablePprof,
		AllowExternal: os.Getenv("ALLOW_DEBUG_EXTERNAL") == "true",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		engine.Start()
		<-ctx.Done()
		engine.Stop()
		return nil
	})
	eg.Go(func() error {
		return server.Run(ctx)
	})
	eg.Go(func() error {
		err := debug.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return debug.Shutdown(shutdownCtx)
	})

	log.Printf("✅ Ready on http://localhost:%d (Ctrl+C to stop)", cfg.Server.Port)

	if err := eg.Wait(); err != nil {
		log.Printf("❌ %v", err)
	}

	log.Println("🛑 Shutting down...")
	engine.StopEventLog()
	if err := store.Save(); err != nil {
		log.Printf("⚠️ Final progress save failed: %v", err)
	}
	log.Println("👋 Goodbye!")
}

func openLevels(dir string) (*levelio.Catalog, error) {
	if dir == "" {
		return levelio.Builtin()
	}
	log.Printf("📂 Loading levels from %s", dir)
	return levelio.Open(dir)
}
