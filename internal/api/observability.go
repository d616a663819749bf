package api

import (
	"log"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"rsmg/internal/game"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics with bounded cardinality: labels only take values from fixed sets
var (
	// Simulation metrics
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rsmg_tick_duration_seconds",
		Help:    "Time spent in a simulation tick",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025},
	})

	bulletsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rsmg_bullets_active",
		Help: "Bullets alive in the running level",
	})

	enemiesAlive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rsmg_enemies_alive",
		Help: "Enemies alive in the running level",
	})

	shotsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rsmg_shots_total",
		Help: "Shots fired, by weapon",
	}, []string{"weapon"}) // Bounded: weapon ids

	levelsWon = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rsmg_levels_won_total",
		Help: "Levels completed",
	})

	levelsLost = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rsmg_levels_lost_total",
		Help: "Levels failed",
	})

	// DoS detection metrics - use ONLY bounded label values
	connectionRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rsmg_connection_rejected_total",
		Help: "Connections rejected by rate limiter or origin check",
	}, []string{"reason"}) // Bounded: "rate_limit", "origin", "ws_ip_limit", "ws_total_limit"

	// WebSocket metrics
	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rsmg_ws_connections",
		Help: "Currently active WebSocket connections",
	})

	wsMessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rsmg_ws_messages_total",
		Help: "WebSocket messages broadcast",
	})
)

// RecordTick feeds one tick's stats into the simulation metrics. It is
// registered with Engine.OnTick.
func RecordTick(stats game.TickStats) {
	tickDuration.Observe(stats.Duration.Seconds())
	bulletsActive.Set(float64(stats.Bullets))
	enemiesAlive.Set(float64(stats.Enemies))
	for _, s := range stats.Shots {
		shotsTotal.WithLabelValues(s.WeaponID).Inc()
	}
	if stats.Won {
		levelsWon.Inc()
	}
	if stats.Lost {
		levelsLost.Inc()
	}
}

// RegisterInputStats exposes the engine's input queue counters on reg. stats
// is read on every scrape.
func RegisterInputStats(reg prometheus.Registerer, stats func() (enqueued, dropped uint64)) error {
	collectors := []prometheus.Collector{
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "rsmg_input_batches_total",
			Help: "Input batches accepted into the engine queue",
		}, func() float64 {
			n, _ := stats()
			return float64(n)
		}),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "rsmg_input_dropped_total",
			Help: "Input batches dropped because the queue was full",
		}, func() float64 {
			_, n := stats()
			return float64(n)
		}),
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// RecordConnectionRejected increments the rejection counter
// reason must be one of: "rate_limit", "origin", "ws_ip_limit", "ws_total_limit"
func RecordConnectionRejected(reason string) {
	connectionRejected.WithLabelValues(reason).Inc()
}

// UpdateWSConnections updates WebSocket connection count
func UpdateWSConnections(count int) {
	wsConnectionsActive.Set(float64(count))
}

// DebugServerConfig configures the internal observability server
type DebugServerConfig struct {
	ListenAddr    string // must resolve to a loopback address
	EnablePprof   bool
	AllowExternal bool // lets ListenAddr bind beyond loopback
}

// NewDebugServer builds the internal metrics/pprof server. The caller owns
// ListenAndServe and Shutdown.
// CRITICAL: pprof must stay on localhost; a non-loopback address is rewritten
// unless AllowExternal is set.
func NewDebugServer(cfg DebugServerConfig) *http.Server {
	addr := cfg.ListenAddr
	if addr == "" {
		addr = "127.0.0.1:6060"
	}
	if !cfg.AllowExternal && !isLoopbackAddr(addr) {
		log.Printf("⚠️ Debug server forced to localhost (was %s)", addr)
		addr = "127.0.0.1:6060"
	}

	mux := http.NewServeMux()

	if cfg.EnablePprof {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	log.Printf("📊 Debug server on %s (pprof: %v)", addr, cfg.EnablePprof)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func isLoopbackAddr(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
