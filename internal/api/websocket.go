package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"rsmg/internal/game"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// MaxWSConnectionsTotal is the maximum number of WebSocket connections allowed
	MaxWSConnectionsTotal = 200

	// MaxWSConnectionsPerIP is the maximum WebSocket connections per IP
	MaxWSConnectionsPerIP = 5

	wsWriteWait      = 2 * time.Second
	wsMaxMessageSize = 4 << 10
)

// wsMessage is the envelope for everything the hub sends
type wsMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// wsClientMessage is what clients may send
type wsClientMessage struct {
	Type    string   `json:"type"`
	Intents []string `json:"intents"`
}

// wsClient tracks a WebSocket connection with its source IP
type wsClient struct {
	id   string
	conn *websocket.Conn
	ip   string
}

// WebSocketHub manages all WebSocket connections with DoS protection.
// Run is the only goroutine that writes to connections.
type WebSocketHub struct {
	engine     EngineInterface
	upgrader   websocket.Upgrader
	clients    map[string]*wsClient
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan string
	count      chan int
	done       chan struct{}

	// Connection limiting per IP
	wsLimiter *WebSocketRateLimiter
}

// NewWebSocketHub creates a new hub with connection limiting
func NewWebSocketHub(engine EngineInterface, origins *OriginPolicy) *WebSocketHub {
	h := &WebSocketHub{
		engine:     engine,
		clients:    make(map[string]*wsClient),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *wsClient),
		unregister: make(chan string),
		count:      make(chan int),
		done:       make(chan struct{}),
		wsLimiter:  NewWebSocketRateLimiter(MaxWSConnectionsPerIP),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origins.Allowed(origin) {
				return true
			}

			// Log rejected origin for security monitoring
			log.Printf("⚠️ WebSocket connection rejected from origin: %s", origin)
			RecordConnectionRejected("origin")
			return false
		},
	}
	return h
}

// Run owns the client set until ctx is done, then closes every connection.
func (h *WebSocketHub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for id, c := range h.clients {
				c.conn.Close()
				h.wsLimiter.Release(c.ip)
				delete(h.clients, id)
			}
			UpdateWSConnections(0)
			return

		case client := <-h.register:
			h.clients[client.id] = client
			log.Printf("📱 Client %s connected from %s (%d total)", client.id, client.ip, len(h.clients))
			UpdateWSConnections(len(h.clients))

		case id := <-h.unregister:
			h.drop(id)
			log.Printf("📱 Client %s disconnected (%d remaining)", id, len(h.clients))

		case message := <-h.broadcast:
			for id, c := range h.clients {
				c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
					h.drop(id)
				}
			}
			wsMessagesTotal.Inc()

		case h.count <- len(h.clients):
		}
	}
}

func (h *WebSocketHub) drop(id string) {
	c, ok := h.clients[id]
	if !ok {
		return
	}
	c.conn.Close()
	h.wsLimiter.Release(c.ip)
	delete(h.clients, id)
	UpdateWSConnections(len(h.clients))
}

// Broadcast queues a message for every connected client. Messages are
// dropped when the hub is behind.
func (h *WebSocketHub) Broadcast(msgType string, data interface{}) {
	jsonBytes, err := json.Marshal(wsMessage{Type: msgType, Data: data})
	if err != nil {
		log.Printf("⚠️ WebSocket encode %s: %v", msgType, err)
		return
	}

	select {
	case h.broadcast <- jsonBytes:
	default:
		// Channel full, skip (backpressure)
	}
}

// BroadcastShots forwards one tick's shots. It is registered with Engine.OnShots.
func (h *WebSocketHub) BroadcastShots(shots []game.ShotEvent) {
	h.Broadcast("shots", shots)
}

// ClientCount returns the number of connected clients
func (h *WebSocketHub) ClientCount(ctx context.Context) int {
	select {
	case n := <-h.count:
		return n
	case <-h.done:
		return 0
	case <-ctx.Done():
		return 0
	}
}

// RunBroadcastLoop publishes the latest snapshot every interval until ctx is done
func (h *WebSocketHub) RunBroadcastLoop(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	var lastSeq uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if h.ClientCount(ctx) == 0 {
				continue
			}
			snap := h.engine.GetSnapshot()
			if snap == nil || snap.Sequence == lastSeq {
				continue
			}
			lastSeq = snap.Sequence
			h.Broadcast("state", snap)
		}
	}
}

// HandleWebSocket handles incoming WebSocket connections with DoS protection
func (h *WebSocketHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ip := GetClientIP(r)

	if total := h.ClientCount(r.Context()); total >= MaxWSConnectionsTotal {
		log.Printf("⚠️ WebSocket connection rejected: total limit reached (%d)", total)
		RecordConnectionRejected("ws_total_limit")
		writeError(w, "too many connections", http.StatusServiceUnavailable)
		return
	}

	if !h.wsLimiter.Allow(ip) {
		log.Printf("⚠️ WebSocket connection rejected from %s: per-IP limit reached", ip)
		RecordConnectionRejected("ws_ip_limit")
		writeError(w, "too many connections from your IP", http.StatusTooManyRequests)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.wsLimiter.Release(ip)
		return
	}
	conn.SetReadLimit(wsMaxMessageSize)

	client := &wsClient{id: uuid.NewString(), conn: conn, ip: ip}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		h.wsLimiter.Release(ip)
		return
	case <-r.Context().Done():
		conn.Close()
		h.wsLimiter.Release(ip)
		return
	}

	go h.readLoop(client)
}

// readLoop turns client input messages into queued intents
func (h *WebSocketHub) readLoop(c *wsClient) {
	defer func() {
		select {
		case h.unregister <- c.id:
		case <-h.done:
		}
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg wsClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil || msg.Type != "input" {
			continue
		}
		intents, err := game.ParseIntents(msg.Intents)
		if err != nil || len(intents) == 0 {
			continue
		}
		// A full queue is counted by the engine
		h.engine.QueueIntents(intents)
	}
}
