package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rsmg/internal/api"
	"rsmg/internal/api/mocks"
	"rsmg/internal/game"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func startHub(t *testing.T, engine api.EngineInterface, origins []string) (*api.Server, string) {
	t.Helper()
	srv := api.NewServer(engine, api.ServerConfig{
		AllowedOrigins: origins,
		BroadcastEvery: time.Hour,
		DisableLogging: true,
	})
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go srv.Hub().Run(ctx)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return srv, "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func TestWebSocketInputAndShots(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockEngineInterface(ctrl)

	queued := make(chan []game.Intent, 1)
	engine.EXPECT().QueueIntents(gomock.Any()).DoAndReturn(func(in []game.Intent) bool {
		queued <- in
		return true
	})

	srv, url := startHub(t, engine, nil)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return srv.Hub().ClientCount(context.Background()) == 1
	}, time.Second, 10*time.Millisecond)

	// ignored: wrong type, then an unknown intent
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"chat","intents":["jump"]}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"input","intents":["fly"]}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"input","intents":["jump","attack"]}`)))

	select {
	case in := <-queued:
		assert.Equal(t, []game.Intent{game.IntentJump, game.IntentAttack}, in)
	case <-time.After(time.Second):
		t.Fatal("input never reached the engine")
	}

	srv.BroadcastShots([]game.ShotEvent{{WeaponID: game.WeaponRocketLauncher, Faction: "player", X: 10}})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type string           `json:"type"`
		Data []game.ShotEvent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "shots", msg.Type)
	require.Len(t, msg.Data, 1)
	assert.Equal(t, game.WeaponRocketLauncher, msg.Data[0].WeaponID)
}

func TestWebSocketRejectsForeignOrigin(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockEngineInterface(ctrl)
	_, url := startHub(t, engine, []string{"https://play.example.com"})

	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header.Set("Origin", "https://play.example.com")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	conn.Close()
}

func TestWebSocketPerIPLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockEngineInterface(ctrl)
	_, url := startHub(t, engine, nil)

	var conns []*websocket.Conn
	defer func() {
		for _, c := range conns {
			c.Close()
		}
	}()
	for i := 0; i < api.MaxWSConnectionsPerIP; i++ {
		c, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		conns = append(conns, c)
	}

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
