package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dkeye/Relay/internal/app"
	"github.com/dkeye/Relay/internal/app/orch"
	"github.com/dkeye/Relay/internal/config"
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (*orch.Orchestrator, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Mode:         "test",
		Secret:       "test-secret",
		ReadLimit:    4096,
		PingPeriod:   time.Second,
		PongWait:     2 * time.Second,
		WriteWait:    time.Second,
		SendBuffer:   16,
		MaxNameLen:   domain.MaxNameLen,
		RateInterval: time.Second,
	}
	o := orch.New(app.NewRegistry(cfg.MaxNameLen), app.NewSessions(), core.JSONCodec{})
	ctx, cancel := context.WithCancel(context.Background())
	srv := httptest.NewServer(SetupRouter(ctx, cfg, o))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return o, srv
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp
}

func TestRouter_Root_Sets_Client_Cookie(t *testing.T) {
	req := require.New(t)
	_, srv := newServer(t)

	var body string
	resp := getJSON(t, srv.URL+"/", &body)

	req.Equal("API is working", body)
	req.NotEmpty(resp.Cookies())
	req.Equal("RelaySessions", resp.Cookies()[0].Name)
}

func TestRouter_Rooms_Reflect_Registry(t *testing.T) {
	req := require.New(t)
	_, srv := newServer(t)

	// Given an empty registry
	var rooms struct {
		Rooms []domain.RoomInfo `json:"rooms"`
	}
	getJSON(t, srv.URL+"/api/rooms", &rooms)
	req.Empty(rooms.Rooms)

	// When a client joins over the websocket
	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/ws", nil)
	req.NoError(err)
	defer ws.Close()
	req.NoError(ws.WriteJSON(map[string]string{"type": "join", "name": "Alice", "room": "Lobby"}))
	req.NoError(ws.SetReadDeadline(time.Now().Add(2 * time.Second)))
	for range 3 {
		_, _, err := ws.ReadMessage()
		req.NoError(err)
	}

	// Then every view shows the member
	getJSON(t, srv.URL+"/api/rooms", &rooms)
	req.Equal([]domain.RoomInfo{{Name: "lobby", MemberCount: 1}}, rooms.Rooms)

	var members struct {
		Room    string              `json:"room"`
		Members []domain.MemberView `json:"members"`
	}
	getJSON(t, srv.URL+"/api/rooms/LOBBY/members", &members)
	req.Equal("lobby", members.Room)
	req.Equal([]domain.MemberView{{User: "alice"}}, members.Members)

	var health struct {
		Status      string `json:"status"`
		Connections int    `json:"connections"`
		Members     int    `json:"members"`
	}
	getJSON(t, srv.URL+"/api/health", &health)
	req.Equal("ok", health.Status)
	req.Equal(1, health.Connections)
	req.Equal(1, health.Members)
}
