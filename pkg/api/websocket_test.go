package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yourusername/ludoengine/pkg/engine"
)

func wsDial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	return conn
}

func wsJoin(t *testing.T, conn *websocket.Conn, reqID, gameID string) {
	t.Helper()
	payload, err := json.Marshal(WSJoinRequest{GameID: gameID})
	if err != nil {
		t.Fatalf("marshal join: %v", err)
	}
	if err := conn.WriteJSON(WSMessage{Type: "join", ID: reqID, Payload: payload}); err != nil {
		t.Fatalf("write join: %v", err)
	}
	resp := wsReadResponse(t, conn, reqID)
	if resp.Type != "result" {
		t.Fatalf("join %s: response %+v", gameID, resp)
	}
}

// wsReadResponse reads frames until the response with the given request ID,
// skipping pushed events.
func wsReadResponse(t *testing.T, conn *websocket.Conn, reqID string) WSResponse {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var resp WSResponse
		if err := conn.ReadJSON(&resp); err != nil {
			t.Fatalf("read waiting for %q: %v", reqID, err)
		}
		if resp.ID == reqID {
			return resp
		}
	}
}

func TestWSRejoinSwitchesEventFeed(t *testing.T) {
	s := testServer()
	defer s.pool.Close()
	srv := httptest.NewServer(s.setupRoutes())
	defer srv.Close()

	first, err := s.pool.Create(engine.Config{NumPlayers: 2, HumanPlayers: 2, Seed: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := s.pool.Create(engine.Config{NumPlayers: 2, HumanPlayers: 2, Seed: 2})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	conn := wsDial(t, srv)
	defer conn.Close()

	wsJoin(t, conn, "j1", first.ID)
	wsJoin(t, conn, "j2", second.ID)

	// Activity in the left game must not reach this client anymore.
	if _, err := first.RequestRoll(0); err != nil {
		t.Fatalf("roll in left game: %v", err)
	}
	if err := conn.WriteJSON(WSMessage{Type: "ping", ID: "p1"}); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var resp WSResponse
		if err := conn.ReadJSON(&resp); err != nil {
			t.Fatalf("read waiting for pong: %v", err)
		}
		if resp.Type == "event" {
			t.Fatalf("received event from the left game: %+v", resp)
		}
		if resp.ID == "p1" {
			if resp.Type != "pong" {
				t.Fatalf("ping response %+v", resp)
			}
			break
		}
	}

	// The joined game's events still flow.
	if _, err := second.RequestRoll(0); err != nil {
		t.Fatalf("roll in joined game: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var resp WSResponse
		if err := conn.ReadJSON(&resp); err != nil {
			t.Fatalf("no event from joined game: %v", err)
		}
		if resp.Type == "event" {
			return
		}
	}
}

func TestWSActionsRequireJoin(t *testing.T) {
	s := testServer()
	defer s.pool.Close()
	srv := httptest.NewServer(s.setupRoutes())
	defer srv.Close()

	conn := wsDial(t, srv)
	defer conn.Close()

	payload, _ := json.Marshal(RollRequest{Player: 0})
	if err := conn.WriteJSON(WSMessage{Type: "roll", ID: "r1", Payload: payload}); err != nil {
		t.Fatalf("write roll: %v", err)
	}
	resp := wsReadResponse(t, conn, "r1")
	if resp.Type != "error" {
		t.Errorf("roll before join: response %+v", resp)
	}
}
