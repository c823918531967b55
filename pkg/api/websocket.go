package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins - configure properly in production
	},
}

// WSMessage is a generic WebSocket message.
type WSMessage struct {
	Type    string          `json:"type"`    // Message type: "join", "roll", "select", "state", "ping"
	ID      string          `json:"id"`      // Request ID for correlating responses
	Payload json.RawMessage `json:"payload"` // Type-specific payload
}

// WSResponse is a generic WebSocket response or pushed event.
type WSResponse struct {
	Type    string      `json:"type"`              // "result", "event", "error", "pong"
	ID      string      `json:"id,omitempty"`      // Request ID
	Payload interface{} `json:"payload,omitempty"` // Response data
	Error   string      `json:"error,omitempty"`   // Error message if any
}

// WSJoinRequest is the payload for joining a game's event feed.
type WSJoinRequest struct {
	GameID string `json:"game_id"`
}

// WSClient represents a connected WebSocket client.
type WSClient struct {
	conn     *websocket.Conn
	handlers *Handlers
	session  *Session
	sendChan chan WSResponse
	done     chan struct{}
	unsub    func()
	left     chan struct{} // Closed when the client leaves its current game
}

// WebSocket handles WebSocket connections for real-time play. A client
// joins one game and then sends typed roll/select actions; engine events
// are pushed as "event" responses.
func (h *Handlers) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	client := &WSClient{
		conn:     conn,
		handlers: h,
		sendChan: make(chan WSResponse, 256),
		done:     make(chan struct{}),
	}
	go client.writePump()
	client.readPump()
}

func (c *WSClient) writePump() {
	defer c.conn.Close()
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.sendChan:
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}

func (c *WSClient) readPump() {
	defer func() {
		if c.unsub != nil {
			c.unsub()
		}
		close(c.done)
		c.conn.Close()
	}()
	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		c.handleMessage(msg)
	}
}

func (c *WSClient) handleMessage(msg WSMessage) {
	switch msg.Type {
	case "join":
		c.handleJoin(msg)
	case "roll":
		c.handleRoll(msg)
	case "select":
		c.handleSelect(msg)
	case "state":
		c.handleState(msg)
	case "ping":
		c.sendChan <- WSResponse{Type: "pong", ID: msg.ID}
	default:
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "unknown message type"}
	}
}

func (c *WSClient) handleJoin(msg WSMessage) {
	var req WSJoinRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	s, ok := c.handlers.pool.Get(req.GameID)
	if !ok {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "game not found"}
		return
	}
	// Rejoining stops the previous game's forwarding goroutine so stale
	// events never reach the client.
	if c.unsub != nil {
		c.unsub()
		close(c.left)
	}
	c.session = s

	events, cancel := s.Subscribe()
	c.unsub = cancel
	left := make(chan struct{})
	c.left = left
	go func() {
		for {
			select {
			case <-c.done:
				return
			case <-left:
				return
			case e := <-events:
				select {
				case c.sendChan <- WSResponse{Type: "event", Payload: e}:
				case <-c.done:
					return
				case <-left:
					return
				}
			}
		}
	}()

	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: s.Snapshot()}
}

func (c *WSClient) handleRoll(msg WSMessage) {
	if c.session == nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "join a game first"}
		return
	}
	var req RollRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	resp, err := c.session.RequestRoll(req.Player)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: err.Error()}
		return
	}
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: resp}
}

func (c *WSClient) handleSelect(msg WSMessage) {
	if c.session == nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "join a game first"}
		return
	}
	var req SelectRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	if err := c.session.SelectToken(req.Player, req.Token); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: err.Error()}
		return
	}
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: c.session.Snapshot()}
}

func (c *WSClient) handleState(msg WSMessage) {
	if c.session == nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "join a game first"}
		return
	}
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: c.session.Snapshot()}
}
