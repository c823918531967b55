// Package api provides the HTTP/JSON, WebSocket and SSE boundary for the
// Ludo engine.
package api

import "github.com/yourusername/ludoengine/pkg/engine"

// ============================================================================
// Request Types
// ============================================================================

// CreateGameRequest is the request body for creating a game session.
type CreateGameRequest struct {
	Players    int    `json:"players"`               // Number of seats (2-4)
	Humans     int    `json:"humans"`                // Human seats 0..players; the rest are AI
	Seed       int64  `json:"seed,omitempty"`        // Die RNG seed (0 = random)
	BoardStyle string `json:"board_style,omitempty"` // "classic" or "modern"
	Sound      bool   `json:"sound,omitempty"`       // Client sound preference, echoed back
}

// RollRequest is the request body for rolling the die.
type RollRequest struct {
	Player int `json:"player"` // Seat requesting the roll
}

// SelectRequest is the request body for choosing a token to move.
type SelectRequest struct {
	Player int `json:"player"` // Seat making the choice
	Token  int `json:"token"`  // Token index 0-3
}

// LegalRequest is the request body for a stateless legal-move query.
type LegalRequest struct {
	State  string `json:"state"`  // State ID (boardid format)
	Player int    `json:"player"` // Seat to query
	Roll   int    `json:"roll"`   // Die value 1-6
}

// ============================================================================
// Response Types
// ============================================================================

// PlayerState describes one seat in a state response.
type PlayerState struct {
	Index  int    `json:"index"`
	Color  string `json:"color"`
	Human  bool   `json:"human"`
	Tokens []int  `json:"tokens"` // Position per token (-1 base, 0-51 track, 52-57 home)
}

// GameStateResponse is the full observable state of a session.
type GameStateResponse struct {
	ID          string        `json:"id"`
	Phase       string        `json:"phase"`
	Current     int           `json:"current"`       // Seat to act
	Roll        int           `json:"roll"`          // Pending die value (0 = none)
	Winner      int           `json:"winner"`        // Winning seat, -1 until game over
	Players     []PlayerState `json:"players"`
	LegalTokens []int         `json:"legal_tokens,omitempty"` // Movable tokens for the pending roll
	StateID     string        `json:"state_id"`               // Compact position encoding
	BoardStyle  string        `json:"board_style"`
	Sound       bool          `json:"sound"`
}

// RollResponse is the response after a roll action.
type RollResponse struct {
	Roll        int    `json:"roll"`
	Phase       string `json:"phase"`
	LegalTokens []int  `json:"legal_tokens,omitempty"`
}

// LegalMoveInfo is one legal move in a legal-move query response.
type LegalMoveInfo struct {
	Token int `json:"token"`
	From  int `json:"from"`
	To    int `json:"to"`
}

// LegalResponse is the response to a stateless legal-move query.
type LegalResponse struct {
	Moves []LegalMoveInfo `json:"moves"`
	Roll  int             `json:"roll"`
	State string          `json:"state"`
}

// EventMessage is an engine event as delivered over SSE and WebSocket.
type EventMessage struct {
	Type     string `json:"type"`
	Player   int    `json:"player"`
	Token    int    `json:"token"`
	Position int    `json:"position"`
	Roll     int    `json:"roll"`
}

// ErrorResponse is the error body for all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HealthResponse is the response for the health endpoint.
type HealthResponse struct {
	Status   string     `json:"status"`
	Version  string     `json:"version"`
	Sessions *PoolStats `json:"sessions,omitempty"`
}

// eventMessage converts an engine event to its wire form.
func eventMessage(e engine.Event) EventMessage {
	return EventMessage{
		Type:     string(e.Type),
		Player:   e.Player,
		Token:    e.Token,
		Position: e.Position,
		Roll:     e.Roll,
	}
}
