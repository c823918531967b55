package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yourusername/ludoengine/internal/boardid"
	"github.com/yourusername/ludoengine/pkg/engine"
)

// Handlers holds the HTTP handlers and session pool reference.
type Handlers struct {
	pool    *SessionPool
	version string
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(pool *SessionPool, version string) *Handlers {
	return &Handlers{
		pool:    pool,
		version: version,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, msg string, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: msg,
		Code:  code,
	})
}

// writeActionError maps an engine illegal-action error to a response.
func writeActionError(w http.ResponseWriter, err error) {
	code := "INVALID_ACTION"
	switch {
	case errors.Is(err, engine.ErrNotYourTurn):
		code = "NOT_YOUR_TURN"
	case errors.Is(err, engine.ErrNoRollPending):
		code = "NO_ROLL_PENDING"
	case errors.Is(err, engine.ErrRollPending):
		code = "ROLL_PENDING"
	case errors.Is(err, engine.ErrAnimating):
		code = "ANIMATING"
	case errors.Is(err, engine.ErrIllegalToken):
		code = "ILLEGAL_TOKEN"
	case errors.Is(err, engine.ErrGameOver):
		code = "GAME_OVER"
	}
	writeError(w, http.StatusConflict, err.Error(), code)
}

// Health handles GET /api/health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	stats := h.pool.Stats()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Version:  h.version,
		Sessions: &stats,
	})
}

// CreateGame handles POST /api/games
func (h *Handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	s, err := h.pool.Create(engine.Config{
		NumPlayers:   req.Players,
		HumanPlayers: req.Humans,
		Seed:         req.Seed,
		BoardStyle:   req.BoardStyle,
		Sound:        req.Sound,
	})
	if err != nil {
		if errors.Is(err, ErrPoolFull) {
			writeError(w, http.StatusServiceUnavailable, err.Error(), "SERVER_BUSY")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_CONFIG")
		return
	}

	writeJSON(w, http.StatusCreated, s.Snapshot())
}

// session resolves the {id} path value, writing a 404 on miss.
func (h *Handlers) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id := r.PathValue("id")
	s, ok := h.pool.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found", "GAME_NOT_FOUND")
		return nil, false
	}
	return s, true
}

// GameState handles GET /api/games/{id}
func (h *Handlers) GameState(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// Roll handles POST /api/games/{id}/roll
func (h *Handlers) Roll(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req RollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	resp, err := s.RequestRoll(req.Player)
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Select handles POST /api/games/{id}/select
func (h *Handlers) Select(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	if err := s.SelectToken(req.Player, req.Token); err != nil {
		writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// Restart handles POST /api/games/{id}/restart
func (h *Handlers) Restart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.Restart()
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// DeleteGame handles DELETE /api/games/{id}
func (h *Handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.pool.Remove(s.ID)
	w.WriteHeader(http.StatusNoContent)
}

// Legal handles POST /api/legal — a stateless legal-move query over an
// encoded board, for clients that want to preview moves.
func (h *Handlers) Legal(w http.ResponseWriter, r *http.Request) {
	var req LegalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}
	if req.Player < 0 || req.Player >= engine.MaxPlayers {
		writeError(w, http.StatusBadRequest, "player must be 0-3", "INVALID_PLAYER")
		return
	}
	if req.Roll < 1 || req.Roll > 6 {
		writeError(w, http.StatusBadRequest, "roll must be 1-6", "INVALID_ROLL")
		return
	}
	board, err := boardid.BoardFromStateID(req.State)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid state: "+err.Error(), "INVALID_STATE")
		return
	}

	resp := LegalResponse{Roll: req.Roll, State: req.State, Moves: []LegalMoveInfo{}}
	for tok := 0; tok < engine.TokensPerPlayer; tok++ {
		pos := int(board[req.Player][tok])
		if !engine.LegalMove(pos, engine.EntryIndex[req.Player], req.Roll) {
			continue
		}
		landing, ok := engine.ResultingPosition(pos, req.Player, req.Roll)
		if !ok {
			continue
		}
		resp.Moves = append(resp.Moves, LegalMoveInfo{Token: tok, From: pos, To: landing})
	}
	writeJSON(w, http.StatusOK, resp)
}
