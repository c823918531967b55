package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Phase is the Turn Controller state.
type Phase int

const (
	// PhaseAwaitingRoll waits for the current player to roll the die.
	PhaseAwaitingRoll Phase = iota
	// PhaseAwaitingToken waits for the current player to pick a legal token.
	PhaseAwaitingToken
	// PhaseAnimating plays out a committed move one step per tick.
	PhaseAnimating
	// PhaseGameOver is terminal; no further actions are accepted.
	PhaseGameOver
)

// String returns the phase name for logs and API responses.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingRoll:
		return "awaiting_roll"
	case PhaseAwaitingToken:
		return "awaiting_token"
	case PhaseAnimating:
		return "animating"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Illegal-action errors. These reject the input without mutating state; the
// caller re-presents valid choices.
var (
	ErrNotYourTurn   = errors.New("not this player's turn")
	ErrNoRollPending = errors.New("no roll pending")
	ErrRollPending   = errors.New("roll already pending")
	ErrAnimating     = errors.New("move animation in progress")
	ErrIllegalToken  = errors.New("token has no legal move")
	ErrGameOver      = errors.New("game is over")
)

// Config describes a game at setup time. Players 0..HumanPlayers-1 are
// human, the rest are AI.
type Config struct {
	NumPlayers   int    // 2..4
	HumanPlayers int    // 0..NumPlayers
	Seed         int64  // Die RNG seed; 0 seeds from the clock
	BoardStyle   string // "classic" or "modern"; cosmetic only
	Sound        bool   // Echoed to clients; rules never read it
}

// Game is the aggregate holding the full rule state: players, current turn,
// pending roll, phase and the in-flight animation. All mutation goes
// through RequestRoll, SelectToken and StepAnimation; the caller guarantees
// the single-threaded discipline (one event handler at a time).
type Game struct {
	Players []Player
	Current int // Index of the player to act
	Roll    int // Pending die value; 0 when not rolled
	Phase   Phase
	Winner  int // Winning player, -1 until PhaseGameOver
	Style   string
	Sound   bool

	humanCount int
	legal      []int // Legal token indexes for the pending roll
	anim       *Sequencer
	rng        *rand.Rand
	events     []Event
}

// NewGame creates a game with all tokens at base and player 0 to roll.
func NewGame(cfg Config) (*Game, error) {
	if cfg.NumPlayers < MinPlayers || cfg.NumPlayers > MaxPlayers {
		return nil, fmt.Errorf("num players must be %d-%d, got %d", MinPlayers, MaxPlayers, cfg.NumPlayers)
	}
	if cfg.HumanPlayers < 0 || cfg.HumanPlayers > cfg.NumPlayers {
		return nil, fmt.Errorf("human players must be 0-%d, got %d", cfg.NumPlayers, cfg.HumanPlayers)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	style := cfg.BoardStyle
	if style == "" {
		style = "classic"
	}

	g := &Game{
		Players:    make([]Player, cfg.NumPlayers),
		Winner:     -1,
		Style:      style,
		Sound:      cfg.Sound,
		humanCount: cfg.HumanPlayers,
		rng:        rand.New(rand.NewSource(seed)),
	}
	for i := range g.Players {
		g.Players[i] = NewPlayer(i, i < cfg.HumanPlayers)
	}
	return g, nil
}

// Restart resets the game to its initial state, keeping the player
// configuration and the die RNG.
func (g *Game) Restart() {
	for i := range g.Players {
		g.Players[i] = NewPlayer(i, g.Players[i].Human)
	}
	g.Current = 0
	g.Roll = 0
	g.Phase = PhaseAwaitingRoll
	g.Winner = -1
	g.legal = nil
	g.anim = nil
	g.events = g.events[:0]
}

// IsAI reports whether the given seat is computer-controlled.
func (g *Game) IsAI(player int) bool {
	return player >= 0 && player < len(g.Players) && !g.Players[player].Human
}

// CurrentPlayer returns the seat whose turn it is.
func (g *Game) CurrentPlayer() *Player {
	return &g.Players[g.Current]
}

// LegalTokenIndexes returns the tokens the current player may move with the
// pending roll, or nil when no roll is pending. The rendering boundary uses
// this to highlight movable tokens.
func (g *Game) LegalTokenIndexes() []int {
	if g.Phase != PhaseAwaitingToken {
		return nil
	}
	out := make([]int, len(g.legal))
	copy(out, g.legal)
	return out
}

// RequestRoll rolls the die for the given player. When no token can move
// with the rolled value, the turn is skipped and play passes to the next
// player (auto-skip).
func (g *Game) RequestRoll(player int) (int, error) {
	switch g.Phase {
	case PhaseGameOver:
		return 0, ErrGameOver
	case PhaseAnimating:
		return 0, ErrAnimating
	case PhaseAwaitingToken:
		return 0, ErrRollPending
	}
	if player != g.Current {
		return 0, ErrNotYourTurn
	}

	roll := g.rng.Intn(6) + 1
	g.Roll = roll
	g.emit(Event{Type: EventDiceRolled, Player: player, Roll: roll})

	g.legal = LegalTokens(g.CurrentPlayer(), roll)
	if len(g.legal) == 0 {
		// Auto-skip: no choice possible, the turn ends unplayed. The
		// extra-turn rule only applies to committed moves, so a six
		// with no legal token still passes the turn.
		g.emit(Event{Type: EventNoMoves, Player: player, Roll: roll})
		g.Roll = 0
		g.nextTurn()
		return roll, nil
	}

	g.Phase = PhaseAwaitingToken
	return roll, nil
}

// SelectToken commits one of the current player's legal tokens to the
// pending roll and starts the move animation. Illegal selections are
// rejected with no state change.
func (g *Game) SelectToken(player, token int) error {
	switch g.Phase {
	case PhaseGameOver:
		return ErrGameOver
	case PhaseAnimating:
		return ErrAnimating
	case PhaseAwaitingRoll:
		return ErrNoRollPending
	}
	if player != g.Current {
		return ErrNotYourTurn
	}
	if token < 0 || token >= TokensPerPlayer {
		return fmt.Errorf("token index out of range: %d", token)
	}
	if !g.isLegalChoice(token) {
		return ErrIllegalToken
	}

	pos := g.Players[player].Tokens[token].Pos
	steps := IntermediatePositions(pos, player, g.Roll)
	if len(steps) == 0 {
		// The legal set said this move exists; an empty chain means the
		// movement rules and the legality check disagree.
		return fmt.Errorf("no step chain for legal move: player %d token %d pos %d roll %d",
			player, token, pos, g.Roll)
	}

	g.anim = NewSequencer(player, token, steps)
	g.Phase = PhaseAnimating
	return nil
}

// isLegalChoice reports whether token is in the pending legal set.
func (g *Game) isLegalChoice(token int) bool {
	for _, i := range g.legal {
		if i == token {
			return true
		}
	}
	return false
}

// StepAnimation advances the in-flight move by one visual step, committing
// the stepped position to the token. The final step triggers capture
// resolution and the end-of-turn transition. Returns false when no
// animation is in progress.
func (g *Game) StepAnimation() bool {
	if g.Phase != PhaseAnimating || g.anim == nil {
		return false
	}

	pos, last := g.anim.Next()
	tok := &g.Players[g.anim.Player].Tokens[g.anim.Token]
	tok.Pos = pos
	g.emit(Event{Type: EventTokenMoved, Player: g.anim.Player, Token: g.anim.Token, Position: pos})

	if last {
		g.finishMove()
	}
	return true
}

// finishMove runs capture resolution and decides the next turn after the
// animation delivered its final step.
func (g *Game) finishMove() {
	anim := g.anim
	g.anim = nil
	g.legal = nil

	landed := g.Players[anim.Player].Tokens[anim.Token].Pos
	if landed >= 0 && landed < TrackLength {
		g.resolveCapture(anim.Player, landed)
	}

	if g.Players[anim.Player].Finished() {
		g.Phase = PhaseGameOver
		g.Winner = anim.Player
		g.emit(Event{Type: EventGameWon, Player: anim.Player})
		return
	}

	extra := g.Roll == ReleaseRoll
	g.Roll = 0
	if extra {
		// A six grants the same player another roll.
		g.Phase = PhaseAwaitingRoll
		g.emit(Event{Type: EventTurnEnded, Player: g.Current})
		return
	}
	g.nextTurn()
}

// resolveCapture sends every opposing token on the landed shared-track cell
// back to base.
func (g *Game) resolveCapture(player, cell int) {
	for p := range g.Players {
		if p == player {
			continue
		}
		for i := range g.Players[p].Tokens {
			tok := &g.Players[p].Tokens[i]
			if tok.Pos == cell {
				tok.Pos = BasePosition
				g.emit(Event{Type: EventTokenCaptured, Player: p, Token: i, Position: BasePosition})
			}
		}
	}
}

// nextTurn passes play to the next seat.
func (g *Game) nextTurn() {
	g.Current = (g.Current + 1) % len(g.Players)
	g.Roll = 0
	g.legal = nil
	g.Phase = PhaseAwaitingRoll
	g.emit(Event{Type: EventTurnEnded, Player: g.Current})
}

// Advance performs at most one scheduler step: an animation tick, an AI
// roll, or an AI token choice. Human turns are driven by RequestRoll and
// SelectToken instead. Returns false when there is nothing to do.
func (g *Game) Advance() bool {
	switch g.Phase {
	case PhaseAnimating:
		return g.StepAnimation()
	case PhaseAwaitingRoll:
		if !g.IsAI(g.Current) {
			return false
		}
		_, err := g.RequestRoll(g.Current)
		return err == nil
	case PhaseAwaitingToken:
		if !g.IsAI(g.Current) {
			return false
		}
		token := g.ChooseToken(g.legal)
		return g.SelectToken(g.Current, token) == nil
	default:
		return false
	}
}
