package engine

// EventType identifies an engine output event.
type EventType string

const (
	// EventDiceRolled carries the die value for the current player.
	EventDiceRolled EventType = "dice_rolled"
	// EventNoMoves means the roll had no legal token and the turn skips.
	EventNoMoves EventType = "no_moves"
	// EventTokenMoved is emitted once per animation step.
	EventTokenMoved EventType = "token_moved"
	// EventTokenCaptured means a token was sent back to base.
	EventTokenCaptured EventType = "token_captured"
	// EventTurnEnded carries the index of the player to act next.
	EventTurnEnded EventType = "turn_ended"
	// EventGameWon carries the winning player; the game is over.
	EventGameWon EventType = "game_won"
)

// Event is a single engine output event for the rendering boundary.
// Fields beyond Type are populated per event type.
type Event struct {
	Type     EventType
	Player   int
	Token    int
	Position int
	Roll     int
}

// emit queues an event for the boundary to drain.
func (g *Game) emit(e Event) {
	g.events = append(g.events, e)
}

// Events drains and returns all queued events in emission order.
func (g *Game) Events() []Event {
	if len(g.events) == 0 {
		return nil
	}
	out := g.events
	g.events = nil
	return out
}
