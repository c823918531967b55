// Package engine implements the Ludo rules engine: board topology, token
// movement, turn sequencing, capture resolution and the AI move picker.
package engine

// Board and rule constants for the classic 4-player cross board.
const (
	// MaxPlayers is the number of seats on the board.
	MaxPlayers = 4
	// MinPlayers is the smallest playable game.
	MinPlayers = 2
	// TokensPerPlayer is the number of tokens each player owns.
	TokensPerPlayer = 4
	// TrackLength is the number of cells on the shared circular track.
	TrackLength = 52
	// HomeStretchLength is the number of cells in each player's home stretch.
	HomeStretchLength = 6
	// BasePosition marks a token that has not entered the track.
	BasePosition = -1
	// FinishPosition is the terminal home-stretch cell.
	FinishPosition = TrackLength + HomeStretchLength - 1
	// ReleaseRoll is the die value that releases a token from base and
	// grants an extra turn.
	ReleaseRoll = 6
)

// StartIndex is each player's entry cell on the shared track.
var StartIndex = [MaxPlayers]int{0, 13, 26, 39}

// EntryIndex is the last shared-track cell before each player's home stretch.
var EntryIndex = [MaxPlayers]int{51, 12, 25, 38}

// Colors are the fixed seat colors, indexed by player.
var Colors = [MaxPlayers]string{"red", "green", "yellow", "blue"}

// Token is a single playing piece. Pos is BasePosition, a shared-track index
// (0..51), or a home-stretch index (52..57) in the owning player's stretch.
type Token struct {
	Player int // Owning player 0..3
	Index  int // Token index 0..3 within the player
	Pos    int // Current logical position
}

// OnTrack reports whether the token sits on the shared circular track.
func (t Token) OnTrack() bool {
	return t.Pos >= 0 && t.Pos < TrackLength
}

// InHomeStretch reports whether the token is in its home stretch.
func (t Token) InHomeStretch() bool {
	return t.Pos >= TrackLength && t.Pos <= FinishPosition
}

// Finished reports whether the token has reached the terminal cell.
func (t Token) Finished() bool {
	return t.Pos == FinishPosition
}

// Player holds one seat's identity and its four tokens.
type Player struct {
	Index  int    // Seat index 0..3
	Color  string // Fixed seat color
	Human  bool   // False for AI-controlled seats
	Tokens [TokensPerPlayer]Token
}

// NewPlayer creates a seat with all tokens at base.
func NewPlayer(index int, human bool) Player {
	p := Player{
		Index: index,
		Color: Colors[index],
		Human: human,
	}
	for i := range p.Tokens {
		p.Tokens[i] = Token{Player: index, Index: i, Pos: BasePosition}
	}
	return p
}

// Finished reports whether all of the player's tokens reached the finish.
func (p *Player) Finished() bool {
	for i := range p.Tokens {
		if !p.Tokens[i].Finished() {
			return false
		}
	}
	return true
}

// ValidPosition reports whether pos is inside the legal position space.
func ValidPosition(pos int) bool {
	return pos >= BasePosition && pos <= FinishPosition
}
