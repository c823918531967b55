// Package boardid implements a compact state-ID encoding for Ludo token
// positions.
//
// A state ID is a 16-character base64 string, one character per token in
// seat order: four tokens for each of the four seats. Each character
// encodes position+1 (0 = base, 1..52 = shared track, 53..58 = home
// stretch), so every board maps to exactly one ID and back. Seats not in
// play encode their tokens at base.
package boardid

import "errors"

const (
	// StateIDLength is the length of a state ID string.
	StateIDLength = 16
	// maxEncoded is the largest value a single character may carry
	// (finish cell 57, shifted by one).
	maxEncoded = 58
)

// Base64 alphabet used for state-ID encoding.
const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// Board holds every token position as [seat][token].
type Board [4][4]int8

// Decoding errors.
var (
	ErrBadLength   = errors.New("state ID must be 16 characters")
	ErrBadChar     = errors.New("state ID contains an invalid character")
	ErrBadPosition = errors.New("state ID encodes an out-of-range position")
)

// decodeTable maps a base64 character back to its 6-bit value, built once.
var decodeTable [256]int8

func init() {
	for i := range decodeTable {
		decodeTable[i] = -1
	}
	for i := 0; i < len(base64Chars); i++ {
		decodeTable[base64Chars[i]] = int8(i)
	}
}

// StateIDFromBoard encodes a board as a state ID.
func StateIDFromBoard(b Board) string {
	buf := make([]byte, StateIDLength)
	for seat := 0; seat < 4; seat++ {
		for tok := 0; tok < 4; tok++ {
			buf[seat*4+tok] = base64Chars[b[seat][tok]+1]
		}
	}
	return string(buf)
}

// BoardFromStateID decodes a state ID back into token positions.
func BoardFromStateID(id string) (Board, error) {
	var b Board
	if len(id) != StateIDLength {
		return b, ErrBadLength
	}
	for i := 0; i < StateIDLength; i++ {
		v := decodeTable[id[i]]
		if v < 0 {
			return b, ErrBadChar
		}
		if v > maxEncoded {
			return b, ErrBadPosition
		}
		b[i/4][i%4] = v - 1
	}
	return b, nil
}
