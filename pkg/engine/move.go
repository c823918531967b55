package engine

// Movement rules. All functions here are pure: they never touch a Game and
// never mutate a Token. The Turn Controller commits results after the
// animation completes.

// DistanceToEntry returns the forward clockwise distance from a shared-track
// cell to the given entry cell, wrapping at the end of the track.
func DistanceToEntry(pos, entry int) int {
	if entry >= pos {
		return entry - pos
	}
	return TrackLength - (pos - entry)
}

// LegalMove reports whether a token at pos may move by roll. entry is the
// owning player's entry index on the shared track.
func LegalMove(pos, entry, roll int) bool {
	if pos == BasePosition {
		return roll == ReleaseRoll
	}
	if pos >= TrackLength {
		// Home stretch: may not overshoot the finish cell.
		return pos+roll <= FinishPosition
	}
	dist := DistanceToEntry(pos, entry)
	if roll <= dist {
		return true
	}
	return roll-dist-1 < HomeStretchLength
}

// ResultingPosition returns the landing position for a token of player at
// pos moving by roll. ok is false when the move is illegal; callers are
// expected to check LegalMove first.
func ResultingPosition(pos, player, roll int) (int, bool) {
	switch {
	case pos == BasePosition:
		if roll != ReleaseRoll {
			return BasePosition, false
		}
		return StartIndex[player], true
	case pos >= TrackLength:
		next := pos + roll
		if next > FinishPosition {
			return BasePosition, false
		}
		return next, true
	default:
		dist := DistanceToEntry(pos, EntryIndex[player])
		if roll <= dist {
			return (pos + roll) % TrackLength, true
		}
		offset := roll - dist - 1
		if offset >= HomeStretchLength {
			return BasePosition, false
		}
		return TrackLength + offset, true
	}
}

// IntermediatePositions returns the per-step position chain from the
// token's current position to its landing cell, one entry per unit step.
// A base release is a single jump to the player's start cell. Returns nil
// when the move is illegal.
func IntermediatePositions(pos, player, roll int) []int {
	if pos == BasePosition {
		if roll != ReleaseRoll {
			return nil
		}
		return []int{StartIndex[player]}
	}
	if !LegalMove(pos, EntryIndex[player], roll) {
		return nil
	}
	steps := make([]int, 0, roll)
	cur := pos
	for i := 0; i < roll; i++ {
		next, ok := ResultingPosition(cur, player, 1)
		if !ok {
			return nil
		}
		cur = next
		steps = append(steps, cur)
	}
	return steps
}

// LegalTokens returns the indexes of the player's tokens that may move by
// roll, in token order.
func LegalTokens(p *Player, roll int) []int {
	var legal []int
	for i := range p.Tokens {
		if LegalMove(p.Tokens[i].Pos, EntryIndex[p.Index], roll) {
			legal = append(legal, i)
		}
	}
	return legal
}
