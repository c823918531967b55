package engine

// ChooseToken picks which of the legal tokens an AI player moves for the
// pending roll. Tokens are scanned in order and the first capturing landing
// wins; otherwise the pick is uniform among the legal set. No look-ahead.
func (g *Game) ChooseToken(legal []int) int {
	if len(legal) == 0 {
		return -1
	}

	player := g.Current
	for _, idx := range legal {
		pos := g.Players[player].Tokens[idx].Pos
		landing, ok := ResultingPosition(pos, player, g.Roll)
		if !ok || landing < 0 || landing >= TrackLength {
			continue
		}
		if g.opponentOnCell(player, landing) {
			return idx
		}
	}

	return legal[g.rng.Intn(len(legal))]
}

// opponentOnCell reports whether any opposing token sits on the given
// shared-track cell.
func (g *Game) opponentOnCell(player, cell int) bool {
	for p := range g.Players {
		if p == player {
			continue
		}
		for i := range g.Players[p].Tokens {
			if g.Players[p].Tokens[i].Pos == cell {
				return true
			}
		}
	}
	return false
}
