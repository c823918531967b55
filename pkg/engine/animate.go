package engine

// Sequencer holds a committed move's remaining step queue. The scheduler
// pops one position per tick via Game.StepAnimation, so the token's logical
// position and the drawn position advance in lockstep. Once created, a
// sequence always runs to completion; there is no cancellation.
type Sequencer struct {
	Player int
	Token  int
	steps  []int
	next   int
}

// NewSequencer creates a sequencer for the given step chain.
func NewSequencer(player, token int, steps []int) *Sequencer {
	return &Sequencer{Player: player, Token: token, steps: steps}
}

// Next pops the next position. last is true when the returned position is
// the landing cell.
func (s *Sequencer) Next() (pos int, last bool) {
	pos = s.steps[s.next]
	s.next++
	return pos, s.next >= len(s.steps)
}

// Remaining returns the number of steps not yet delivered.
func (s *Sequencer) Remaining() int {
	return len(s.steps) - s.next
}
