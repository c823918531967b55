package engine

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"
)

// SimulationOptions controls AI-vs-AI self-play.
type SimulationOptions struct {
	Games      int   // Number of games to play (default 100)
	NumPlayers int   // Seats per game (default 4, all AI)
	Seed       int64 // RNG seed (0 = use current time)
	Workers    int   // Parallel workers (0 = GOMAXPROCS)
	MaxTurns   int   // Per-game turn cap before aborting (default 2000)
}

// SimulationResult aggregates self-play outcomes.
type SimulationResult struct {
	GamesCompleted int
	Aborted        int // Games that hit the turn cap
	Wins           [MaxPlayers]int
	TotalTurns     int
	AvgTurns       float64
}

// simPartial holds one worker's tallies.
type simPartial struct {
	games   int
	aborted int
	wins    [MaxPlayers]int
	turns   int
}

// DefaultSimulationOptions returns sensible defaults.
func DefaultSimulationOptions() SimulationOptions {
	return SimulationOptions{
		Games:      100,
		NumPlayers: MaxPlayers,
		MaxTurns:   2000,
	}
}

// Simulate plays AI-vs-AI games in parallel and aggregates win statistics.
func Simulate(opts SimulationOptions) (*SimulationResult, error) {
	if opts.Games <= 0 {
		opts.Games = 100
	}
	if opts.NumPlayers == 0 {
		opts.NumPlayers = MaxPlayers
	}
	if opts.NumPlayers < MinPlayers || opts.NumPlayers > MaxPlayers {
		return nil, fmt.Errorf("num players must be %d-%d, got %d", MinPlayers, MaxPlayers, opts.NumPlayers)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Seed == 0 {
		opts.Seed = rand.Int63()
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = 2000
	}

	gamesPerWorker := opts.Games / opts.Workers
	extraGames := opts.Games % opts.Workers

	results := make(chan simPartial, opts.Workers)
	var wg sync.WaitGroup

	for i := 0; i < opts.Workers; i++ {
		games := gamesPerWorker
		if i < extraGames {
			games++
		}
		if games == 0 {
			continue
		}
		workerSeed := opts.Seed + int64(i)*1000000

		wg.Add(1)
		go func(games int, seed int64) {
			defer wg.Done()
			results <- simWorker(games, seed, opts.NumPlayers, opts.MaxTurns)
		}(games, workerSeed)
	}

	wg.Wait()
	close(results)

	total := &SimulationResult{}
	for part := range results {
		total.GamesCompleted += part.games
		total.Aborted += part.aborted
		total.TotalTurns += part.turns
		for p := 0; p < MaxPlayers; p++ {
			total.Wins[p] += part.wins[p]
		}
	}
	if played := total.GamesCompleted - total.Aborted; played > 0 {
		total.AvgTurns = float64(total.TotalTurns) / float64(played)
	}
	return total, nil
}

// simWorker plays a batch of games sequentially.
func simWorker(games int, seed int64, numPlayers, maxTurns int) simPartial {
	var part simPartial
	for i := 0; i < games; i++ {
		winner, turns := playGame(seed+int64(i), numPlayers, maxTurns)
		part.games++
		part.turns += turns
		if winner < 0 {
			part.aborted++
			continue
		}
		part.wins[winner]++
	}
	return part
}

// playGame runs one all-AI game to completion. Returns -1 as the winner if
// the turn cap is hit.
func playGame(seed int64, numPlayers, maxTurns int) (winner, turns int) {
	g, err := NewGame(Config{NumPlayers: numPlayers, HumanPlayers: 0, Seed: seed})
	if err != nil {
		return -1, 0
	}

	// Every turn takes at most a roll, a choice and six animation steps.
	maxSteps := maxTurns * (2 + ReleaseRoll)
	for step := 0; step < maxSteps; step++ {
		if !g.Advance() {
			break
		}
		for _, e := range g.Events() {
			if e.Type == EventTurnEnded {
				turns++
				if turns >= maxTurns {
					return -1, turns
				}
			}
		}
		if g.Phase == PhaseGameOver {
			return g.Winner, turns
		}
	}
	return -1, turns
}
