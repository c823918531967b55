// ludosim - command line tool for the Ludo rules engine
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/yourusername/ludoengine/internal/boardid"
	"github.com/yourusername/ludoengine/pkg/engine"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "sim":
		cmdSim(args)
	case "legal":
		cmdLegal(args)
	case "play":
		cmdPlay(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`ludosim - Ludo Rules Engine

Usage: ludosim <command> [options]

Commands:
  sim       Run AI-vs-AI self-play and report win statistics
  legal     List legal moves for an encoded board, player and roll
  play      Play a single AI game and print the event log

Use "ludosim <command> -h" for command-specific help.

State ID Format:
  Board positions are passed as 16-character state IDs, one base64
  character per token in seat order. "AAAAAAAAAAAAAAAA" is the empty
  board with every token at base.`)
}

func cmdSim(args []string) {
	fs := flag.NewFlagSet("sim", flag.ExitOnError)
	games := fs.Int("games", 100, "Number of games to play")
	players := fs.Int("players", 4, "Seats per game (2-4)")
	seed := fs.Int64("seed", 0, "RNG seed (0 = random)")
	workers := fs.Int("workers", 0, "Parallel workers (0 = all cores)")
	fs.Parse(args)

	result, err := engine.Simulate(engine.SimulationOptions{
		Games:      *games,
		NumPlayers: *players,
		Seed:       *seed,
		Workers:    *workers,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Games:   %d (%d aborted)\n", result.GamesCompleted, result.Aborted)
	fmt.Printf("Turns:   %.1f average\n", result.AvgTurns)
	for p := 0; p < *players; p++ {
		pct := 0.0
		if result.GamesCompleted > 0 {
			pct = 100 * float64(result.Wins[p]) / float64(result.GamesCompleted)
		}
		fmt.Printf("  %-7s %5d wins (%.1f%%)\n", engine.Colors[p], result.Wins[p], pct)
	}
}

func cmdLegal(args []string) {
	fs := flag.NewFlagSet("legal", flag.ExitOnError)
	state := fs.String("state", "", "State ID (16 characters)")
	player := fs.Int("player", 0, "Seat to query (0-3)")
	roll := fs.Int("roll", 0, "Die value (1-6)")
	fs.Parse(args)

	if *roll < 1 || *roll > 6 {
		fmt.Fprintln(os.Stderr, "Error: roll must be 1-6")
		os.Exit(1)
	}
	if *player < 0 || *player >= engine.MaxPlayers {
		fmt.Fprintln(os.Stderr, "Error: player must be 0-3")
		os.Exit(1)
	}
	board, err := boardid.BoardFromStateID(*state)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid state ID: %v\n", err)
		os.Exit(1)
	}

	found := false
	for tok := 0; tok < engine.TokensPerPlayer; tok++ {
		pos := int(board[*player][tok])
		if !engine.LegalMove(pos, engine.EntryIndex[*player], *roll) {
			continue
		}
		landing, _ := engine.ResultingPosition(pos, *player, *roll)
		fmt.Printf("token %d: %s -> %s\n", tok, formatPos(pos), formatPos(landing))
		found = true
	}
	if !found {
		fmt.Println("no legal moves")
	}
}

func cmdPlay(args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	players := fs.Int("players", 4, "Seats (2-4)")
	seed := fs.Int64("seed", 0, "RNG seed (0 = random)")
	maxTurns := fs.Int("max-turns", 2000, "Abort the game after this many turns")
	verbose := fs.Bool("v", false, "Print every event, not just turns and captures")
	fs.Parse(args)

	g, err := engine.NewGame(engine.Config{NumPlayers: *players, HumanPlayers: 0, Seed: *seed})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	winner, turns := playLoop(g, *maxTurns, func(e engine.Event) {
		switch e.Type {
		case engine.EventDiceRolled:
			if *verbose {
				fmt.Printf("%s rolls %d\n", engine.Colors[e.Player], e.Roll)
			}
		case engine.EventTokenMoved:
			if *verbose {
				fmt.Printf("  %s token %d -> %s\n", engine.Colors[e.Player], e.Token, formatPos(e.Position))
			}
		case engine.EventTokenCaptured:
			fmt.Printf("  %s token %d captured\n", engine.Colors[e.Player], e.Token)
		}
	})
	if winner < 0 {
		fmt.Printf("aborted after %d turns with no winner\n", turns)
		return
	}
	fmt.Printf("%s wins after %d turns\n", engine.Colors[winner], turns)
}

// playLoop drives an all-AI game to completion, invoking fn for every
// engine event. Returns -1 as the winner when the turn cap is hit.
func playLoop(g *engine.Game, maxTurns int, fn func(engine.Event)) (winner, turns int) {
	for g.Phase != engine.PhaseGameOver {
		if !g.Advance() {
			break
		}
		for _, e := range g.Events() {
			fn(e)
			if e.Type == engine.EventTurnEnded {
				turns++
			}
		}
		if turns >= maxTurns {
			return -1, turns
		}
	}
	if g.Phase != engine.PhaseGameOver {
		return -1, turns
	}
	return g.Winner, turns
}

// formatPos renders a position for terminal output.
func formatPos(pos int) string {
	switch {
	case pos == engine.BasePosition:
		return "base"
	case pos < engine.TrackLength:
		return fmt.Sprintf("cell %d", pos)
	case pos == engine.FinishPosition:
		return "finish"
	default:
		return fmt.Sprintf("home %d", pos-engine.TrackLength)
	}
}
