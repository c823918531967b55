package engine

import (
	"math"
	"reflect"
	"testing"
)

func TestBoardLayoutIdempotent(t *testing.T) {
	a := NewBoardLayout()
	b := NewBoardLayout()
	if !reflect.DeepEqual(a, b) {
		t.Error("two layouts should be identical")
	}
}

func TestTrackCellsDistinct(t *testing.T) {
	l := NewBoardLayout()
	seen := make(map[Point]int)
	for i, p := range l.Track {
		if prev, dup := seen[p]; dup {
			t.Errorf("track cells %d and %d share coordinate %v", prev, i, p)
		}
		seen[p] = i
	}
}

func TestHomeStretchGeometry(t *testing.T) {
	l := NewBoardLayout()
	for player := 0; player < MaxPlayers; player++ {
		entry := l.TrackCoordinate(EntryIndex[player])

		// Six evenly spaced points from the entry cell to the center.
		last := l.HomeCoordinate(player, FinishPosition)
		if math.Abs(last.X-l.Center.X) > 1e-9 || math.Abs(last.Y-l.Center.Y) > 1e-9 {
			t.Errorf("player %d: final home cell %v, want center %v", player, last, l.Center)
		}

		first := l.HomeCoordinate(player, TrackLength)
		wantX := entry.X + (l.Center.X-entry.X)/HomeStretchLength
		wantY := entry.Y + (l.Center.Y-entry.Y)/HomeStretchLength
		if math.Abs(first.X-wantX) > 1e-9 || math.Abs(first.Y-wantY) > 1e-9 {
			t.Errorf("player %d: first home cell %v, want (%v,%v)", player, first, wantX, wantY)
		}

		// Steps are monotone toward the center.
		prevDist := math.Hypot(entry.X-l.Center.X, entry.Y-l.Center.Y)
		for pos := TrackLength; pos <= FinishPosition; pos++ {
			p := l.HomeCoordinate(player, pos)
			d := math.Hypot(p.X-l.Center.X, p.Y-l.Center.Y)
			if d >= prevDist {
				t.Errorf("player %d pos %d: distance to center %v not decreasing", player, pos, d)
			}
			prevDist = d
		}
	}
}

func TestStartAndEntryTables(t *testing.T) {
	for player := 0; player < MaxPlayers; player++ {
		// Each entry cell is one step behind the start cell on the ring.
		want := (StartIndex[player] + TrackLength - 1) % TrackLength
		if EntryIndex[player] != want {
			t.Errorf("player %d: entry %d, want %d", player, EntryIndex[player], want)
		}
	}
}

func TestTokenCoordinate(t *testing.T) {
	l := NewBoardLayout()

	if got := l.TokenCoordinate(0, 0, 13); got != l.Track[13] {
		t.Errorf("track coordinate: got %v, want %v", got, l.Track[13])
	}
	if got := l.TokenCoordinate(2, 1, 54); got != l.Home[2][2] {
		t.Errorf("home coordinate: got %v, want %v", got, l.Home[2][2])
	}

	// Base tokens cluster around the start cell, offset per token.
	a := l.TokenCoordinate(1, 0, BasePosition)
	b := l.TokenCoordinate(1, 3, BasePosition)
	if a == b {
		t.Error("base tokens should not overlap")
	}
}
