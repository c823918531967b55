package engine

import "gonum.org/v1/gonum/floats"

// Pixel geometry for the classic 15x15 cross board. The layout only feeds
// the rendering boundary; rule logic never reads coordinates.
const (
	WindowSize = 760
	BoardSize  = 620
	BoardGrid  = 15
	Margin     = (WindowSize - BoardSize) / 2
	CellSize   = BoardSize / BoardGrid
)

// Point is a pixel coordinate on the board surface.
type Point struct {
	X float64
	Y float64
}

// BoardLayout holds the fixed coordinate tables for the shared track and
// the four home stretches. Build it once with NewBoardLayout; the tables
// are deterministic, so two layouts are always identical.
type BoardLayout struct {
	Track  [TrackLength]Point
	Home   [MaxPlayers][HomeStretchLength]Point
	Center Point
}

// trackCells is the clockwise traversal of the shared track on the 15x15
// grid, as (row, col) pairs starting at red's start cell.
var trackCells = [TrackLength][2]int{
	{6, 0}, {6, 1}, {6, 2}, {6, 3}, {6, 4}, {6, 5},
	{5, 6}, {4, 6}, {3, 6}, {2, 6}, {1, 6}, {0, 6},
	{0, 7},
	{0, 8}, {1, 8}, {2, 8}, {3, 8}, {4, 8}, {5, 8},
	{6, 9}, {6, 10}, {6, 11}, {6, 12}, {6, 13}, {6, 14},
	{7, 14},
	{8, 14}, {8, 13}, {8, 12}, {8, 11}, {8, 10}, {8, 9},
	{9, 8}, {10, 8}, {11, 8}, {12, 8}, {13, 8}, {14, 8},
	{14, 7},
	{14, 6}, {13, 6}, {12, 6}, {11, 6}, {10, 6}, {9, 6},
	{8, 5}, {8, 4}, {8, 3}, {8, 2}, {8, 1}, {8, 0},
	{7, 0},
}

// gridPoint maps a (row, col) grid cell to its pixel coordinate.
func gridPoint(row, col int) Point {
	return Point{
		X: Margin + float64(col)*(float64(BoardSize)/float64(BoardGrid-1)),
		Y: Margin + float64(row)*(float64(BoardSize)/float64(BoardGrid-1)),
	}
}

// NewBoardLayout builds the coordinate tables for the classic board.
func NewBoardLayout() *BoardLayout {
	l := &BoardLayout{
		Center: Point{
			X: Margin + float64(BoardSize)/2,
			Y: Margin + float64(BoardSize)/2,
		},
	}

	for i, rc := range trackCells {
		l.Track[i] = gridPoint(rc[0], rc[1])
	}

	// Each home stretch runs from the player's entry cell toward the
	// board center in HomeStretchLength even steps, the last landing on
	// the center itself.
	var xs, ys [HomeStretchLength + 1]float64
	for p := 0; p < MaxPlayers; p++ {
		entry := l.Track[EntryIndex[p]]
		floats.Span(xs[:], entry.X, l.Center.X)
		floats.Span(ys[:], entry.Y, l.Center.Y)
		for i := 0; i < HomeStretchLength; i++ {
			l.Home[p][i] = Point{X: xs[i+1], Y: ys[i+1]}
		}
	}

	return l
}

// TrackCoordinate returns the pixel coordinate of a shared-track cell.
func (l *BoardLayout) TrackCoordinate(index int) Point {
	return l.Track[index]
}

// HomeCoordinate returns the pixel coordinate for a home-stretch position
// (52..57) of the given player.
func (l *BoardLayout) HomeCoordinate(player, pos int) Point {
	return l.Home[player][pos-TrackLength]
}

// TokenCoordinate returns the drawing coordinate for any legal position of
// the given player. Base tokens cluster near the player's start cell.
func (l *BoardLayout) TokenCoordinate(player, tokenIndex, pos int) Point {
	switch {
	case pos == BasePosition:
		base := l.Track[StartIndex[player]]
		dx := float64(tokenIndex%2)*CellSize - CellSize/2
		dy := float64(tokenIndex/2)*CellSize - CellSize/2
		return Point{X: base.X + dx, Y: base.Y + dy}
	case pos < TrackLength:
		return l.Track[pos]
	default:
		return l.Home[player][pos-TrackLength]
	}
}
