// Package view projects boards into display labels. The opponent projection
// is the only place hidden ships are masked.
package view

import (
	"fmt"
	"io"
	"strings"

	"seabattle/internal/game"
)

type Label byte

const (
	Unknown Label = '~'
	Ship    Label = 'S'
	Struck  Label = 'X'
	Missed  Label = 'O'
)

func (l Label) String() string { return string(rune(l)) }

type Grid [game.Size][game.Size]Label

// Own shows every cell of the viewer's own board as it is.
func Own(b *game.Board) Grid {
	var g Grid
	b.Cells(func(p game.Coord, v game.Cell) {
		switch v {
		case game.Occupied:
			g[p.Row][p.Col] = Ship
		case game.Hit:
			g[p.Row][p.Col] = Struck
		case game.Miss:
			g[p.Row][p.Col] = Missed
		default:
			g[p.Row][p.Col] = Unknown
		}
	})
	return g
}

// Opponent shows only revealed cells of the opponent's board.
func Opponent(b *game.Board) Grid {
	var g Grid
	b.Cells(func(p game.Coord, v game.Cell) {
		switch v {
		case game.Hit:
			g[p.Row][p.Col] = Struck
		case game.Miss:
			g[p.Row][p.Col] = Missed
		default:
			g[p.Row][p.Col] = Unknown
		}
	})
	return g
}

// Row returns row r as space separated labels.
func (g Grid) Row(r int) string {
	var sb strings.Builder
	for c, l := range g[r] {
		if c > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte(l))
	}
	return sb.String()
}

// Format writes the two grids side by side with row and column labels,
// followed by the live ship counters.
func Format(w io.Writer, own, opp Grid, ownLive, oppLive int) error {
	letters := []rune(RowLetters)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-25s | %s\n", "    YOUR BOARD", "    OPPONENT")
	header := "    1 2 3 4 5 6 7 8 9 10"
	fmt.Fprintf(&sb, "%-25s | %s\n", header, header)
	for r := 0; r < game.Size; r++ {
		fmt.Fprintf(&sb, "%c | %-21s | %c | %s\n", letters[r], own.Row(r), letters[r], opp.Row(r))
	}
	fmt.Fprintf(&sb, "\nships afloat: %d/%d | opponent: %d/%d\n", ownLive, len(game.Fleet), oppLive, len(game.Fleet))
	_, err := io.WriteString(w, sb.String())
	return err
}
