package view

import (
	"fmt"
	"strings"

	"seabattle/internal/game"
)

// RowLetters label rows top to bottom.
const RowLetters = "АБВГДЕЖЗИК"

// latinLetters are accepted as input aliases for RowLetters.
const latinLetters = "ABCDEFGHIJ"

// ParseCoord converts a row letter and a one-based column number into a
// zero-based coordinate.
func ParseCoord(letter string, number int) (game.Coord, error) {
	l := []rune(strings.ToUpper(strings.TrimSpace(letter)))
	if len(l) != 1 {
		return game.Coord{}, fmt.Errorf("%w: row %q", game.ErrInvalidCoordinate, letter)
	}
	row := strings.IndexRune(latinLetters, l[0])
	if row < 0 {
		row = indexRune([]rune(RowLetters), l[0])
	}
	if row < 0 {
		return game.Coord{}, fmt.Errorf("%w: row %q", game.ErrInvalidCoordinate, letter)
	}
	if number < 1 || number > game.Size {
		return game.Coord{}, fmt.Errorf("%w: column %d", game.ErrInvalidCoordinate, number)
	}
	return game.Coord{Row: row, Col: number - 1}, nil
}

// CoordLabel is the inverse of ParseCoord, e.g. "Б7".
func CoordLabel(p game.Coord) string {
	return fmt.Sprintf("%c%d", []rune(RowLetters)[p.Row], p.Col+1)
}

func indexRune(rs []rune, r rune) int {
	for i, x := range rs {
		if x == r {
			return i
		}
	}
	return -1
}
