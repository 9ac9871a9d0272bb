package game

import "fmt"

// Cell is the state of one grid square. Transitions only move forward:
// Empty->Occupied during setup, Occupied->Hit and Empty->Miss during play.
type Cell uint8

const (
	Empty Cell = iota
	Occupied
	Hit
	Miss
)

// Glyph is the persisted marker for c.
func (c Cell) Glyph() byte {
	switch c {
	case Occupied:
		return 'S'
	case Hit:
		return 'X'
	case Miss:
		return 'O'
	default:
		return '~'
	}
}

// CellFromGlyph is the inverse of Glyph.
func CellFromGlyph(g byte) (Cell, bool) {
	switch g {
	case '~':
		return Empty, true
	case 'S':
		return Occupied, true
	case 'X':
		return Hit, true
	case 'O':
		return Miss, true
	}
	return Empty, false
}

// IsShip reports whether the cell is part of a ship shape, struck or not.
func (c Cell) IsShip() bool { return c == Occupied || c == Hit }

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Occupied:
		return "occupied"
	case Hit:
		return "hit"
	case Miss:
		return "miss"
	}
	return fmt.Sprintf("Cell(%d)", uint8(c))
}
