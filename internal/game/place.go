package game

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"sort"
)

// DefaultPlacementAttempts caps random anchor sampling per ship.
const DefaultPlacementAttempts = 1000

// CanPlace reports whether a ship of size cells anchored at (row, col) fits
// on the board and every cell of its footprint plus a one-cell margin is Empty.
func CanPlace(b *Board, row, col, size int, horizontal bool) bool {
	if size < 1 || !InBounds(row, col) {
		return false
	}
	endR, endC := row, col+size-1
	if !horizontal {
		endR, endC = row+size-1, col
	}
	if !InBounds(endR, endC) {
		return false
	}
	for r := max(0, row-1); r <= min(Size-1, endR+1); r++ {
		for c := max(0, col-1); c <= min(Size-1, endC+1); c++ {
			if b.cells[r][c] != Empty {
				return false
			}
		}
	}
	return true
}

// PlaceShip writes Occupied over the run without any checks. Callers must
// have confirmed CanPlace first.
func PlaceShip(b *Board, row, col, size int, horizontal bool) {
	for i := 0; i < size; i++ {
		if horizontal {
			b.cells[row][col+i] = Occupied
		} else {
			b.cells[row+i][col] = Occupied
		}
	}
}

// Place is the checked form of PlaceShip used for externally supplied
// positions. The board is unchanged when an error is returned.
func Place(b *Board, row, col, size int, horizontal bool) error {
	if !InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d)", ErrInvalidCoordinate, row, col)
	}
	if !CanPlace(b, row, col, size, horizontal) {
		return fmt.Errorf("%w: size %d at (%d,%d) is off the grid, overlaps or touches another ship",
			ErrPlacementRejected, size, row, col)
	}
	PlaceShip(b, row, col, size, horizontal)
	return nil
}

// AutoPlace builds a board holding one ship per entry of sizes, in the given
// order, sampling orientation and anchor from rng. Each ship gets at most
// attempts samples; running out fails the whole run so callers restart
// from an empty board.
func AutoPlace(rng *rand.Rand, sizes []int, attempts int) (*Board, error) {
	if attempts <= 0 {
		attempts = DefaultPlacementAttempts
	}
	b := NewBoard()
	for _, size := range sizes {
		if size < 1 || size > Size {
			return nil, fmt.Errorf("%w: ship size %d", ErrPlacementRejected, size)
		}
		placed := false
		for try := 0; try < attempts && !placed; try++ {
			horizontal := rng.Intn(2) == 0
			var r, c int
			if horizontal {
				r, c = rng.Intn(Size), rng.Intn(Size-size+1)
			} else {
				r, c = rng.Intn(Size-size+1), rng.Intn(Size)
			}
			if CanPlace(b, r, c, size, horizontal) {
				PlaceShip(b, r, c, size, horizontal)
				placed = true
			}
		}
		if !placed {
			return nil, fmt.Errorf("%w: no room for ship of size %d after %d attempts",
				ErrPlacementExhausted, size, attempts)
		}
	}
	return b, nil
}

// PlaceFleet runs AutoPlace up to runs times, each from an empty board,
// and returns the first board that fits. It reports exhaustion of the
// last run when none does.
func PlaceFleet(rng *rand.Rand, sizes []int, attempts, runs int) (*Board, error) {
	if runs < 1 {
		runs = 1
	}
	var err error
	for i := 0; i < runs; i++ {
		var b *Board
		if b, err = AutoPlace(rng, sizes, attempts); err == nil {
			return b, nil
		}
		if !errors.Is(err, ErrPlacementExhausted) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%d runs: %w", runs, err)
}

// ValidateFleet checks that the ship cells of b form exactly the canonical
// fleet as straight runs with no two ships touching, diagonals included.
func ValidateFleet(b *Board) error {
	ships := Ships(b)
	owner := make(map[Coord]int, FleetCells)
	sizes := make([]int, 0, len(ships))
	for i, ship := range ships {
		if !straight(ship) {
			return fmt.Errorf("%w: ship at %v is not a straight run", ErrInvalidFleet, ship[0])
		}
		for _, p := range ship {
			owner[p] = i
		}
		sizes = append(sizes, len(ship))
	}
	for p, i := range owner {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if j, ok := owner[Coord{p.Row + dr, p.Col + dc}]; ok && j != i {
					return fmt.Errorf("%w: ships touch at %v", ErrInvalidFleet, p)
				}
			}
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))
	if !slices.Equal(sizes, Fleet) {
		return fmt.Errorf("%w: ship sizes %v, want %v", ErrInvalidFleet, sizes, Fleet)
	}
	return nil
}

// straight expects cells in row-major order.
func straight(cells []Coord) bool {
	first := cells[0]
	for i, p := range cells {
		if p != (Coord{first.Row, first.Col + i}) {
			goto vertical
		}
	}
	return true
vertical:
	for i, p := range cells {
		if p != (Coord{first.Row + i, first.Col}) {
			return false
		}
	}
	return true
}
