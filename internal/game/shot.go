package game

import "fmt"

// Outcome is the result of resolving one shot.
type Outcome uint8

const (
	// ShotRejected: the coordinate was already an explicit target.
	ShotRejected Outcome = iota
	ShotMiss
	ShotHit
	ShotSunk
)

func (o Outcome) String() string {
	switch o {
	case ShotRejected:
		return "already-shot"
	case ShotMiss:
		return "miss"
	case ShotHit:
		return "hit"
	case ShotSunk:
		return "sunk"
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}

// Struck reports whether the outcome landed on a ship.
func (o Outcome) Struck() bool { return o == ShotHit || o == ShotSunk }

// Shoot resolves a shot at (r, c) against b, recording it in log.
//
// Re-targeting a logged coordinate returns ShotRejected and changes nothing.
// A cell that already reads Miss or Hit without having been targeted (a sunk
// ship's perimeter, a resumed board) is logged and resolves as a normal
// ShotMiss; its cell is left as it is.
func Shoot(b *Board, log *ShotLog, r, c int) (Outcome, error) {
	if !InBounds(r, c) {
		return ShotRejected, fmt.Errorf("%w: (%d,%d)", ErrInvalidCoordinate, r, c)
	}
	p := Coord{r, c}
	if log.Has(p) {
		return ShotRejected, nil
	}
	log.Add(p)

	switch b.cells[r][c] {
	case Occupied:
		b.cells[r][c] = Hit
	case Hit:
		return ShotMiss, nil
	default:
		b.cells[r][c] = Miss
		return ShotMiss, nil
	}
	ship := LocateShip(b, r, c)
	if Sunk(b, ship) {
		MarkSunkPerimeter(b, ship)
		return ShotSunk, nil
	}
	return ShotHit, nil
}
