package game

import "fmt"

// Setup drives manual placement of a fleet one ship at a time, in order.
type Setup struct {
	board *Board
	sizes []int
	next  int
}

// NewSetup starts a manual placement of sizes on an empty board.
// A nil sizes means the canonical Fleet.
func NewSetup(sizes []int) *Setup {
	if sizes == nil {
		sizes = Fleet
	}
	return &Setup{board: NewBoard(), sizes: append([]int(nil), sizes...)}
}

// Next returns the size of the ship waiting to be placed.
func (s *Setup) Next() (size int, ok bool) {
	if s.Done() {
		return 0, false
	}
	return s.sizes[s.next], true
}

// Remaining returns the sizes still to be placed.
func (s *Setup) Remaining() []int { return append([]int(nil), s.sizes[s.next:]...) }

func (s *Setup) Done() bool { return s.next >= len(s.sizes) }

// Place puts the next ship at (row, col). A rejected position leaves the
// plan where it was so the caller can ask again.
func (s *Setup) Place(row, col int, horizontal bool) error {
	size, ok := s.Next()
	if !ok {
		return ErrSetupComplete
	}
	if err := Place(s.board, row, col, size, horizontal); err != nil {
		return err
	}
	s.next++
	return nil
}

// Board returns the finished board. It fails until every ship is placed.
func (s *Setup) Board() (*Board, error) {
	if !s.Done() {
		return nil, fmt.Errorf("%w: %d", ErrSetupIncomplete, len(s.sizes)-s.next)
	}
	return s.board.Clone(), nil
}

// Preview returns a copy of the board in its current, possibly partial, state.
func (s *Setup) Preview() *Board { return s.board.Clone() }
