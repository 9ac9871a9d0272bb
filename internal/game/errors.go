package game

import "errors"

var (
	ErrInvalidCoordinate  = errors.New("coordinate out of range")
	ErrPlacementRejected  = errors.New("placement rejected")
	ErrPlacementExhausted = errors.New("failed to place fleet")
	ErrInvalidFleet       = errors.New("board does not hold the canonical fleet")
	ErrSetupComplete      = errors.New("every ship is already placed")
	ErrSetupIncomplete    = errors.New("ships left to place")
)

// Retryable reports whether err is a caller-input problem that can be
// fixed by asking for different input, as opposed to one that should abort.
func Retryable(err error) bool {
	return errors.Is(err, ErrPlacementRejected) || errors.Is(err, ErrInvalidCoordinate)
}
