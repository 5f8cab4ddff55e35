package game

import "errors"

var (
	// ErrInvalidSeatCount is returned by New for a seat count outside MinSeats..MaxSeats.
	ErrInvalidSeatCount = errors.New("invalid seat count")
	// ErrIllegalAction wraps every validation failure reported by Apply.
	ErrIllegalAction = errors.New("illegal action")
	// ErrEmptyDeck means a draw was attempted with nothing left. Round-end detection must
	// make this unreachable, so seeing it points at a controller defect.
	ErrEmptyDeck = errors.New("empty deck")
)
