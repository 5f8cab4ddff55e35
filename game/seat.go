package game

import "fmt"

// SeatID is a fixed position in turn order, 0..N-1.
type SeatID int

// NoSeat marks an absent seat, e.g. the winner of a match still in play.
const NoSeat SeatID = -1

func (s SeatID) String() string {
	if s == NoSeat {
		return "none"
	}
	return fmt.Sprintf("seat%d", int(s))
}

// Relative maps "the nth seat after from" to an absolute seat in a table of n seats.
func Relative(from SeatID, offset, seats int) SeatID {
	return SeatID(((int(from)+offset)%seats + seats) % seats)
}

// Offset is the inverse of Relative: how many seats after from the seat to lies.
func Offset(from, to SeatID, seats int) int {
	return ((int(to)-int(from))%seats + seats) % seats
}
