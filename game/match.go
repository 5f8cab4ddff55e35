package game

import (
	"fmt"
)

const (
	MinSeats = 2
	MaxSeats = 4
)

// tokenThreshold is the number of round wins needed to take the match, by seat count.
var tokenThreshold = map[int]int{2: 7, 3: 5, 4: 4}

// Match is the whole contest across rounds. It is a value: Apply never mutates the
// receiver and every Match it returns owns its slices, so lineages forked from a common
// ancestor can be advanced independently, including from different goroutines.
type Match struct {
	seed        int64
	round       int
	starter     SeatID // opening seat of the current round
	current     SeatID
	seats       []Participant
	deck        Deck
	threshold   int
	roundActive bool
	over        bool
	winner      SeatID
}

// Reveal records a hand shown to another seat by a priest or baron.
type Reveal struct {
	Seat SeatID // whose card
	Card Rank
	To   SeatID // who saw it
}

// Outcome describes what one Apply did.
type Outcome struct {
	Action       Action
	Eliminated   []SeatID
	Revealed     []Reveal
	RoundOver    bool
	RoundWinners []SeatID
	MatchOver    bool
	Winner       SeatID // NoSeat unless MatchOver
	Next         SeatID // seat to act in the returned match, NoSeat once over
}

// New deals the first round of a match. The same (seats, seed) always yields the same match.
func New(seats int, seed int64) (Match, error) {
	threshold, ok := tokenThreshold[seats]
	if !ok {
		return Match{}, fmt.Errorf("%w: %d (want %d..%d)", ErrInvalidSeatCount, seats, MinSeats, MaxSeats)
	}

	m := Match{
		seed:      seed,
		seats:     make([]Participant, seats),
		threshold: threshold,
		winner:    NoSeat,
	}
	for i := range m.seats {
		m.seats[i] = Participant{Seat: SeatID(i)}
	}
	if err := m.startRound(1, 0); err != nil {
		return Match{}, fmt.Errorf("deal round 1: %w", err)
	}
	return m, nil
}

// Copy returns a deep copy sharing no memory with m.
func (m Match) Copy() Match {
	seats := make([]Participant, len(m.seats))
	for i, p := range m.seats {
		seats[i] = p.Copy()
	}
	m.seats = seats
	m.deck = m.deck.Copy()
	return m
}

// Apply validates and plays a, returning the resulting match. On an illegal action the
// returned error wraps ErrIllegalAction and the returned match is m itself.
func (m Match) Apply(a Action) (Match, Outcome, error) {
	if err := m.Validate(a); err != nil {
		return m, Outcome{}, err
	}

	next := m.Copy()
	out := Outcome{Action: a, Winner: NoSeat, Next: NoSeat}
	if err := next.resolve(a, &out); err != nil {
		return m, Outcome{}, fmt.Errorf("resolve %s: %w", a, err)
	}
	if err := next.finishTurn(&out); err != nil {
		return m, Outcome{}, fmt.Errorf("finish turn after %s: %w", a, err)
	}
	return next, out, nil
}

// LegalActions filters the candidate space for the current seat. It is recomputed on
// every call and is empty once the match is over.
func (m Match) LegalActions() []Action {
	if !m.Active() {
		return nil
	}
	var legal []Action
	for _, a := range CandidateActions(m.current, len(m.seats)) {
		if m.Validate(a) == nil {
			legal = append(legal, a)
		}
	}
	return legal
}

// IsLegal reports whether a passes every validation rule.
func (m Match) IsLegal(a Action) bool {
	return m.Validate(a) == nil
}

func (m Match) Seed() int64 {
	return m.seed
}

// Round is the 1-based number of the round in play (or the last one played).
func (m Match) Round() int {
	return m.round
}

// Current is the seat whose turn it is.
func (m Match) Current() SeatID {
	return m.current
}

// Starter is the seat that opened the current round.
func (m Match) Starter() SeatID {
	return m.starter
}

// Seats is the number of seats at the table.
func (m Match) Seats() int {
	return len(m.seats)
}

// Active reports whether a round is in play and actions can be applied.
func (m Match) Active() bool {
	return m.roundActive && !m.over
}

// Over reports whether some seat reached the token threshold.
func (m Match) Over() bool {
	return m.over
}

// Winner is the match winner, NoSeat while the match is still running.
func (m Match) Winner() SeatID {
	return m.winner
}

// Threshold is the number of tokens that wins the match.
func (m Match) Threshold() int {
	return m.threshold
}

// Participant returns a copy of the seat's state.
func (m Match) Participant(seat SeatID) Participant {
	return m.seats[seat].Copy()
}

// Participants returns copies of every seat's state in seat order.
func (m Match) Participants() []Participant {
	out := make([]Participant, len(m.seats))
	for i, p := range m.seats {
		out[i] = p.Copy()
	}
	return out
}

// Tokens returns the tokens of every seat in seat order.
func (m Match) Tokens() []int {
	out := make([]int, len(m.seats))
	for i, p := range m.seats {
		out[i] = p.Tokens
	}
	return out
}

// Others lists every other seat in turn order starting after seat.
func (m Match) Others(seat SeatID) []SeatID {
	n := len(m.seats)
	out := make([]SeatID, 0, n-1)
	for offset := 1; offset < n; offset++ {
		out = append(out, Relative(seat, offset, n))
	}
	return out
}

// Alive lists the non-eliminated seats in seat order.
func (m Match) Alive() []SeatID {
	var out []SeatID
	for i, p := range m.seats {
		if !p.Eliminated {
			out = append(out, SeatID(i))
		}
	}
	return out
}

// DeckSize is the number of cards left to draw.
func (m Match) DeckSize() int {
	return m.deck.Len()
}

// HasHidden reports whether the face-down set-aside card is still out of play.
func (m Match) HasHidden() bool {
	return m.deck.HasHidden()
}

// FaceUp returns the face-up set-aside cards (two-seat matches only).
func (m Match) FaceUp() []Rank {
	return m.deck.FaceUp()
}

// cards returns every card of the round wherever it sits. It always holds the full catalog.
func (m Match) cards() []Rank {
	out := m.deck.cardsOutOfHands()
	for _, p := range m.seats {
		out = append(out, p.Hand...)
		out = append(out, p.Discards...)
	}
	return out
}
