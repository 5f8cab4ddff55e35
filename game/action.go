package game

import "fmt"

// Action is a candidate move. It is a comparable value so it can key maps.
type Action struct {
	Seat   SeatID // acting seat
	Card   Rank   // card being played
	Target SeatID // equals Seat for self-only cards
	Guess  Rank   // guard only, NoRank otherwise
}

// Play builds an action for a self-only card.
func Play(seat SeatID, card Rank) Action {
	return Action{Seat: seat, Card: card, Target: seat, Guess: NoRank}
}

// PlayOn builds an action for a targeting card other than the guard.
func PlayOn(seat SeatID, card Rank, target SeatID) Action {
	return Action{Seat: seat, Card: card, Target: target, Guess: NoRank}
}

// GuardGuess builds a guard action.
func GuardGuess(seat, target SeatID, guess Rank) Action {
	return Action{Seat: seat, Card: Guard, Target: target, Guess: guess}
}

func (a Action) String() string {
	switch {
	case a.Card == Guard:
		return fmt.Sprintf("%s plays guard on %s guessing %s", a.Seat, a.Target, a.Guess)
	case a.Card.Targeted():
		return fmt.Sprintf("%s plays %s on %s", a.Seat, a.Card, a.Target)
	default:
		return fmt.Sprintf("%s plays %s", a.Seat, a.Card)
	}
}

// CandidateActions is the bounded candidate space for actor in a table of the given size,
// in a stable order: for each target offset 0..seats-1 (0 is the actor), the seven guard
// guesses, priest, baron, prince and king; then handmaid, countess and princess.
func CandidateActions(actor SeatID, seats int) []Action {
	actions := make([]Action, 0, CandidateCount(seats))
	for offset := 0; offset < seats; offset++ {
		target := Relative(actor, offset, seats)
		for _, guess := range Ranks() {
			if guess != Guard {
				actions = append(actions, GuardGuess(actor, target, guess))
			}
		}
		for _, card := range []Rank{Priest, Baron, Prince, King} {
			actions = append(actions, PlayOn(actor, card, target))
		}
	}
	for _, card := range []Rank{Handmaid, Countess, Princess} {
		actions = append(actions, Play(actor, card))
	}
	return actions
}

// CandidateCount is len(CandidateActions(_, seats)).
func CandidateCount(seats int) int {
	return 11*seats + 3
}
