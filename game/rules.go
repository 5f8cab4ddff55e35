package game

import (
	"fmt"

	"loveletter/utils"
)

func illegal(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIllegalAction, fmt.Sprintf(format, args...))
}

// Validate checks a against the current match. A nil error means the action is legal;
// otherwise the error wraps ErrIllegalAction and names the broken rule.
func (m Match) Validate(a Action) error {
	if !m.Active() {
		return illegal("match is not in play")
	}

	// Turn and hand
	if a.Seat != m.current {
		return illegal("%s acted on %s's turn", a.Seat, m.current)
	}
	actor := m.seats[a.Seat]
	if actor.Eliminated {
		return illegal("%s is eliminated", a.Seat)
	}
	if !a.Card.Valid() || !actor.Holds(a.Card) {
		return illegal("%s does not hold %s", a.Seat, a.Card)
	}

	// The countess must go when held with the king or the prince
	if a.Card != Countess && actor.Holds(Countess) && (actor.Holds(King) || actor.Holds(Prince)) {
		return illegal("%s must play the countess", a.Seat)
	}

	// Guesses belong to the guard alone, which may not name itself
	if a.Card == Guard {
		if !a.Guess.Valid() || a.Guess == Guard {
			return illegal("guard cannot guess %s", a.Guess)
		}
	} else if a.Guess != NoRank {
		return illegal("%s takes no guess", a.Card)
	}

	if !a.Card.Targeted() {
		if a.Target != a.Seat {
			return illegal("%s only targets its player", a.Card)
		}
		return nil
	}

	if a.Target < 0 || int(a.Target) >= len(m.seats) {
		return illegal("no such seat %d", int(a.Target))
	}
	if a.Target == a.Seat {
		return m.validateSelfTarget(a, actor)
	}

	target := m.seats[a.Target]
	if target.Eliminated {
		return illegal("%s is eliminated", a.Target)
	}
	if target.Protected {
		return illegal("%s is protected", a.Target)
	}
	return nil
}

func (m Match) validateSelfTarget(a Action, actor Participant) error {
	if a.Card == Prince {
		return nil
	}
	if m.hasOpenTarget(a.Seat) {
		return illegal("%s must target another seat", a.Card)
	}
	// With every rival protected a guard has nobody to name. It is only playable, to no
	// effect, when the other card held is a guard as well.
	if a.Card == Guard && utils.Count(actor.Hand, Guard) < 2 {
		return illegal("guard has no target")
	}
	return nil
}

// hasOpenTarget reports whether some other seat is in the round and unprotected.
func (m Match) hasOpenTarget(actor SeatID) bool {
	for i, p := range m.seats {
		if SeatID(i) != actor && !p.Eliminated && !p.Protected {
			return true
		}
	}
	return false
}
