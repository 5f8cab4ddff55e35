package game

// resolve applies the effect of an already validated action to m, which must be a copy
// owned by the caller.
func (m *Match) resolve(a Action, out *Outcome) error {
	actor := &m.seats[a.Seat]
	actor.discard(a.Card)
	target := &m.seats[a.Target]
	self := a.Target == a.Seat

	switch a.Card {
	case Guard:
		if !self && target.Held() == a.Guess {
			m.eliminate(a.Target, out)
		}
	case Priest:
		out.Revealed = append(out.Revealed, Reveal{Seat: a.Target, Card: target.Held(), To: a.Seat})
	case Baron:
		if self {
			return nil
		}
		mine, theirs := actor.Held(), target.Held()
		out.Revealed = append(out.Revealed,
			Reveal{Seat: a.Target, Card: theirs, To: a.Seat},
			Reveal{Seat: a.Seat, Card: mine, To: a.Target},
		)
		switch {
		case mine < theirs:
			m.eliminate(a.Seat, out)
		case theirs < mine:
			m.eliminate(a.Target, out)
		}
	case Handmaid:
		actor.Protected = true
	case Prince:
		return m.forceRedraw(a.Target, out)
	case King:
		if !self {
			actor.Hand, target.Hand = target.Hand, actor.Hand
		}
	case Countess:
	case Princess:
		m.eliminate(a.Seat, out)
	}
	return nil
}

// forceRedraw makes seat discard its hand and draw again. A discarded princess eliminates
// instead. An empty deck hands out the face-down set-aside card.
func (m *Match) forceRedraw(seat SeatID, out *Outcome) error {
	p := &m.seats[seat]
	card := p.Held()
	p.discard(card)
	if card == Princess {
		m.eliminate(seat, out)
		return nil
	}

	var (
		next Rank
		err  error
	)
	if m.deck.Empty() {
		next, err = m.deck.DrawHidden()
	} else {
		next, err = m.deck.Draw()
	}
	if err != nil {
		return err
	}
	p.Hand = append(p.Hand, next)
	return nil
}

func (m *Match) eliminate(seat SeatID, out *Outcome) {
	m.seats[seat].eliminate()
	out.Eliminated = append(out.Eliminated, seat)
}
