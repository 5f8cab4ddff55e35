package game

import "fmt"

// startRound resets every seat, builds and shuffles the round's deck, deals one card per
// seat beginning with starter and gives starter its first draw.
func (m *Match) startRound(round int, starter SeatID) error {
	n := len(m.seats)
	m.round = round
	m.starter = starter
	m.current = starter
	m.roundActive = true
	m.deck = NewDeck(n, roundSeed(m.seed, round))
	for i := range m.seats {
		m.seats[i].resetRound()
	}

	for offset := 0; offset < n; offset++ {
		if err := m.drawFor(Relative(starter, offset, n)); err != nil {
			return err
		}
	}
	return m.drawFor(starter)
}

// drawFor gives seat the top card unless it already holds two.
func (m *Match) drawFor(seat SeatID) error {
	p := &m.seats[seat]
	if len(p.Hand) >= 2 {
		return nil
	}
	card, err := m.deck.Draw()
	if err != nil {
		return fmt.Errorf("draw for %s: %w", seat, err)
	}
	p.Hand = append(p.Hand, card)
	return nil
}

// finishTurn either closes the round or passes the turn to the next seat in play, which
// loses its protection and draws.
func (m *Match) finishTurn(out *Outcome) error {
	if len(m.Alive()) < 2 || m.deck.Empty() {
		return m.closeRound(out)
	}
	m.advance()
	out.Next = m.current
	return m.drawFor(m.current)
}

func (m *Match) advance() {
	n := len(m.seats)
	for offset := 1; offset <= n; offset++ {
		seat := Relative(m.current, offset, n)
		if !m.seats[seat].Eliminated {
			m.current = seat
			m.seats[seat].Protected = false
			return
		}
	}
}

// closeRound scores the round and either ends the match or deals the next round with
// the opening seat rotated by one.
func (m *Match) closeRound(out *Outcome) error {
	winners := m.roundWinners()
	for _, seat := range winners {
		m.seats[seat].Tokens++
	}
	out.RoundOver = true
	out.RoundWinners = winners

	if champion := m.champion(); champion != NoSeat {
		m.roundActive = false
		m.over = true
		m.winner = champion
		out.MatchOver = true
		out.Winner = champion
		out.Next = NoSeat
		return nil
	}

	starter := Relative(m.starter, 1, len(m.seats))
	if err := m.startRound(m.round+1, starter); err != nil {
		return fmt.Errorf("deal round %d: %w", m.round+1, err)
	}
	out.Next = m.current
	return nil
}

// roundWinners returns the surviving seats holding the strictly highest card. Ties go to
// the highest discard sum; seats still tied share the win.
func (m *Match) roundWinners() []SeatID {
	best := -1
	var tied []SeatID
	for i, p := range m.seats {
		if p.Eliminated {
			continue
		}
		switch s := p.Held().Strength(); {
		case s > best:
			best = s
			tied = []SeatID{SeatID(i)}
		case s == best:
			tied = append(tied, SeatID(i))
		}
	}
	if len(tied) < 2 {
		return tied
	}

	bestSum := -1
	var winners []SeatID
	for _, seat := range tied {
		switch sum := m.seats[seat].DiscardSum(); {
		case sum > bestSum:
			bestSum = sum
			winners = []SeatID{seat}
		case sum == bestSum:
			winners = append(winners, seat)
		}
	}
	return winners
}

// champion is the seat that reached the threshold with the most tokens, lowest seat first.
func (m *Match) champion() SeatID {
	champion := NoSeat
	most := 0
	for i, p := range m.seats {
		if p.Tokens >= m.threshold && p.Tokens > most {
			champion = SeatID(i)
			most = p.Tokens
		}
	}
	return champion
}
