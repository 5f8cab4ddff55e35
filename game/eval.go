package game

// EvaluateTokens compares the current player's tokens with the best rival's to produce a
// score between -1 and 1 from the current player's perspective
func EvaluateTokens(s State) float64 {
	m, ok := s.(Match)
	if !ok {
		panic("unexpected state type")
	}
	return m.tokenScore()
}

// EvaluateHand adds the strength of the cards in play to the token comparison, still
// between -1 and 1 from the current player's perspective
func EvaluateHand(s State) float64 {
	m, ok := s.(Match)
	if !ok {
		panic("unexpected state type")
	}
	return (m.tokenScore() + m.handScore() + m.survivalScore()) / 3
}

func (m Match) tokenScore() float64 {
	mine, best := m.rivalry(func(p Participant) float64 { return float64(p.Tokens) })
	return normalize(mine, best)
}

// handScore compares the strongest held card with the strongest rival card. A round is
// won by the highest card so this is the round-end outlook.
func (m Match) handScore() float64 {
	mine, best := m.rivalry(func(p Participant) float64 {
		strongest := 0
		for _, r := range p.Hand {
			strongest = max(strongest, r.Strength())
		}
		return float64(strongest)
	})
	return normalize(mine, best)
}

// survivalScore grows as rivals drop out of the round.
func (m Match) survivalScore() float64 {
	if m.seats[m.current].Eliminated {
		return -1
	}
	rivals := len(m.Alive()) - 1
	return float64(len(m.seats)-1-rivals) / float64(len(m.seats)-1)
}

// rivalry applies value to the current player and to the best rival.
func (m Match) rivalry(value func(Participant) float64) (mine, best float64) {
	mine = value(m.seats[m.current])
	for i, p := range m.seats {
		if SeatID(i) != m.current {
			best = max(best, value(p))
		}
	}
	return mine, best
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
