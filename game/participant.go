package game

import "loveletter/utils"

// Participant is the per-seat state of one round, plus the tokens won across rounds.
type Participant struct {
	Seat       SeatID
	Hand       []Rank // 1 card between turns, 2 during the seat's own turn
	Discards   []Rank // in play order, face up
	Eliminated bool
	Protected  bool
	Tokens     int
}

func (p Participant) Copy() Participant {
	p.Hand = append([]Rank(nil), p.Hand...)
	p.Discards = append([]Rank(nil), p.Discards...)
	return p
}

// Holds reports whether card is among the held cards.
func (p Participant) Holds(card Rank) bool {
	return utils.FindIndex(p.Hand, card) >= 0
}

// Held is the single card kept between turns, NoRank if the seat holds nothing.
func (p Participant) Held() Rank {
	if len(p.Hand) == 0 {
		return NoRank
	}
	return p.Hand[0]
}

// DiscardSum is the total strength of the discard history, the round tie-breaker.
func (p Participant) DiscardSum() int {
	sum := 0
	for _, r := range p.Discards {
		sum += r.Strength()
	}
	return sum
}

// discard moves one copy of card from the hand to the discard history.
func (p *Participant) discard(card Rank) {
	p.Hand = utils.Remove(p.Hand, card)
	p.Discards = append(p.Discards, card)
}

// eliminate removes the seat from the round, exposing whatever it still holds.
func (p *Participant) eliminate() {
	p.Discards = append(p.Discards, p.Hand...)
	p.Hand = nil
	p.Eliminated = true
	p.Protected = false
}

// resetRound clears everything except tokens.
func (p *Participant) resetRound() {
	p.Hand = nil
	p.Discards = nil
	p.Eliminated = false
	p.Protected = false
}
