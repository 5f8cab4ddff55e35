package game

import (
	"encoding/binary"
	"hash/fnv"
)

const (
	viewHeader  = 9 + FaceUpTwoSeats
	viewPerSeat = 5 + DeckSize
)

// ViewSize is the length of View for a table of the given size.
func ViewSize(seats int) int {
	return viewHeader + viewPerSeat*seats
}

// View flattens the public facts of the match into integers. Hands of seats other than
// viewer read as NoRank; pass NoSeat to see every hand. The engine attaches no meaning to
// the layout beyond this order:
//
//	seats, round, current, deck size, hidden set aside (0/1), round active (0/1),
//	over (0/1), winner (-1 if none), threshold, face-up set-aside ranks (3 slots)
//	then per seat: eliminated, protected, tokens, hand (2 slots), discards (16 slots)
func (m Match) View(viewer SeatID) []int {
	v := make([]int, 0, ViewSize(len(m.seats)))
	v = append(v,
		len(m.seats),
		m.round,
		int(m.current),
		m.deck.Len(),
		boolInt(m.deck.HasHidden()),
		boolInt(m.roundActive),
		boolInt(m.over),
		int(m.winner),
		m.threshold,
	)
	v = appendPadded(v, m.deck.faceUp, FaceUpTwoSeats)

	for i, p := range m.seats {
		v = append(v, boolInt(p.Eliminated), boolInt(p.Protected), p.Tokens)
		if viewer == NoSeat || viewer == SeatID(i) {
			v = appendPadded(v, p.Hand, 2)
		} else {
			v = append(v, int(NoRank), int(NoRank))
		}
		v = appendPadded(v, p.Discards, DeckSize)
	}
	return v
}

// Hash identifies the full state, deck order included.
func (m Match) Hash() StateHash {
	view := m.View(NoSeat)
	buf := make([]byte, 0, 8*(len(view)+len(m.deck.cards)+2))
	for _, x := range view {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(x))
	}
	for _, card := range m.deck.cards {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(card))
	}
	buf = binary.LittleEndian.AppendUint64(buf, uint64(m.deck.hidden))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(m.starter))

	hasher := fnv.New64a()
	hasher.Write(buf) // hash.Hash writes never fail
	return StateHash(hasher.Sum64())
}

func appendPadded(v []int, cards []Rank, width int) []int {
	for i := 0; i < width; i++ {
		if i < len(cards) {
			v = append(v, int(cards[i]))
		} else {
			v = append(v, int(NoRank))
		}
	}
	return v
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
