package game

import (
	"golang.org/x/exp/rand"
)

// FaceUpTwoSeats is the number of cards set aside face up in a two-seat round.
const FaceUpTwoSeats = 3

// Deck is the draw pile of one round plus its set-aside cards.
type Deck struct {
	cards  []Rank // cards[0] is the top
	hidden Rank   // face-down set-aside card, NoRank once handed out
	faceUp []Rank // face-up set-aside cards, permanently out of play
}

// NewDeck shuffles the catalog with seed and sets cards aside for a round with the given
// number of seats. The same (seats, seed) pair always yields the same deck.
func NewDeck(seats int, seed uint64) Deck {
	cards := Catalog()
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	d := Deck{hidden: cards[0], cards: cards[1:]}
	if seats == 2 {
		d.faceUp = append([]Rank{}, d.cards[:FaceUpTwoSeats]...)
		d.cards = d.cards[FaceUpTwoSeats:]
	}
	return d
}

// roundSeed mixes the match seed with the round number so every round gets its own shuffle.
func roundSeed(seed int64, round int) uint64 {
	return uint64(seed) ^ (uint64(round) * 0x9e3779b97f4a7c15)
}

func (d Deck) Copy() Deck {
	return Deck{
		cards:  append([]Rank(nil), d.cards...),
		hidden: d.hidden,
		faceUp: append([]Rank(nil), d.faceUp...),
	}
}

// Len is the number of cards left to draw.
func (d Deck) Len() int {
	return len(d.cards)
}

// Empty reports whether no further draw is possible.
func (d Deck) Empty() bool {
	return len(d.cards) == 0
}

// HasHidden reports whether the face-down set-aside card is still out of play.
func (d Deck) HasHidden() bool {
	return d.hidden != NoRank
}

// FaceUp returns a copy of the face-up set-aside cards.
func (d Deck) FaceUp() []Rank {
	return append([]Rank(nil), d.faceUp...)
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Rank, error) {
	if len(d.cards) == 0 {
		return NoRank, ErrEmptyDeck
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// DrawHidden hands out the face-down set-aside card. Only the prince effect on an empty
// deck may call it.
func (d *Deck) DrawHidden() (Rank, error) {
	if d.hidden == NoRank {
		return NoRank, ErrEmptyDeck
	}
	card := d.hidden
	d.hidden = NoRank
	return card, nil
}

// cardsOutOfHands lists every card the deck still holds, set-aside cards included.
func (d Deck) cardsOutOfHands() []Rank {
	out := append([]Rank(nil), d.cards...)
	out = append(out, d.faceUp...)
	if d.hidden != NoRank {
		out = append(out, d.hidden)
	}
	return out
}
