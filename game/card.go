package game

import "fmt"

// Rank is one of the eight card kinds. Its numeric value is its strength.
type Rank int

const (
	NoRank   Rank = iota // 0, unused Action field
	Guard                // 1
	Priest               // 2
	Baron                // 3
	Handmaid             // 4
	Prince               // 5
	King                 // 6
	Countess             // 7
	Princess             // 8
)

const (
	NumRanks = 8
	DeckSize = 16
)

var rankNames = [...]string{"none", "guard", "priest", "baron", "handmaid", "prince", "king", "countess", "princess"}

// rankCounts is the number of copies of each rank in the deck, indexed by Rank.
var rankCounts = [...]int{0, 5, 2, 2, 2, 2, 1, 1, 1}

// Ranks lists every real rank from weakest to strongest.
func Ranks() []Rank {
	return []Rank{Guard, Priest, Baron, Handmaid, Prince, King, Countess, Princess}
}

func (r Rank) String() string {
	if r.Valid() || r == NoRank {
		return rankNames[r]
	}
	return fmt.Sprintf("rank(%d)", int(r))
}

// Valid reports whether r is a real card rank.
func (r Rank) Valid() bool {
	return r >= Guard && r <= Princess
}

// Strength is the card's value used for comparisons and scoring.
func (r Rank) Strength() int {
	return int(r)
}

// Count returns how many copies of r the deck holds.
func (r Rank) Count() int {
	if !r.Valid() {
		return 0
	}
	return rankCounts[r]
}

// Targeted reports whether playing r names another seat.
func (r Rank) Targeted() bool {
	switch r {
	case Guard, Priest, Baron, Prince, King:
		return true
	}
	return false
}

// Catalog returns the full 16-card multiset in rank order.
func Catalog() []Rank {
	cards := make([]Rank, 0, DeckSize)
	for _, r := range Ranks() {
		for i := 0; i < r.Count(); i++ {
			cards = append(cards, r)
		}
	}
	return cards
}
