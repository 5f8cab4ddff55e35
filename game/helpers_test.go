package game

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// scenario builds a round in progress with seat 0 to act. A seat given no cards starts
// eliminated. The hidden card is a guard unless changed by the caller.
func scenario(seats int, hands [][]Rank, deck []Rank) Match {
	m := Match{
		round:       1,
		starter:     0,
		current:     0,
		seats:       make([]Participant, seats),
		deck:        Deck{cards: deck, hidden: Guard},
		threshold:   tokenThreshold[seats],
		roundActive: true,
		winner:      NoSeat,
	}
	for i := range m.seats {
		m.seats[i] = Participant{Seat: SeatID(i), Hand: hands[i]}
		if len(hands[i]) == 0 {
			m.seats[i].Eliminated = true
		}
	}
	return m
}

func requireConserved(t *testing.T, m Match) {
	t.Helper()
	got := m.cards()
	slices.Sort(got)
	require.Equal(t, Catalog(), got, "Every card of the catalog should be accounted for exactly once")
}

func requireHandSizes(t *testing.T, m Match) {
	t.Helper()
	for i, p := range m.seats {
		switch {
		case p.Eliminated:
			require.Empty(t, p.Hand, "Eliminated seat %d should hold nothing", i)
		case m.Active() && SeatID(i) == m.current:
			require.Len(t, p.Hand, 2, "Seat to act should hold two cards")
		case m.Active():
			require.Len(t, p.Hand, 1, "Waiting seat %d should hold one card", i)
		}
	}
}

// playout plays random legal actions until the match ends, calling check after every step.
func playout(t *testing.T, m Match, seed uint64, check func(before, after Match, out Outcome)) Match {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	for step := 0; m.Active(); step++ {
		require.Less(t, step, 5000, "Match should end in a bounded number of moves")
		legal := m.LegalActions()
		require.NotEmpty(t, legal, "Active match should always offer a legal action")
		next, out, err := m.Apply(legal[rng.Intn(len(legal))])
		require.NoError(t, err)
		if check != nil {
			check(m, next, out)
		}
		m = next
	}
	return m
}
