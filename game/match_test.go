package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("rejecting unsupported seat counts", func(t *testing.T) {
		for _, seats := range []int{-1, 0, 1, 5} {
			_, err := New(seats, 1)

			require.ErrorIs(t, err, ErrInvalidSeatCount, "Seat count %d should be rejected", seats)
		}
	})

	t.Run("dealing the first round", func(t *testing.T) {
		for seats, threshold := range map[int]int{2: 7, 3: 5, 4: 4} {
			m, err := New(seats, 42)
			require.NoError(t, err)

			require.Equal(t, threshold, m.Threshold(), "Threshold should follow seat count")
			require.Equal(t, 1, m.Round(), "Match should open on round 1")
			require.Equal(t, SeatID(0), m.Current(), "Seat 0 should open")
			require.True(t, m.Active(), "Match should be in play")
			require.False(t, m.Over(), "Match should not be over")
			require.Equal(t, NoSeat, m.Winner(), "Nobody should have won")
			requireHandSizes(t, m)
			requireConserved(t, m)

			want := DeckSize - 1 - seats - 1
			if seats == 2 {
				want -= FaceUpTwoSeats
			}
			require.Equal(t, want, m.DeckSize(), "Deck should lose the set-aside and dealt cards")
		}
	})

	t.Run("reproducing the same match from the same seed", func(t *testing.T) {
		for _, seats := range []int{2, 3, 4} {
			m1, err := New(seats, 2024)
			require.NoError(t, err)
			m2, err := New(seats, 2024)
			require.NoError(t, err)

			require.Equal(t, m1, m2, "Matches should be identical field for field")
			require.Equal(t, m1.Hash(), m2.Hash(), "Hashes should agree")
		}
	})
}

func TestApply(t *testing.T) {
	t.Run("returning the match unchanged on an illegal action", func(t *testing.T) {
		m, err := New(4, 5)
		require.NoError(t, err)
		before := m.Copy()

		got, out, err := m.Apply(Play(1, Handmaid))

		require.ErrorIs(t, err, ErrIllegalAction, "Acting out of turn should be illegal")
		require.Equal(t, before, got, "Match should be returned unchanged")
		require.Equal(t, Outcome{}, out, "No outcome should be reported")
	})

	t.Run("leaving the receiver untouched", func(t *testing.T) {
		m, err := New(3, 11)
		require.NoError(t, err)
		before := m.Copy()
		hash := m.Hash()

		next, _, err := m.Apply(m.LegalActions()[0])

		require.NoError(t, err)
		require.Equal(t, before, m, "Receiver should not change")
		require.Equal(t, hash, m.Hash(), "Receiver hash should not change")
		require.NotEqual(t, hash, next.Hash(), "New match should differ")
	})

	t.Run("forking lineages from a common ancestor", func(t *testing.T) {
		root, err := New(4, 77)
		require.NoError(t, err)
		legal := root.LegalActions()
		require.GreaterOrEqual(t, len(legal), 2)

		a, _, err := root.Apply(legal[0])
		require.NoError(t, err)
		b, _, err := root.Apply(legal[len(legal)-1])
		require.NoError(t, err)
		a = playout(t, a, 1, nil)

		again, _, err := root.Apply(legal[len(legal)-1])
		require.NoError(t, err)
		require.Equal(t, again, b, "Playing one branch should not disturb another")
	})

	t.Run("passing the turn and drawing for the next seat", func(t *testing.T) {
		m := scenario(3, [][]Rank{{Handmaid, Guard}, {Priest}, {Baron}}, []Rank{King, Prince, Guard})

		next, out, err := m.Apply(Play(0, Handmaid))

		require.NoError(t, err)
		require.Equal(t, SeatID(1), next.Current(), "Turn should pass clockwise")
		require.Equal(t, SeatID(1), out.Next, "Outcome should name the next seat")
		require.Equal(t, []Rank{Priest, King}, next.Participant(1).Hand, "Next seat should draw")
		require.Equal(t, 2, next.DeckSize(), "Deck should lose a card")
		require.False(t, out.RoundOver, "Round should continue")
	})
}

func TestPlayout(t *testing.T) {
	t.Run("conserving cards and following the rules in random matches", func(t *testing.T) {
		for seats := 2; seats <= 4; seats++ {
			for seed := int64(1); seed <= 15; seed++ {
				m, err := New(seats, seed)
				require.NoError(t, err)

				final := playout(t, m, uint64(seed), func(before, after Match, out Outcome) {
					requireConserved(t, after)
					requireHandSizes(t, after)
					for _, a := range after.LegalActions() {
						require.False(t, a.Card == Guard && a.Guess == Guard, "Guard should never guess guard")
						if a.Target != a.Seat {
							require.False(t, after.seats[a.Target].Protected, "Protected seat should not be targeted")
						}
					}
					if !out.RoundOver {
						require.Equal(t, before.Round(), after.Round(), "Round should only change when it closes")
					}
				})

				require.True(t, final.Over(), "Match should end")
				require.NotEqual(t, NoSeat, final.Winner(), "Match should have a winner")
				require.GreaterOrEqual(t, final.Tokens()[final.Winner()], final.Threshold(), "Winner should hold the threshold")
				require.Empty(t, final.LegalActions(), "Finished match should offer nothing")
			}
		}
	})
}

func TestQueries(t *testing.T) {
	t.Run("listing other seats in turn order", func(t *testing.T) {
		m, err := New(4, 1)
		require.NoError(t, err)

		require.Equal(t, []SeatID{3, 0, 1}, m.Others(2))
	})

	t.Run("returning copies of participants", func(t *testing.T) {
		m, err := New(4, 1)
		require.NoError(t, err)

		p := m.Participant(0)
		p.Hand[0] = Princess
		p.Tokens = 9

		require.NotEqual(t, 9, m.Participant(0).Tokens, "Participant copy should not write through")
		requireConserved(t, m)
	})

	t.Run("masking rival hands in the view", func(t *testing.T) {
		m := scenario(3, [][]Rank{{Handmaid, Guard}, {Priest}, {Baron}}, []Rank{King})

		omniscient := m.View(NoSeat)
		mine := m.View(0)

		require.Len(t, omniscient, ViewSize(3))
		require.Len(t, mine, ViewSize(3))
		seat1Hand := viewHeader + viewPerSeat + 3
		require.Equal(t, int(Priest), omniscient[seat1Hand], "Omniscient view should show every hand")
		require.Equal(t, int(NoRank), mine[seat1Hand], "Rival hand should be masked")
		require.Equal(t, int(Handmaid), mine[viewHeader+3], "Own hand should be visible")
	})

	t.Run("hashing the hidden parts of the state", func(t *testing.T) {
		m := scenario(2, [][]Rank{{Guard, Priest}, {Baron}}, []Rank{King, Prince})
		reordered := scenario(2, [][]Rank{{Guard, Priest}, {Baron}}, []Rank{Prince, King})
		hidden := m.Copy()
		hidden.deck.hidden = Countess

		require.Equal(t, m.Hash(), m.Copy().Hash(), "Copies should hash alike")
		require.Equal(t, m.View(NoSeat), reordered.View(NoSeat))
		require.NotEqual(t, m.Hash(), reordered.Hash(), "Deck order should change the hash")
		require.NotEqual(t, m.Hash(), hidden.Hash(), "Hidden card should change the hash")
	})
}
