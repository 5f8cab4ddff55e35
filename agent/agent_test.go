package agent

import (
	"errors"
	"testing"

	"loveletter/experiments/metrics"
	"loveletter/game"
	"loveletter/searcher"

	"github.com/stretchr/testify/require"
)

// states returns every state reached while random agents play a match.
func states(t *testing.T, seats int, seed int64) []game.Match {
	t.Helper()
	m, err := game.New(seats, seed)
	require.NoError(t, err)

	random := NewRandom(uint64(seed))
	var out []game.Match
	for m.Active() {
		out = append(out, m)
		a, _, err := random.Act(m, nil)
		require.NoError(t, err)
		m, _, err = m.Apply(a)
		require.NoError(t, err)
	}
	return append(out, m)
}

type stubAgent struct {
	action game.Action
	err    error
	calls  int
}

func (s *stubAgent) Act(game.Match, []searcher.Segment) (game.Action, metrics.SearchMetric, error) {
	s.calls++
	return s.action, metrics.SearchMetric{Episodes: 7}, s.err
}

func TestAgentsPlayLegalActions(t *testing.T) {
	configs := []metrics.AgentConfig{
		{Kind: KindRandom},
		{Kind: KindScripted},
		{Kind: KindSearch, Goroutines: 2, Episodes: 30, Cutoff: 10, Evaluation: "tokens"},
		{Kind: KindSampling, Goroutines: 2, Episodes: 30, Cutoff: 10, Evaluation: "hand", Temperature: 0.5},
	}
	matches := states(t, 3, 17)

	for _, config := range configs {
		t.Run(config.Kind, func(t *testing.T) {
			a, err := New(config, 4)
			require.NoError(t, err)

			for i, m := range matches {
				if i%5 != 0 || !m.Active() {
					continue
				}
				action, _, err := a.Act(m, nil)
				require.NoError(t, err)
				require.True(t, m.IsLegal(action), "%s should be legal", action)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("rejecting an unknown kind", func(t *testing.T) {
		_, err := New(metrics.AgentConfig{Kind: "oracle"}, 1)

		require.Error(t, err)
	})

	t.Run("resolving evaluations by name", func(t *testing.T) {
		require.NotNil(t, Evaluation("tokens"))
		require.NotNil(t, Evaluation("hand"))
		require.Nil(t, Evaluation(""))
	})
}

func TestAgentsOnFinishedMatch(t *testing.T) {
	matches := states(t, 2, 5)
	final := matches[len(matches)-1]
	require.True(t, final.Over())

	for _, a := range []Agent{NewRandom(1), NewScripted(), NewFallback(NewScripted(), 1)} {
		_, _, err := a.Act(final, nil)

		require.ErrorIs(t, err, ErrNoLegalAction)
	}
}

func TestRandom(t *testing.T) {
	t.Run("replaying the same choices from the same seed", func(t *testing.T) {
		matches := states(t, 4, 3)
		a1, a2 := NewRandom(9), NewRandom(9)

		for _, m := range matches {
			if !m.Active() {
				continue
			}
			got1, _, err := a1.Act(m, nil)
			require.NoError(t, err)
			got2, _, err := a2.Act(m, nil)
			require.NoError(t, err)
			require.Equal(t, got1, got2)
		}
	})
}

func TestFallback(t *testing.T) {
	m, err := game.New(2, 1)
	require.NoError(t, err)
	legal := m.LegalActions()

	t.Run("passing a legal choice through", func(t *testing.T) {
		inner := &stubAgent{action: legal[0]}

		got, metric, err := NewFallback(inner, 1).Act(m, nil)

		require.NoError(t, err)
		require.Equal(t, legal[0], got)
		require.Equal(t, 7, metric.Episodes, "Inner metrics should be kept")
	})

	t.Run("replacing an illegal choice", func(t *testing.T) {
		inner := &stubAgent{action: game.Play(1, game.Princess)}

		got, _, err := NewFallback(inner, 1).Act(m, nil)

		require.NoError(t, err)
		require.True(t, m.IsLegal(got))
		require.Equal(t, 1, inner.calls)
	})

	t.Run("replacing a failed choice", func(t *testing.T) {
		inner := &stubAgent{action: legal[0], err: errors.New("model unavailable")}

		got, _, err := NewFallback(inner, 1).Act(m, nil)

		require.NoError(t, err)
		require.True(t, m.IsLegal(got))
	})
}

// hasSafeAction reports whether the seat to move can keep a held princess.
func hasSafeAction(m game.Match) bool {
	for _, a := range m.LegalActions() {
		if a.Card != game.Princess && !(a.Card == game.Prince && a.Target == a.Seat) {
			return true
		}
	}
	return false
}

func TestScripted(t *testing.T) {
	t.Run("holding on to the princess", func(t *testing.T) {
		found := 0
		for seed := int64(1); seed <= 40; seed++ {
			for _, m := range states(t, 4, seed) {
				if !m.Active() || !m.Participant(m.Current()).Holds(game.Princess) || !hasSafeAction(m) {
					continue
				}
				found++
				a, _, err := NewScripted().Act(m, nil)
				require.NoError(t, err)
				require.NotEqual(t, game.Princess, a.Card, "Princess should not be discarded by choice")
				require.False(t, a.Card == game.Prince && a.Target == a.Seat, "Prince on self would discard the princess")
			}
		}
		require.Positive(t, found, "Some seat should hold the princess with a choice")
	})

	t.Run("guessing the most likely hidden rank", func(t *testing.T) {
		unseen := map[game.Rank]int{game.Guard: 4, game.Priest: 2, game.King: 1}

		require.Greater(t, likelihood(game.Priest, unseen), likelihood(game.King, unseen))
		require.Zero(t, likelihood(game.Countess, unseen))
	})

	t.Run("finding the kept card", func(t *testing.T) {
		require.Equal(t, game.Baron, other([]game.Rank{game.Guard, game.Baron}, game.Guard))
		require.Equal(t, game.Guard, other([]game.Rank{game.Guard, game.Guard}, game.Guard))
		require.Equal(t, game.NoRank, other([]game.Rank{game.Guard}, game.Guard))
	})
}

func TestSampling(t *testing.T) {
	t.Run("sharpening the policy with a low temperature", func(t *testing.T) {
		a, b := game.Play(0, game.Handmaid), game.Play(0, game.Countess)
		policy := map[game.Action]float64{a: 30, b: 10}

		flat := adjustTemperature(policy, 1.0)
		sharp := adjustTemperature(policy, 0.25)

		require.InDelta(t, 0.75, flat[a], 1e-9)
		require.Greater(t, sharp[a], flat[a])
		require.InDelta(t, 1.0, sharp[a]+sharp[b], 1e-9)
	})

	t.Run("sampling in the given order", func(t *testing.T) {
		a, b := game.Play(0, game.Handmaid), game.Play(0, game.Countess)
		policy := map[game.Action]float64{a: 0.25, b: 0.75}
		order := []game.Action{a, b}

		require.Equal(t, a, sample(policy, order, 0.1))
		require.Equal(t, b, sample(policy, order, 0.5))
		require.Equal(t, b, sample(policy, order, 1.0), "Rounding should fall back to the last action")
	})

	t.Run("breaking ties on the given order", func(t *testing.T) {
		a, b := game.Play(0, game.Handmaid), game.Play(0, game.Countess)

		require.Equal(t, b, findMax(map[game.Action]float64{a: 3, b: 3}, []game.Action{b, a}))
	})
}
