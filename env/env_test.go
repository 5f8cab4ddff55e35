package env

import (
	"testing"

	"loveletter/agent"
	"loveletter/game"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("rejecting unsupported seat counts", func(t *testing.T) {
		_, err := New(5, nil, 1)

		require.ErrorIs(t, err, game.ErrInvalidSeatCount)
	})

	t.Run("sizing the spaces by seat count", func(t *testing.T) {
		e, err := New(4, nil, 1)
		require.NoError(t, err)

		require.Equal(t, 47, e.ActionSpace())
		require.Equal(t, 47+game.ViewSize(4), e.ObservationSize())
	})
}

func TestStep(t *testing.T) {
	t.Run("ending the episode on an illegal index", func(t *testing.T) {
		e, err := New(4, nil, 451)
		require.NoError(t, err)
		obs := Observe(e.Match())
		illegal := -1
		for i := 0; i < e.ActionSpace(); i++ {
			if obs[i] == 0 {
				illegal = i
				break
			}
		}
		require.NotEqual(t, -1, illegal)

		step, err := e.Step(illegal)

		require.NoError(t, err)
		require.Equal(t, RewardInvalid, step.Reward)
		require.True(t, step.Done)
		require.Equal(t, obs, step.Observation, "Match should not move")
	})

	t.Run("rejecting an index out of the action space", func(t *testing.T) {
		e, err := New(2, nil, 451)
		require.NoError(t, err)

		_, err = e.Step(e.ActionSpace())

		require.Error(t, err)
	})

	t.Run("playing episodes to a win or a loss", func(t *testing.T) {
		for seed := uint64(1); seed <= 5; seed++ {
			e, err := New(3, agent.NewScripted(), seed)
			require.NoError(t, err)
			learner := agent.NewRandom(seed)

			var last Step
			for steps := 0; !last.Done; steps++ {
				require.Less(t, steps, 2000)
				require.Equal(t, game.SeatID(0), e.Match().Current(), "Learner should always be to move")

				a, _, err := learner.Act(e.Match(), nil)
				require.NoError(t, err)
				index := indexOf(t, e.Match(), a)

				last, err = e.Step(index)
				require.NoError(t, err)
				require.Len(t, last.Observation, e.ObservationSize())
				if !last.Done {
					require.Zero(t, last.Reward, "Only the end of the match is rewarded")
				}
			}

			require.True(t, e.Match().Over())
			if e.Match().Winner() == 0 {
				require.Equal(t, RewardWin, last.Reward)
			} else {
				require.Equal(t, RewardLose, last.Reward)
			}
		}
	})
}

func indexOf(t *testing.T, m game.Match, a game.Action) int {
	t.Helper()
	for _, p := range ActionsPossible(m) {
		if p.Action == a {
			return p.Index
		}
	}
	require.FailNow(t, "action is not possible", "%s", a)
	return -1
}

func TestActions(t *testing.T) {
	m, err := game.New(4, 9)
	require.NoError(t, err)

	t.Run("matching the mask of the observation", func(t *testing.T) {
		obs := Observe(m)
		possible := ActionsPossible(m)

		require.Len(t, possible, len(m.LegalActions()))
		for _, p := range possible {
			require.Equal(t, 1, obs[p.Index])
			got, ok := ActionFromIndex(m, p.Index)
			require.True(t, ok)
			require.Equal(t, p.Action, got)
		}
	})

	t.Run("refusing illegal and out of range indices", func(t *testing.T) {
		_, ok := ActionFromIndex(m, -1)
		require.False(t, ok)
		_, ok = ActionFromIndex(m, game.CandidateCount(4))
		require.False(t, ok)
	})

	t.Run("choosing the best scoring legal action", func(t *testing.T) {
		possible := ActionsPossible(m)
		scores := make([]float64, game.CandidateCount(4))
		for i := range scores {
			scores[i] = 100 // illegal actions never win
		}
		for i, p := range possible {
			scores[p.Index] = float64(i)
		}

		best, score, err := ActionByScore(m, scores)

		require.NoError(t, err)
		require.Equal(t, possible[len(possible)-1], best)
		require.Equal(t, float64(len(possible)-1), score)
	})

	t.Run("rejecting scores of the wrong length", func(t *testing.T) {
		_, _, err := ActionByScore(m, []float64{1, 2})

		require.ErrorIs(t, err, ErrInvalidScores)
	})

	t.Run("forcing a match", func(t *testing.T) {
		e, err := New(4, nil, 1)
		require.NoError(t, err)

		obs := e.Force(m)

		require.Equal(t, Observe(m), obs)
		require.Equal(t, m.Hash(), e.Match().Hash())
	})
}
