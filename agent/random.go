package agent

import (
	"loveletter/experiments/metrics"
	"loveletter/game"
	"loveletter/searcher"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	seed  uint64
	round int
	rng   *rand.Rand
}

// NewRandom returns an agent that plays a uniformly random legal action. Its stream is
// reseeded at the start of every round from seed and the round number, so a round replays
// the same way whatever happened before it.
func NewRandom(seed uint64) Agent {
	return &randomAgent{seed: seed}
}

func (a *randomAgent) Act(m game.Match, _ []searcher.Segment) (game.Action, metrics.SearchMetric, error) {
	if a.rng == nil || a.round != m.Round() {
		a.round = m.Round()
		a.rng = rand.New(rand.NewSource(a.seed + uint64(a.round)))
	}
	legal := m.LegalActions()
	if len(legal) == 0 {
		return game.Action{}, metrics.SearchMetric{}, ErrNoLegalAction
	}
	return legal[a.rng.Intn(len(legal))], metrics.SearchMetric{}, nil
}

type fallbackAgent struct {
	inner Agent
	seed  uint64
	calls uint64
}

// NewFallback wraps inner so that an illegal or failed choice is replaced by a random
// legal action.
func NewFallback(inner Agent, seed uint64) Agent {
	return &fallbackAgent{inner: inner, seed: seed}
}

func (a *fallbackAgent) Act(m game.Match, lineage []searcher.Segment) (game.Action, metrics.SearchMetric, error) {
	a.calls++
	action, metric, err := a.inner.Act(m, lineage)
	if err == nil && m.IsLegal(action) {
		return action, metric, nil
	}

	legal := m.LegalActions()
	if len(legal) == 0 {
		return game.Action{}, metric, ErrNoLegalAction
	}
	rng := rand.New(rand.NewSource(a.seed + a.calls))
	return legal[rng.Intn(len(legal))], metric, nil
}
