package agent

import (
	"math"

	"loveletter/experiments/metrics"
	"loveletter/game"
	"loveletter/searcher"

	"golang.org/x/exp/rand"
)

type searchAgent struct {
	mcts *searcher.MCTS
}

// NewSearch returns an agent for actual game play during evaluation. It plays the most
// visited action.
func NewSearch(mcts *searcher.MCTS) Agent {
	return searchAgent{mcts: mcts}
}

func (a searchAgent) Act(m game.Match, lineage []searcher.Segment) (game.Action, metrics.SearchMetric, error) {
	policy, metric := a.mcts.Simulate(m, lineage)
	if len(policy) == 0 {
		return game.Action{}, metric, ErrNoLegalAction
	}
	return findMax(policy, m.LegalActions()), metric, nil
}

// findMax returns the action with the most visits. Ties go to the action listed first in
// order so the choice does not depend on map iteration.
func findMax(policy map[game.Action]float64, order []game.Action) game.Action {
	var maxAction game.Action
	maxVisit := -1.0
	for _, action := range order {
		if visit, ok := policy[action]; ok && visit > maxVisit {
			maxVisit = visit
			maxAction = action
		}
	}
	return maxAction
}

type samplingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewSampling returns an agent for self-play during training. It samples actions in
// proportion to their visits raised to 1/temperature.
func NewSampling(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		temperature = 1.0
	}
	return &samplingAgent{mcts: mcts, temperature: temperature, rng: rand.New(rand.NewSource(seed))}
}

func (a *samplingAgent) Act(m game.Match, lineage []searcher.Segment) (game.Action, metrics.SearchMetric, error) {
	policy, metric := a.mcts.Simulate(m, lineage)
	if len(policy) == 0 {
		return game.Action{}, metric, ErrNoLegalAction
	}
	order := m.LegalActions()
	return sample(adjustTemperature(policy, a.temperature), order, a.rng.Float64()), metric, nil
}

func adjustTemperature(policy map[game.Action]float64, temperature float64) map[game.Action]float64 {
	// Compute temperature-adjusted action probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make(map[game.Action]float64, len(policy))
	for action, visit := range policy {
		prob := math.Pow(visit, exponent)
		sum += prob
		adjusted[action] = prob
	}
	// Normalize
	for action := range adjusted {
		adjusted[action] /= sum
	}
	return adjusted
}

// sample walks the probabilities in order until their sum passes sampled.
func sample(policy map[game.Action]float64, order []game.Action, sampled float64) game.Action {
	cumulative := 0.0
	var lastAction game.Action
	for _, action := range order {
		prob, ok := policy[action]
		if !ok {
			continue
		}
		lastAction = action
		cumulative += prob
		if sampled < cumulative {
			return action
		}
	}
	return lastAction // Fallback in case of rounding errors
}
