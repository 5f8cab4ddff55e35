package agent

import (
	"errors"
	"fmt"

	"loveletter/experiments/metrics"
	"loveletter/game"
	"loveletter/searcher"
)

var ErrNoLegalAction = errors.New("no legal action")

type Agent interface {
	// Act picks an action for the seat to move in m. lineage lists the actions played since
	// the agent last acted, oldest first, and may be nil. Agents that do not search return
	// an empty SearchMetric.
	Act(m game.Match, lineage []searcher.Segment) (game.Action, metrics.SearchMetric, error)
}

// Kinds of agent that New can build.
const (
	KindSearch   = "search"
	KindSampling = "sampling"
	KindScripted = "scripted"
	KindRandom   = "random"
)

// New builds the agent described by config. seed feeds every source of randomness so two
// agents built from the same arguments play alike.
func New(config metrics.AgentConfig, seed uint64) (Agent, error) {
	switch config.Kind {
	case KindSearch, "":
		return NewSearch(NewMCTS(config, seed)), nil
	case KindSampling:
		return NewSampling(NewMCTS(config, seed), config.Temperature, seed), nil
	case KindScripted:
		return NewScripted(), nil
	case KindRandom:
		return NewRandom(seed), nil
	default:
		return nil, fmt.Errorf("unknown agent kind: %q", config.Kind)
	}
}

// NewMCTS builds a searcher from config.
func NewMCTS(config metrics.AgentConfig, seed uint64) *searcher.MCTS {
	options := []searcher.Option{searcher.WithSeed(seed)}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	if evaluate := Evaluation(config.Evaluation); evaluate != nil {
		options = append(options, searcher.WithEvaluationFn(evaluate))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(config.Goroutines, options...)
}

// Evaluation resolves an evaluation function by name, nil for the searcher's default.
func Evaluation(name string) game.Evaluate {
	switch name {
	case "tokens":
		return game.EvaluateTokens
	case "hand":
		return game.EvaluateHand
	default:
		return nil
	}
}
