package experiments

import (
	"fmt"
	"sort"
	"time"

	"loveletter/agent"
	"loveletter/experiments/metrics"
)

const TimeBudget = 10 * time.Millisecond

var parallelConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: agent.KindSearch, Goroutines: 1, Duration: TimeBudget},
	{ID: 2, Kind: agent.KindSearch, Goroutines: 2, Duration: TimeBudget},
	{ID: 3, Kind: agent.KindSearch, Goroutines: 4, Duration: TimeBudget},
	{ID: 4, Kind: agent.KindSearch, Goroutines: 8, Duration: TimeBudget},
	{ID: 5, Kind: agent.KindSearch, Goroutines: 16, Duration: TimeBudget},
}

// Throughput pits every parallel config against itself, for the same playing strength
// and similar match length.
func Throughput(seats int) Experiment {
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range parallelConfigs {
		matchUps = append(matchUps, repeat(config, seats))
	}
	return Experiment{Name: "throughput", Configs: parallelConfigs, MatchUps: matchUps}
}

// Strength pairs every parallel config against the sequential baseline.
func Strength(seats int) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Kind: agent.KindSearch, Goroutines: 1, Duration: TimeBudget}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range parallelConfigs {
		matchUps = append(matchUps, append([]metrics.AgentConfig{config}, repeat(baseline, seats-1)...))
	}
	return Experiment{Name: "strength", Configs: append([]metrics.AgentConfig{baseline}, parallelConfigs...), MatchUps: matchUps}
}

// Cutoff pairs rollouts cut short and scored by an evaluation against full playouts.
func Cutoff(seats int) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Kind: agent.KindSearch, Goroutines: 8, Duration: TimeBudget} // Without cutoff (full playout)
	cutoffConfigs := []metrics.AgentConfig{
		{ID: 1, Kind: agent.KindSearch, Goroutines: 8, Duration: TimeBudget, Cutoff: 5, Evaluation: "hand"},
		{ID: 2, Kind: agent.KindSearch, Goroutines: 8, Duration: TimeBudget, Cutoff: 15, Evaluation: "hand"},
		{ID: 3, Kind: agent.KindSearch, Goroutines: 8, Duration: TimeBudget, Cutoff: 15, Evaluation: "tokens"},
		{ID: 4, Kind: agent.KindSearch, Goroutines: 8, Duration: TimeBudget, Cutoff: 40, Evaluation: "hand"},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range cutoffConfigs {
		matchUps = append(matchUps, append([]metrics.AgentConfig{config}, repeat(baseline, seats-1)...))
	}
	return Experiment{Name: "cutoff", Configs: append([]metrics.AgentConfig{baseline}, cutoffConfigs...), MatchUps: matchUps}
}

// Baselines measures the searcher against the scripted and random agents.
func Baselines(seats int, search metrics.AgentConfig) Experiment {
	search.ID = 1
	search.Kind = agent.KindSearch
	scripted := metrics.AgentConfig{ID: 2, Kind: agent.KindScripted}
	random := metrics.AgentConfig{ID: 3, Kind: agent.KindRandom}
	return Experiment{
		Name:    "baselines",
		Configs: []metrics.AgentConfig{search, scripted, random},
		MatchUps: [][]metrics.AgentConfig{
			append([]metrics.AgentConfig{search}, repeat(scripted, seats-1)...),
			append([]metrics.AgentConfig{search}, repeat(random, seats-1)...),
			append([]metrics.AgentConfig{scripted}, repeat(random, seats-1)...),
		},
	}
}

// Preset builds a named experiment for a table of the given size. search configures the
// searcher of the baselines experiment.
func Preset(name string, seats int, search metrics.AgentConfig) (Experiment, error) {
	switch name {
	case "throughput":
		return Throughput(seats), nil
	case "strength":
		return Strength(seats), nil
	case "cutoff":
		return Cutoff(seats), nil
	case "baselines":
		return Baselines(seats, search), nil
	default:
		return Experiment{}, fmt.Errorf("unknown experiment %q (want one of %v)", name, PresetNames())
	}
}

func PresetNames() []string {
	names := []string{"throughput", "strength", "cutoff", "baselines"}
	sort.Strings(names)
	return names
}

func repeat(config metrics.AgentConfig, n int) []metrics.AgentConfig {
	out := make([]metrics.AgentConfig, n)
	for i := range out {
		out[i] = config
	}
	return out
}
