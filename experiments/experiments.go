package experiments

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"loveletter/agent"
	"loveletter/engine"
	"loveletter/experiments/metrics"
	"loveletter/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Experiment is a set of matchups, each listing the agent config of every seat.
type Experiment struct {
	Name     string
	Configs  []metrics.AgentConfig
	MatchUps [][]metrics.AgentConfig
}

type Options struct {
	Dir      string // root of the run directories
	Games    int    // per matchup
	Parallel int    // games played at once
	MaxMoves int
	Seed     int64
}

// Result holds every record of a finished experiment.
type Result struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
	Wins  map[int]int // AgentConfig.ID -> matches won
}

// Run plays every matchup opts.Games times, opts.Parallel games at a time. Seats rotate
// between games so each config opens in turn. A game stopped by the move limit is kept
// as a record without a winner. Records are written to a new run directory
// under opts.Dir when it is set.
func Run(ctx context.Context, exp Experiment, opts Options) (Result, error) {
	games := opts.Games * len(exp.MatchUps)
	gameRecords := make([]metrics.GameRecord, games)
	moveRecords := make([][]metrics.MoveRecord, games)
	var completed atomic.Int32

	log.Info().Msgf("starting %s experiment with %d games...", exp.Name, games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Parallel, 1))
	for mi, matchup := range exp.MatchUps {
		for i := 0; i < opts.Games; i++ {
			id := mi*opts.Games + i
			seats := rotate(matchup, i)
			g.Go(func() error {
				seed := opts.Seed + int64(id)
				winner, gameMetric, moveMetrics, err := runGame(ctx, seats, seed, opts.MaxMoves)
				if err != nil && !errors.Is(err, engine.ErrMoveLimit) {
					return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
				}

				gameRecords[id] = metrics.GameRecord{ID: id + 1, Agents: configIDs(seats), GameMetric: gameMetric}
				for _, mm := range moveMetrics {
					moveRecords[id] = append(moveRecords[id], metrics.MoveRecord{Game: id + 1, MoveMetric: mm})
				}

				if winner == game.NoSeat {
					log.Warn().Msgf("completed game %d of %d (matchup %d) without a winner",
						completed.Add(1), games, mi+1)
					return nil
				}
				log.Info().Msgf("completed game %d of %d (matchup %d) with winner: agent %d",
					completed.Add(1), games, mi+1, seats[winner].ID)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	result := Result{Games: gameRecords, Wins: map[int]int{}}
	for i, record := range gameRecords {
		result.Moves = append(result.Moves, moveRecords[i]...)
		if record.Winner != game.NoSeat { // Move limit reached
			result.Wins[record.Agents[record.Winner]]++
		}
	}

	if opts.Dir != "" {
		if err := store(opts.Dir, exp, result); err != nil {
			return result, err
		}
	}
	return result, nil
}

// store writes experiment metadata and results to a new run directory.
func store(dir string, exp Experiment, result Result) error {
	writer, err := metrics.NewWriter(dir, exp.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(exp.Configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(result.Games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored move records")
	return nil
}

// runGame executes a single match with one agent per config and returns the winner
func runGame(ctx context.Context, configs []metrics.AgentConfig, seed int64, maxMoves int) (game.SeatID, metrics.GameMetric, []metrics.MoveMetric, error) {
	match, err := game.New(len(configs), seed)
	if err != nil {
		return game.NoSeat, metrics.GameMetric{}, nil, err
	}

	agents := make([]agent.Agent, len(configs))
	for i, config := range configs {
		a, err := agent.New(config, uint64(seed)*uint64(game.MaxSeats)+uint64(i))
		if err != nil {
			return game.NoSeat, metrics.GameMetric{}, nil, err
		}
		agents[i] = agent.NewFallback(a, uint64(seed))
	}

	e, err := engine.LocalEngine(match, agents, engine.WithMaxMoves(maxMoves))
	if err != nil {
		return game.NoSeat, metrics.GameMetric{}, nil, err
	}
	return e.Run(ctx)
}

// rotate shifts the seating by n so that seat 0 goes to a different config every game.
func rotate(configs []metrics.AgentConfig, n int) []metrics.AgentConfig {
	out := make([]metrics.AgentConfig, len(configs))
	for i := range configs {
		out[i] = configs[(i+n)%len(configs)]
	}
	return out
}

func configIDs(configs []metrics.AgentConfig) []int {
	ids := make([]int, len(configs))
	for i, config := range configs {
		ids[i] = config.ID
	}
	return ids
}
