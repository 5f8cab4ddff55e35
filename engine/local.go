package engine

import (
	"context"
	"fmt"
	"time"

	"loveletter/agent"
	"loveletter/experiments/metrics"
	"loveletter/game"
	"loveletter/searcher"

	"github.com/rs/zerolog/log"
)

// Update is one applied action as seen by everyone at the table.
type Update struct {
	Step    int
	Action  game.Action
	Outcome game.Outcome
	Match   game.Match
	Hash    game.StateHash
}

type Option func(e *Local)

// WithMaxMoves bounds the number of actions Run applies.
func WithMaxMoves(moves int) Option {
	return func(e *Local) {
		if moves > 0 {
			e.maxMoves = moves
		}
	}
}

// WithObserver registers a function called after every applied action.
func WithObserver(observe func(Update)) Option {
	return func(e *Local) {
		if observe != nil {
			e.observers = append(e.observers, observe)
		}
	}
}

type Local struct {
	Match     game.Match
	agents    []agent.Agent
	maxMoves  int
	observers []func(Update)
}

// LocalEngine seats one agent per seat of match.
func LocalEngine(match game.Match, agents []agent.Agent, options ...Option) (*Local, error) {
	if len(agents) != match.Seats() {
		return nil, fmt.Errorf("%d agents for %d seats", len(agents), match.Seats())
	}

	e := &Local{
		Match:    match,
		agents:   agents,
		maxMoves: MaxMoves,
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// Run executes the entire match loop until a winner is found. Every action an agent
// returns goes through Apply, so an illegal one stops the match with an error.
func (e *Local) Run(ctx context.Context) (game.SeatID, metrics.GameMetric, []metrics.MoveMetric, error) {
	// Actions each seat has not seen since it last acted
	lineages := make([][]searcher.Segment, len(e.agents))

	gameMetric := metrics.GameMetric{
		Seats:          e.Match.Seats(),
		Seed:           e.Match.Seed(),
		StartingPlayer: e.Match.Current(),
		Winner:         game.NoSeat,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric
	finish := func() metrics.GameMetric {
		gameMetric.EndTime = time.Now()
		gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
		gameMetric.TotalMoves = len(moveMetrics)
		gameMetric.Rounds = e.Match.Round()
		gameMetric.Tokens = e.Match.Tokens()
		gameMetric.Winner = e.Match.Winner()
		return gameMetric
	}

	log.Info().Msgf("%s is starting", e.Match.Current())

	for step := 1; e.Match.Active(); step++ {
		if err := ctx.Err(); err != nil {
			return game.NoSeat, finish(), moveMetrics, err
		}
		if step > e.maxMoves {
			log.Warn().Msgf("stopped after %d moves (no winner yet)", e.maxMoves)
			return game.NoSeat, finish(), moveMetrics, ErrMoveLimit
		}

		seat := e.Match.Current()
		action, searchMetric, err := e.agents[seat].Act(e.Match, lineages[seat])
		if err != nil {
			return game.NoSeat, finish(), moveMetrics, fmt.Errorf("%s failed to act: %w", seat, err)
		}
		lineages[seat] = nil

		next, outcome, err := e.Match.Apply(action)
		if err != nil {
			return game.NoSeat, finish(), moveMetrics, fmt.Errorf("%s: %w", seat, err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Round:        e.Match.Round(),
			Player:       seat,
			Action:       action,
			SearchMetric: searchMetric,
		})

		log.Debug().
			Int("step", step).
			Int("round", e.Match.Round()).
			Stringer("action", action).
			Msg("applied action")
		logOutcome(outcome)

		update := Update{Step: step, Action: action, Outcome: outcome, Match: next, Hash: next.Hash()}
		for i := range lineages {
			lineages[i] = append(lineages[i], searcher.Segment{Action: action, StateHash: update.Hash})
		}
		for _, observe := range e.observers {
			observe(update)
		}

		e.Match = next
	}

	log.Info().Msgf("match won by %s after %d rounds", e.Match.Winner(), e.Match.Round())
	return e.Match.Winner(), finish(), moveMetrics, nil
}

func logOutcome(outcome game.Outcome) {
	for _, seat := range outcome.Eliminated {
		log.Debug().Stringer("seat", seat).Msg("eliminated")
	}
	if outcome.RoundOver {
		log.Info().Msgf("round won by %v", outcome.RoundWinners)
	}
}
