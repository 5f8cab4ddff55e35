package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"loveletter/agent"
	"loveletter/config"
	"loveletter/engine"
	"loveletter/experiments"
	"loveletter/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(os.Getenv(config.Prefix + "ENV_FILE"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := command(cfg).Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func command(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "loveletter",
		Usage: "play Love Letter matches between search, scripted and random agents",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: cfg.LogLevel, Usage: "zerolog level"},
			&cli.IntFlag{Name: "seats", Value: cfg.Seats, Usage: "seats at the table (2-4)"},
			&cli.Int64Flag{Name: "seed", Value: cfg.Seed},
			&cli.IntFlag{Name: "max-moves", Value: cfg.MaxMoves},
			&cli.IntFlag{Name: "goroutines", Value: cfg.Goroutines, Usage: "search workers per agent"},
			&cli.IntFlag{Name: "episodes", Value: cfg.Episodes, Usage: "search episodes per move"},
			&cli.DurationFlag{Name: "duration", Value: cfg.Duration, Usage: "search time per move, overrides episodes"},
			&cli.IntFlag{Name: "cutoff", Value: cfg.Cutoff, Usage: "rollout depth before evaluating"},
			&cli.StringFlag{Name: "evaluation", Value: cfg.Evaluation, Usage: "hand or tokens"},
			&cli.FloatFlag{Name: "temperature", Value: cfg.Temperature, Usage: "sampling agent temperature"},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(cmd.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("invalid log level: %w", err)
			}
			zerolog.SetGlobalLevel(level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "play a single match",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "agents", Value: cfg.Agents, Usage: "agent kind per seat"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return play(ctx, apply(cfg, cmd), cmd.StringSlice("agents"))
				},
			},
			{
				Name:      "experiment",
				Usage:     "run a named experiment and store its records as CSV",
				ArgsUsage: strings.Join(experiments.PresetNames(), "|"),
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "games", Value: cfg.Games, Usage: "games per matchup"},
					&cli.IntFlag{Name: "parallel", Value: cfg.Parallel, Usage: "games played at once"},
					&cli.StringFlag{Name: "dir", Value: cfg.OutputDir, Usage: "root of the run directories"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					c := apply(cfg, cmd)
					c.Games = int(cmd.Int("games"))
					c.Parallel = int(cmd.Int("parallel"))
					c.OutputDir = cmd.String("dir")
					return experiment(ctx, c, cmd.Args().First())
				},
			},
		},
	}
}

// apply overrides cfg with the root flags.
func apply(cfg config.Config, cmd *cli.Command) config.Config {
	cfg.Seats = int(cmd.Int("seats"))
	cfg.Seed = cmd.Int64("seed")
	cfg.MaxMoves = int(cmd.Int("max-moves"))
	cfg.Goroutines = int(cmd.Int("goroutines"))
	cfg.Episodes = int(cmd.Int("episodes"))
	cfg.Duration = cmd.Duration("duration")
	cfg.Cutoff = int(cmd.Int("cutoff"))
	cfg.Evaluation = cmd.String("evaluation")
	cfg.Temperature = cmd.Float("temperature")
	return cfg
}

func play(ctx context.Context, cfg config.Config, kinds []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	match, err := game.New(cfg.Seats, cfg.Seed)
	if err != nil {
		return err
	}
	if len(kinds) != cfg.Seats {
		return fmt.Errorf("%d agents for %d seats", len(kinds), cfg.Seats)
	}

	agents := make([]agent.Agent, len(kinds))
	for i, kind := range kinds {
		a, err := agent.New(cfg.Agent(i+1, kind), uint64(cfg.Seed)+uint64(i))
		if err != nil {
			return err
		}
		agents[i] = agent.NewFallback(a, uint64(cfg.Seed))
	}

	e, err := engine.LocalEngine(match, agents,
		engine.WithMaxMoves(cfg.MaxMoves),
		engine.WithObserver(func(u engine.Update) {
			event := log.Info().Int("step", u.Step)
			if len(u.Outcome.Eliminated) > 0 {
				event = event.Str("eliminated", fmt.Sprint(u.Outcome.Eliminated))
			}
			if u.Outcome.RoundOver {
				event = event.Ints("tokens", u.Match.Tokens())
			}
			event.Msg(u.Action.String())
		}),
	)
	if err != nil {
		return err
	}

	winner, gameMetric, _, err := e.Run(ctx)
	if err != nil {
		return err
	}
	log.Info().
		Int("rounds", gameMetric.Rounds).
		Int("moves", gameMetric.TotalMoves).
		Dur("duration", gameMetric.Duration).
		Msgf("%s (%s) wins the match", winner, kinds[winner])
	return nil
}

func experiment(ctx context.Context, cfg config.Config, name string) error {
	if name == "" {
		return fmt.Errorf("missing experiment name (want one of %v)", experiments.PresetNames())
	}
	exp, err := experiments.Preset(name, cfg.Seats, cfg.Agent(0, agent.KindSearch))
	if err != nil {
		return err
	}

	result, err := experiments.Run(ctx, exp, experiments.Options{
		Dir:      cfg.OutputDir,
		Games:    cfg.Games,
		Parallel: cfg.Parallel,
		MaxMoves: cfg.MaxMoves,
		Seed:     cfg.Seed,
	})
	if err != nil {
		return err
	}
	for _, c := range exp.Configs {
		log.Info().Int("agent", c.ID).Str("kind", c.Kind).Msgf("won %d of %d games", result.Wins[c.ID], len(result.Games))
	}
	return nil
}
