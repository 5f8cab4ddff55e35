package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"loveletter/experiments/metrics"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Prefix of every environment variable read by Load.
const Prefix = "LOVELETTER_"

type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Match
	Seats    int      `env:"SEATS" envDefault:"4"`
	Seed     int64    `env:"SEED" envDefault:"451"`
	MaxMoves int      `env:"MAX_MOVES" envDefault:"300"`
	Agents   []string `env:"AGENTS" envSeparator:"," envDefault:"search,scripted,random,random"`

	// Search
	Goroutines  int           `env:"GOROUTINES" envDefault:"8"`
	Episodes    int           `env:"EPISODES" envDefault:"150"`
	Duration    time.Duration `env:"DURATION" envDefault:"0s"`
	Cutoff      int           `env:"CUTOFF" envDefault:"100"`
	Evaluation  string        `env:"EVALUATION" envDefault:"hand"`
	Temperature float64       `env:"TEMPERATURE" envDefault:"1"`

	// Experiments
	Games     int    `env:"GAMES" envDefault:"30"`
	Parallel  int    `env:"PARALLEL" envDefault:"4"`
	OutputDir string `env:"OUTPUT_DIR" envDefault:"experiments"`
}

// Load reads the dotenv file at path, if any, into the environment without overriding
// variables already set, then parses the environment. An empty path means ".env".
func Load(path string) (Config, error) {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Episodes <= 0 && c.Duration <= 0 {
		return errors.New("either episodes or duration must be positive")
	}
	if c.Goroutines <= 0 {
		return fmt.Errorf("goroutines must be positive, got %d", c.Goroutines)
	}
	return nil
}

// Agent is the agent config of the given kind with the search settings of c.
func (c Config) Agent(id int, kind string) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:          id,
		Kind:        kind,
		Goroutines:  c.Goroutines,
		Duration:    c.Duration,
		Episodes:    c.Episodes,
		Cutoff:      c.Cutoff,
		Evaluation:  c.Evaluation,
		Temperature: c.Temperature,
	}
}
