package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"loveletter/agent"
	"loveletter/experiments/metrics"
	"loveletter/game"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("playing every game of every matchup", func(t *testing.T) {
		scripted := metrics.AgentConfig{ID: 1, Kind: agent.KindScripted}
		random := metrics.AgentConfig{ID: 2, Kind: agent.KindRandom}
		exp := Experiment{
			Name:     "smoke",
			Configs:  []metrics.AgentConfig{scripted, random},
			MatchUps: [][]metrics.AgentConfig{{scripted, random}, {random, random, scripted}},
		}
		dir := t.TempDir()

		result, err := Run(context.Background(), exp, Options{Dir: dir, Games: 3, Parallel: 4, Seed: 7})

		require.NoError(t, err)
		require.Len(t, result.Games, 6)
		for i, record := range result.Games {
			require.Equal(t, i+1, record.ID, "Records should be ordered by game")
			require.NotEmpty(t, record.Agents)
		}
		require.Equal(t, 6, result.Wins[1]+result.Wins[2])
		require.NotEmpty(t, result.Moves)

		runs, err := os.ReadDir(filepath.Join(dir, "smoke"))
		require.NoError(t, err)
		require.Len(t, runs, 1)
		for _, file := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
			require.FileExists(t, filepath.Join(dir, "smoke", runs[0].Name(), file))
		}
	})

	t.Run("rotating seats between games", func(t *testing.T) {
		a := metrics.AgentConfig{ID: 1, Kind: agent.KindRandom}
		b := metrics.AgentConfig{ID: 2, Kind: agent.KindRandom}
		exp := Experiment{Name: "rotation", MatchUps: [][]metrics.AgentConfig{{a, b}}}

		result, err := Run(context.Background(), exp, Options{Games: 2, Parallel: 1})

		require.NoError(t, err)
		require.Equal(t, []int{1, 2}, result.Games[0].Agents)
		require.Equal(t, []int{2, 1}, result.Games[1].Agents)
	})

	t.Run("keeping games stopped by the move limit", func(t *testing.T) {
		a := metrics.AgentConfig{ID: 1, Kind: agent.KindRandom}
		b := metrics.AgentConfig{ID: 2, Kind: agent.KindScripted}
		exp := Experiment{Name: "limit", MatchUps: [][]metrics.AgentConfig{{a, b}}}

		result, err := Run(context.Background(), exp, Options{Games: 3, Parallel: 2, MaxMoves: 3})

		require.NoError(t, err)
		require.Len(t, result.Games, 3)
		for _, record := range result.Games {
			require.Equal(t, game.NoSeat, record.Winner, "Unfinished games have no winner")
			require.Equal(t, 3, record.TotalMoves)
		}
		require.Len(t, result.Moves, 9)
		require.Empty(t, result.Wins)
	})

	t.Run("failing on an unknown agent kind", func(t *testing.T) {
		bad := metrics.AgentConfig{ID: 1, Kind: "oracle"}
		exp := Experiment{Name: "bad", MatchUps: [][]metrics.AgentConfig{{bad, bad}}}

		_, err := Run(context.Background(), exp, Options{Games: 1})

		require.Error(t, err)
	})
}

func TestPreset(t *testing.T) {
	t.Run("building every named experiment", func(t *testing.T) {
		for _, name := range PresetNames() {
			exp, err := Preset(name, 3, metrics.AgentConfig{Goroutines: 2, Episodes: 10})
			require.NoError(t, err)

			require.Equal(t, name, exp.Name)
			require.NotEmpty(t, exp.MatchUps)
			for _, matchup := range exp.MatchUps {
				require.Len(t, matchup, 3, "Every seat should have an agent")
			}
		}
	})

	t.Run("rejecting an unknown name", func(t *testing.T) {
		_, err := Preset("speedup", 2, metrics.AgentConfig{})

		require.Error(t, err)
	})
}
