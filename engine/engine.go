package engine

import (
	"context"
	"errors"

	"loveletter/experiments/metrics"
	"loveletter/game"
)

const MaxMoves = 10000

var ErrMoveLimit = errors.New("move limit reached")

type Engine interface {
	// Run plays the match till there's a winner or a max number of moves is reached
	Run(ctx context.Context) (winner game.SeatID, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
