package metrics

import (
	"sync/atomic"
	"time"

	"loveletter/game"
)

// SearchMetric describes one call to the searcher.
type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration // wall time of the search
	Episodes     int           // completed across all workers
	Cutoff       int
	Evaluate     game.Evaluate
	FullPlayouts int  // rollouts that reached the end of the match
	IsTreeReset  bool // no subtree of the previous search could be kept
}

// MoveMetric is one applied action. Agents that do not search leave SearchMetric zero.
type MoveMetric struct {
	Step   int // 1-based, counted across rounds
	Round  int // round the action was played in
	Player game.SeatID
	Action game.Action
	SearchMetric
}

// GameMetric summarizes a match. Winner is NoSeat when the match was cut short.
type GameMetric struct {
	Seats          int
	Seed           int64
	StartingPlayer game.SeatID
	Winner         game.SeatID
	Rounds         int   // rounds dealt, the last one included
	Tokens         []int // per seat when the match stopped
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector counts the events of the search in progress. Workers call it concurrently.
type Collector interface {
	Start(goroutines, cutoff int, evaluate game.Evaluate)
	SetTreeReset(value bool)
	AddFullPlayout()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	cutoff       int
	evaluate     game.Evaluate
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	isTreeReset  atomic.Bool
}

// NewCollector returns a collector backed by atomic counters.
func NewCollector() Collector {
	return &collector{}
}

func (c *collector) SetTreeReset(value bool) {
	c.isTreeReset.Store(value)
}

// Start begins a new search, discarding the counts of the previous one.
func (c *collector) Start(goroutines, cutoff int, evaluate game.Evaluate) {
	c.startTime = time.Now()
	c.goroutines = goroutines
	c.cutoff = cutoff
	c.evaluate = evaluate
	c.episodes.Store(0)
	c.fullPlayouts.Store(0)
	c.isTreeReset.Store(false)
}

func (c *collector) AddFullPlayout() {
	c.fullPlayouts.Add(1)
}

func (c *collector) AddEpisode() {
	c.episodes.Add(1)
}

func (c *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   c.goroutines,
		Duration:     time.Since(c.startTime),
		Episodes:     int(c.episodes.Load()),
		FullPlayouts: int(c.fullPlayouts.Load()),
		Cutoff:       c.cutoff,
		Evaluate:     c.evaluate,
		IsTreeReset:  c.isTreeReset.Load(),
	}
}

type dummyCollector struct{}

// NewDummyCollector returns a collector that records nothing, for searches nobody measures.
func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (*dummyCollector) Start(goroutines, cutoff int, evaluate game.Evaluate) {}
func (*dummyCollector) SetTreeReset(value bool)                              {}
func (*dummyCollector) AddFullPlayout()                                      {}
func (*dummyCollector) AddEpisode()                                          {}
func (*dummyCollector) Complete() SearchMetric                               { return SearchMetric{} }
