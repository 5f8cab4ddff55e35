package searcher

import (
	"math"
	"sync"
	"time"

	"loveletter/experiments/metrics"
	"loveletter/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	evaluate   game.Evaluate
	seed       uint64
	searches   uint64
	root       *decision
	metrics    metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

// WithSeed seeds the rollout policy. Each worker of each search derives its own stream.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: max(goroutines, 1),
		cutoff:     math.MaxInt,
		evaluate:   game.EvaluateHand,
		seed:       uint64(time.Now().UnixNano()),
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches from state and returns the visit count of every explored action at
// the root. lineage lists the actions played since the previous call, which lets the
// searcher keep the subtree it already built for state.
func (m *MCTS) Simulate(state game.State, lineage []Segment) (map[game.Action]float64, metrics.SearchMetric) {
	m.metrics.Start(m.goroutines, m.cutoff, m.evaluate)
	m.findRoot(lineage, state)

	// Run simulations to collect statistics
	m.searches++
	if m.episodes > 0 {
		m.iterate(state)
	} else {
		m.countdown(state)
	}
	metric := m.metrics.Complete()

	return m.root.Policy(), metric
}

func (m *MCTS) iterate(state game.State) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		rng := m.workerRand(i)
		go func() {
			defer wg.Done()

			for range task {
				m.simulate(state, rng)
				m.metrics.AddEpisode()
			}
		}()
	}

	wg.Wait()
}

func (m *MCTS) countdown(state game.State) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		rng := m.workerRand(i)
		go func() {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
					m.simulate(state, rng)
					m.metrics.AddEpisode()
				}
			}
		}()
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

func (m *MCTS) workerRand(worker int) *rand.Rand {
	return rand.New(rand.NewSource(m.seed ^ (m.searches << 16) ^ uint64(worker)))
}

// findRoot follows lineage down the previous tree. The old tree is dropped when the walk
// leaves it or ends anywhere but at state.
func (m *MCTS) findRoot(lineage []Segment, state game.State) {
	root := traverse(m.root, lineage)
	if root == nil || root.hash != state.Hash() {
		m.root = newDecision(nil, game.NoSeat, state)
		m.metrics.SetTreeReset(true)
		return
	}
	root.parent = nil
	m.root = root
	m.metrics.SetTreeReset(false)
}

func traverse(root *decision, lineage []Segment) *decision {
	if root == nil {
		return nil
	}

	node := root
	for _, segment := range lineage {
		child := node.child(segment.Action)
		if child == nil { // Node has not expanded this action
			return nil
		}
		if child.hash != segment.StateHash {
			log.Warn().Msgf("node's state hash %d does not match segment's state hash %d", child.hash, segment.StateHash)
			return nil
		}
		node = child
	}
	return node
}

func (m *MCTS) simulate(state game.State, rng *rand.Rand) {
	node, state := selectThenExpand(m.root, state)
	scorer, score := rollout(state, m.cutoff, m.evaluate, m.metrics, rng)
	backup(node, scorer, score)
}

func selectThenExpand(root *decision, state game.State) (*decision, game.State) {
	parent := root
	child, state, selected := parent.SelectOrExpand(state)
	for selected && (child != parent) {
		parent = child
		child, state, selected = parent.SelectOrExpand(state)
	}
	return child, state
}

// rollout plays random actions from state until the match ends or cutoff actions were
// played. It returns the seat the score belongs to.
func rollout(state game.State, cutoff int, evaluate game.Evaluate, metrics metrics.Collector, rng *rand.Rand) (game.SeatID, float64) {
	depth := 0
	actions := state.LegalMoves()
	// Rollout till game over or for cutoff number of actions
	for len(actions) > 0 && (depth < cutoff) {
		action := actions[rng.Intn(len(actions))] // Random rollout policy
		state = state.Play(action)
		actions = state.LegalMoves()
		depth++
	}

	if len(actions) == 0 { // Game over before cutoff
		metrics.AddFullPlayout()
		return state.Winner(), Win
	}

	// At cutoff state, return an evaluation score from current player's perspective
	return state.Player(), evaluate(state)
}

func backup(node *decision, scorer game.SeatID, score float64) {
	for node != nil {
		node = node.Backup(scorer, score)
	}
}
