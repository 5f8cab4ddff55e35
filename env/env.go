package env

import (
	"errors"
	"fmt"

	"loveletter/agent"
	"loveletter/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	RewardWin     = 1.0
	RewardLose    = -1.0
	RewardInvalid = -1.5
)

var ErrInvalidScores = errors.New("invalid scores")

// Step is what one call to Env.Step observed.
type Step struct {
	Observation []int
	Reward      float64
	Done        bool
	Round       int
}

// Indexed is a legal action with its position in the action space.
type Indexed struct {
	Index  int
	Action game.Action
}

// Env is a reinforcement learning environment around a match. The learner picks actions
// by index into the candidate space of the seat to move; every other seat is played by
// a fixed agent. An episode ends with the match or on the first illegal pick.
type Env struct {
	seats int
	other agent.Agent
	rng   *rand.Rand
	match game.Match
}

func New(seats int, other agent.Agent, seed uint64) (*Env, error) {
	if seats < game.MinSeats || seats > game.MaxSeats {
		return nil, fmt.Errorf("%w: %d", game.ErrInvalidSeatCount, seats)
	}
	if other == nil {
		other = agent.NewRandom(seed)
	}
	e := &Env{seats: seats, other: other, rng: rand.New(rand.NewSource(seed))}
	if _, err := e.Reset(); err != nil {
		return nil, err
	}
	return e, nil
}

// ActionSpace is the number of action indices.
func (e *Env) ActionSpace() int {
	return game.CandidateCount(e.seats)
}

// ObservationSize is the length of every observation: the legal-action mask followed by
// the view of the seat to move.
func (e *Env) ObservationSize() int {
	return e.ActionSpace() + game.ViewSize(e.seats)
}

func (e *Env) Match() game.Match {
	return e.match
}

// Reset deals a fresh match from the environment's seed stream.
func (e *Env) Reset() ([]int, error) {
	m, err := game.New(e.seats, e.rng.Int63())
	if err != nil {
		return nil, err
	}
	e.match = m
	return Observe(e.match), nil
}

// Force puts the environment in m, e.g. to let a trained policy act in a match it did not
// deal.
func (e *Env) Force(m game.Match) []int {
	e.match = m
	return Observe(m)
}

// Step plays the action at index for the seat to move, then lets the other agent play
// until that seat is to move again or the match is over.
func (e *Env) Step(index int) (Step, error) {
	if index < 0 || index >= e.ActionSpace() {
		return Step{}, fmt.Errorf("action index %d out of range [0, %d)", index, e.ActionSpace())
	}

	action, ok := ActionFromIndex(e.match, index)
	if !ok {
		log.Debug().Int("index", index).Int("round", e.match.Round()).Msg("invalid action")
		return Step{Observation: Observe(e.match), Reward: RewardInvalid, Done: true, Round: e.match.Round()}, nil
	}

	next, reward, err := Advance(e.match, action, e.other)
	if err != nil {
		return Step{}, err
	}
	e.match = next
	return Step{Observation: Observe(next), Reward: reward, Done: next.Over(), Round: next.Round()}, nil
}

// Advance applies action, then plays other for every other seat until the seat that
// played action is to move again or the match is over. The reward is for that seat.
func Advance(m game.Match, action game.Action, other agent.Agent) (game.Match, float64, error) {
	if !m.IsLegal(action) {
		return m, RewardInvalid, nil
	}

	learner := m.Current()
	next, _, err := m.Apply(action)
	if err != nil {
		return m, 0, err
	}
	for next.Active() && next.Current() != learner {
		reply, _, err := other.Act(next, nil)
		if err != nil {
			return next, 0, fmt.Errorf("%s failed to act: %w", next.Current(), err)
		}
		next, _, err = next.Apply(reply)
		if err != nil {
			return next, 0, err
		}
	}

	if next.Over() {
		if next.Winner() == learner {
			return next, RewardWin, nil
		}
		return next, RewardLose, nil
	}
	return next, 0, nil
}

// Observe is the legal-action mask of the seat to move followed by its view of m.
func Observe(m game.Match) []int {
	candidates := game.CandidateActions(m.Current(), m.Seats())
	obs := make([]int, 0, len(candidates)+game.ViewSize(m.Seats()))
	for _, a := range candidates {
		if m.IsLegal(a) {
			obs = append(obs, 1)
		} else {
			obs = append(obs, 0)
		}
	}
	return append(obs, m.View(m.Current())...)
}

// ActionFromIndex returns the candidate at index if it is legal in m.
func ActionFromIndex(m game.Match, index int) (game.Action, bool) {
	candidates := game.CandidateActions(m.Current(), m.Seats())
	if index < 0 || index >= len(candidates) || !m.IsLegal(candidates[index]) {
		return game.Action{}, false
	}
	return candidates[index], true
}

// ActionsPossible lists the legal actions of m with their indices.
func ActionsPossible(m game.Match) []Indexed {
	var out []Indexed
	for i, a := range game.CandidateActions(m.Current(), m.Seats()) {
		if m.IsLegal(a) {
			out = append(out, Indexed{Index: i, Action: a})
		}
	}
	return out
}

// ActionByScore returns the legal action with the highest score, one score per index of
// the action space. Ties go to the lowest index.
func ActionByScore(m game.Match, scores []float64) (Indexed, float64, error) {
	if want := game.CandidateCount(m.Seats()); len(scores) != want {
		return Indexed{}, 0, fmt.Errorf("%w: got %d, want %d", ErrInvalidScores, len(scores), want)
	}
	possible := ActionsPossible(m)
	if len(possible) == 0 {
		return Indexed{}, 0, agent.ErrNoLegalAction
	}

	best := possible[0]
	for _, p := range possible[1:] {
		if scores[p.Index] > scores[best.Index] {
			best = p
		}
	}
	return best, scores[best.Index], nil
}
