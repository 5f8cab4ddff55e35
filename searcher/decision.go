package searcher

import (
	"math"
	"sync"

	"loveletter/game"
)

// decision is a tree node for one state. Every transition of a match is determined by the
// state it is played from, so there is no other kind of node.
type decision struct {
	sync.Mutex
	parent     *decision
	player     game.SeatID // seat whose action led here
	hash       game.StateHash
	unexplored []game.Action
	explored   []game.Action
	children   []*decision
	rewards    float64
	visits     float64
}

func newDecision(parent *decision, player game.SeatID, state game.State) *decision {
	return &decision{
		parent:     parent,
		player:     player,
		hash:       state.Hash(),
		unexplored: state.LegalMoves(),
	}
}

// SelectOrExpand descends one level. A node with untried actions expands one of them and
// reports selected=false; a fully expanded node selects the child with the highest UCT
// value and reports selected=true; a terminal node returns itself.
func (d *decision) SelectOrExpand(state game.State) (*decision, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) == 0 && len(d.explored) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.unexplored) > 0 {
		last := len(d.unexplored) - 1
		action := d.unexplored[last]
		d.unexplored = d.unexplored[:last]

		childState := state.Play(action)
		child := newDecision(d, state.Player(), childState)
		child.applyLoss()
		d.explored = append(d.explored, action)
		d.children = append(d.children, child)
		return child, childState, false
	}

	ith := d.pickChild()
	child := d.children[ith]
	child.applyLoss()
	return child, state.Play(d.explored[ith]), true
}

// CSquared weighs exploration against the mean reward in uct.
const CSquared = 2.0

// uct is q/n + sqrt(CSquared*ln(N)/n) for a child with reward sum q and n visits under a
// parent with N visits.
func uct(q, n, N float64) float64 {
	return q/n + math.Sqrt(CSquared*math.Log(N)/n)
}

// pickChild returns the index of the child with the highest UCT value, the first one on
// a tie. Children always carry at least one visit, real or virtual.
func (d *decision) pickChild() int {
	N := math.Max(d.visits, 1)

	maxIndex := 0
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		if score := child.score(N); score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) score(parentVisits float64) float64 {
	d.Lock()
	defer d.Unlock()

	return uct(d.rewards, d.visits, parentVisits)
}

// Backup records a score earned by scorer and returns the parent, reversing the virtual
// loss applied on the way down.
func (d *decision) Backup(scorer game.SeatID, score float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.rewards -= Loss
		d.visits--
	}

	d.rewards += reward(d.player, scorer, score)
	d.visits++

	return d.parent
}

func (d *decision) Visits() float64 {
	d.Lock()
	defer d.Unlock()

	return d.visits
}

// Policy maps each explored action to its visit count.
func (d *decision) Policy() map[game.Action]float64 {
	d.Lock()
	defer d.Unlock()

	policy := make(map[game.Action]float64, len(d.explored))
	for i, action := range d.explored {
		policy[action] = d.children[i].Visits()
	}
	return policy
}

// child returns the child reached by action, nil if it was never expanded.
func (d *decision) child(action game.Action) *decision {
	d.Lock()
	defer d.Unlock()

	for i, explored := range d.explored {
		if explored == action {
			return d.children[i]
		}
	}
	return nil
}
