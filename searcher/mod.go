package searcher

import "loveletter/game"

// Rewards are kept from the perspective of the seat that moved into a node, so a score
// for one seat is negated for every other seat.

const Win = 1.0
const Loss = -Win

// Segment is one step of a lineage: an action and the hash of the state it produced.
// Lineages let a searcher walk down the tree it built on its previous turn.
type Segment struct {
	Action    game.Action
	StateHash game.StateHash
}

// reward converts a score earned by scorer into the reward for player.
func reward(player, scorer game.SeatID, score float64) float64 {
	if player == scorer {
		return score
	}
	return -score
}
