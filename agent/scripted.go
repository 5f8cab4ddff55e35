package agent

import (
	"sort"

	"loveletter/experiments/metrics"
	"loveletter/game"
	"loveletter/searcher"
)

type scriptedAgent struct{}

// NewScripted returns a greedy rule-based agent. It keeps its stronger card, never
// discards the princess when it can help it, only duels with the baron when holding a
// high card, and aims guard guesses at the rank most likely still hidden.
func NewScripted() Agent {
	return scriptedAgent{}
}

type scoredAction struct {
	action game.Action
	score  float64
	order  int
}

func (scriptedAgent) Act(m game.Match, _ []searcher.Segment) (game.Action, metrics.SearchMetric, error) {
	legal := m.LegalActions()
	if len(legal) == 0 {
		return game.Action{}, metrics.SearchMetric{}, ErrNoLegalAction
	}

	me := m.Participant(m.Current())
	unseen := unseenCounts(m, me)
	tokens := m.Tokens()

	scored := make([]scoredAction, len(legal))
	for i, a := range legal {
		scored[i] = scoredAction{action: a, score: scoreAction(a, me, unseen, tokens), order: i}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].order < scored[j].order
	})
	return scored[0].action, metrics.SearchMetric{}, nil
}

func scoreAction(a game.Action, me game.Participant, unseen map[game.Rank]int, tokens []int) float64 {
	kept := other(me.Hand, a.Card)
	// Keep the stronger card for the end of the round
	score := float64(game.NumRanks - a.Card.Strength())

	switch a.Card {
	case game.Princess:
		score -= 100
	case game.Guard:
		if a.Target != a.Seat {
			score += 3 * likelihood(a.Guess, unseen)
		}
	case game.Baron:
		if a.Target != a.Seat && kept.Strength() < game.Prince.Strength() {
			score -= 5
		}
	case game.Prince:
		if a.Target == a.Seat && kept == game.Princess {
			score -= 100
		}
	case game.King:
		if a.Target != a.Seat && kept.Strength() >= game.Prince.Strength() {
			score -= 3
		}
	case game.Handmaid:
		score += 1
	}

	// Aim at the leader
	if a.Target != a.Seat {
		score += 0.1 * float64(tokens[a.Target])
	}
	return score
}

// other returns the card kept after played leaves the hand.
func other(hand []game.Rank, played game.Rank) game.Rank {
	for i, card := range hand {
		if card == played {
			if len(hand) == 2 {
				return hand[1-i]
			}
			break
		}
	}
	return game.NoRank
}

// unseenCounts counts every card the seat has not seen: the catalog minus its own hand,
// every discard and the face-up set-aside cards.
func unseenCounts(m game.Match, me game.Participant) map[game.Rank]int {
	unseen := map[game.Rank]int{}
	for _, r := range game.Ranks() {
		unseen[r] = r.Count()
	}
	seen := append([]game.Rank{}, me.Hand...)
	seen = append(seen, m.FaceUp()...)
	for _, p := range m.Participants() {
		seen = append(seen, p.Discards...)
	}
	for _, r := range seen {
		unseen[r]--
	}
	return unseen
}

func likelihood(guess game.Rank, unseen map[game.Rank]int) float64 {
	total := 0
	for r, n := range unseen {
		if r != game.Guard {
			total += n
		}
	}
	if total == 0 {
		return 0
	}
	return float64(unseen[guess]) / float64(total)
}
