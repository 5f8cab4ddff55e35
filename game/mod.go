package game

// TODO: the searcher should own this interface so the game package does not need to know about search

type StateHash uint64

// State should be immutable - operations on State always return a new copy
type State interface {
	Player() SeatID
	LegalMoves() []Action
	Play(Action) State
	Hash() StateHash
	Winner() SeatID
}

// Evaluates the game state to a score between -1 and 1 indicating how
// favorable the current player's position is to a winning (positive) outcome.
type Evaluate func(State) float64

// Player is the seat to move, NoSeat once the match is over.
func (m Match) Player() SeatID {
	if !m.Active() {
		return NoSeat
	}
	return m.current
}

func (m Match) LegalMoves() []Action {
	return m.LegalActions()
}

// Play is Apply for callers that only hand over legal moves. It panics otherwise.
func (m Match) Play(a Action) State {
	next, _, err := m.Apply(a)
	if err != nil {
		panic(err)
	}
	return next
}
