package bot

import (
	"fmt"

	"goita/internal/domain"
)

// Agent represents an autonomous bot player bound to one seat.
type Agent struct {
	ID       string
	Name     string
	Seat     domain.Seat
	Strategy Brain
}

// NewAgent creates an agent at seat. Strategies that track the round from
// one seat's point of view are bound to it.
func NewAgent(id, name string, seat domain.Seat, strategy Brain) *Agent {
	if b, ok := strategy.(interface{ Bind(domain.Seat) }); ok {
		b.Bind(seat)
	}
	return &Agent{ID: id, Name: name, Seat: seat, Strategy: strategy}
}

// Play asks the agent to calculate its move based on the current round state.
func (a *Agent) Play(round *domain.Round) (domain.Move, error) {
	if round.Turn() != a.Seat {
		return nil, fmt.Errorf("agent %s at seat %s asked to play on seat %s's turn", a.ID, a.Seat, round.Turn())
	}
	return a.SelectMove(round, a.Seat, round.LegalMoves(a.Seat))
}

// SelectMove delegates to the strategy, refusing to answer with nothing legal.
func (a *Agent) SelectMove(round *domain.Round, seat domain.Seat, legal []domain.Move) (domain.Move, error) {
	if len(legal) == 0 {
		return nil, ErrNoLegalMoves
	}
	return a.Strategy.CalculateMove(round, seat, legal)
}

// ObserveMove notifies the agent of an applied move.
func (a *Agent) ObserveMove(round *domain.Round, seat domain.Seat, move domain.Move) {
	a.Strategy.OnMove(round, seat, move)
}
