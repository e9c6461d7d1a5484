package bot

import (
	"errors"

	"goita/internal/domain"
)

// ErrNoLegalMoves is returned when a brain is asked to move with nothing legal.
var ErrNoLegalMoves = errors.New("no legal moves")

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	// CalculateMove picks one of legal for seat. legal is never modified.
	CalculateMove(round *domain.Round, seat domain.Seat, legal []domain.Move) (domain.Move, error)
	// OnMove is called after every move the round accepts, from any seat.
	OnMove(round *domain.Round, seat domain.Seat, move domain.Move)
}
