package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"goita/internal/domain"
)

// Policy chooses a move for a seat from its legal moves.
type Policy interface {
	SelectMove(round *domain.Round, seat domain.Seat, legal []domain.Move) (domain.Move, error)
}

// MoveObserver is implemented by policies that track public play.
type MoveObserver interface {
	ObserveMove(round *domain.Round, seat domain.Seat, move domain.Move)
}

// ErrStepLimit is returned when a simulated round does not finish in time.
var ErrStepLimit = errors.New("simulation step limit reached")

// Simulation is the outcome of one simulated round.
type Simulation struct {
	Round  *domain.Round
	Events []Event
}

// randomPolicy plays a uniformly random legal move.
type randomPolicy struct {
	rng *rand.Rand
}

func (p randomPolicy) SelectMove(_ *domain.Round, seat domain.Seat, legal []domain.Move) (domain.Move, error) {
	if len(legal) == 0 {
		return nil, fmt.Errorf("no legal moves for seat %s", seat)
	}
	return legal[p.rng.Intn(len(legal))], nil
}

// Simulate plays one round to completion. Seats without a policy play
// random legal moves drawn from the service's rng. Every policy that
// implements MoveObserver sees every applied move, with other seats' covers
// masked.
func (s *Service) Simulate(ctx context.Context, dealer domain.Seat, policies [domain.NumSeats]Policy, maxSteps int) (Simulation, error) {
	for seat, p := range policies {
		if p == nil {
			policies[seat] = randomPolicy{rng: s.rng}
		}
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	round, events, err := s.StartRound(dealer)
	if err != nil {
		return Simulation{}, err
	}
	round.Observe(func(seat domain.Seat, move domain.Move) {
		for i, p := range policies {
			o, ok := p.(MoveObserver)
			if !ok {
				continue
			}
			seen := move
			if domain.Seat(i) != seat {
				seen = domain.Public(move)
			}
			o.ObserveMove(round, seat, seen)
		}
	})

	sim := Simulation{Round: round, Events: events}
	for step := 0; !round.Finished(); step++ {
		if err := ctx.Err(); err != nil {
			return sim, err
		}
		if step >= maxSteps {
			return sim, ErrStepLimit
		}
		seat := round.Turn()
		legal := round.LegalMoves(seat)
		move, err := policies[seat].SelectMove(round, seat, legal)
		if err != nil {
			return sim, fmt.Errorf("seat %s: %w", seat, err)
		}
		evs, err := s.ApplyMove(round, seat, move)
		if err != nil {
			return sim, fmt.Errorf("seat %s chose %v: %w", seat, move, err)
		}
		sim.Events = append(sim.Events, evs...)
	}
	return sim, nil
}
