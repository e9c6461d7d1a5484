package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"goita/internal/domain"
)

// Service contains Goita use-cases operating on domain state.
type Service struct {
	rng            *rand.Rand
	maxOnesPerSeat int
	dealRetryLimit int
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		rng:            rng,
		maxOnesPerSeat: DefaultMaxOnesPerSeat,
		dealRetryLimit: DefaultDealRetryLimit,
	}
}

// WithDealRules overrides the redeal limits. maxOnes <= 0 disables redeals.
func (s *Service) WithDealRules(maxOnes, retries int) *Service {
	s.maxOnesPerSeat = maxOnes
	if retries > 0 {
		s.dealRetryLimit = retries
	}
	return s
}

var (
	ErrNoRound       = errors.New("no round in progress")
	ErrRoundFinished = errors.New("round already finished")
	ErrUnknownSeat   = errors.New("seat not found")
)

// StartRound deals a fresh round opened by dealer.
func (s *Service) StartRound(dealer domain.Seat) (*domain.Round, []Event, error) {
	if !dealer.Valid() {
		return nil, nil, fmt.Errorf("%w: dealer %d", ErrUnknownSeat, dealer)
	}
	hands, err := domain.Deal(s.rng, s.maxOnesPerSeat, s.dealRetryLimit)
	if err != nil {
		return nil, nil, err
	}
	return s.StartRoundWithHands(hands, dealer)
}

// StartRoundWithHands starts a round from a predetermined deal.
func (s *Service) StartRoundWithHands(hands [domain.NumSeats][]domain.Tile, dealer domain.Seat) (*domain.Round, []Event, error) {
	round, err := domain.NewRound(hands, dealer)
	if err != nil {
		return nil, nil, err
	}

	events := make([]Event, 0, domain.NumSeats+2)
	events = append(events, Event{
		Kind: EventRoundStarted,
		Payload: RoundStartedPayload{
			RoundID: round.ID().String(),
			Dealer:  dealer,
			Turn:    round.Turn(),
		},
	})
	for seat := range domain.Seat(domain.NumSeats) {
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{Seat: seat, Hand: round.Hand(seat)},
			Recipients: []domain.Seat{seat},
		})
	}
	events = append(events, legalMovesEvent(round))
	return round, events, nil
}

// ApplyMove validates and applies a move, emitting the resulting events.
// Rejected moves leave the round unchanged and wrap domain.ErrIllegalMove.
func (s *Service) ApplyMove(round *domain.Round, seat domain.Seat, move domain.Move) ([]Event, error) {
	if round == nil {
		return nil, ErrNoRound
	}
	if round.Finished() {
		return nil, ErrRoundFinished
	}
	if !seat.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSeat, seat)
	}
	if err := round.Apply(seat, move); err != nil {
		return nil, err
	}

	attack, _ := round.CurrentAttack()
	applied := MoveAppliedPayload{
		RoundID:       round.ID().String(),
		Sequence:      round.MoveCount(),
		Seat:          seat,
		Move:          domain.Public(move),
		Phase:         round.Phase(),
		Turn:          round.Turn(),
		CurrentAttack: attack,
	}
	for s := range domain.Seat(domain.NumSeats) {
		applied.HandSizes[s] = round.HandSize(s)
	}

	events := []Event{{Kind: EventMoveApplied, Payload: applied}}
	if move.Kind() != domain.KindPass {
		events = append(events, Event{
			Kind:       EventHandUpdated,
			Payload:    HandDealtPayload{Seat: seat, Hand: round.Hand(seat)},
			Recipients: []domain.Seat{seat},
		})
	}

	if round.Finished() {
		events = append(events, roundEndedEvent(round))
		return events, nil
	}
	return append(events, legalMovesEvent(round)), nil
}

func legalMovesEvent(round *domain.Round) Event {
	seat := round.Turn()
	return Event{
		Kind:       EventLegalMoves,
		Payload:    LegalMovesPayload{Seat: seat, Phase: round.Phase(), Moves: round.LegalMoves(seat)},
		Recipients: []domain.Seat{seat},
	}
}

func roundEndedEvent(round *domain.Round) Event {
	res, _ := round.Result()
	p := RoundEndedPayload{
		RoundID: round.ID().String(),
		Dealer:  round.Dealer(),
		Result:  res,
		Moves:   round.MoveCount(),
	}
	for t := range domain.Team(domain.NumTeams) {
		p.TeamScores[t] = round.TeamScore(t)
	}
	for s := range domain.Seat(domain.NumSeats) {
		p.Concealed[s] = round.Concealed(s)
	}
	return Event{Kind: EventRoundEnded, Payload: p}
}
