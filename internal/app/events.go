package app

import "goita/internal/domain"

// EventKind identifies emitted round events for dispatch.
type EventKind string

const (
	EventRoundStarted EventKind = "round_started"
	EventHandDealt    EventKind = "hand_dealt"
	EventHandUpdated  EventKind = "hand_updated"
	EventLegalMoves   EventKind = "legal_moves"
	EventMoveApplied  EventKind = "move_applied"
	EventRoundEnded   EventKind = "round_ended"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []domain.Seat // empty means broadcast
}

type RoundStartedPayload struct {
	RoundID string
	Dealer  domain.Seat
	Turn    domain.Seat
}

// HandDealtPayload carries a seat's private hand. Used for both
// EventHandDealt and EventHandUpdated.
type HandDealtPayload struct {
	Seat domain.Seat
	Hand []domain.Tile
}

type LegalMovesPayload struct {
	Seat  domain.Seat
	Phase domain.Phase
	Moves []domain.Move
}

// MoveAppliedPayload is public: covered tiles are masked.
type MoveAppliedPayload struct {
	RoundID       string
	Sequence      int
	Seat          domain.Seat
	Move          domain.Move
	Phase         domain.Phase
	Turn          domain.Seat
	CurrentAttack domain.Tile
	HandSizes     [domain.NumSeats]int
}

type RoundEndedPayload struct {
	RoundID    string
	Dealer     domain.Seat
	Result     domain.Result
	TeamScores [domain.NumTeams]int
	Concealed  [domain.NumSeats][]domain.Tile
	Moves      int
}
