package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Phase is what the seat on turn is expected to do.
type Phase string

const (
	// PhaseAttack: the seat on turn places an attack, covering first unless it
	// has just received.
	PhaseAttack Phase = "attack"
	// PhaseReceive: the seat on turn receives the current attack or passes.
	PhaseReceive Phase = "receive"
)

// HandSize is the number of tiles dealt to each seat.
const HandSize = 8

// Observer is notified once for every move a round accepts.
type Observer func(seat Seat, move Move)

// Result describes how a finished round was won.
type Result struct {
	Winner      Seat
	Team        Team
	Tile        Tile // the finishing attack
	Points      int
	Double      bool // finishing attack matched the winner's own latest cover
	PairedKings bool // last cover and finishing attack were the two kings
}

// Round is the authoritative state of a single Goita round.
// It is not safe for concurrent use.
type Round struct {
	id     uuid.UUID
	dealer Seat

	hands        [NumSeats]Hand
	boards       [NumSeats]Board
	hadBothKings [NumSeats]bool

	kingBlockUsed int
	currentAttack Tile
	attacker      Seat
	phase         Phase
	turn          Seat

	lastBlock       Tile
	lastBlockPlayer Seat

	finished  bool
	result    Result
	teamScore [NumTeams]int
	moves     int

	observer Observer
}

// NewRound starts a round from four dealt hands. The dealer opens with a
// cover and attack. Hands must form exactly the standard 32-tile set with
// eight tiles per seat.
func NewRound(hands [NumSeats][]Tile, dealer Seat) (*Round, error) {
	if !dealer.Valid() {
		return nil, fmt.Errorf("%w: dealer seat %d", ErrInvalidDeal, dealer)
	}
	if err := ValidateDeal(hands); err != nil {
		return nil, err
	}
	r := &Round{
		id:              uuid.New(),
		dealer:          dealer,
		currentAttack:   TileNone,
		attacker:        NoSeat,
		phase:           PhaseAttack,
		turn:            dealer,
		lastBlock:       TileNone,
		lastBlockPlayer: NoSeat,
	}
	for s := range NumSeats {
		r.hands[s] = HandOf(hands[s])
		r.hadBothKings[s] = r.hands[s].Has(TileGyoku) && r.hands[s].Has(TileOu)
	}
	return r, nil
}

// ID identifies the round for logs and archives. Clones share it.
func (r *Round) ID() uuid.UUID { return r.id }

// Dealer returns the seat that opened the round.
func (r *Round) Dealer() Seat { return r.dealer }

// Phase returns the expected action of the seat on turn.
func (r *Round) Phase() Phase { return r.phase }

// Turn returns the seat expected to move.
func (r *Round) Turn() Seat { return r.turn }

// Attacker returns the seat owning the latest attack or receive.
func (r *Round) Attacker() (Seat, bool) { return r.attacker, r.attacker != NoSeat }

// CurrentAttack returns the tile awaiting a response.
func (r *Round) CurrentAttack() (Tile, bool) { return r.currentAttack, r.currentAttack != TileNone }

// LastBlock returns the most recent cover in the round and who placed it.
func (r *Round) LastBlock() (Tile, Seat, bool) {
	return r.lastBlock, r.lastBlockPlayer, r.lastBlockPlayer != NoSeat
}

// KingBlockUsed counts receives made with a king.
func (r *Round) KingBlockUsed() int { return r.kingBlockUsed }

// HadBothKings reports whether the seat was dealt both kings.
func (r *Round) HadBothKings(s Seat) bool { return s.Valid() && r.hadBothKings[s] }

// Hand returns the seat's tiles in ascending order.
func (r *Round) Hand(s Seat) []Tile {
	if !s.Valid() {
		return nil
	}
	return r.hands[s].Tiles()
}

// HandCounts returns the seat's hand as per-rank counts.
func (r *Round) HandCounts(s Seat) Hand {
	if !s.Valid() {
		return Hand{}
	}
	return r.hands[s]
}

// HandSize returns how many tiles the seat still holds.
func (r *Round) HandSize(s Seat) int {
	if !s.Valid() {
		return 0
	}
	return r.hands[s].Size()
}

// Concealed returns the seat's face-down tiles in placement order.
func (r *Round) Concealed(s Seat) []Tile {
	if !s.Valid() {
		return nil
	}
	return r.boards[s].Concealed()
}

// ConcealedCount returns the size of the seat's face-down pile.
func (r *Round) ConcealedCount(s Seat) int { return len(r.Concealed(s)) }

// FaceUp returns every tile the seat has placed visibly.
func (r *Round) FaceUp(s Seat) []Tile {
	if !s.Valid() {
		return nil
	}
	return r.boards[s].FaceUp()
}

// Board returns a copy of the seat's placed tiles, hidden tiles included.
func (r *Round) Board(s Seat) Board {
	if !s.Valid() {
		return Board{}
	}
	return r.boards[s].clone()
}

// Finished reports whether a seat has emptied its hand.
func (r *Round) Finished() bool { return r.finished }

// Winner returns the seat that went out.
func (r *Round) Winner() (Seat, bool) {
	if !r.finished {
		return NoSeat, false
	}
	return r.result.Winner, true
}

// Result returns the outcome of a finished round.
func (r *Round) Result() (Result, bool) { return r.result, r.finished }

// TeamScore returns the points a team earned this round.
func (r *Round) TeamScore(t Team) int {
	if t < 0 || t >= NumTeams {
		return 0
	}
	return r.teamScore[t]
}

// MoveCount returns the number of accepted moves.
func (r *Round) MoveCount() int { return r.moves }

// Observe installs fn to be called after every accepted move, replacing any
// previous observer. A nil fn removes it.
func (r *Round) Observe(fn Observer) { r.observer = fn }

// Clone returns an independent deep copy. The observer is not carried over.
func (r *Round) Clone() *Round {
	c := *r
	for s := range NumSeats {
		c.boards[s] = r.boards[s].clone()
	}
	c.observer = nil
	return &c
}
