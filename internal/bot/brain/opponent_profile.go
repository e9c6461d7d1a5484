package brain

import "goita/internal/domain"

// OpponentProfile tracks the behavioral history of a specific seat.
type OpponentProfile struct {
	Seat domain.Seat
	// Declined marks ranks the seat passed on when an opponent attacked.
	Declined [domain.MaxTile + 1]bool
	// KingDeclined is set when the seat passed on an attack a king could receive.
	KingDeclined bool
}

// NewOpponentProfile initializes a profile for a specific seat.
func NewOpponentProfile(seat domain.Seat) *OpponentProfile {
	return &OpponentProfile{Seat: seat}
}

// RecordPass notes that the seat declined to receive attack from an opponent.
func (p *OpponentProfile) RecordPass(attack domain.Tile) {
	if !attack.Valid() {
		return
	}
	p.Declined[attack] = true
	if attack != domain.TileShi && attack != domain.TileKyo {
		p.KingDeclined = true
	}
}

// CanPossiblyReceive returns true unless the seat has already declined both
// this rank and every king-receivable attack.
func (p *OpponentProfile) CanPossiblyReceive(t domain.Tile) bool {
	if !t.Valid() {
		return false
	}
	if !p.Declined[t] {
		return true
	}
	if t == domain.TileShi || t == domain.TileKyo {
		return false
	}
	return !p.KingDeclined
}
