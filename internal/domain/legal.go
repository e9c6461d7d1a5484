package domain

// LegalMoves lists every move seat may make, in a fixed order: Pass before
// receives, then ascending rank; cover+attack pairs are ordered by block,
// then attack. Seats not on turn, and finished rounds, have no moves.
func (r *Round) LegalMoves(seat Seat) []Move {
	if r.finished || !seat.Valid() || seat != r.turn {
		return nil
	}
	h := &r.hands[seat]
	var moves []Move

	switch {
	case r.phase == PhaseReceive:
		if r.currentAttack == TileNone {
			return nil
		}
		moves = append(moves, Pass{})
		for _, t := range h.Ranks() {
			if CanReceive(t, r.currentAttack) {
				moves = append(moves, Receive{Block: t})
			}
		}

	case !r.coverRequired():
		for _, t := range h.Ranks() {
			if r.canAttackWith(seat, t, 1) {
				moves = append(moves, Attack{Tile: t})
			}
		}

	default:
		ranks := h.Ranks()
		for _, b := range ranks {
			for _, a := range ranks {
				if a == b && h.Count(b) < 2 {
					continue
				}
				if r.canAttackWith(seat, a, 2) {
					moves = append(moves, CoverThenAttack{Block: b, Attack: a})
				}
			}
		}
	}
	return moves
}

// IsLegal reports whether m is among the moves LegalMoves would return.
func (r *Round) IsLegal(seat Seat, m Move) bool {
	for _, lm := range r.LegalMoves(seat) {
		if lm == m {
			return true
		}
	}
	return false
}
