package domain

// CanReceive reports whether block may receive attack: same rank, or a king
// against anything except 1 and 2.
func CanReceive(block, attack Tile) bool {
	if !block.Valid() || !attack.Valid() {
		return false
	}
	if block == attack {
		return true
	}
	return block.IsKing() && attack != TileShi && attack != TileKyo
}

// kingUnlocked reports whether seat may attack with a king. spend is the
// number of tiles the move takes from hand; spending the whole hand always
// unlocks.
func (r *Round) kingUnlocked(seat Seat, spend int) bool {
	return r.hadBothKings[seat] || r.kingBlockUsed > 0 || r.hands[seat].Size() == spend
}

func (r *Round) canAttackWith(seat Seat, t Tile, spend int) bool {
	return !t.IsKing() || r.kingUnlocked(seat, spend)
}

// coverRequired is true unless the seat on turn has just received.
func (r *Round) coverRequired() bool {
	return r.currentAttack != TileNone || r.attacker == NoSeat
}

func (r *Round) checkTurn(seat Seat) error {
	switch {
	case r.finished:
		return illegal("round is finished")
	case !seat.Valid():
		return illegal("seat %d out of range", seat)
	case seat != r.turn:
		return illegal("seat %s moved out of turn, expected %s", seat, r.turn)
	}
	return nil
}

func (r *Round) checkReceive(seat Seat, block Tile) error {
	if err := r.checkTurn(seat); err != nil {
		return err
	}
	if r.phase != PhaseReceive || r.currentAttack == TileNone {
		return illegal("no attack to receive")
	}
	if !r.hands[seat].Has(block) {
		return illegal("seat %s does not hold %s", seat, block)
	}
	if !CanReceive(block, r.currentAttack) {
		return illegal("%s cannot receive %s", block, r.currentAttack)
	}
	return nil
}

func (r *Round) checkPass(seat Seat) error {
	if err := r.checkTurn(seat); err != nil {
		return err
	}
	if r.phase != PhaseReceive || r.currentAttack == TileNone {
		return illegal("nothing to pass on")
	}
	return nil
}

func (r *Round) checkAttack(seat Seat, t Tile) error {
	if err := r.checkTurn(seat); err != nil {
		return err
	}
	if r.phase != PhaseAttack || r.coverRequired() {
		return illegal("seat %s must cover before attacking", seat)
	}
	if !r.hands[seat].Has(t) {
		return illegal("seat %s does not hold %s", seat, t)
	}
	if !r.canAttackWith(seat, t, 1) {
		return illegal("king attack with %s is locked", t)
	}
	return nil
}

func (r *Round) checkCoverThenAttack(seat Seat, block, attack Tile) error {
	if err := r.checkTurn(seat); err != nil {
		return err
	}
	if r.phase != PhaseAttack || !r.coverRequired() {
		return illegal("seat %s has just received and must attack without covering", seat)
	}
	h := &r.hands[seat]
	if !h.Has(block) || !h.Has(attack) {
		return illegal("seat %s does not hold %s and %s", seat, block, attack)
	}
	if block == attack && h.Count(block) < 2 {
		return illegal("seat %s holds a single %s", seat, block)
	}
	if !r.canAttackWith(seat, attack, 2) {
		return illegal("king attack with %s is locked", attack)
	}
	return nil
}
