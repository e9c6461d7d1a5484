package domain

import "fmt"

func illegal(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIllegalMove, fmt.Sprintf(format, args...))
}

// Apply dispatches m to the matching mutator.
func (r *Round) Apply(seat Seat, m Move) error {
	switch v := m.(type) {
	case Receive:
		return r.Receive(seat, v.Block)
	case Pass:
		return r.Pass(seat)
	case Attack:
		return r.Attack(seat, v.Tile)
	case CoverThenAttack:
		return r.CoverThenAttack(seat, v.Block, v.Attack)
	case nil:
		return illegal("nil move")
	}
	return illegal("unknown move %T", m)
}

// Receive blocks the current attack. The seat becomes the attacker and must
// attack next without covering.
func (r *Round) Receive(seat Seat, block Tile) error {
	if err := r.checkReceive(seat, block); err != nil {
		return err
	}
	r.hands[seat].remove(block)
	r.boards[seat].Blocks = append(r.boards[seat].Blocks, Slot{Tile: block})
	if block.IsKing() {
		r.kingBlockUsed++
	}
	r.currentAttack = TileNone
	r.attacker = seat
	r.phase = PhaseAttack
	r.turn = seat
	r.accept(seat, Receive{Block: block})
	return nil
}

// Pass hands the decision to the next seat. When every other seat has passed
// the attacker regains the turn and must cover before attacking again.
func (r *Round) Pass(seat Seat) error {
	if err := r.checkPass(seat); err != nil {
		return err
	}
	next := seat.Next()
	if next == r.attacker {
		r.phase = PhaseAttack
	}
	r.turn = next
	r.accept(seat, Pass{})
	return nil
}

// Attack places t face up after a receive.
func (r *Round) Attack(seat Seat, t Tile) error {
	if err := r.checkAttack(seat, t); err != nil {
		return err
	}
	r.hands[seat].remove(t)
	r.placeAttack(seat, t)
	r.accept(seat, Attack{Tile: t})
	return nil
}

// CoverThenAttack places block face down and attack face up.
func (r *Round) CoverThenAttack(seat Seat, block, attack Tile) error {
	if err := r.checkCoverThenAttack(seat, block, attack); err != nil {
		return err
	}
	r.hands[seat].remove(block)
	r.hands[seat].remove(attack)
	r.boards[seat].Blocks = append(r.boards[seat].Blocks, Slot{Tile: block, Hidden: true})
	r.lastBlock = block
	r.lastBlockPlayer = seat
	r.placeAttack(seat, attack)
	r.accept(seat, CoverThenAttack{Block: block, Attack: attack})
	return nil
}

func (r *Round) placeAttack(seat Seat, t Tile) {
	r.boards[seat].Attacks = append(r.boards[seat].Attacks, t)
	r.currentAttack = t
	r.attacker = seat
	if r.hands[seat].Size() == 0 {
		r.finish(seat, t)
		return
	}
	r.phase = PhaseReceive
	r.turn = seat.Next()
}

func (r *Round) accept(seat Seat, m Move) {
	r.moves++
	if r.observer != nil {
		r.observer(seat, m)
	}
}
