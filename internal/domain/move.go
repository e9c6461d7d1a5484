package domain

import "fmt"

// MoveKind discriminates the four move variants.
type MoveKind string

const (
	KindReceive         MoveKind = "receive"
	KindPass            MoveKind = "pass"
	KindAttack          MoveKind = "attack"
	KindCoverThenAttack MoveKind = "cover_attack"
)

// Move is one of Receive, Pass, Attack or CoverThenAttack.
// All variants are comparable values.
type Move interface {
	Kind() MoveKind
	isMove()
}

// Receive blocks the current attack with a tile from hand.
type Receive struct{ Block Tile }

// Pass declines to receive the current attack.
type Pass struct{}

// Attack places a face-up tile without covering first. Only legal for the
// seat that just received.
type Attack struct{ Tile Tile }

// CoverThenAttack places Block face down, then Attack face up.
type CoverThenAttack struct{ Block, Attack Tile }

func (Receive) Kind() MoveKind         { return KindReceive }
func (Pass) Kind() MoveKind            { return KindPass }
func (Attack) Kind() MoveKind          { return KindAttack }
func (CoverThenAttack) Kind() MoveKind { return KindCoverThenAttack }

func (Receive) isMove()         {}
func (Pass) isMove()            {}
func (Attack) isMove()          {}
func (CoverThenAttack) isMove() {}

func (m Receive) String() string { return fmt.Sprintf("receive(%s)", m.Block) }
func (Pass) String() string      { return "pass" }
func (m Attack) String() string  { return fmt.Sprintf("attack(%s)", m.Tile) }
func (m CoverThenAttack) String() string {
	return fmt.Sprintf("cover(%s)+attack(%s)", m.Block, m.Attack)
}

// AttackTile returns the face-up tile a move attacks with, if any.
func AttackTile(m Move) (Tile, bool) {
	switch v := m.(type) {
	case Attack:
		return v.Tile, true
	case CoverThenAttack:
		return v.Attack, true
	}
	return TileNone, false
}

// Public returns m as seen by the other seats: a covered tile is masked.
func Public(m Move) Move {
	if c, ok := m.(CoverThenAttack); ok {
		c.Block = TileNone
		return c
	}
	return m
}
