package brain

import (
	"goita/internal/domain"
)

// RoundMemory is one seat's view of a round: its own tiles plus everything
// played face up. It never looks at another seat's hand or covers.
type RoundMemory struct {
	RoundID string
	Me      domain.Seat
	// Initial is the hand this seat was dealt, rebuilt from its board when
	// the memory joins mid-round.
	Initial domain.Hand
	// Seen counts face-up tiles per rank across all boards.
	Seen domain.Hand
	// Mine counts tiles this seat holds or has covered.
	Mine domain.Hand
	// Opponents tracks pass behaviour by seat.
	Opponents [domain.NumSeats]*OpponentProfile
	// FirstEnemyAttackSeen is set once an opposing attack reached this seat.
	FirstEnemyAttackSeen bool
	// AttacksMade counts this seat's attacks so far.
	AttacksMade int
}

// NewMemory initializes an empty memory.
func NewMemory() *RoundMemory {
	m := &RoundMemory{Me: domain.NoSeat}
	m.Reset()
	return m
}

// Reset clears the memory for a new round.
func (m *RoundMemory) Reset() {
	m.RoundID = ""
	m.Initial = domain.Hand{}
	m.Seen = domain.Hand{}
	m.Mine = domain.Hand{}
	m.FirstEnemyAttackSeen = false
	m.AttacksMade = 0
	for s := range m.Opponents {
		m.Opponents[s] = NewOpponentProfile(domain.Seat(s))
	}
}

// Sync refreshes the memory from round as seen from me. A different round ID
// starts a fresh memory.
func (m *RoundMemory) Sync(round *domain.Round, me domain.Seat) {
	id := round.ID().String()
	if id != m.RoundID || me != m.Me {
		m.Reset()
		m.RoundID = id
		m.Me = me
		m.Initial = round.HandCounts(me)
		for _, t := range round.Concealed(me) {
			m.Initial[t]++
		}
		for _, t := range round.FaceUp(me) {
			m.Initial[t]++
		}
	}
	m.AttacksMade = len(round.Board(me).Attacks)
	m.Seen = domain.Hand{}
	for s := range domain.Seat(domain.NumSeats) {
		for _, t := range round.FaceUp(s) {
			m.Seen[t]++
		}
	}
	m.Mine = round.HandCounts(me)
	for _, t := range round.Concealed(me) {
		m.Mine[t]++
	}
}

// Record notes a public move after round has applied it.
func (m *RoundMemory) Record(round *domain.Round, seat domain.Seat, move domain.Move) {
	if _, ok := move.(domain.Pass); !ok {
		return
	}
	attack, ok := round.CurrentAttack()
	attacker, hasAttacker := round.Attacker()
	if ok && hasAttacker && attacker.Team() != seat.Team() {
		m.Opponents[seat].RecordPass(attack)
	}
}

// NextAttack is the number the seat's next attack will carry, from 1.
func (m *RoundMemory) NextAttack() int { return m.AttacksMade + 1 }

// Unseen returns how many copies of t could still be held by other seats.
func (m *RoundMemory) Unseen(t domain.Tile) int {
	n := domain.DeckCount(t) - m.Seen.Count(t) - m.Mine.Count(t)
	return max(n, 0)
}

// KingsUnseen reports whether any king may still be in another seat's hand.
func (m *RoundMemory) KingsUnseen() bool {
	return m.Unseen(domain.TileGyoku) > 0 || m.Unseen(domain.TileOu) > 0
}

// NobodyCanReceive reports whether, from public information, no other seat
// can hold a tile that receives t.
func (m *RoundMemory) NobodyCanReceive(t domain.Tile) bool {
	if m.Unseen(t) > 0 {
		return false
	}
	if t == domain.TileShi || t == domain.TileKyo {
		return true
	}
	return !m.KingsUnseen()
}

// LikelyCannotReceive combines public counts with seat's pass history.
func (m *RoundMemory) LikelyCannotReceive(seat domain.Seat, t domain.Tile) bool {
	if m.NobodyCanReceive(t) {
		return true
	}
	return !m.Opponents[seat].CanPossiblyReceive(t)
}
