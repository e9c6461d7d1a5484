package bot

import (
	"math"

	"goita/internal/bot/brain"
	"goita/internal/domain"
)

// RuleBot scores every legal move with hand-tuned rules and public
// information, and plays the best. Ties go to the earliest legal move.
type RuleBot struct {
	Tuning Tuning
	Memory *brain.RoundMemory
	seat   domain.Seat
}

func NewRuleBot(t Tuning) *RuleBot {
	return &RuleBot{Tuning: t, Memory: brain.NewMemory(), seat: domain.NoSeat}
}

// Bind fixes the seat whose view the bot tracks.
func (b *RuleBot) Bind(seat domain.Seat) { b.seat = seat }

func (b *RuleBot) OnMove(round *domain.Round, seat domain.Seat, move domain.Move) {
	if !b.seat.Valid() {
		return
	}
	b.Memory.Sync(round, b.seat)
	b.Memory.Record(round, seat, move)
}

func (b *RuleBot) CalculateMove(round *domain.Round, seat domain.Seat, legal []domain.Move) (domain.Move, error) {
	if len(legal) == 0 {
		return nil, ErrNoLegalMoves
	}
	if !b.seat.Valid() {
		b.seat = seat
	}
	b.Memory.Sync(round, seat)

	hasNonKingAttack := false
	for _, m := range legal {
		if a, ok := domain.AttackTile(m); ok && !a.IsKing() {
			hasNonKingAttack = true
			break
		}
	}

	best, bestScore := legal[0], math.Inf(-1)
	for _, m := range legal {
		var s float64
		if _, ok := domain.AttackTile(m); ok {
			s = b.scoreAttack(round, seat, m, hasNonKingAttack)
		} else {
			s = b.scoreReceive(round, seat, m)
		}
		if s > bestScore {
			best, bestScore = m, s
		}
	}

	if b.enemyAttacking(round, seat) {
		b.Memory.FirstEnemyAttackSeen = true
	}
	return best, nil
}

func (b *RuleBot) scoreAttack(round *domain.Round, seat domain.Seat, m domain.Move, hasNonKingAttack bool) float64 {
	t := b.Tuning
	a, _ := domain.AttackTile(m)
	score := float64(a.Points()) / t.PointsDivisor

	if winsNow(round, seat, m) {
		score += t.WinNowBonus
	}
	if a.IsKing() && hasNonKingAttack {
		score -= t.KingAttackPenalty
	}
	if a.IsKing() && kingsDue(round, seat, b.Memory.NextAttack()) {
		score += t.KingTimingBonus
	}
	if _, ok := round.Attacker(); !ok && a == domain.TileShi {
		score -= t.OpeningPawnPenalty
	}

	hand := round.HandCounts(seat)
	left := hand.Count(a) - 1
	if c, ok := m.(domain.CoverThenAttack); ok {
		score -= t.CoverCost[c.Block]
		if c.Block == a {
			left--
		}
	}
	score += float64(left) * t.CopyBonus

	switch {
	case b.Memory.NobodyCanReceive(a):
		score += t.SafeAttackBonus
	case b.Memory.LikelyCannotReceive(seat.Next(), a):
		score += t.LikelySafeBonus
	}
	return score
}

func (b *RuleBot) scoreReceive(round *domain.Round, seat domain.Seat, m domain.Move) float64 {
	t := b.Tuning
	var score float64
	r, receiving := m.(domain.Receive)
	if receiving {
		if winsAfterReceive(round, seat, r) {
			return t.WinAfterReceiveBonus
		}
		if attacker, ok := round.Attacker(); ok && attacker.Team() == seat.Team() {
			return -t.AllyReceivePenalty
		}
		score = t.ReceiveBase
		if r.Block.IsKing() {
			score = t.KingReceiveBase
		}
	}

	if b.enemyAttacking(round, seat) && !b.Memory.FirstEnemyAttackSeen && !strongHand(round, seat, b.Memory.Initial) {
		if receiving {
			score -= t.FirstEnemyPassBonus
		} else {
			score += t.FirstEnemyPassBonus
		}
	}
	return score
}

func (b *RuleBot) enemyAttacking(round *domain.Round, seat domain.Seat) bool {
	if round.Phase() != domain.PhaseReceive {
		return false
	}
	attacker, ok := round.Attacker()
	return ok && attacker.Team() != seat.Team()
}

// kingsDue: kings go out on the third attack, and a seat dealt both kings
// starts on its second.
func kingsDue(round *domain.Round, seat domain.Seat, attackNo int) bool {
	return attackNo == 3 || (attackNo == 2 && round.HadBothKings(seat))
}

// strongHand: both kings, both copies of 6 or 7, or three of a 2..5 rank.
func strongHand(round *domain.Round, seat domain.Seat, initial domain.Hand) bool {
	if round.HadBothKings(seat) {
		return true
	}
	for _, t := range []domain.Tile{domain.TileKaku, domain.TileHisha} {
		if initial.Count(t) == 2 {
			return true
		}
	}
	for t := domain.TileKyo; t <= domain.TileKin; t++ {
		if initial.Count(t) >= 3 {
			return true
		}
	}
	return false
}

func winsNow(round *domain.Round, seat domain.Seat, m domain.Move) bool {
	c := round.Clone()
	if err := c.Apply(seat, m); err != nil {
		return false
	}
	w, ok := c.Winner()
	return ok && w == seat
}

func winsAfterReceive(round *domain.Round, seat domain.Seat, r domain.Receive) bool {
	c := round.Clone()
	if err := c.Apply(seat, r); err != nil {
		return false
	}
	for _, next := range c.LegalMoves(seat) {
		if winsNow(c, seat, next) {
			return true
		}
	}
	return false
}
