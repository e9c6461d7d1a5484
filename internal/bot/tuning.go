package bot

import "goita/internal/domain"

// Tuning weights the rule bot's move scoring.
type Tuning struct {
	WinNowBonus          float64
	WinAfterReceiveBonus float64

	// KingAttackPenalty applies to king attacks when a non-king attack exists.
	KingAttackPenalty float64
	// KingTimingBonus offsets the king penalty on the third attack, or on
	// the second and third for a seat dealt both kings.
	KingTimingBonus float64
	// OpeningPawnPenalty discourages leading the round with a pawn.
	OpeningPawnPenalty float64
	// SafeAttackBonus rewards attacks no other seat can hold a receiver for.
	SafeAttackBonus float64
	// LikelySafeBonus rewards attacks the next seat has already declined.
	LikelySafeBonus float64
	// CopyBonus is paid per extra copy of the attack rank still held.
	CopyBonus float64
	// PointsDivisor scales the tile's point value into a tiebreak.
	PointsDivisor float64
	// CoverCost is subtracted for the rank given up as a cover.
	CoverCost [domain.MaxTile + 1]float64

	ReceiveBase        float64
	KingReceiveBase    float64
	AllyReceivePenalty float64
	// FirstEnemyPassBonus favours letting the first enemy attack go by
	// when the hand is weak.
	FirstEnemyPassBonus float64
}

// DefaultTuning mirrors a cautious human style: keep kings, go out when possible.
var DefaultTuning = Tuning{
	WinNowBonus:          10_000,
	WinAfterReceiveBonus: 9_000,
	KingAttackPenalty:    300,
	KingTimingBonus:      350,
	OpeningPawnPenalty:   100,
	SafeAttackBonus:      60,
	LikelySafeBonus:      20,
	CopyBonus:            8,
	PointsDivisor:        10,
	CoverCost:            [domain.MaxTile + 1]float64{0, 1, 4, 4, 6, 6, 8, 8, 10, 10},
	ReceiveBase:          5,
	KingReceiveBase:      1,
	AllyReceivePenalty:   100,
	FirstEnemyPassBonus:  10,
}
