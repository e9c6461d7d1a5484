package app

import "goita/internal/domain"

// SeatView is one seat as seen by a viewer.
type SeatView struct {
	Seat     domain.Seat
	HandSize int
	Board    domain.Board // covers masked unless the viewer owns the seat
}

// RoundView is the information a single seat is allowed to see.
type RoundView struct {
	RoundID       string
	Viewer        domain.Seat
	Dealer        domain.Seat
	Phase         domain.Phase
	Turn          domain.Seat
	Attacker      domain.Seat
	CurrentAttack domain.Tile
	Hand          []domain.Tile // viewer's own tiles, empty for spectators
	Seats         [domain.NumSeats]SeatView
	Finished      bool
	TeamScores    [domain.NumTeams]int
}

// View projects round for viewer. Pass domain.NoSeat for a spectator view.
func View(round *domain.Round, viewer domain.Seat) RoundView {
	attacker, _ := round.Attacker()
	attack, _ := round.CurrentAttack()
	v := RoundView{
		RoundID:       round.ID().String(),
		Viewer:        viewer,
		Dealer:        round.Dealer(),
		Phase:         round.Phase(),
		Turn:          round.Turn(),
		Attacker:      attacker,
		CurrentAttack: attack,
		Hand:          round.Hand(viewer),
		Finished:      round.Finished(),
	}
	for s := range domain.Seat(domain.NumSeats) {
		b := round.Board(s)
		if s != viewer && !round.Finished() {
			b = b.Masked()
		}
		v.Seats[s] = SeatView{Seat: s, HandSize: round.HandSize(s), Board: b}
	}
	for t := range domain.Team(domain.NumTeams) {
		v.TeamScores[t] = round.TeamScore(t)
	}
	return v
}
