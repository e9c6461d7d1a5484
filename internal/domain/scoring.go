package domain

// PairedKingPoints is awarded when a seat finishes by attacking with one king
// after covering with the other.
const PairedKingPoints = 100

// score values a finishing attack by winner with tile t.
func (r *Round) score(winner Seat, t Tile) Result {
	res := Result{Winner: winner, Team: winner.Team(), Tile: t, Points: t.Points()}
	if c := r.boards[winner].Concealed(); len(c) > 0 {
		last := c[len(c)-1]
		if last.IsKing() && t.IsKing() && last != t {
			res.Points = PairedKingPoints
			res.PairedKings = true
		}
	}
	if r.lastBlockPlayer == winner && r.lastBlock == t {
		res.Points *= 2
		res.Double = true
	}
	return res
}

func (r *Round) finish(winner Seat, t Tile) {
	r.result = r.score(winner, t)
	r.teamScore[r.result.Team] += r.result.Points
	r.finished = true
	r.turn = winner
}
