package domain

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

// allMoves is every syntactically possible move.
func allMoves() []Move {
	moves := []Move{Pass{}}
	for t := MinTile; t <= MaxTile; t++ {
		moves = append(moves, Receive{Block: t}, Attack{Tile: t})
		for a := MinTile; a <= MaxTile; a++ {
			moves = append(moves, CoverThenAttack{Block: t, Attack: a})
		}
	}
	return moves
}

func tilesInPlay(r *Round) int {
	n := 0
	for s := range Seat(NumSeats) {
		n += r.HandSize(s) + r.Board(s).Len()
	}
	return n
}

// TestRandomPlayInvariants drives many seeded rounds with random legal moves
// and checks the engine's guarantees after every step.
func TestRandomPlayInvariants(t *testing.T) {
	universe := allMoves()
	for seed := int64(1); seed <= 60; seed++ {
		rng := rand.New(rand.NewSource(seed))
		hands, err := Deal(rng, 0, 1)
		if err != nil {
			t.Fatalf("seed %d: Deal: %v", seed, err)
		}
		r := mustRound(t, hands, Seat(rng.Intn(NumSeats)))
		observed := 0
		r.Observe(func(Seat, Move) { observed++ })

		for step := 0; !r.Finished(); step++ {
			if step > 200 {
				t.Fatalf("seed %d: round did not finish", seed)
			}
			if n := tilesInPlay(r); n != DeckSize {
				t.Fatalf("seed %d step %d: %d tiles accounted for", seed, step, n)
			}
			seat := r.Turn()
			legal := r.LegalMoves(seat)
			if again := r.LegalMoves(seat); !reflect.DeepEqual(legal, again) {
				t.Fatalf("seed %d: LegalMoves not deterministic", seed)
			}
			if len(legal) == 0 {
				t.Fatalf("seed %d step %d: seat %s stuck", seed, step, seat)
			}

			snapshot := r.Clone()
			for s := range Seat(NumSeats) {
				for _, m := range universe {
					c := r.Clone()
					err := c.Apply(s, m)
					if s == seat && r.IsLegal(s, m) {
						if err != nil {
							t.Fatalf("seed %d: legal %v by %s rejected: %v", seed, m, s, err)
						}
						continue
					}
					if !errors.Is(err, ErrIllegalMove) {
						t.Fatalf("seed %d: illegal %v by %s accepted (err=%v)", seed, m, s, err)
					}
					if !reflect.DeepEqual(c, snapshot) {
						t.Fatalf("seed %d: rejected %v by %s mutated the round", seed, m, s)
					}
				}
			}

			m := legal[rng.Intn(len(legal))]
			before := r.HandSize(seat)
			lockedKing := !r.HadBothKings(seat) && r.KingBlockUsed() == 0
			mustApply(t, r, seat, m)

			spent := before - r.HandSize(seat)
			if want := map[MoveKind]int{KindPass: 0, KindReceive: 1, KindAttack: 1, KindCoverThenAttack: 2}[m.Kind()]; spent != want {
				t.Fatalf("seed %d: %v spent %d tiles", seed, m, spent)
			}
			if a, ok := AttackTile(m); ok && a.IsKing() && lockedKing && !r.Finished() {
				t.Fatalf("seed %d: king attack %v allowed without finishing", seed, m)
			}
		}

		if observed != r.MoveCount() {
			t.Fatalf("seed %d: observed %d moves, applied %d", seed, observed, r.MoveCount())
		}
		w, _ := r.Winner()
		if r.HandSize(w) != 0 {
			t.Fatalf("seed %d: winner %s still holds tiles", seed, w)
		}
		res, _ := r.Result()
		if r.TeamScore(w.Team()) != res.Points || r.TeamScore(1-w.Team()) != 0 {
			t.Fatalf("seed %d: team scores disagree with result %+v", seed, res)
		}
		for _, m := range universe {
			if err := r.Clone().Apply(r.Turn(), m); !errors.Is(err, ErrIllegalMove) {
				t.Fatalf("seed %d: move %v accepted after finish", seed, m)
			}
		}
	}
}
