package app

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"goita/internal/domain"
)

// firstLegal always plays the first enumerated move and counts what it sees.
type firstLegal struct {
	observed int
}

func (p *firstLegal) SelectMove(_ *domain.Round, _ domain.Seat, legal []domain.Move) (domain.Move, error) {
	if len(legal) == 0 {
		return nil, errors.New("no moves")
	}
	return legal[0], nil
}

func (p *firstLegal) ObserveMove(*domain.Round, domain.Seat, domain.Move) { p.observed++ }

// passer tries to pass even when it must attack.
type passer struct{}

func (passer) SelectMove(*domain.Round, domain.Seat, []domain.Move) (domain.Move, error) {
	return domain.Pass{}, nil
}

func TestSimulateFinishesRound(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		svc := NewService(rand.New(rand.NewSource(seed)))
		var policies [domain.NumSeats]Policy
		watchers := make([]*firstLegal, domain.NumSeats)
		for i := range policies {
			watchers[i] = &firstLegal{}
			policies[i] = watchers[i]
		}

		sim, err := svc.Simulate(context.Background(), domain.Seat(seed%4), policies, 0)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if !sim.Round.Finished() {
			t.Fatalf("seed %d: round not finished", seed)
		}
		for _, w := range watchers {
			if w.observed != sim.Round.MoveCount() {
				t.Fatalf("seed %d: observer saw %d of %d moves", seed, w.observed, sim.Round.MoveCount())
			}
		}
		if len(eventsOf(sim.Events, EventRoundEnded)) != 1 {
			t.Fatalf("seed %d: missing round end event", seed)
		}
	}
}

func TestSimulateSurfacesIllegalPolicy(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(3)))
	policies := [domain.NumSeats]Policy{passer{}, passer{}, passer{}, passer{}}
	_, err := svc.Simulate(context.Background(), 0, policies, 0)
	if !errors.Is(err, domain.ErrIllegalMove) {
		t.Fatalf("err = %v, want ErrIllegalMove", err)
	}
}

func TestSimulateHonoursContext(t *testing.T) {
	svc := NewService(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	policies := [domain.NumSeats]Policy{&firstLegal{}, &firstLegal{}, &firstLegal{}, &firstLegal{}}
	if _, err := svc.Simulate(ctx, 0, policies, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestSimulateFillsEmptySeatsWithRandomPlay(t *testing.T) {
	tests := []struct {
		name     string
		policies [domain.NumSeats]Policy
	}{
		{"no policies", [domain.NumSeats]Policy{}},
		{"one empty seat", [domain.NumSeats]Policy{&firstLegal{}, &firstLegal{}, nil, &firstLegal{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(rand.New(rand.NewSource(11)))
			sim, err := svc.Simulate(context.Background(), 0, tt.policies, 0)
			if err != nil {
				t.Fatalf("Simulate: %v", err)
			}
			if !sim.Round.Finished() {
				t.Fatal("round not finished")
			}
		})
	}
}

// coverWatcher records the covers it is shown.
type coverWatcher struct {
	firstLegal
	seat   domain.Seat
	own    []domain.Tile
	others []domain.Tile
}

func (w *coverWatcher) ObserveMove(_ *domain.Round, seat domain.Seat, move domain.Move) {
	cta, ok := move.(domain.CoverThenAttack)
	if !ok {
		return
	}
	if seat == w.seat {
		w.own = append(w.own, cta.Block)
	} else {
		w.others = append(w.others, cta.Block)
	}
}

func TestSimulateMasksOtherSeatsCovers(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(9)))
	var policies [domain.NumSeats]Policy
	watchers := make([]*coverWatcher, domain.NumSeats)
	for i := range policies {
		watchers[i] = &coverWatcher{seat: domain.Seat(i)}
		policies[i] = watchers[i]
	}

	if _, err := svc.Simulate(context.Background(), 0, policies, 0); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	// The opening move is always a cover.
	if len(watchers[0].own) == 0 {
		t.Fatal("dealer never saw its own cover")
	}
	for _, w := range watchers {
		for _, b := range w.own {
			if b == domain.TileNone {
				t.Fatalf("seat %s saw its own cover masked", w.seat)
			}
		}
		for _, b := range w.others {
			if b != domain.TileNone {
				t.Fatalf("seat %s saw another seat's cover %s", w.seat, b)
			}
		}
	}
}
