package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"goita/internal/domain"
	"goita/internal/ports"
)

type fakePublisher struct {
	records []ports.MoveRecord
	err     error
}

func (f *fakePublisher) PublishMove(_ context.Context, rec ports.MoveRecord) error {
	f.records = append(f.records, rec)
	return f.err
}

type fakeArchive struct {
	saved []ports.RoundSummary
}

func (f *fakeArchive) SaveRound(_ context.Context, s ports.RoundSummary) error {
	f.saved = append(f.saved, s)
	return nil
}

func (f *fakeArchive) LoadRound(_ context.Context, id string) (ports.RoundSummary, error) {
	for _, s := range f.saved {
		if s.RoundID == id {
			return s, nil
		}
	}
	return ports.RoundSummary{}, errors.New("not found")
}

func TestRecorderShipsMovesAndSummary(t *testing.T) {
	pub := &fakePublisher{}
	arc := &fakeArchive{}
	rec := NewRecorder(pub, arc)
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rec.now = func() time.Time { clock = clock.Add(time.Second); return clock }

	svc := NewService(nil)
	round, evs, err := svc.StartRoundWithHands(fixedHands(), 0)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	ctx := context.Background()
	if err := rec.Record(ctx, evs); err != nil {
		t.Fatalf("record start: %v", err)
	}

	moves := []struct {
		seat domain.Seat
		move domain.Move
	}{
		{0, domain.CoverThenAttack{Block: 3, Attack: 4}},
		{1, domain.Receive{Block: 4}},
	}
	for _, m := range moves {
		evs, err := svc.ApplyMove(round, m.seat, m.move)
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		if err := rec.Record(ctx, evs); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	if len(pub.records) != 2 {
		t.Fatalf("published %d records", len(pub.records))
	}
	first := pub.records[0]
	if first.Kind != "cover_attack" || !first.Covered || first.Block != 0 || first.Attack != 4 {
		t.Fatalf("first record leaked or lost data: %+v", first)
	}
	if second := pub.records[1]; second.Kind != "receive" || second.Block != 4 || second.Sequence != 2 {
		t.Fatalf("second record = %+v", second)
	}

	end := Event{Kind: EventRoundEnded, Payload: RoundEndedPayload{
		RoundID:   round.ID().String(),
		Result:    domain.Result{Winner: 1, Team: domain.TeamBD, Tile: 4, Points: 30},
		Concealed: [domain.NumSeats][]domain.Tile{{3}},
		Moves:     12,
	}}
	if err := rec.Record(ctx, []Event{end}); err != nil {
		t.Fatalf("record end: %v", err)
	}
	if len(arc.saved) != 1 {
		t.Fatalf("archived %d rounds", len(arc.saved))
	}
	s := arc.saved[0]
	if s.Winner != 1 || s.Points != 30 || s.Concealed[0][0] != 3 || !s.EndedAt.After(s.StartedAt) {
		t.Fatalf("summary = %+v", s)
	}
}

func TestRecorderReportsSinkErrors(t *testing.T) {
	pub := &fakePublisher{err: errors.New("bus down")}
	rec := NewRecorder(pub, nil)
	ev := Event{Kind: EventMoveApplied, Payload: MoveAppliedPayload{RoundID: "r", Move: domain.Pass{}}}
	if err := rec.Record(context.Background(), []Event{ev}); err == nil {
		t.Fatal("expected publish error")
	}

	var nilRec *Recorder
	if err := nilRec.Record(context.Background(), []Event{ev}); err != nil {
		t.Fatalf("nil recorder: %v", err)
	}
}

func TestRecorderAbandonForgetsRound(t *testing.T) {
	rec := NewRecorder(nil, &fakeArchive{})
	ev := Event{Kind: EventRoundStarted, Payload: RoundStartedPayload{RoundID: "r1"}}
	if err := rec.Record(context.Background(), []Event{ev}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(rec.started) != 1 {
		t.Fatalf("started = %v", rec.started)
	}
	rec.Abandon("r1")
	if len(rec.started) != 0 {
		t.Fatalf("started = %v after Abandon", rec.started)
	}

	var nilRec *Recorder
	nilRec.Abandon("r1")
}
