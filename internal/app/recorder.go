package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"goita/internal/domain"
	"goita/internal/ports"
)

// Recorder forwards round events to the move stream and the round archive.
// Either sink may be nil. Sink failures are returned but never undo a move.
type Recorder struct {
	publisher ports.MovePublisher
	archive   ports.RoundArchive
	now       func() time.Time
	started   map[string]time.Time
}

// NewRecorder builds a Recorder over the given sinks.
func NewRecorder(publisher ports.MovePublisher, archive ports.RoundArchive) *Recorder {
	return &Recorder{
		publisher: publisher,
		archive:   archive,
		now:       time.Now,
		started:   make(map[string]time.Time),
	}
}

// Record ships every event a sink cares about and joins their errors.
func (r *Recorder) Record(ctx context.Context, events []Event) error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, ev := range events {
		switch p := ev.Payload.(type) {
		case RoundStartedPayload:
			r.started[p.RoundID] = r.now()
		case MoveAppliedPayload:
			if r.publisher == nil {
				continue
			}
			if err := r.publisher.PublishMove(ctx, moveRecord(p, r.now())); err != nil {
				errs = append(errs, fmt.Errorf("publish move %d of %s: %w", p.Sequence, p.RoundID, err))
			}
		case RoundEndedPayload:
			started, ok := r.started[p.RoundID]
			delete(r.started, p.RoundID)
			if r.archive == nil {
				continue
			}
			end := r.now()
			if !ok {
				started = end
			}
			if err := r.archive.SaveRound(ctx, roundSummary(p, started, end)); err != nil {
				errs = append(errs, fmt.Errorf("archive round %s: %w", p.RoundID, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Abandon forgets a round that will never finish.
func (r *Recorder) Abandon(roundID string) {
	if r == nil {
		return
	}
	delete(r.started, roundID)
}

func moveRecord(p MoveAppliedPayload, at time.Time) ports.MoveRecord {
	rec := ports.MoveRecord{
		RoundID:   p.RoundID,
		Sequence:  p.Sequence,
		Seat:      int(p.Seat),
		Kind:      string(p.Move.Kind()),
		Phase:     string(p.Phase),
		Turn:      int(p.Turn),
		HandSizes: p.HandSizes,
		At:        at,
	}
	switch m := domain.Public(p.Move).(type) {
	case domain.Receive:
		rec.Block = int(m.Block)
	case domain.Attack:
		rec.Attack = int(m.Tile)
	case domain.CoverThenAttack:
		rec.Covered = true
		rec.Attack = int(m.Attack)
	}
	return rec
}

func roundSummary(p RoundEndedPayload, started, ended time.Time) ports.RoundSummary {
	s := ports.RoundSummary{
		RoundID:     p.RoundID,
		Dealer:      int(p.Dealer),
		Winner:      int(p.Result.Winner),
		Team:        int(p.Result.Team),
		WinningTile: int(p.Result.Tile),
		Points:      p.Result.Points,
		Double:      p.Result.Double,
		PairedKings: p.Result.PairedKings,
		TeamScores:  p.TeamScores,
		Moves:       p.Moves,
		StartedAt:   started,
		EndedAt:     ended,
	}
	for seat, tiles := range p.Concealed {
		for _, t := range tiles {
			s.Concealed[seat] = append(s.Concealed[seat], int(t))
		}
	}
	return s
}
