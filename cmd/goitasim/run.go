package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"goita/internal/app"
	"goita/internal/bot"
	"goita/internal/domain"
	"goita/internal/logging"
	"goita/internal/ports"
)

type runOptions struct {
	Rounds   int
	Seed     int64
	Dealer   int
	Bots     []string
	MaxSteps int
	MaxOnes  int
	Retries  int
	Rotate   bool
}

type batchResult struct {
	Rounds      int
	Wins        [domain.NumTeams]int
	Totals      [domain.NumTeams]int
	Doubles     int
	PairedKings int
}

// seatAgents builds one agent per seat. A single level fills every seat.
func seatAgents(levels []string, rng *rand.Rand) ([domain.NumSeats]app.Policy, error) {
	var policies [domain.NumSeats]app.Policy
	if len(levels) != 1 && len(levels) != domain.NumSeats {
		return policies, fmt.Errorf("--bots needs 1 or %d levels, got %d", domain.NumSeats, len(levels))
	}
	for seat := range domain.Seat(domain.NumSeats) {
		name := levels[0]
		if len(levels) == domain.NumSeats {
			name = levels[seat]
		}
		level, err := bot.ParseLevel(name)
		if err != nil {
			return policies, err
		}
		brain, err := bot.NewBrain(level, rand.New(rand.NewSource(rng.Int63())))
		if err != nil {
			return policies, err
		}
		policies[seat] = bot.NewAgent(fmt.Sprintf("sim-%s", seat), fmt.Sprintf("%s %s", level, seat), seat, brain)
	}
	return policies, nil
}

// runBatch plays opts.Rounds rounds, printing one line per round.
func runBatch(ctx context.Context, opts runOptions, recorder *app.Recorder, out io.Writer) (batchResult, error) {
	var res batchResult
	rng := rand.New(rand.NewSource(opts.Seed))
	svc := app.NewService(rng).WithDealRules(opts.MaxOnes, opts.Retries)
	policies, err := seatAgents(opts.Bots, rng)
	if err != nil {
		return res, err
	}

	dealer := domain.Seat(opts.Dealer)
	if !dealer.Valid() {
		return res, fmt.Errorf("%w: dealer %d", app.ErrUnknownSeat, opts.Dealer)
	}
	for i := 0; i < opts.Rounds; i++ {
		sim, err := svc.Simulate(ctx, dealer, policies, opts.MaxSteps)
		if err != nil {
			return res, fmt.Errorf("round %d: %w", i+1, err)
		}
		if err := recorder.Record(ctx, sim.Events); err != nil {
			logging.Warn("round %d: %v", i+1, err)
		}

		r, _ := sim.Round.Result()
		res.Rounds++
		res.Wins[r.Team]++
		res.Totals[r.Team] += r.Points
		if r.Double {
			res.Doubles++
		}
		if r.PairedKings {
			res.PairedKings++
		}
		fmt.Fprintf(out, "round %3d  dealer %s  winner %s (%s)  %-6s %3d%s  moves %d\n",
			i+1, dealer, r.Winner, r.Team, r.Tile.Name(), r.Points, resultFlags(r), sim.Round.MoveCount())
		logging.Debug("round %s finished: %+v", sim.Round.ID(), r)

		if opts.Rotate {
			dealer = r.Winner
		}
	}
	return res, nil
}

func resultFlags(r domain.Result) string {
	switch {
	case r.PairedKings:
		return " paired kings"
	case r.Double:
		return " double"
	}
	return ""
}

func printTotals(out io.Writer, res batchResult) {
	fmt.Fprintf(out, "\n%d rounds  %s %d wins %d pts  %s %d wins %d pts  doubles %d  paired kings %d\n",
		res.Rounds,
		domain.TeamAC, res.Wins[domain.TeamAC], res.Totals[domain.TeamAC],
		domain.TeamBD, res.Wins[domain.TeamBD], res.Totals[domain.TeamBD],
		res.Doubles, res.PairedKings)
}

func formatMove(rec ports.MoveRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s #%d seat %d %s", rec.RoundID, rec.Sequence, rec.Seat, rec.Kind)
	if rec.Block != 0 {
		fmt.Fprintf(&b, " block %s", domain.Tile(rec.Block).Name())
	}
	if rec.Covered {
		b.WriteString(" block ?")
	}
	if rec.Attack != 0 {
		fmt.Fprintf(&b, " attack %s", domain.Tile(rec.Attack).Name())
	}
	fmt.Fprintf(&b, "  hands %v", rec.HandSizes)
	return b.String()
}

func formatSummary(s ports.RoundSummary) string {
	return fmt.Sprintf("%s  dealer %d  winner %d team %d  tile %s  %d pts  double %t  paired kings %t  moves %d  concealed %v  %s",
		s.RoundID, s.Dealer, s.Winner, s.Team, domain.Tile(s.WinningTile).Name(), s.Points, s.Double, s.PairedKings,
		s.Moves, s.Concealed, s.EndedAt.Sub(s.StartedAt))
}
