package main

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"

	"goita/internal/app"
	"goita/internal/ports"
)

func TestRunBatch(t *testing.T) {
	var out bytes.Buffer
	opts := runOptions{
		Rounds:   6,
		Seed:     11,
		Dealer:   2,
		Bots:     []string{"rule", "random", "rule", "random"},
		MaxSteps: app.DefaultMaxSteps,
		MaxOnes:  app.DefaultMaxOnesPerSeat,
		Retries:  app.DefaultDealRetryLimit,
		Rotate:   true,
	}

	res, err := runBatch(context.Background(), opts, app.NewRecorder(nil, nil), &out)
	if err != nil {
		t.Fatalf("runBatch: %v", err)
	}
	if res.Rounds != 6 || res.Wins[0]+res.Wins[1] != 6 {
		t.Fatalf("result = %+v", res)
	}
	if res.Totals[0]+res.Totals[1] < 6*10 {
		t.Fatalf("totals = %v, every round scores at least 10", res.Totals)
	}
	if lines := strings.Count(out.String(), "\n"); lines != 6 {
		t.Fatalf("printed %d lines, want 6:\n%s", lines, out.String())
	}
	if !strings.HasPrefix(out.String(), "round   1  dealer C") {
		t.Fatalf("first line = %q", strings.SplitN(out.String(), "\n", 2)[0])
	}
}

func TestRunBatchIsDeterministic(t *testing.T) {
	opts := runOptions{Rounds: 3, Seed: 5, Bots: []string{"rule"}, MaxOnes: 4, Retries: 100}
	var a, b bytes.Buffer
	if _, err := runBatch(context.Background(), opts, nil, &a); err != nil {
		t.Fatalf("runBatch: %v", err)
	}
	if _, err := runBatch(context.Background(), opts, nil, &b); err != nil {
		t.Fatalf("runBatch: %v", err)
	}
	if a.String() != b.String() {
		t.Fatalf("same seed, different play:\n%s\n%s", a.String(), b.String())
	}
}

func TestRunBatchRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts runOptions
	}{
		{name: "TwoLevels", opts: runOptions{Rounds: 1, Bots: []string{"rule", "random"}}},
		{name: "UnknownLevel", opts: runOptions{Rounds: 1, Bots: []string{"genius"}}},
		{name: "BadDealer", opts: runOptions{Rounds: 1, Dealer: 4, Bots: []string{"rule"}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := runBatch(context.Background(), test.opts, nil, &bytes.Buffer{}); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSeatAgentsSingleLevelFillsTable(t *testing.T) {
	policies, err := seatAgents([]string{"random"}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("seatAgents: %v", err)
	}
	for seat, p := range policies {
		if p == nil {
			t.Fatalf("seat %d has no policy", seat)
		}
	}
}

func TestFormatMoveHidesCover(t *testing.T) {
	got := formatMove(ports.MoveRecord{RoundID: "r", Sequence: 1, Seat: 0, Kind: "cover_attack", Covered: true, Attack: 9})
	if !strings.Contains(got, "block ?") || !strings.Contains(got, "attack ou") {
		t.Fatalf("formatMove() = %q", got)
	}
}
