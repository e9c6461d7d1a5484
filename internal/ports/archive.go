package ports

import (
	"context"
	"time"
)

// RoundSummary is the record kept for a finished round.
type RoundSummary struct {
	RoundID     string
	Dealer      int
	Winner      int
	Team        int
	WinningTile int
	Points      int
	Double      bool
	PairedKings bool
	TeamScores  [2]int
	Concealed   [4][]int
	Moves       int
	StartedAt   time.Time
	EndedAt     time.Time
}

// RoundArchive stores finished rounds.
type RoundArchive interface {
	SaveRound(ctx context.Context, s RoundSummary) error
	LoadRound(ctx context.Context, roundID string) (RoundSummary, error)
}
