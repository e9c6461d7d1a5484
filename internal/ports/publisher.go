package ports

import (
	"context"
	"time"
)

// MoveRecord is the public log entry for one applied move. Covered tiles are
// never included.
type MoveRecord struct {
	RoundID   string    `json:"round_id"`
	Sequence  int       `json:"seq"`
	Seat      int       `json:"seat"`
	Kind      string    `json:"kind"`
	Block     int       `json:"block,omitempty"`
	Attack    int       `json:"attack,omitempty"`
	Covered   bool      `json:"covered,omitempty"`
	Phase     string    `json:"phase"`
	Turn      int       `json:"turn"`
	HandSizes [4]int    `json:"hand_sizes"`
	At        time.Time `json:"at"`
}

// MovePublisher streams applied moves to external consumers.
type MovePublisher interface {
	PublishMove(ctx context.Context, rec MoveRecord) error
}
