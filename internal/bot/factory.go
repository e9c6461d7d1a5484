package bot

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// BotLevel names a strategy.
type BotLevel string

const (
	BotLevelRandom BotLevel = "random"
	BotLevelRule   BotLevel = "rule"
)

// ParseLevel maps a level name, or a difficulty label from the identity pool,
// to a BotLevel.
func ParseLevel(s string) (BotLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random", "easy":
		return BotLevelRandom, nil
	case "rule", "medium", "hard", "":
		return BotLevelRule, nil
	}
	return "", fmt.Errorf("unknown bot level: %q", s)
}

// NewBrain creates a new AI brain based on the specified level. A nil rng
// gets a time-seeded default.
func NewBrain(level BotLevel, rng *rand.Rand) (Brain, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	switch level {
	case BotLevelRandom:
		return NewRandomBot(rng), nil
	case BotLevelRule:
		return NewRuleBot(DefaultTuning), nil
	default:
		return nil, fmt.Errorf("unknown bot level: %q", level)
	}
}
