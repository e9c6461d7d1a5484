package bot

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"goita/internal/app"
	"goita/internal/domain"
)

func agentsFor(t *testing.T, levels [domain.NumSeats]BotLevel, seed int64) [domain.NumSeats]app.Policy {
	t.Helper()
	var policies [domain.NumSeats]app.Policy
	for i, level := range levels {
		brain, err := NewBrain(level, rand.New(rand.NewSource(seed+int64(i))))
		if err != nil {
			t.Fatalf("NewBrain: %v", err)
		}
		seat := domain.Seat(i)
		policies[i] = NewAgent(fmt.Sprintf("bot-%d", i), string(level), seat, brain)
	}
	return policies
}

func TestBotsPlayFullRounds(t *testing.T) {
	mixes := map[string][domain.NumSeats]BotLevel{
		"all rule":       {BotLevelRule, BotLevelRule, BotLevelRule, BotLevelRule},
		"all random":     {BotLevelRandom, BotLevelRandom, BotLevelRandom, BotLevelRandom},
		"rule vs random": {BotLevelRule, BotLevelRandom, BotLevelRule, BotLevelRandom},
		"random vs rule": {BotLevelRandom, BotLevelRule, BotLevelRandom, BotLevelRule},
	}
	for name, levels := range mixes {
		t.Run(name, func(t *testing.T) {
			for seed := int64(1); seed <= 25; seed++ {
				svc := app.NewService(rand.New(rand.NewSource(seed)))
				sim, err := svc.Simulate(context.Background(), domain.Seat(seed%4), agentsFor(t, levels, seed), 0)
				if err != nil {
					t.Fatalf("seed %d: %v", seed, err)
				}
				res, ok := sim.Round.Result()
				if !ok || res.Points <= 0 {
					t.Fatalf("seed %d: result = %+v finished=%v", seed, res, ok)
				}
			}
		})
	}
}
