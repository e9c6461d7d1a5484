package bot

import (
	"math/rand"

	"goita/internal/domain"
)

// RandomBot plays a uniformly random legal move.
type RandomBot struct {
	rng *rand.Rand
}

func NewRandomBot(rng *rand.Rand) *RandomBot {
	return &RandomBot{rng: rng}
}

func (b *RandomBot) CalculateMove(_ *domain.Round, _ domain.Seat, legal []domain.Move) (domain.Move, error) {
	if len(legal) == 0 {
		return nil, ErrNoLegalMoves
	}
	return legal[b.rng.Intn(len(legal))], nil
}

func (b *RandomBot) OnMove(*domain.Round, domain.Seat, domain.Move) {}
