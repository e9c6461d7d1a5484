package bot

import (
	"errors"
	"math/rand"
	"testing"

	"goita/internal/domain"
)

type step struct {
	seat domain.Seat
	move domain.Move
}

func play(t *testing.T, r *domain.Round, steps []step) {
	t.Helper()
	for _, s := range steps {
		if err := r.Apply(s.seat, s.move); err != nil {
			t.Fatalf("Apply(%s, %v): %v", s.seat, s.move, err)
		}
	}
}

func passes(seats ...domain.Seat) []step {
	out := make([]step, 0, len(seats))
	for _, s := range seats {
		out = append(out, step{s, domain.Pass{}})
	}
	return out
}

func newRound(t *testing.T, hands [domain.NumSeats][]domain.Tile, dealer domain.Seat) *domain.Round {
	t.Helper()
	r, err := domain.NewRound(hands, dealer)
	if err != nil {
		t.Fatalf("NewRound: %v", err)
	}
	return r
}

// kingsHands gives seat 3 both kings and both 7s.
func kingsHands() [domain.NumSeats][]domain.Tile {
	return [domain.NumSeats][]domain.Tile{
		{1, 1, 2, 2, 3, 3, 4, 4},
		{1, 1, 2, 2, 3, 3, 4, 4},
		{1, 1, 1, 5, 5, 5, 5, 6},
		{1, 1, 1, 6, 7, 7, 8, 9},
	}
}

// finishHands lets seat 0 shed down to {4, 7}.
func finishHands() [domain.NumSeats][]domain.Tile {
	return [domain.NumSeats][]domain.Tile{
		{1, 1, 2, 2, 3, 3, 4, 7},
		{1, 1, 2, 2, 3, 3, 4, 4},
		{1, 1, 1, 5, 5, 5, 5, 6},
		{1, 1, 1, 6, 7, 8, 9, 4},
	}
}

func TestRandomBotPlaysLegalMoves(t *testing.T) {
	r := newRound(t, kingsHands(), 0)
	b := NewRandomBot(rand.New(rand.NewSource(1)))
	legal := r.LegalMoves(0)
	for range 50 {
		m, err := b.CalculateMove(r, 0, legal)
		if err != nil {
			t.Fatalf("CalculateMove: %v", err)
		}
		if !r.IsLegal(0, m) {
			t.Fatalf("random bot chose illegal %v", m)
		}
	}
	if _, err := b.CalculateMove(r, 1, nil); !errors.Is(err, ErrNoLegalMoves) {
		t.Fatalf("err = %v", err)
	}
}

func TestRuleBotKeepsKingsAndLeadsSafeTile(t *testing.T) {
	r := newRound(t, kingsHands(), 3)
	b := NewRuleBot(DefaultTuning)
	m, err := b.CalculateMove(r, 3, r.LegalMoves(3))
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if want := (domain.CoverThenAttack{Block: 1, Attack: 7}); m != want {
		t.Fatalf("opening = %v, want %v", m, want)
	}
}

func TestRuleBotPlaysKingsOnSecondAttackWithBothKings(t *testing.T) {
	setup := func(t *testing.T) *domain.Round {
		r := newRound(t, kingsHands(), 3)
		play(t, r, append([]step{{3, domain.CoverThenAttack{Block: 1, Attack: 7}}}, passes(0, 1, 2)...))
		return r
	}

	r := setup(t)
	m, err := NewRuleBot(DefaultTuning).CalculateMove(r, 3, r.LegalMoves(3))
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if a, _ := domain.AttackTile(m); !a.IsKing() {
		t.Fatalf("second attack = %v, want a king", m)
	}

	r = setup(t)
	noTiming := DefaultTuning
	noTiming.KingTimingBonus = 0
	m, _ = NewRuleBot(noTiming).CalculateMove(r, 3, r.LegalMoves(3))
	if a, _ := domain.AttackTile(m); a.IsKing() {
		t.Fatalf("without timing bonus the bot led %v", m)
	}
}

func TestRuleBotReceivesToGoOut(t *testing.T) {
	r := newRound(t, finishHands(), 0)
	var steps []step
	for _, cta := range []domain.CoverThenAttack{{Block: 1, Attack: 1}, {Block: 2, Attack: 2}} {
		steps = append(steps, step{0, cta})
		steps = append(steps, passes(1, 2, 3)...)
	}
	steps = append(steps,
		step{0, domain.CoverThenAttack{Block: 3, Attack: 3}},
		step{1, domain.Receive{Block: 3}},
		step{1, domain.Attack{Tile: 4}},
	)
	steps = append(steps, passes(2, 3)...)
	play(t, r, steps)

	if got := r.Hand(0); len(got) != 2 || got[0] != 4 || got[1] != 7 {
		t.Fatalf("setup hand = %v", got)
	}
	b := NewRuleBot(DefaultTuning)
	m, err := b.CalculateMove(r, 0, r.LegalMoves(0))
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if m != (domain.Receive{Block: 4}) {
		t.Fatalf("move = %v, want receive(4)", m)
	}
	if err := r.Apply(0, m); err != nil {
		t.Fatal(err)
	}
	m, _ = b.CalculateMove(r, 0, r.LegalMoves(0))
	if err := r.Apply(0, m); err != nil {
		t.Fatal(err)
	}
	if w, ok := r.Winner(); !ok || w != 0 {
		t.Fatalf("winner = %s, %v", w, ok)
	}
}

func TestRuleBotLetsPartnerAttackThrough(t *testing.T) {
	r := newRound(t, kingsHands(), 0)
	play(t, r, []step{
		{0, domain.CoverThenAttack{Block: 2, Attack: 1}},
		{1, domain.Pass{}},
	})
	b := NewRuleBot(DefaultTuning)
	m, err := b.CalculateMove(r, 2, r.LegalMoves(2))
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if m != (domain.Pass{}) {
		t.Fatalf("move = %v, want pass on partner's attack", m)
	}
}

func TestRuleBotTracksPublicMoves(t *testing.T) {
	r := newRound(t, kingsHands(), 0)
	b := NewRuleBot(DefaultTuning)
	a := NewAgent("bot-1", "Bot", 1, b)
	r.Observe(func(seat domain.Seat, m domain.Move) { a.ObserveMove(r, seat, m) })

	play(t, r, []step{{0, domain.CoverThenAttack{Block: 2, Attack: 1}}})
	if b.Memory.Seen.Count(1) != 1 {
		t.Fatalf("seen pawns = %d", b.Memory.Seen.Count(1))
	}
	if _, err := a.Play(r); err != nil {
		t.Fatalf("Play: %v", err)
	}
}

func TestAgentRefusesOffTurn(t *testing.T) {
	r := newRound(t, kingsHands(), 0)
	a := NewAgent("bot-2", "Bot", 2, NewRandomBot(rand.New(rand.NewSource(1))))
	if _, err := a.Play(r); err == nil {
		t.Fatal("expected error playing off turn")
	}
	if _, err := a.SelectMove(r, 2, nil); !errors.Is(err, ErrNoLegalMoves) {
		t.Fatalf("err = %v", err)
	}
}

func TestFactory(t *testing.T) {
	tests := []struct {
		in      string
		want    BotLevel
		wantErr bool
	}{
		{in: "random", want: BotLevelRandom},
		{in: "easy", want: BotLevelRandom},
		{in: "Rule", want: BotLevelRule},
		{in: "hard", want: BotLevelRule},
		{in: "", want: BotLevelRule},
		{in: "god", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, %v", tt.in, got, err)
		}
	}
	if _, err := NewBrain("god", nil); err == nil {
		t.Fatal("expected unknown level error")
	}
	b, err := NewBrain(BotLevelRule, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := b.(*RuleBot); !ok {
		t.Fatalf("NewBrain(rule) = %T", b)
	}
}
