package domain

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewDeckComposition(t *testing.T) {
	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("len = %d, want %d", len(deck), DeckSize)
	}
	want := map[Tile]int{1: 10, 2: 4, 3: 4, 4: 4, 5: 4, 6: 2, 7: 2, 8: 1, 9: 1}
	for tile, n := range want {
		if got := countTile(deck, tile); got != n {
			t.Errorf("count(%s) = %d, want %d", tile, got, n)
		}
	}
}

func TestDealProducesValidHands(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for range 200 {
		hands, err := Deal(rng, 4, 5000)
		if err != nil {
			t.Fatalf("Deal: %v", err)
		}
		if err := ValidateDeal(hands); err != nil {
			t.Fatalf("ValidateDeal: %v", err)
		}
		for s, h := range hands {
			if n := countTile(h, TileShi); n > 4 {
				t.Fatalf("seat %d got %d pawns", s, n)
			}
		}
	}
}

func TestDealIsReproducible(t *testing.T) {
	a, _ := Deal(rand.New(rand.NewSource(42)), 4, 100)
	b, _ := Deal(rand.New(rand.NewSource(42)), 4, 100)
	for s := range NumSeats {
		if HandOf(a[s]) != HandOf(b[s]) {
			t.Fatalf("seat %d differs: %v vs %v", s, a[s], b[s])
		}
	}
}

func TestDealKeepsLastDealAfterRetries(t *testing.T) {
	// Ten pawns across four seats always leaves some seat with at least three.
	hands, err := Deal(rand.New(rand.NewSource(1)), 2, 5)
	if err != nil {
		t.Fatalf("Deal: %v", err)
	}
	if err := ValidateDeal(hands); err != nil {
		t.Fatalf("last deal is not playable: %v", err)
	}
	if _, err := Deal(nil, 4, 10); !errors.Is(err, ErrInvalidDeal) {
		t.Fatalf("nil rng: err = %v, want ErrInvalidDeal", err)
	}
}

func TestParseTile(t *testing.T) {
	tests := []struct {
		in      string
		want    Tile
		wantErr bool
	}{
		{in: "1", want: TileShi},
		{in: "9", want: TileOu},
		{in: "kin", want: TileKin},
		{in: "gyoku", want: TileGyoku},
		{in: "0", wantErr: true},
		{in: "10", wantErr: true},
		{in: "pawn", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTile(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseTile(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanReceive(t *testing.T) {
	tests := []struct {
		block, attack Tile
		want          bool
	}{
		{5, 5, true},
		{5, 4, false},
		{TileOu, 7, true},
		{TileGyoku, 3, true},
		{TileOu, TileShi, false},
		{TileGyoku, TileKyo, false},
		{TileOu, TileGyoku, true},
		{TileShi, TileShi, true},
		{TileNone, TileShi, false},
	}
	for _, tt := range tests {
		if got := CanReceive(tt.block, tt.attack); got != tt.want {
			t.Errorf("CanReceive(%s, %s) = %v, want %v", tt.block, tt.attack, got, tt.want)
		}
	}
}
