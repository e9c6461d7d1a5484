package domain

import (
	"fmt"
	"math/rand"
)

// DeckSize is the number of tiles in a full set.
const DeckSize = NumSeats * HandSize

// deckComposition is the number of copies of each rank in a full set.
var deckComposition = Hand{0, 10, 4, 4, 4, 4, 2, 2, 1, 1}

// NewDeck returns the 32-tile set in ascending order.
func NewDeck() []Tile {
	return deckComposition.Tiles()
}

// ShuffleDeck returns a shuffled copy of deck.
func ShuffleDeck(rng *rand.Rand, deck []Tile) []Tile {
	out := make([]Tile, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Deal shuffles a fresh deck into four hands. Deals giving any seat more than
// maxOnes pawns are redealt, up to retries attempts, after which the last
// deal stands; maxOnes <= 0 disables the check. The error is non-nil only
// when rng is nil.
func Deal(rng *rand.Rand, maxOnes, retries int) ([NumSeats][]Tile, error) {
	var hands [NumSeats][]Tile
	if rng == nil {
		return hands, fmt.Errorf("%w: no random source", ErrInvalidDeal)
	}
	for range max(retries, 1) {
		deck := ShuffleDeck(rng, NewDeck())
		ok := true
		for s := range NumSeats {
			hands[s] = deck[s*HandSize : (s+1)*HandSize]
			if maxOnes > 0 && countTile(hands[s], TileShi) > maxOnes {
				ok = false
			}
		}
		if ok {
			return hands, nil
		}
	}
	return hands, nil
}

// ValidateDeal checks that hands hold eight tiles each and together form
// exactly one full set.
func ValidateDeal(hands [NumSeats][]Tile) error {
	var total Hand
	for s, h := range hands {
		if len(h) != HandSize {
			return fmt.Errorf("%w: seat %s holds %d tiles, want %d", ErrInvalidDeal, Seat(s), len(h), HandSize)
		}
		for _, t := range h {
			if !t.Valid() {
				return fmt.Errorf("%w: seat %s holds invalid tile %d", ErrInvalidDeal, Seat(s), t)
			}
			total[t]++
		}
	}
	if total != deckComposition {
		for t := MinTile; t <= MaxTile; t++ {
			if total[t] != deckComposition[t] {
				return fmt.Errorf("%w: %d copies of %s, want %d", ErrInvalidDeal, total[t], t, deckComposition[t])
			}
		}
	}
	return nil
}

func countTile(tiles []Tile, t Tile) int {
	n := 0
	for _, x := range tiles {
		if x == t {
			n++
		}
	}
	return n
}

// DeckCount returns how many copies of t a full set holds.
func DeckCount(t Tile) int {
	if !t.Valid() {
		return 0
	}
	return int(deckComposition[t])
}
