package domain

// Hand is a multiset of tiles stored as per-rank counts. Index 0 is unused.
type Hand [MaxTile + 1]uint8

// HandOf builds a hand from a tile list. Invalid tiles are ignored.
func HandOf(tiles []Tile) Hand {
	var h Hand
	for _, t := range tiles {
		if t.Valid() {
			h[t]++
		}
	}
	return h
}

// Count returns how many copies of t the hand holds.
func (h *Hand) Count(t Tile) int {
	if !t.Valid() {
		return 0
	}
	return int(h[t])
}

// Has reports whether at least one t is held.
func (h *Hand) Has(t Tile) bool { return h.Count(t) > 0 }

// Size returns the total number of tiles held.
func (h *Hand) Size() int {
	n := 0
	for t := MinTile; t <= MaxTile; t++ {
		n += int(h[t])
	}
	return n
}

// Tiles lists the hand in ascending rank order.
func (h *Hand) Tiles() []Tile {
	out := make([]Tile, 0, h.Size())
	for t := MinTile; t <= MaxTile; t++ {
		for range h[t] {
			out = append(out, t)
		}
	}
	return out
}

// Ranks lists the distinct ranks held, ascending.
func (h *Hand) Ranks() []Tile {
	var out []Tile
	for t := MinTile; t <= MaxTile; t++ {
		if h[t] > 0 {
			out = append(out, t)
		}
	}
	return out
}

func (h *Hand) remove(t Tile) { h[t]-- }
