package domain

// Slot is a placed block: a received tile (face up) or a cover (face down).
type Slot struct {
	Tile   Tile
	Hidden bool
}

// Board is one seat's placed tiles: a row of blocks and a row of attacks,
// both in placement order.
type Board struct {
	Blocks  []Slot
	Attacks []Tile
}

// Masked returns a copy with hidden tiles replaced by TileNone, suitable for
// showing to other seats.
func (b Board) Masked() Board {
	out := b.clone()
	for i := range out.Blocks {
		if out.Blocks[i].Hidden {
			out.Blocks[i].Tile = TileNone
		}
	}
	return out
}

// Concealed lists the face-down tiles in placement order.
func (b Board) Concealed() []Tile {
	var out []Tile
	for _, s := range b.Blocks {
		if s.Hidden {
			out = append(out, s.Tile)
		}
	}
	return out
}

// FaceUp lists every visible tile: received blocks followed by attacks.
func (b Board) FaceUp() []Tile {
	var out []Tile
	for _, s := range b.Blocks {
		if !s.Hidden {
			out = append(out, s.Tile)
		}
	}
	return append(out, b.Attacks...)
}

// Len returns the number of placed tiles.
func (b Board) Len() int { return len(b.Blocks) + len(b.Attacks) }

func (b Board) clone() Board {
	return Board{
		Blocks:  append([]Slot(nil), b.Blocks...),
		Attacks: append([]Tile(nil), b.Attacks...),
	}
}
