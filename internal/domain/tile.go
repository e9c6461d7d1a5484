package domain

import (
	"fmt"
	"strconv"
)

// Tile is a Goita koma identified by its rank (1..9).
// The zero value TileNone marks an absent tile.
type Tile int8

const (
	TileNone  Tile = 0
	TileShi   Tile = 1 // pawn
	TileKyo   Tile = 2 // lance
	TileUma   Tile = 3 // knight
	TileGin   Tile = 4 // silver
	TileKin   Tile = 5 // gold
	TileKaku  Tile = 6 // bishop
	TileHisha Tile = 7 // rook
	TileGyoku Tile = 8 // jewel king
	TileOu    Tile = 9 // king
)

// MinTile and MaxTile bound the valid ranks.
const (
	MinTile = TileShi
	MaxTile = TileOu
)

var tileNames = [...]string{"", "shi", "kyo", "uma", "gin", "kin", "kaku", "hisha", "gyoku", "ou"}

// Valid reports whether t is one of the nine ranks.
func (t Tile) Valid() bool { return t >= MinTile && t <= MaxTile }

// IsKing reports whether t is one of the two kings (8 or 9).
func (t Tile) IsKing() bool { return t == TileGyoku || t == TileOu }

// Points returns the scoring value of the tile. Invalid tiles score 0.
func (t Tile) Points() int {
	switch t {
	case TileOu, TileGyoku:
		return 50
	case TileHisha, TileKaku:
		return 40
	case TileKin, TileGin:
		return 30
	case TileUma, TileKyo:
		return 20
	case TileShi:
		return 10
	}
	return 0
}

// Name returns the traditional piece name.
func (t Tile) Name() string {
	if !t.Valid() {
		return ""
	}
	return tileNames[t]
}

func (t Tile) String() string {
	if !t.Valid() {
		return "-"
	}
	return strconv.Itoa(int(t))
}

// ParseTile accepts a rank digit ("1".."9") or a piece name ("ou", "kin", ...).
func ParseTile(s string) (Tile, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n >= int(MinTile) && n <= int(MaxTile) {
			return Tile(n), nil
		}
		return TileNone, fmt.Errorf("tile rank %d out of range", n)
	}
	for i := MinTile; i <= MaxTile; i++ {
		if tileNames[i] == s {
			return i, nil
		}
	}
	return TileNone, fmt.Errorf("unknown tile %q", s)
}
