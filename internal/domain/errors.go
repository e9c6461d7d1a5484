package domain

import "errors"

var (
	// ErrIllegalMove is returned for any move the current round state forbids.
	// The round is left unchanged.
	ErrIllegalMove = errors.New("illegal move")
	// ErrInvalidDeal is returned when hands do not form a legal deal.
	ErrInvalidDeal = errors.New("invalid deal")
)
