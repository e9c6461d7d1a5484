package ports

import "context"

// WalletUpdate represents a single currency change for a user.
type WalletUpdate struct {
	UserID   string
	Amount   int64
	Metadata map[string]interface{}
}

// EconomyPort credits round points to player wallets.
type EconomyPort interface {
	// UpdateBalances applies multiple wallet changes. Used at the end of a
	// round to credit the winning team.
	UpdateBalances(ctx context.Context, updates []WalletUpdate) error
}
