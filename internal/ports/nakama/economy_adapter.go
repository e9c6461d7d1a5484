package nakama

import (
	"context"
	"fmt"

	"goita/internal/ports"
)

// walletModule is the slice of runtime.NakamaModule the economy adapter uses.
type walletModule interface {
	WalletUpdate(ctx context.Context, userID string, changeset map[string]int64, metadata map[string]interface{}, updateLedger bool) (map[string]int64, map[string]int64, error)
}

// NakamaEconomyAdapter implements ports.EconomyPort using Nakama's wallet system.
type NakamaEconomyAdapter struct {
	nk       walletModule
	currency string
}

// NewNakamaEconomyAdapter creates an adapter crediting the given wallet key.
func NewNakamaEconomyAdapter(nk walletModule, currency string) *NakamaEconomyAdapter {
	return &NakamaEconomyAdapter{
		nk:       nk,
		currency: currency,
	}
}

// UpdateBalances applies multiple wallet changes.
func (a *NakamaEconomyAdapter) UpdateBalances(ctx context.Context, updates []ports.WalletUpdate) error {
	for _, update := range updates {
		if update.Amount == 0 {
			continue
		}

		changes := map[string]int64{
			a.currency: update.Amount,
		}

		_, _, err := a.nk.WalletUpdate(ctx, update.UserID, changes, update.Metadata, true)
		if err != nil {
			return fmt.Errorf("failed to update wallet for user %s: %w", update.UserID, err)
		}
	}
	return nil
}
