package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"marbles/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
)

// walletKeyWins is the wallet counter credited for every game won.
const walletKeyWins = "marble_wins"

// walletModule is the slice of runtime.NakamaModule the results adapter needs.
type walletModule interface {
	AccountGetId(ctx context.Context, userID string) (*api.Account, error)
	WalletUpdate(ctx context.Context, userID string, changeset map[string]int64, metadata map[string]interface{}, updateLedger bool) (map[string]int64, map[string]int64, error)
}

// NakamaResultsAdapter implements ports.ResultsPort using Nakama's wallet system.
type NakamaResultsAdapter struct {
	nk walletModule
}

// NewNakamaResultsAdapter creates a new results adapter.
func NewNakamaResultsAdapter(nk walletModule) *NakamaResultsAdapter {
	return &NakamaResultsAdapter{nk: nk}
}

// GetWins retrieves the marble_wins wallet counter for a user.
func (a *NakamaResultsAdapter) GetWins(ctx context.Context, userID string) (int64, error) {
	account, err := a.nk.AccountGetId(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}
	if account.GetWallet() == "" {
		return 0, nil
	}

	var wallet map[string]int64
	if err := json.Unmarshal([]byte(account.GetWallet()), &wallet); err != nil {
		return 0, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}
	return wallet[walletKeyWins], nil
}

// CreditWins applies win credits one wallet at a time.
func (a *NakamaResultsAdapter) CreditWins(ctx context.Context, credits []ports.WinCredit) error {
	for _, credit := range credits {
		if credit.Amount == 0 {
			continue
		}
		changes := map[string]int64{walletKeyWins: credit.Amount}
		if _, _, err := a.nk.WalletUpdate(ctx, credit.UserID, changes, credit.Metadata, true); err != nil {
			return fmt.Errorf("failed to update wallet for user %s: %w", credit.UserID, err)
		}
	}
	return nil
}
