package nakama

import (
	"context"
	"testing"

	"marbles/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
)

func TestResultsAdapterCreditsAndReads(t *testing.T) {
	wallet := &mockWallet{accounts: map[string]*api.Account{
		"user-1": {Wallet: `{"marble_wins":3,"gold":100}`},
		"user-2": {},
	}}
	adapter := NewNakamaResultsAdapter(wallet)
	ctx := context.Background()

	wins, err := adapter.GetWins(ctx, "user-1")
	if err != nil || wins != 3 {
		t.Fatalf("wins = %d, err = %v", wins, err)
	}
	if wins, err := adapter.GetWins(ctx, "user-2"); err != nil || wins != 0 {
		t.Fatalf("empty wallet wins = %d, err = %v", wins, err)
	}

	err = adapter.CreditWins(ctx, []ports.WinCredit{
		{UserID: "user-1", Amount: 1},
		{UserID: "user-2", Amount: 0},
	})
	if err != nil {
		t.Fatalf("credit: %v", err)
	}
	if got := wallet.wallets["user-1"][walletKeyWins]; got != 1 {
		t.Fatalf("credited %d", got)
	}
	if _, ok := wallet.wallets["user-2"]; ok {
		t.Fatal("zero credit touched the wallet")
	}
}
