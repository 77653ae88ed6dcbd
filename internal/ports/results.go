package ports

import "context"

// WinCredit is one wallet credit for a player on a winning team.
type WinCredit struct {
	UserID   string
	Amount   int64
	Metadata map[string]interface{}
}

// ResultsPort records finished games against player accounts.
type ResultsPort interface {
	// GetWins returns the user's recorded win count.
	GetWins(ctx context.Context, userID string) (int64, error)

	// CreditWins applies every credit, stopping at the first failure.
	CreditWins(ctx context.Context, credits []WinCredit) error
}
