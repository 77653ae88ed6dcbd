package bot

import (
	"marbles/internal/domain"
)

// Move represents the decision made by the AI.
type Move struct {
	// Discard is set when no card in hand can move any marble.
	Discard bool
	Play    domain.Play
}

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	CalculateMove(game *domain.Game, seat domain.Seat) (Move, error)
}

// discardMove burns the first card in the seat's hand.
func discardMove(game *domain.Game, seat domain.Seat) (Move, error) {
	hand := game.Hands[seat]
	if len(hand) == 0 {
		return Move{}, errEmptyHand
	}
	return Move{Discard: true, Play: domain.Play{Seat: seat, HandIndex: 0, Rank: hand[0]}}, nil
}
