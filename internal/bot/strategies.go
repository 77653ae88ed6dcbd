package bot

import (
	"marbles/internal/domain"
)

// EasyBot plays the first legal play it finds.
type EasyBot struct{}

func (b *EasyBot) CalculateMove(game *domain.Game, seat domain.Seat) (Move, error) {
	plays := game.LegalPlays(seat)
	if len(plays) == 0 {
		return discardMove(game, seat)
	}
	return Move{Play: plays[0].Play}, nil
}
