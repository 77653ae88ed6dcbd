package bot

import (
	"fmt"

	"marbles/internal/domain"
)

// Agent represents an autonomous bot player seated at a table.
type Agent struct {
	ID       string
	Name     string
	Seat     domain.Seat
	Strategy Brain
}

// NewAgent builds an agent for the identity seated at seat.
func NewAgent(identity BotIdentity, seat domain.Seat, level BotLevel) (*Agent, error) {
	if identity.Difficulty != "" {
		level = BotLevel(identity.Difficulty)
	}
	brain, err := NewBrain(level)
	if err != nil {
		return nil, fmt.Errorf("bot %s: %w", identity.UserID, err)
	}
	return &Agent{ID: identity.UserID, Name: identity.DisplayName, Seat: seat, Strategy: brain}, nil
}

// Play asks the agent to calculate its move based on the current game state.
func (a *Agent) Play(game *domain.Game) (Move, error) {
	if game == nil || game.Turn != a.Seat {
		return Move{}, fmt.Errorf("bot %s asked to play out of turn", a.ID)
	}
	return a.Strategy.CalculateMove(game, a.Seat)
}
