package app

import "marbles/internal/domain"

// EventKind identifies emitted app events for Nakama dispatch.
type EventKind string

const (
	EventGameStarted   EventKind = "game_started"
	EventHandDealt     EventKind = "hand_dealt"
	EventMoveApplied   EventKind = "move_applied"
	EventCardDiscarded EventKind = "card_discarded"
	EventGameEnded     EventKind = "game_ended"
	EventGameReset     EventKind = "game_reset"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind    EventKind
	Payload any
	// Recipients are seats; empty means broadcast. Hands are only ever sent to their own seat.
	Recipients []domain.Seat
}

type GameStartedPayload struct {
	Snapshot domain.Snapshot
}

type HandDealtPayload struct {
	Seat domain.Seat
	Hand []domain.Rank
}

type MoveAppliedPayload struct {
	Seat        domain.Seat
	TargetSeat  domain.Seat
	Rank        domain.Rank
	Joker       *domain.JokerChoice
	MarbleID    int
	From        domain.MarbleView
	To          domain.MarbleView
	Captured    []domain.Relocation
	Rescued     []domain.Relocation
	EnteredHome bool
	CornerHop   bool
	Snapshot    domain.Snapshot
}

type CardDiscardedPayload struct {
	Seat     domain.Seat
	Rank     domain.Rank
	Snapshot domain.Snapshot
}

type GameEndedPayload struct {
	Winner domain.Team
	Seats  []domain.Seat
	// Exhausted is set when the cards ran out before any team finished; Winner is then meaningless.
	Exhausted bool
}

type GameResetPayload struct{}

func handEvent(game *domain.Game, seat domain.Seat) Event {
	return Event{
		Kind:       EventHandDealt,
		Payload:    HandDealtPayload{Seat: seat, Hand: append([]domain.Rank(nil), game.Hands[seat]...)},
		Recipients: []domain.Seat{seat},
	}
}
