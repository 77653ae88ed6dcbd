package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"marbles/internal/domain"
)

// Service contains the turn-sequencing use-cases operating on domain state.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrInvalidRoster     = errors.New("invalid roster")
	ErrNoGame            = errors.New("no game in progress")
	ErrGameInProgress    = errors.New("game already in progress")
	ErrGameOver          = errors.New("game already ended")
	ErrDiscardNotAllowed = errors.New("discard not allowed while a legal play exists")
)

// RosterEntry is one seated player handed over by the lobby.
type RosterEntry struct {
	Seat   domain.Seat
	Team   domain.Team
	UserID string
}

// ValidateRoster checks for exactly four distinct seats with parity-matching teams.
func ValidateRoster(roster []RosterEntry) error {
	if len(roster) != domain.SeatCount {
		return fmt.Errorf("%w: need %d players, got %d", ErrInvalidRoster, domain.SeatCount, len(roster))
	}
	var taken [domain.SeatCount]bool
	for _, e := range roster {
		if !e.Seat.Valid() {
			return fmt.Errorf("%w: seat %d out of range", ErrInvalidRoster, e.Seat)
		}
		if taken[e.Seat] {
			return fmt.Errorf("%w: seat %d listed twice", ErrInvalidRoster, e.Seat)
		}
		if e.Team != e.Seat.Team() {
			return fmt.Errorf("%w: seat %d belongs to team %s", ErrInvalidRoster, e.Seat, e.Seat.Team())
		}
		taken[e.Seat] = true
	}
	return nil
}

// StartGame builds a fresh game for a validated roster and deals every hand.
// Emits a broadcast game_started snapshot and one private hand_dealt per seat.
func (s *Service) StartGame(roster []RosterEntry) (*domain.Game, []Event, error) {
	if err := ValidateRoster(roster); err != nil {
		return nil, nil, err
	}

	game := domain.NewGame(domain.NewDeck(s.rng))

	events := make([]Event, 0, domain.SeatCount+1)
	events = append(events, Event{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{Snapshot: game.Snapshot()},
	})
	for seat := domain.Seat(0); seat < domain.SeatCount; seat++ {
		events = append(events, handEvent(game, seat))
	}
	return game, events, nil
}

// ApplyPlay validates turn and hand ownership, resolves the move and, on success,
// consumes the card, refills the hand and passes the turn. A rejected play leaves the game untouched.
func (s *Service) ApplyPlay(game *domain.Game, play domain.Play) ([]Event, error) {
	if game == nil {
		return nil, ErrNoGame
	}
	if game.Phase != domain.PhasePlaying {
		return nil, ErrGameOver
	}
	if !play.Seat.Valid() || game.Turn != play.Seat {
		return nil, domain.Reject(domain.ReasonWrongTurn)
	}
	if err := game.CheckHand(play.Seat, play.HandIndex, play.Rank); err != nil {
		return nil, err
	}
	intent, err := domain.ResolveIntent(play.Rank, play.Joker)
	if err != nil {
		return nil, err
	}
	out, err := game.ApplyMove(play.Seat, intent, play.MarbleID)
	if err != nil {
		return nil, err
	}

	game.ConsumeCard(play.Seat, play.HandIndex)
	game.AdvanceTurn()

	var joker *domain.JokerChoice
	if play.Rank == domain.Joker {
		joker = play.Joker
	}
	events := []Event{
		{
			Kind: EventMoveApplied,
			Payload: MoveAppliedPayload{
				Seat:        play.Seat,
				TargetSeat:  out.TargetSeat,
				Rank:        play.Rank,
				Joker:       joker,
				MarbleID:    play.MarbleID,
				From:        domain.ViewOf(out.Move.From),
				To:          domain.ViewOf(out.Move.To),
				Captured:    out.Captured,
				Rescued:     out.Rescued,
				EnteredHome: out.EnteredHome,
				CornerHop:   out.CornerHop,
				Snapshot:    game.Snapshot(),
			},
		},
		handEvent(game, play.Seat),
	}
	return s.checkEnd(game, events), nil
}

// Discard burns a card when the seat has no legal play, so a stuck hand cannot stall the table.
func (s *Service) Discard(game *domain.Game, seat domain.Seat, handIndex int, rank domain.Rank) ([]Event, error) {
	if game == nil {
		return nil, ErrNoGame
	}
	if game.Phase != domain.PhasePlaying {
		return nil, ErrGameOver
	}
	if !seat.Valid() || game.Turn != seat {
		return nil, domain.Reject(domain.ReasonWrongTurn)
	}
	if err := game.CheckHand(seat, handIndex, rank); err != nil {
		return nil, err
	}
	if game.HasLegalPlay(seat) {
		return nil, ErrDiscardNotAllowed
	}

	game.ConsumeCard(seat, handIndex)
	game.AdvanceTurn()

	events := []Event{
		{
			Kind:    EventCardDiscarded,
			Payload: CardDiscardedPayload{Seat: seat, Rank: rank, Snapshot: game.Snapshot()},
		},
		handEvent(game, seat),
	}
	return s.checkEnd(game, events), nil
}

// CurrentHand returns a copy of the seat's hand. Callers must deliver it only to that seat.
func (s *Service) CurrentHand(game *domain.Game, seat domain.Seat) ([]domain.Rank, error) {
	if game == nil {
		return nil, ErrNoGame
	}
	if !seat.Valid() {
		return nil, fmt.Errorf("seat %d out of range", seat)
	}
	return append([]domain.Rank(nil), game.Hands[seat]...), nil
}

// checkEnd closes the game when a team is all home, or with no winner once every card is spent.
func (s *Service) checkEnd(game *domain.Game, events []Event) []Event {
	team, ok := game.WinningTeam()
	if !ok {
		if !game.Exhausted() {
			return events
		}
		game.Phase = domain.PhaseEnded
		return append(events, Event{
			Kind:    EventGameEnded,
			Payload: GameEndedPayload{Exhausted: true},
		})
	}
	game.Phase = domain.PhaseEnded
	game.Winner = team
	var seats []domain.Seat
	for seat := domain.Seat(0); seat < domain.SeatCount; seat++ {
		if seat.Team() == team {
			seats = append(seats, seat)
		}
	}
	return append(events, Event{
		Kind:    EventGameEnded,
		Payload: GameEndedPayload{Winner: team, Seats: seats},
	})
}
