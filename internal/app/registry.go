package app

import (
	"errors"
	"fmt"
	"sync"

	"marbles/internal/domain"
)

// ErrUnknownRoom is returned for a room id with no open session.
var ErrUnknownRoom = errors.New("unknown room")

// Session is one room's table: its host and its current game, if any.
type Session struct {
	RoomID     string
	HostUserID string
	Roster     []RosterEntry
	Game       *domain.Game
}

// Registry maps room ids to sessions. The map is locked; a session is only mutated by its room's loop.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	service  *Service
	host     *HostAuthority
}

// NewRegistry builds an empty registry over service and host.
func NewRegistry(service *Service, host *HostAuthority) *Registry {
	if service == nil {
		service = NewService(nil)
	}
	return &Registry{
		sessions: make(map[string]*Session),
		service:  service,
		host:     host,
	}
}

// Open creates the room's session with hostUserID as host and returns the host token.
// The token is handed out once; later callers must already hold it.
func (r *Registry) Open(roomID, hostUserID string) (string, error) {
	token, err := r.host.Issue(roomID, hostUserID)
	if err != nil {
		return "", fmt.Errorf("issue host token: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[roomID]; ok {
		return "", fmt.Errorf("room %s already open", roomID)
	}
	r.sessions[roomID] = &Session{RoomID: roomID, HostUserID: hostUserID}
	return token, nil
}

// TransferHost hands the room to a new host and returns a token for them. Tokens issued to the
// previous host stop verifying for this room.
func (r *Registry) TransferHost(roomID, userID string) (string, error) {
	session, err := r.Get(roomID)
	if err != nil {
		return "", err
	}
	token, err := r.host.Issue(roomID, userID)
	if err != nil {
		return "", fmt.Errorf("issue host token: %w", err)
	}
	r.mu.Lock()
	session.HostUserID = userID
	r.mu.Unlock()
	return token, nil
}

// Get returns the room's session.
func (r *Registry) Get(roomID string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoom, roomID)
	}
	return session, nil
}

// Len reports the number of open rooms.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) authorize(session *Session, token string) error {
	userID, err := r.host.Verify(token, session.RoomID)
	if err != nil {
		return err
	}
	r.mu.Lock()
	host := session.HostUserID
	r.mu.Unlock()
	if userID != host {
		return fmt.Errorf("%w: token belongs to a previous host", ErrNotHost)
	}
	return nil
}

// Start begins a new game in the room. Only the host may start, and not while a game is in progress.
func (r *Registry) Start(roomID, token string, roster []RosterEntry) ([]Event, error) {
	session, err := r.Get(roomID)
	if err != nil {
		return nil, err
	}
	if err := r.authorize(session, token); err != nil {
		return nil, err
	}
	if session.Game != nil && session.Game.Phase == domain.PhasePlaying {
		return nil, ErrGameInProgress
	}

	game, events, err := r.service.StartGame(roster)
	if err != nil {
		return nil, err
	}
	session.Game = game
	session.Roster = append([]RosterEntry(nil), roster...)
	return events, nil
}

// Play applies a card play to the room's game.
func (r *Registry) Play(roomID string, play domain.Play) ([]Event, error) {
	session, err := r.Get(roomID)
	if err != nil {
		return nil, err
	}
	return r.service.ApplyPlay(session.Game, play)
}

// Discard burns a card for a seat that cannot move.
func (r *Registry) Discard(roomID string, seat domain.Seat, handIndex int, rank domain.Rank) ([]Event, error) {
	session, err := r.Get(roomID)
	if err != nil {
		return nil, err
	}
	return r.service.Discard(session.Game, seat, handIndex, rank)
}

// Hand returns the seat's current hand for private delivery.
func (r *Registry) Hand(roomID string, seat domain.Seat) ([]domain.Rank, error) {
	session, err := r.Get(roomID)
	if err != nil {
		return nil, err
	}
	return r.service.CurrentHand(session.Game, seat)
}

// Reset discards the room's game. Host only.
func (r *Registry) Reset(roomID, token string) ([]Event, error) {
	session, err := r.Get(roomID)
	if err != nil {
		return nil, err
	}
	if err := r.authorize(session, token); err != nil {
		return nil, err
	}
	session.Game = nil
	session.Roster = nil
	return []Event{{Kind: EventGameReset, Payload: GameResetPayload{}}}, nil
}

// Close removes the room.
func (r *Registry) Close(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, roomID)
}
