package domain

// Phase represents the lifecycle stage of a marble game.
type Phase string

const (
	// PhasePlaying is the active game state where cards are played.
	PhasePlaying Phase = "playing"
	// PhaseEnded is the state after a team has brought every marble home.
	PhaseEnded Phase = "ended"
)

// Game holds the authoritative state of one game session.
type Game struct {
	Phase   Phase
	Turn    Seat
	Deck    *Deck
	Hands   [SeatCount][]Rank
	Players [SeatCount]PlayerState
	// Played counts cards consumed this session. Played cards leave the game for good.
	Played int
	Winner Team
}

// NewGame seats four players with every marble at start and deals from deck.
func NewGame(deck *Deck) *Game {
	g := &Game{
		Phase: PhasePlaying,
		Turn:  0,
		Deck:  deck,
	}
	for s := Seat(0); s < SeatCount; s++ {
		g.Players[s] = NewPlayerState(s)
		g.Hands[s] = make([]Rank, 0, HandSize)
	}
	deck.Deal(&g.Hands)
	return g
}

// Play is a request to play one card from a hand onto one marble.
type Play struct {
	Seat      Seat
	HandIndex int
	Rank      Rank
	MarbleID  int
	// Joker is required when Rank is Joker and ignored otherwise.
	Joker *JokerChoice
}

// CardsInCirculation is the deck size plus every hand size.
func (g *Game) CardsInCirculation() int {
	n := g.Deck.Len()
	for _, h := range g.Hands {
		n += len(h)
	}
	return n
}

// TargetSeat is the seat whose marbles the acting seat moves this turn.
func (g *Game) TargetSeat(acting Seat) Seat {
	if g.Players[acting].AllHome {
		return acting.Partner()
	}
	return acting
}

// CheckHand reports whether the hand entry at index holds rank.
func (g *Game) CheckHand(seat Seat, index int, rank Rank) error {
	hand := g.Hands[seat]
	if index < 0 || index >= len(hand) || hand[index] != rank {
		return Reject(ReasonHandMismatch)
	}
	return nil
}

// ConsumeCard removes the card at index from the seat's hand and refills the hand.
func (g *Game) ConsumeCard(seat Seat, index int) Rank {
	hand := g.Hands[seat]
	card := hand[index]
	hand = append(hand[:index:index], hand[index+1:]...)
	g.Hands[seat] = g.Deck.Refill(hand)
	g.Played++
	return card
}

// AdvanceTurn passes the turn to the next seat still holding cards.
// While the deck lasts this is always (seat+1) mod 4. Once it is spent, empty-handed seats
// are skipped so play cannot stall on them; the turn stays put when nobody has a card.
func (g *Game) AdvanceTurn() {
	next := g.Turn.Next()
	for i := 0; i < SeatCount; i++ {
		if len(g.Hands[next]) > 0 {
			g.Turn = next
			return
		}
		next = next.Next()
	}
}

// Exhausted reports whether every card has been played.
func (g *Game) Exhausted() bool {
	return g.CardsInCirculation() == 0
}

// WinningTeam reports the team whose two seats are both all home, if any.
func (g *Game) WinningTeam() (Team, bool) {
	for s := Seat(0); s < 2; s++ {
		if g.Players[s].AllHome && g.Players[s.Partner()].AllHome {
			return s.Team(), true
		}
	}
	return 0, false
}

// Where is the wire name of a marble location kind.
type Where string

const (
	WhereStart Where = "START"
	WhereTrack Where = "TRACK"
	WhereHome  Where = "HOME"
)

// MarbleView is a marble as seen by every client.
type MarbleView struct {
	Where Where
	Index int
}

// PlayerView is a seat's public state.
type PlayerView struct {
	AllHome bool
	Marbles [MarblesPerSeat]MarbleView
}

// Snapshot is the public game state. It never carries hand contents.
type Snapshot struct {
	Turn    Seat
	Phase   Phase
	Players [SeatCount]PlayerView
}

// ViewOf flattens a location into its public form.
func ViewOf(loc Location) MarbleView {
	switch l := loc.(type) {
	case AtStart:
		return MarbleView{Where: WhereStart, Index: l.Slot}
	case OnTrack:
		return MarbleView{Where: WhereTrack, Index: l.Local}
	case InHome:
		return MarbleView{Where: WhereHome, Index: l.Slot}
	}
	return MarbleView{}
}

// Snapshot captures the public state of the game.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{Turn: g.Turn, Phase: g.Phase}
	for s, ps := range g.Players {
		snap.Players[s].AllHome = ps.AllHome
		for i, m := range ps.Marbles {
			snap.Players[s].Marbles[i] = ViewOf(m.Loc)
		}
	}
	return snap
}
