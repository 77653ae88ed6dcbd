package domain

// LegalPlay is a play the seat could make right now together with what it would do.
type LegalPlay struct {
	Play    Play
	Outcome Outcome
}

// jokerChoices lists every way a joker can be played.
func jokerChoices() []JokerChoice {
	choices := make([]JokerChoice, 0, MaxJokerSteps+1)
	choices = append(choices, JokerChoice{GetOut: true})
	for n := 1; n <= MaxJokerSteps; n++ {
		choices = append(choices, JokerChoice{Steps: n})
	}
	return choices
}

// LegalPlays enumerates every legal play for seat with its current hand.
// Duplicate ranks in a hand are only tried once, at their first index.
func (g *Game) LegalPlays(seat Seat) []LegalPlay {
	if !seat.Valid() {
		return nil
	}
	var plays []LegalPlay
	seen := make(map[Rank]bool)
	for idx, rank := range g.Hands[seat] {
		if seen[rank] {
			continue
		}
		seen[rank] = true

		var choices []*JokerChoice
		if rank == Joker {
			for _, c := range jokerChoices() {
				c := c
				choices = append(choices, &c)
			}
		} else {
			choices = []*JokerChoice{nil}
		}

		for _, choice := range choices {
			intent, err := ResolveIntent(rank, choice)
			if err != nil {
				continue
			}
			for id := 0; id < MarblesPerSeat; id++ {
				out, err := g.PlanMove(seat, intent, id)
				if err != nil {
					continue
				}
				plays = append(plays, LegalPlay{
					Play:    Play{Seat: seat, HandIndex: idx, Rank: rank, MarbleID: id, Joker: choice},
					Outcome: out,
				})
			}
		}
	}
	return plays
}

// HasLegalPlay reports whether any card in the seat's hand can move any marble.
func (g *Game) HasLegalPlay(seat Seat) bool {
	return len(g.LegalPlays(seat)) > 0
}
