package bot

import (
	"marbles/internal/domain"
)

// GoodBot scores every legal play greedily and picks the best one.
type GoodBot struct {
	Tuning Tuning
}

func (b *GoodBot) CalculateMove(game *domain.Game, seat domain.Seat) (Move, error) {
	plays := game.LegalPlays(seat)
	if len(plays) == 0 {
		return discardMove(game, seat)
	}

	best := 0
	bestScore := b.score(plays[0])
	for i := 1; i < len(plays); i++ {
		if s := b.score(plays[i]); s > bestScore {
			best, bestScore = i, s
		}
	}
	return Move{Play: plays[best].Play}, nil
}

func (b *GoodBot) score(lp domain.LegalPlay) float64 {
	out := lp.Outcome
	t := b.Tuning

	s := t.ProgressWeight * float64(progress(out.Move.To)-progress(out.Move.From))
	if out.EnteredHome {
		s += t.HomeEntry
	}
	if _, fromStart := out.Move.From.(domain.AtStart); fromStart {
		s += t.GetOut
	}
	s += t.Capture * float64(len(out.Captured))
	s += t.Rescue * float64(len(out.Rescued))
	if lp.Play.Rank == domain.Joker {
		s -= t.JokerPenalty
	}
	return s
}

// progress ranks a location along its owner's route: start, then track up to the door, then home.
// A marble standing on the door has a full lap ahead, since home is only entered by passing it.
func progress(loc domain.Location) int {
	switch l := loc.(type) {
	case domain.OnTrack:
		toDoor := (domain.HomeEntryLocal - l.Local + domain.TrackLength) % domain.TrackLength
		if toDoor == 0 {
			toDoor = domain.TrackLength
		}
		return domain.TrackLength - toDoor
	case domain.InHome:
		return domain.TrackLength + 1 + l.Slot
	}
	return 0
}
