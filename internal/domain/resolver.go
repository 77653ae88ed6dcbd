package domain

// Relocation moves one marble from one location to another.
type Relocation struct {
	Seat     Seat
	MarbleID int
	From     Location
	To       Location
}

// Outcome is a fully validated move, ready to be committed.
type Outcome struct {
	ActingSeat Seat
	// TargetSeat differs from ActingSeat when the acting seat is all home and moves its partner.
	TargetSeat  Seat
	Intent      MoveIntent
	Move        Relocation
	Captured    []Relocation
	Rescued     []Relocation
	EnteredHome bool
	CornerHop   bool
}

// PlanMove validates a move without touching the game. Every rule is checked here so that
// a successful plan always commits cleanly.
func (g *Game) PlanMove(acting Seat, intent MoveIntent, marbleID int) (Outcome, error) {
	if !acting.Valid() {
		return Outcome{}, Reject(ReasonWrongTurn)
	}
	if marbleID < 0 || marbleID >= MarblesPerSeat {
		return Outcome{}, Reject(ReasonUnknownMarble)
	}

	target := g.TargetSeat(acting)
	m := g.Players[target].Marbles[marbleID]
	out := Outcome{
		ActingSeat: acting,
		TargetSeat: target,
		Intent:     intent,
		Move:       Relocation{Seat: target, MarbleID: marbleID, From: m.Loc},
	}

	var err error
	switch loc := m.Loc.(type) {
	case AtStart:
		err = g.planGetOut(&out)
	case OnTrack:
		err = g.planTrack(&out, loc)
	case InHome:
		err = g.planHome(&out, loc)
	default:
		err = Reject(ReasonNotApplicable)
	}
	if err != nil {
		return Outcome{}, err
	}
	return out, nil
}

// ApplyMove plans the move and commits it when legal. On error the game is unchanged.
func (g *Game) ApplyMove(acting Seat, intent MoveIntent, marbleID int) (Outcome, error) {
	out, err := g.PlanMove(acting, intent, marbleID)
	if err != nil {
		return Outcome{}, err
	}
	g.Commit(out)
	return out, nil
}

// Commit writes a planned outcome into the game.
func (g *Game) Commit(out Outcome) {
	touched := map[Seat]bool{out.Move.Seat: true}
	for _, r := range out.Captured {
		g.Players[r.Seat].Marbles[r.MarbleID].Loc = r.To
		touched[r.Seat] = true
	}
	for _, r := range out.Rescued {
		g.Players[r.Seat].Marbles[r.MarbleID].Loc = r.To
		touched[r.Seat] = true
	}
	g.Players[out.Move.Seat].Marbles[out.Move.MarbleID].Loc = out.Move.To
	for s := range touched {
		g.Players[s].RecomputeAllHome()
	}
}

func (g *Game) planGetOut(out *Outcome) error {
	if !out.Intent.CanGetOut {
		return Reject(ReasonIllegalGetOut)
	}
	target := out.TargetSeat
	entry := GlobalPosition(target, EntryLocal)
	if _, taken := g.Players[target].marbleAtGlobal(entry, out.Move.MarbleID); taken {
		return Reject(ReasonEntryOccupied)
	}
	out.Move.To = OnTrack{Local: EntryLocal}
	return g.planLanding(out, entry)
}

func (g *Game) planTrack(out *Outcome, loc OnTrack) error {
	intent := out.Intent
	if intent.GetOutOnly {
		return Reject(ReasonIllegalGetOut)
	}
	target := out.TargetSeat
	ps := &g.Players[target]
	id := out.Move.MarbleID
	start := GlobalPosition(target, loc.Local)

	if intent.CornerHop && IsCorner(start) {
		dest := NextCorner(start)
		if ps.pathBlocked(start, ForwardDistance(start, dest), Forward, id) {
			return Reject(ReasonBlocked)
		}
		out.CornerHop = true
		out.Move.To = OnTrack{Local: LocalPosition(target, dest)}
		return g.planLanding(out, dest)
	}

	end := mod(start+intent.Direction.Sign()*intent.Steps, TrackLength)

	if intent.Direction == Forward && intent.AllowHome {
		entry := HomeEntryGlobal(target)
		toEntry := ForwardDistance(start, entry)
		// A marble starting on its entry cell does not cross it and goes around again.
		if Crosses(start, end, entry) {
			remaining := intent.Steps - toEntry - 1
			if remaining < 0 {
				return Reject(ReasonLandsOnEntry)
			}
			if remaining >= HomeSlots {
				return Reject(ReasonHomeOvershoot)
			}
			if ps.pathBlocked(start, toEntry, Forward, id) {
				return Reject(ReasonBlocked)
			}
			if ps.homeSlotTaken(remaining, id) {
				return Reject(ReasonHomeSlotOccupied)
			}
			out.EnteredHome = true
			out.Move.To = InHome{Slot: remaining}
			return nil
		}
	}

	if ps.pathBlocked(start, intent.Steps, intent.Direction, id) {
		return Reject(ReasonBlocked)
	}
	out.Move.To = OnTrack{Local: LocalPosition(target, end)}
	return g.planLanding(out, end)
}

func (g *Game) planHome(out *Outcome, loc InHome) error {
	intent := out.Intent
	switch intent.Direction {
	case Backward:
		return Reject(ReasonBackwardInHome)
	case Forward:
	default:
		return Reject(ReasonIllegalGetOut)
	}
	dest := loc.Slot + intent.Steps
	if dest >= HomeSlots {
		return Reject(ReasonHomeOvershoot)
	}
	if g.Players[out.TargetSeat].homeSlotTaken(dest, out.Move.MarbleID) {
		return Reject(ReasonHomeSlotOccupied)
	}
	out.Move.To = InHome{Slot: dest}
	return nil
}

// planLanding decides what happens to every marble already on the landing cell.
func (g *Game) planLanding(out *Outcome, global int) error {
	mover := out.TargetSeat
	for s := Seat(0); s < SeatCount; s++ {
		for _, m := range g.Players[s].Marbles {
			if s == mover && m.ID == out.Move.MarbleID {
				continue
			}
			pos, ok := m.Global()
			if !ok || pos != global {
				continue
			}
			from := m.Loc.(OnTrack)
			switch {
			case s == mover:
				// Blocking rules keep a seat's marbles apart; reaching here means state is corrupt.
				return Reject(ReasonInvariantViolation)
			case s.Team() == mover.Team():
				door := HomeEntryGlobal(s)
				if door == global {
					// Already on its entry cell; the partner stays put alongside the mover.
					continue
				}
				if _, taken := g.Players[s].marbleAtGlobal(door, m.ID); taken {
					return Reject(ReasonRescueBlocked)
				}
				out.Rescued = append(out.Rescued, Relocation{
					Seat: s, MarbleID: m.ID, From: from, To: OnTrack{Local: HomeEntryLocal},
				})
			default:
				out.Captured = append(out.Captured, Relocation{
					Seat: s, MarbleID: m.ID, From: from, To: AtStart{Slot: from.Local % HomeSlots},
				})
			}
		}
	}
	return nil
}

// pathBlocked walks steps cells from start in dir and reports whether any of them
// holds another marble of this seat. The landing cell counts as part of the path.
func (ps *PlayerState) pathBlocked(start, steps int, dir Direction, skip int) bool {
	pos := start
	for i := 0; i < steps; i++ {
		pos = mod(pos+dir.Sign(), TrackLength)
		if _, taken := ps.marbleAtGlobal(pos, skip); taken {
			return true
		}
	}
	return false
}
