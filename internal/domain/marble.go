package domain

import "fmt"

// Location is where a marble currently sits. It is exactly one of AtStart, OnTrack or InHome.
type Location interface {
	isLocation()
	fmt.Stringer
}

// AtStart is a marble waiting in its seat's start cluster. Slot is decorative.
type AtStart struct {
	Slot int
}

// OnTrack is a marble on the shared track. Local is relative to the owning seat's offset.
type OnTrack struct {
	Local int
}

// InHome is a marble in its seat's home column. Slot 0 is nearest the track.
type InHome struct {
	Slot int
}

func (AtStart) isLocation() {}
func (OnTrack) isLocation() {}
func (InHome) isLocation()  {}

func (l AtStart) String() string { return fmt.Sprintf("start(%d)", l.Slot) }
func (l OnTrack) String() string { return fmt.Sprintf("track(%d)", l.Local) }
func (l InHome) String() string  { return fmt.Sprintf("home(%d)", l.Slot) }

// Marble is one of a seat's five pieces.
type Marble struct {
	ID   int
	Seat Seat
	Loc  Location
}

// Global returns the marble's global track cell, if it is on the track.
func (m Marble) Global() (int, bool) {
	t, ok := m.Loc.(OnTrack)
	if !ok {
		return 0, false
	}
	return GlobalPosition(m.Seat, t.Local), true
}

// PlayerState is one seat's marbles plus the derived all-home flag.
type PlayerState struct {
	Seat    Seat
	Marbles [MarblesPerSeat]Marble
	AllHome bool
}

// NewPlayerState returns a seat with every marble in its start cluster.
func NewPlayerState(seat Seat) PlayerState {
	ps := PlayerState{Seat: seat}
	for i := range ps.Marbles {
		ps.Marbles[i] = Marble{ID: i, Seat: seat, Loc: AtStart{Slot: i}}
	}
	return ps
}

// RecomputeAllHome refreshes AllHome from the marble locations.
func (ps *PlayerState) RecomputeAllHome() {
	for _, m := range ps.Marbles {
		if _, ok := m.Loc.(InHome); !ok {
			ps.AllHome = false
			return
		}
	}
	ps.AllHome = true
}

// HomeCount is how many of the seat's marbles are in its home column.
func (ps *PlayerState) HomeCount() int {
	n := 0
	for _, m := range ps.Marbles {
		if _, ok := m.Loc.(InHome); ok {
			n++
		}
	}
	return n
}

// marbleAtGlobal returns the id of the seat's marble on the global cell, ignoring skip.
func (ps *PlayerState) marbleAtGlobal(global, skip int) (int, bool) {
	for _, m := range ps.Marbles {
		if m.ID == skip {
			continue
		}
		if g, ok := m.Global(); ok && g == global {
			return m.ID, true
		}
	}
	return 0, false
}

// homeSlotTaken reports whether another of the seat's marbles sits in the home slot.
func (ps *PlayerState) homeSlotTaken(slot, skip int) bool {
	for _, m := range ps.Marbles {
		if m.ID == skip {
			continue
		}
		if h, ok := m.Loc.(InHome); ok && h.Slot == slot {
			return true
		}
	}
	return false
}
