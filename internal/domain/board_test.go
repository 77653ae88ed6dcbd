package domain

import "testing"

func TestSeatArithmetic(t *testing.T) {
	tests := []struct {
		seat    Seat
		offset  int
		team    Team
		partner Seat
		next    Seat
		entry   int
	}{
		{seat: 0, offset: 0, team: TeamA, partner: 2, next: 1, entry: 13},
		{seat: 1, offset: 14, team: TeamB, partner: 3, next: 2, entry: 27},
		{seat: 2, offset: 28, team: TeamA, partner: 0, next: 3, entry: 41},
		{seat: 3, offset: 42, team: TeamB, partner: 1, next: 0, entry: 55},
	}

	for _, tt := range tests {
		if got := SeatOffset(tt.seat); got != tt.offset {
			t.Errorf("SeatOffset(%d) = %d, want %d", tt.seat, got, tt.offset)
		}
		if got := tt.seat.Team(); got != tt.team {
			t.Errorf("Seat(%d).Team() = %v, want %v", tt.seat, got, tt.team)
		}
		if got := tt.seat.Partner(); got != tt.partner {
			t.Errorf("Seat(%d).Partner() = %d, want %d", tt.seat, got, tt.partner)
		}
		if got := tt.seat.Next(); got != tt.next {
			t.Errorf("Seat(%d).Next() = %d, want %d", tt.seat, got, tt.next)
		}
		if got := HomeEntryGlobal(tt.seat); got != tt.entry {
			t.Errorf("HomeEntryGlobal(%d) = %d, want %d", tt.seat, got, tt.entry)
		}
	}
}

func TestGlobalLocalRoundTrip(t *testing.T) {
	for s := Seat(0); s < SeatCount; s++ {
		for local := 0; local < TrackLength; local++ {
			g := GlobalPosition(s, local)
			if g < 0 || g >= TrackLength {
				t.Fatalf("GlobalPosition(%d, %d) = %d out of range", s, local, g)
			}
			if back := LocalPosition(s, g); back != local {
				t.Fatalf("LocalPosition(%d, %d) = %d, want %d", s, g, back, local)
			}
		}
	}
	if got := GlobalPosition(3, 20); got != 6 {
		t.Fatalf("GlobalPosition(3, 20) = %d, want 6", got)
	}
}

func TestCorners(t *testing.T) {
	tests := []struct {
		from int
		want int
	}{
		{from: 0, want: 14},
		{from: 14, want: 28},
		{from: 28, want: 42},
		{from: 42, want: 0},
	}
	for _, tt := range tests {
		if !IsCorner(tt.from) {
			t.Errorf("IsCorner(%d) = false", tt.from)
		}
		if got := NextCorner(tt.from); got != tt.want {
			t.Errorf("NextCorner(%d) = %d, want %d", tt.from, got, tt.want)
		}
	}
	if IsCorner(1) || IsCorner(13) {
		t.Fatal("non-corner cell reported as corner")
	}
}

func TestCrosses(t *testing.T) {
	tests := []struct {
		name    string
		a, b, x int
		want    bool
	}{
		{name: "inside", a: 5, b: 10, x: 8, want: true},
		{name: "lands on x", a: 5, b: 10, x: 10, want: true},
		{name: "starts on x", a: 5, b: 10, x: 5, want: false},
		{name: "before", a: 5, b: 10, x: 3, want: false},
		{name: "wrap tail", a: 50, b: 3, x: 55, want: true},
		{name: "wrap head", a: 50, b: 3, x: 0, want: true},
		{name: "wrap outside", a: 50, b: 3, x: 20, want: false},
		{name: "empty path", a: 7, b: 7, x: 7, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Crosses(tt.a, tt.b, tt.x); got != tt.want {
				t.Errorf("Crosses(%d, %d, %d) = %v, want %v", tt.a, tt.b, tt.x, got, tt.want)
			}
		})
	}
}
