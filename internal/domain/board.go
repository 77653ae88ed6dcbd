package domain

const (
	// SeatCount is the fixed number of seats at a table.
	SeatCount = 4
	// CellsPerSeat is the length of one seat's segment of the shared track.
	CellsPerSeat = 14
	// TrackLength is the number of cells on the circular track.
	TrackLength = SeatCount * CellsPerSeat
	// HomeSlots is the depth of each seat's home column.
	HomeSlots = 5
	// MarblesPerSeat is the number of marbles each seat races.
	MarblesPerSeat = 5
	// HomeEntryLocal is the last track cell of a seat's segment, right before its home column.
	HomeEntryLocal = CellsPerSeat - 1
	// EntryLocal is the cell a marble lands on when it gets out of start.
	EntryLocal = 0
)

// CornerCells are the global entry cells of each seat segment.
var CornerCells = [SeatCount]int{0, 14, 28, 42}

// Seat identifies one of the four player positions.
type Seat int

// Team groups seats by parity.
type Team int

const (
	TeamA Team = 0
	TeamB Team = 1
)

func (t Team) String() string {
	if t == TeamA {
		return "A"
	}
	return "B"
}

// Valid reports whether the seat is one of 0..3.
func (s Seat) Valid() bool {
	return s >= 0 && s < SeatCount
}

// Team returns the team the seat plays for.
func (s Seat) Team() Team {
	return Team(s % 2)
}

// Partner returns the teammate seat across the table.
func (s Seat) Partner() Seat {
	return (s + 2) % SeatCount
}

// Next returns the seat that plays after s.
func (s Seat) Next() Seat {
	return (s + 1) % SeatCount
}

// SeatOffset is the global cell where the seat's segment begins.
func SeatOffset(s Seat) int {
	return int(s) * CellsPerSeat
}

// GlobalPosition converts a seat-relative track index into a global cell.
func GlobalPosition(s Seat, local int) int {
	return mod(SeatOffset(s)+local, TrackLength)
}

// LocalPosition converts a global cell into the seat-relative track index.
func LocalPosition(s Seat, global int) int {
	return mod(global-SeatOffset(s), TrackLength)
}

// HomeEntryGlobal is the global cell of the seat's home entry.
func HomeEntryGlobal(s Seat) int {
	return GlobalPosition(s, HomeEntryLocal)
}

// IsCorner reports whether the global cell is a segment entry cell.
func IsCorner(global int) bool {
	for _, c := range CornerCells {
		if c == global {
			return true
		}
	}
	return false
}

// NextCorner returns the corner following the given corner, wrapping after the last one.
func NextCorner(global int) int {
	for i, c := range CornerCells {
		if c == global {
			return CornerCells[(i+1)%len(CornerCells)]
		}
	}
	return global
}

// ForwardDistance is the number of forward steps from a to b.
func ForwardDistance(a, b int) int {
	return mod(b-a, TrackLength)
}

// Crosses reports whether the forward path from a (exclusive) to b (inclusive) passes x.
// A zero-length path passes nothing.
func Crosses(a, b, x int) bool {
	if a == b {
		return false
	}
	if a < b {
		return x > a && x <= b
	}
	return x > a || x <= b
}

func mod(v, m int) int {
	r := v % m
	if r < 0 {
		r += m
	}
	return r
}
