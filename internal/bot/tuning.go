package bot

// Tuning weights the GoodBot scoring terms.
type Tuning struct {
	// ProgressWeight scales how far the moved marble advanced toward its home column.
	ProgressWeight float64
	HomeEntry      float64
	Capture        float64
	Rescue         float64
	GetOut         float64
	// JokerPenalty discourages spending a joker when a plain card does as well.
	JokerPenalty float64
}

// DefaultTuning prefers finishing marbles, then captures, then getting out.
var DefaultTuning = Tuning{
	ProgressWeight: 1.0,
	HomeEntry:      40,
	Capture:        30,
	Rescue:         15,
	GetOut:         20,
	JokerPenalty:   8,
}
