package domain

// Direction is the way a marble travels along the track.
type Direction int

const (
	DirectionNone Direction = iota
	Forward
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "none"
	}
}

// Sign is +1 for forward, -1 for backward and 0 otherwise.
func (d Direction) Sign() int {
	switch d {
	case Forward:
		return 1
	case Backward:
		return -1
	default:
		return 0
	}
}

// MaxJokerSteps is the largest step count a joker may stand in for.
const MaxJokerSteps = 13

// MoveIntent is everything the resolver needs to know about a played card, resolved once.
type MoveIntent struct {
	Rank      Rank
	Steps     int
	Direction Direction
	// CanGetOut allows moving a marble from start onto its entry cell.
	CanGetOut bool
	// GetOutOnly marks a joker played as a get-out: it cannot move a marble already in play.
	GetOutOnly bool
	// AllowHome permits the traversal to turn into the home column.
	AllowHome bool
	// CornerHop lets a marble on a corner cell jump to the next corner.
	CornerHop bool
}

// ResolveIntent maps a rank (and, for jokers, the choice) to its movement parameters.
// choice is ignored for non-joker ranks.
func ResolveIntent(rank Rank, choice *JokerChoice) (MoveIntent, error) {
	intent := MoveIntent{Rank: rank, Direction: Forward, AllowHome: true}
	switch rank {
	case Ace:
		intent.Steps = 1
		intent.CanGetOut = true
		intent.CornerHop = true
	case Two, Three, Four, Five, Six, Seven, Nine:
		intent.Steps = int(rank)
	case Eight:
		intent.Steps = 8
		intent.Direction = Backward
		intent.AllowHome = false
	case Ten, Jack, Queen, King:
		intent.Steps = int(rank)
		intent.CanGetOut = true
	case Joker:
		if choice == nil {
			return MoveIntent{}, Reject(ReasonMalformedJoker)
		}
		if choice.GetOut {
			intent.Direction = DirectionNone
			intent.CanGetOut = true
			intent.GetOutOnly = true
			intent.AllowHome = false
			return intent, nil
		}
		if choice.Steps < 1 || choice.Steps > MaxJokerSteps {
			return MoveIntent{}, Reject(ReasonMalformedJoker)
		}
		intent.Steps = choice.Steps
	default:
		return MoveIntent{}, Reject(ReasonUnknownRank)
	}
	return intent, nil
}
