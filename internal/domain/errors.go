package domain

import "errors"

// ErrInvalidMove is matched by every move rejection.
var ErrInvalidMove = errors.New("invalid move")

// Reason is a machine-readable cause of a rejected move.
type Reason string

const (
	ReasonWrongTurn          Reason = "wrong_turn"
	ReasonHandMismatch       Reason = "hand_mismatch"
	ReasonUnknownRank        Reason = "unknown_rank"
	ReasonUnknownMarble      Reason = "unknown_marble"
	ReasonMalformedJoker     Reason = "malformed_joker"
	ReasonIllegalGetOut      Reason = "illegal_get_out"
	ReasonEntryOccupied      Reason = "entry_occupied"
	ReasonBlocked            Reason = "blocked"
	ReasonLandsOnEntry       Reason = "lands_on_entry"
	ReasonHomeOvershoot      Reason = "home_overshoot"
	ReasonHomeSlotOccupied   Reason = "home_slot_occupied"
	ReasonBackwardInHome     Reason = "backward_in_home"
	ReasonRescueBlocked      Reason = "rescue_blocked"
	ReasonNotApplicable      Reason = "not_applicable"
	ReasonInvariantViolation Reason = "invariant_violation"
)

// MoveError carries the reason a move was rejected.
type MoveError struct {
	Reason Reason
}

func (e *MoveError) Error() string {
	return "invalid move: " + string(e.Reason)
}

// Is matches ErrInvalidMove and any MoveError with the same reason.
func (e *MoveError) Is(target error) bool {
	if target == ErrInvalidMove {
		return true
	}
	if t, ok := target.(*MoveError); ok {
		return t.Reason == e.Reason
	}
	return false
}

// Reject builds the error for a move refused for reason.
func Reject(reason Reason) error {
	return &MoveError{Reason: reason}
}

// ReasonOf extracts the rejection reason from err, or "" when err is not a move rejection.
func ReasonOf(err error) Reason {
	var me *MoveError
	if errors.As(err, &me) {
		return me.Reason
	}
	return ""
}
