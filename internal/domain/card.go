package domain

import (
	"strconv"
	"strings"
)

// Rank is a card in the marble deck. Suits carry no meaning in this game.
type Rank int

const (
	RankInvalid Rank = iota
	Ace
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Joker
)

// StandardRankCount is the number of non-joker ranks.
const StandardRankCount = 13

// StandardRanks lists the thirteen non-joker ranks in deck order.
var StandardRanks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

var rankNames = map[Rank]string{
	Ace:   "A",
	Two:   "2",
	Three: "3",
	Four:  "4",
	Five:  "5",
	Six:   "6",
	Seven: "7",
	Eight: "8",
	Nine:  "9",
	Ten:   "10",
	Jack:  "J",
	Queen: "Q",
	King:  "K",
	Joker: "JOKER",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return "?"
}

// Valid reports whether r is one of the fourteen playable ranks.
func (r Rank) Valid() bool {
	return r >= Ace && r <= Joker
}

// ParseRank reads the wire name of a rank ("A", "2".."10", "J", "Q", "K", "JOKER").
func ParseRank(s string) (Rank, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for r, name := range rankNames {
		if name == s {
			return r, true
		}
	}
	return RankInvalid, false
}

// JokerGetOut is the wire token for a joker played as a get-out.
const JokerGetOut = "GETOUT"

// JokerChoice is how a joker is being used: as a get-out or as a step count.
type JokerChoice struct {
	GetOut bool
	Steps  int
}

// ParseJokerChoice reads "GETOUT" (any case) or an integer step count.
// Range checking of the step count is left to the intent resolver.
func ParseJokerChoice(s string) (JokerChoice, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, JokerGetOut) {
		return JokerChoice{GetOut: true}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return JokerChoice{}, Reject(ReasonMalformedJoker)
	}
	return JokerChoice{Steps: n}, nil
}

func (c JokerChoice) String() string {
	if c.GetOut {
		return JokerGetOut
	}
	return strconv.Itoa(c.Steps)
}
