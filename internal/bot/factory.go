package bot

import (
	"errors"
	"fmt"
)

var errEmptyHand = errors.New("bot has no cards in hand")

// BotLevel selects a strategy.
type BotLevel string

const (
	BotLevelEasy BotLevel = "easy"
	BotLevelGood BotLevel = "good"
)

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelEasy:
		return &EasyBot{}, nil
	case BotLevelGood, "":
		return &GoodBot{Tuning: DefaultTuning}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %s", level)
	}
}
