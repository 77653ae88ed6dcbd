package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// GameConfig holds table tuning loaded from data/game_config.json.
type GameConfig struct {
	TickRate int `json:"tick_rate"`
	// BotMinDelaySeconds and BotMaxDelaySeconds bound how long a bot waits before playing.
	BotMinDelaySeconds int `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds int `json:"bot_max_delay_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds a lobby waits before filling empty seats with bots.
	BotAutoFillDelaySeconds int    `json:"bot_auto_fill_delay_seconds"`
	BotLevel                string `json:"bot_level"`
	HostTokenTTLMinutes     int    `json:"host_token_ttl_minutes"`
	// WinReward is the marble_wins wallet credit per human on the winning team.
	WinReward int64 `json:"win_reward"`
}

// DefaultGameConfig is used when no file is present or a field is left at zero.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		TickRate:                1,
		BotMinDelaySeconds:      1,
		BotMaxDelaySeconds:      3,
		BotAutoFillDelaySeconds: 5,
		BotLevel:                "good",
		HostTokenTTLMinutes:     360,
		WinReward:               1,
	}
}

// HostTokenTTL is the host token lifetime.
func (c GameConfig) HostTokenTTL() time.Duration {
	return time.Duration(c.HostTokenTTLMinutes) * time.Minute
}

// ParseGameConfig decodes a config document and fills unset fields from the defaults.
func ParseGameConfig(data []byte) (GameConfig, error) {
	var c GameConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return GameConfig{}, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	def := DefaultGameConfig()
	if c.TickRate <= 0 {
		c.TickRate = def.TickRate
	}
	if c.BotMinDelaySeconds <= 0 {
		c.BotMinDelaySeconds = def.BotMinDelaySeconds
	}
	if c.BotMaxDelaySeconds < c.BotMinDelaySeconds {
		c.BotMaxDelaySeconds = c.BotMinDelaySeconds
	}
	if c.BotAutoFillDelaySeconds <= 0 {
		c.BotAutoFillDelaySeconds = def.BotAutoFillDelaySeconds
	}
	if c.BotLevel == "" {
		c.BotLevel = def.BotLevel
	}
	if c.HostTokenTTLMinutes <= 0 {
		c.HostTokenTTLMinutes = def.HostTokenTTLMinutes
	}
	if c.WinReward <= 0 {
		c.WinReward = def.WinReward
	}
	return c, nil
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path once per process.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}
		c, err := ParseGameConfig(data)
		if err != nil {
			loadErr = err
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the loaded configuration, or the defaults when nothing was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return DefaultGameConfig()
	}
	return *cfg
}
