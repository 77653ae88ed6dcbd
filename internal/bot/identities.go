package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"
)

type BotIdentity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "easy", "good"
	AvatarIndex int    `json:"avatar_index"`
}

// builtinIdentities seat one bot per table seat when no identities file is configured.
var builtinIdentities = []BotIdentity{
	{DeviceID: "marbles-bot-device-0", UserID: "bot-0", Username: "bot_amber", DisplayName: "Amber", Difficulty: "good"},
	{DeviceID: "marbles-bot-device-1", UserID: "bot-1", Username: "bot_basalt", DisplayName: "Basalt", Difficulty: "easy", AvatarIndex: 1},
	{DeviceID: "marbles-bot-device-2", UserID: "bot-2", Username: "bot_cobalt", DisplayName: "Cobalt", Difficulty: "good", AvatarIndex: 2},
	{DeviceID: "marbles-bot-device-3", UserID: "bot-3", Username: "bot_dune", DisplayName: "Dune", Difficulty: "easy", AvatarIndex: 3},
}

var (
	mu            sync.RWMutex
	botIdentities []BotIdentity
	botConfigMap  map[string]BotIdentity
	loadOnce      sync.Once
	provisionOnce sync.Once
	loadErr       error
)

func init() {
	setIdentities(builtinIdentities)
}

func setIdentities(identities []BotIdentity) {
	mu.Lock()
	defer mu.Unlock()
	botIdentities = append([]BotIdentity(nil), identities...)
	botConfigMap = make(map[string]BotIdentity, len(identities))
	for _, identity := range botIdentities {
		if identity.UserID != "" {
			botConfigMap[identity.UserID] = identity
		}
	}
}

// LoadIdentities replaces the built-in bot profiles with the ones in path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}
		identities, err := ParseIdentities(data)
		if err != nil {
			loadErr = err
			return
		}
		setIdentities(identities)
	})
	return loadErr
}

// ParseIdentities decodes an identities document. An empty list is an error.
func ParseIdentities(data []byte) ([]BotIdentity, error) {
	var identities []BotIdentity
	if err := json.Unmarshal(data, &identities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bot identities: %w", err)
	}
	if len(identities) == 0 {
		return nil, fmt.Errorf("bot identities file lists no bots")
	}
	return identities, nil
}

// ProvisionBots ensures that bot accounts exist in the Nakama database and have the is_bot metadata.
// Provisioned identities take the user ids Nakama assigns.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) {
	provisionOnce.Do(func() {
		mu.RLock()
		identities := append([]BotIdentity(nil), botIdentities...)
		mu.RUnlock()

		for i := range identities {
			identity := &identities[i]
			if identity.DeviceID == "" {
				continue
			}

			userID, username, _, err := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
			if err != nil {
				logger.Error("ProvisionBots: Failed to authenticate bot %s: %v", identity.Username, err)
				continue
			}
			identity.UserID = userID
			identity.Username = username

			metadata := map[string]interface{}{
				"is_bot":       true,
				"difficulty":   identity.Difficulty,
				"avatar_index": identity.AvatarIndex,
			}
			if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
				logger.Warn("ProvisionBots: Failed to update bot account %s: %v", userID, err)
			}
			logger.Info("ProvisionBots: Bot %s (%s) is ready. Difficulty: %s", identity.DisplayName, userID, identity.Difficulty)
		}
		setIdentities(identities)
	})
}

// GetBotConfig returns the full identity configuration for a given bot ID.
func GetBotConfig(userID string) (BotIdentity, bool) {
	mu.RLock()
	defer mu.RUnlock()
	config, ok := botConfigMap[userID]
	return config, ok
}

// GetBotDisplayName returns the display name for a bot ID, or an empty string if not a bot.
func GetBotDisplayName(userID string) string {
	identity, ok := GetBotConfig(userID)
	if !ok {
		return ""
	}
	if identity.DisplayName == "" {
		return identity.Username
	}
	return identity.DisplayName
}

// GetBotIdentity returns an identity for a bot by index (mod pool size).
func GetBotIdentity(index int) BotIdentity {
	mu.RLock()
	defer mu.RUnlock()
	if len(botIdentities) == 0 {
		return BotIdentity{
			UserID:      fmt.Sprintf("bot-%d", index),
			DisplayName: fmt.Sprintf("AI Player %d", index),
		}
	}
	return botIdentities[index%len(botIdentities)]
}

// IsBot reports whether the given user ID belongs to the bot pool.
func IsBot(userID string) bool {
	_, ok := GetBotConfig(userID)
	return ok
}
