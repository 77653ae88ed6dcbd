package nakama

import (
	"context"
	"database/sql"

	"marbles/internal/app"
	"marbles/internal/bot"
	"marbles/internal/config"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	vars, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	env, err := config.ParseRuntimeEnv(vars)
	if err != nil {
		return err
	}

	if err := config.LoadGameConfig(env.ConfigPath); err != nil {
		logger.Warn("InitModule: Could not load game config, using defaults: %v", err)
	}
	cfg := config.GetGameConfig()

	if env.IdentitiesPath != "" {
		if err := bot.LoadIdentities(env.IdentitiesPath); err != nil {
			logger.Warn("InitModule: Could not load bot identities, using built-ins: %v", err)
		}
	}
	if env.BotsEnabled {
		bot.ProvisionBots(ctx, nk, logger)
	}

	secret := env.HostSecret
	if secret == "" {
		// Tokens then only survive for this process, which is all a room needs.
		secret = uuid.NewString()
		logger.Warn("InitModule: marbles_host_secret not set, using a per-process secret.")
	}
	registry := app.NewRegistry(app.NewService(nil), app.NewHostAuthority(secret, env.HostIssuer, cfg.HostTokenTTL()))

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameMarbles, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(registry, cfg, env), nil
	}); err != nil {
		return err
	}

	logger.Info("Marbles Go module loaded.")
	return nil
}
