package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// RuntimeEnv is read from the Nakama runtime environment (the "runtime.env" block of the server config).
type RuntimeEnv struct {
	BotsEnabled bool   `env:"marbles_bots_enabled" envDefault:"true"`
	HostSecret  string `env:"marbles_host_secret"`
	HostIssuer  string `env:"marbles_host_issuer" envDefault:"marbles"`
	ConfigPath  string `env:"marbles_config_path" envDefault:"data/game_config.json"`
	// IdentitiesPath optionally overrides the built-in bot identities.
	IdentitiesPath string `env:"marbles_bot_identities_path"`
}

// ParseRuntimeEnv decodes vars, normally ctx.Value(runtime.RUNTIME_CTX_ENV), into a RuntimeEnv.
func ParseRuntimeEnv(vars map[string]string) (RuntimeEnv, error) {
	var re RuntimeEnv
	if vars == nil {
		vars = map[string]string{}
	}
	if err := env.ParseWithOptions(&re, env.Options{Environment: vars}); err != nil {
		return RuntimeEnv{}, fmt.Errorf("parse env: %w", err)
	}
	return re, nil
}
