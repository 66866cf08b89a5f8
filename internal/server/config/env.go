package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays GAMEKEEPER_* variables. Unset variables leave the
// current value alone.
func parseEnv(config *Config, environ map[string]string) error {
	return env.ParseWithOptions(config, env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	})
}
