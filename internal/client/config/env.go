package config

import "github.com/caarlos0/env/v11"

func parseEnv(config *Config, environ map[string]string) error {
	return env.ParseWithOptions(config, env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	})
}
