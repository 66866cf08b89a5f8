package config

import (
	"fmt"
	"os"
	"time"
)

// EnvPrefix prefixes every environment variable read by the CLI.
const EnvPrefix = "GAMEKEEPER_"

// Config holds runtime settings for the GameKeeper CLI.
type Config struct {
	ServerURL string `env:"SERVER_URL"`
	// Token resumes an existing session instead of logging in.
	Token             string        `env:"TOKEN"`
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL"`
	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000"
	c.HeartbeatInterval = time.Minute
	c.RequestTimeout = 10 * time.Second
}

// Load applies defaults, the JSON file named by -c/-config, the environment
// and finally flags. A nil environ means the process environment.
func Load(args []string, environ map[string]string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg, environ); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}

	return cfg, nil
}

// LoadConfig is Load over the process arguments and environment. It panics
// on malformed input.
func LoadConfig() *Config {
	cfg, err := Load(os.Args[1:], nil)
	if err != nil {
		panic(err)
	}
	return cfg
}
