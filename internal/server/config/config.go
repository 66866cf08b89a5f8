// Package config handles configuration for the server component: defaults,
// an optional JSON file, GAMEKEEPER_* environment variables and finally
// command-line flags, each layer overriding the previous one.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/cryptox"
)

// EnvPrefix prefixes every environment variable read by the server.
const EnvPrefix = "GAMEKEEPER_"

// Config holds runtime settings for the game backend.
type Config struct {
	HTTPAddr       string `env:"HTTP_ADDR"`
	GRPCAddr       string `env:"GRPC_ADDR"`
	DatabaseDriver string `env:"DATABASE_DRIVER"`
	DatabaseDSN    string `env:"DATABASE_DSN"`
	// SecretKey signs session tokens. The default is for development only.
	SecretKey             string        `env:"SECRET_KEY"`
	TokenValidityDuration time.Duration `env:"TOKEN_VALIDITY"`
	PresenceWindow        time.Duration `env:"PRESENCE_WINDOW"`
	SweepInterval         time.Duration `env:"SWEEP_INTERVAL"`
	BcryptCost            int           `env:"BCRYPT_COST"`
	LogLevel              string        `env:"LOG_LEVEL"`

	AllowedOrigins    []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW"`
	BodyLimitBytes    int64         `env:"BODY_LIMIT_BYTES"`
	// TrustedProxies are the reverse proxies allowed to set X-Forwarded-For.
	// Empty keys rate limits on the peer address.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// Save archive. Disabled while S3Bucket is empty.
	S3RootUser     string        `env:"S3_ROOT_USER"`
	S3RootPassword string        `env:"S3_ROOT_PASSWORD"`
	S3Bucket       string        `env:"S3_BUCKET"`
	S3Region       string        `env:"S3_REGION"`
	S3BaseEndpoint string        `env:"S3_BASE_ENDPOINT"`
	BackupInterval time.Duration `env:"BACKUP_INTERVAL"`

	// Presence lives in the SQL store unless RedisAddr is set.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
}

// DefaultAllowedOrigins are the browser origins the game is served from.
// "null" covers desktop exports loaded from file://.
var DefaultAllowedOrigins = []string{
	"https://v6p9d9t4.ssl.hwcdn.net",
	"https://itch.zone",
	"https://itch.io",
	"http://localhost:8080",
	"http://127.0.0.1:8080",
	"null",
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden in production.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":3000"
	c.GRPCAddr = ":50051"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "file:gamekeeper.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = common.TokenValidity
	c.PresenceWindow = common.PresenceWindow
	c.SweepInterval = common.PresenceWindow
	c.BcryptCost = cryptox.DefaultCost
	c.LogLevel = "info"
	c.AllowedOrigins = append([]string(nil), DefaultAllowedOrigins...)
	c.RateLimitRequests = 100
	c.RateLimitWindow = 15 * time.Minute
	c.BodyLimitBytes = 1 << 20
	c.S3Region = "us-east-1"
	c.BackupInterval = time.Hour
}

// Load builds a Config from defaults, the JSON file named by -c/-config in
// args, the environment and the flags in args. A nil environ means the
// process environment.
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
