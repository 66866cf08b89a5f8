package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gamekeeper/internal/flagx"
	"github.com/dmitrijs2005/gamekeeper/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations accept both "5m"
// strings and integer nanoseconds.
type JsonConfig struct {
	HTTPAddr              string         `json:"http_addr"`
	GRPCAddr              string         `json:"grpc_addr"`
	DatabaseDriver        string         `json:"database_driver"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	PresenceWindow        timex.Duration `json:"presence_window"`
	SweepInterval         timex.Duration `json:"sweep_interval"`
	BcryptCost            int            `json:"bcrypt_cost"`
	LogLevel              string         `json:"log_level"`
	AllowedOrigins        []string       `json:"allowed_origins"`
	RateLimitRequests     int            `json:"rate_limit_requests"`
	RateLimitWindow       timex.Duration `json:"rate_limit_window"`
	BodyLimitBytes        int64          `json:"body_limit_bytes"`
	TrustedProxies        []string       `json:"trusted_proxies"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
	BackupInterval        timex.Duration `json:"backup_interval"`
	RedisAddr             string         `json:"redis_addr"`
	RedisPassword         string         `json:"redis_password"`
}

// parseJson overlays the JSON file named by -c or -config. Keys missing from
// the file keep their current values. Without the flag nothing is loaded.
func parseJson(config *Config, args []string) error {
	jsonConfigFile := flagx.ConfigFileFlag(args)

	// nothing to load
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return err
	}

	c := toJson(config)
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}
	fromJson(c, config)

	return nil
}

func toJson(c *Config) *JsonConfig {
	return &JsonConfig{
		HTTPAddr:              c.HTTPAddr,
		GRPCAddr:              c.GRPCAddr,
		DatabaseDriver:        c.DatabaseDriver,
		DatabaseDSN:           c.DatabaseDSN,
		SecretKey:             c.SecretKey,
		TokenValidityDuration: timex.Duration{Duration: c.TokenValidityDuration},
		PresenceWindow:        timex.Duration{Duration: c.PresenceWindow},
		SweepInterval:         timex.Duration{Duration: c.SweepInterval},
		BcryptCost:            c.BcryptCost,
		LogLevel:              c.LogLevel,
		AllowedOrigins:        c.AllowedOrigins,
		RateLimitRequests:     c.RateLimitRequests,
		RateLimitWindow:       timex.Duration{Duration: c.RateLimitWindow},
		BodyLimitBytes:        c.BodyLimitBytes,
		TrustedProxies:        c.TrustedProxies,
		S3RootUser:            c.S3RootUser,
		S3RootPassword:        c.S3RootPassword,
		S3Bucket:              c.S3Bucket,
		S3Region:              c.S3Region,
		S3BaseEndpoint:        c.S3BaseEndpoint,
		BackupInterval:        timex.Duration{Duration: c.BackupInterval},
		RedisAddr:             c.RedisAddr,
		RedisPassword:         c.RedisPassword,
	}
}

func fromJson(j *JsonConfig, c *Config) {
	c.HTTPAddr = j.HTTPAddr
	c.GRPCAddr = j.GRPCAddr
	c.DatabaseDriver = j.DatabaseDriver
	c.DatabaseDSN = j.DatabaseDSN
	c.SecretKey = j.SecretKey
	c.TokenValidityDuration = j.TokenValidityDuration.Duration
	c.PresenceWindow = j.PresenceWindow.Duration
	c.SweepInterval = j.SweepInterval.Duration
	c.BcryptCost = j.BcryptCost
	c.LogLevel = j.LogLevel
	c.AllowedOrigins = j.AllowedOrigins
	c.RateLimitRequests = j.RateLimitRequests
	c.RateLimitWindow = j.RateLimitWindow.Duration
	c.BodyLimitBytes = j.BodyLimitBytes
	c.TrustedProxies = j.TrustedProxies
	c.S3RootUser = j.S3RootUser
	c.S3RootPassword = j.S3RootPassword
	c.S3Bucket = j.S3Bucket
	c.S3Region = j.S3Region
	c.S3BaseEndpoint = j.S3BaseEndpoint
	c.BackupInterval = j.BackupInterval.Duration
	c.RedisAddr = j.RedisAddr
	c.RedisPassword = j.RedisPassword
}
