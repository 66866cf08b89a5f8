// Package config loads runtime configuration for the GameKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. GAMEKEEPER_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string          base URL of the backend HTTP API
//	-token string      session token to resume
//	-i duration        heartbeat interval while logged in
//	-timeout duration  per-request timeout
//
// # JSON schema
//
// Durations accept strings like "30s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:3000",
//	  "heartbeat_interval": "1m",
//	  "request_timeout": "10s"
//	}
package config
