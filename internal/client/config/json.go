package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gamekeeper/internal/flagx"
	"github.com/dmitrijs2005/gamekeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerURL         string         `json:"server_url"`
	HeartbeatInterval timex.Duration `json:"heartbeat_interval"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with the JSON file named by -c or -config.
// Keys missing from the file keep their current values.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	jc := JsonConfig{
		ServerURL:         cfg.ServerURL,
		HeartbeatInterval: timex.Duration{Duration: cfg.HeartbeatInterval},
		RequestTimeout:    timex.Duration{Duration: cfg.RequestTimeout},
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	cfg.ServerURL = jc.ServerURL
	cfg.HeartbeatInterval = jc.HeartbeatInterval.Duration
	cfg.RequestTimeout = jc.RequestTimeout.Duration
	return nil
}
