package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gamekeeper/internal/flagx"
)

var cliFlags = []string{"-a", "-token", "-i", "-timeout"}

// parseFlags populates Config fields from command-line flags. Arguments
// other than cliFlags are ignored.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the backend")
	fs.StringVar(&cfg.Token, "token", cfg.Token, "session token")
	fs.DurationVar(&cfg.HeartbeatInterval, "i", cfg.HeartbeatInterval, "heartbeat interval")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "request timeout")

	return fs.Parse(flagx.FilterArgs(args, cliFlags))
}
