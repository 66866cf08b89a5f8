package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gamekeeper/internal/flagx"
)

// serverFlags are the flags parseFlags understands; everything else in the
// argument list is left to other parsers.
var serverFlags = []string{
	"-a", "-grpc", "-driver", "-d", "-s", "-t", "-w", "-i", "-cost", "-l",
	"-u", "-p", "-b", "-region", "-e", "-backup", "-redis",
}

// parseFlags populates Config fields from command-line flags.
//
//	-a string        HTTP bind address (":3000")
//	-grpc string     gRPC health endpoint bind address
//	-driver string   database driver: pgx or sqlite
//	-d string        database DSN
//	-s string        token signing secret
//	-t duration      session token validity
//	-w duration      presence window
//	-i duration      presence sweep interval
//	-cost int        bcrypt cost
//	-l string        log level
//	-u, -p string    S3 credentials
//	-b string        S3 bucket; empty disables the save archive
//	-region string   S3 region
//	-e string        S3 base endpoint
//	-backup duration save archive interval
//	-redis string    Redis address for presence; empty keeps it in SQL
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCAddr, "grpc", config.GRPCAddr, "gRPC health address and port")
	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "database driver (pgx, sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.TokenValidityDuration, "t", config.TokenValidityDuration, "session token validity")
	fs.DurationVar(&config.PresenceWindow, "w", config.PresenceWindow, "presence window")
	fs.DurationVar(&config.SweepInterval, "i", config.SweepInterval, "presence sweep interval")
	fs.IntVar(&config.BcryptCost, "cost", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "region", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.DurationVar(&config.BackupInterval, "backup", config.BackupInterval, "save archive interval")
	fs.StringVar(&config.RedisAddr, "redis", config.RedisAddr, "Redis address for presence")

	return fs.Parse(flagx.FilterArgs(args, serverFlags))
}
