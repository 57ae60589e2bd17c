package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string       HTTP bind address (e.g. ":4500")
//	-g string       gRPC health bind address
//	-driver string  database driver, "postgres" or "sqlite"
//	-d string       database DSN
//	-s string       token signing secret
//	-t int          token lifetime, seconds
//	-l string       log level
//
// Arguments belonging to other components (-c, -env) are filtered out first
// with flagx.FilterArgs.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-driver", "-d", "-s", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.HealthAddrGRPC, "g", config.HealthAddrGRPC, "address and port of the gRPC health service")
	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "database driver (postgres|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	ttl := fs.Int64("t", int64(config.TokenTTL/time.Second), "token lifetime (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.TokenTTL = time.Duration(*ttl) * time.Second
	return nil
}
