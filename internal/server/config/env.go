package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
	"github.com/joho/godotenv"
)

// envTTL carries JWT_EXPIRES_IN, which is given in whole seconds rather
// than as a Go duration string.
type envTTL struct {
	Seconds *int64 `env:"JWT_EXPIRES_IN"`
}

// loadDotEnv exports the variables of the dotenv file named by -env
// (default ".env") into the process environment. Variables already set in
// the environment win; a missing file is not an error.
func loadDotEnv(args []string) error {
	path := flagx.EnvFilePath(args)
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// parseEnv overlays variables present in the environment onto config.
// Unset variables leave the current values untouched.
func parseEnv(config *Config) error {
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	var ttl envTTL
	if err := env.Parse(&ttl); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	if ttl.Seconds != nil {
		config.TokenTTL = time.Duration(*ttl.Seconds) * time.Second
	}
	return nil
}
