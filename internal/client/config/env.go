package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays variables present in the environment onto config.
func parseEnv(config *Config) error {
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
