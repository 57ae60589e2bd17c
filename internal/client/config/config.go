package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds runtime settings for the TaskKeeper CLI.
type Config struct {
	ServerURL      string        `env:"SERVER_URL"`
	RequestTimeout time.Duration `env:"CLIENT_TIMEOUT"`
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:4500"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig builds a Config from os.Args and the environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults, environment, JSON and flags in that order and
// validates the result.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem with c at once.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.ServerURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("server url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("server url %q: scheme must be http or https", c.ServerURL))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("server url %q: missing host", c.ServerURL))
	}

	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	return errors.Join(errs...)
}
