package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
	"github.com/dmitrijs2005/taskkeeper/internal/timex"
)

// JsonConfig is the shape of the JSON configuration file. Duration fields
// use timex.Duration, which accepts strings such as "24h" as well as plain
// numbers of seconds. Absent or zero fields leave the current value alone.
type JsonConfig struct {
	HTTPAddr       string         `json:"http_addr"`
	HealthAddrGRPC string         `json:"grpc_health_addr"`
	DatabaseDriver string         `json:"database_driver"`
	DatabaseDSN    string         `json:"database_dsn"`
	SecretKey      string         `json:"secret_key"`
	TokenTTL       timex.Duration `json:"token_ttl"`
	BcryptCost     int            `json:"bcrypt_cost"`
	LogBackend     string         `json:"log_backend"`
	LogLevel       string         `json:"log_level"`
	AllowedOrigins []string       `json:"allowed_origins"`
	OTLPEndpoint   string         `json:"otlp_endpoint"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays the JSON file named by -c or -config onto config.
// Without either flag nothing is loaded.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.HealthAddrGRPC, c.HealthAddrGRPC)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogBackend, c.LogBackend)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.OTLPEndpoint, c.OTLPEndpoint)

	if c.TokenTTL.Duration != 0 {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.RequestTimeout.Duration != 0 {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
