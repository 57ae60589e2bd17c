package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		mutate    func(*Config)
		expectErr bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "127.0.0.1:9090", "-g", ":7000", "-driver", "sqlite", "-d", "db", "-s", "secret", "-t", "60", "-l", "warn"},
			mutate: func(c *Config) {
				c.HTTPAddr = "127.0.0.1:9090"
				c.HealthAddrGRPC = ":7000"
				c.DatabaseDriver = "sqlite"
				c.DatabaseDSN = "db"
				c.SecretKey = "secret"
				c.TokenTTL = time.Minute
				c.LogLevel = "warn"
			},
		},
		{
			name:   "foreign flags ignored",
			args:   []string{"-c", "cfg.json", "-env", "x.env", "-s=secret"},
			mutate: func(c *Config) { c.SecretKey = "secret" },
		},
		{
			name:      "bad ttl",
			args:      []string{"-t", "soon"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			err := parseFlags(cfg, tt.args)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			want := defaults()
			tt.mutate(want)
			assert.Empty(t, cmp.Diff(want, cfg))
		})
	}
}
