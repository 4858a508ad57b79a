package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Secrets never live in the TOML file; they come from the environment.
type Secrets struct {
	RedisPassword      string `env:"PORTAL_REDIS_PASS"`
	PostgresPassword   string `env:"PORTAL_POSTGRES_PASS"`
	SentryDSN          string `env:"SENTRY_DSN"`
	IpInfoToken        string `env:"IP_INFO_API_KEY"`
	GoogleClientID     string `env:"PORTAL_GOOGLE_CLIENT_ID"`
	HoneycombEnabled   bool   `env:"HONEYCOMB_ENABLED" envDefault:"false"`
	HoneycombAPIKey    string `env:"HONEYCOMB_API_KEY"`
	OtelServiceName    string `env:"OTEL_SERVICE_NAME"`
	MCPEnabled         bool   `env:"PORTAL_MCP_ENABLED" envDefault:"true"`
	SessionTokenLength int    `env:"PORTAL_SESSION_TOKEN_LENGTH" envDefault:"35"`
}

func LoadSecrets() (*Secrets, error) {
	var secrets Secrets
	if err := env.Parse(&secrets); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &secrets, nil
}
