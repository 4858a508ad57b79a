package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// public base URL used when building links to stored objects
	PublicBaseURL string `toml:"public_base_url"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// storage
	PostgresHost     string `toml:"postgres_host"`
	PostgresPort     string `toml:"postgres_port"`
	PostgresUser     string `toml:"postgres_user"`
	PostgresDBName   string `toml:"postgres_db_name"`
	RedisHost        string `toml:"redis_host"`
	RedisPort        string `toml:"redis_port"`
	ObjectStorePath  string `toml:"object_store_path"`
	DocCacheSizeMB   int    `toml:"doc_cache_size_mb"`
	DocCacheTTLSecs  int    `toml:"doc_cache_ttl_secs"`
	MaxUploadSizeMB  int64  `toml:"max_upload_size_mb"`
	SessionTTLHours  int    `toml:"session_ttl_hours"`
	SessionCleanHour int    `toml:"session_clean_hours"`

	// auth
	LoginRateLimitAllowedPerMin int      `toml:"login_rate_limit_allowed_per_min"`
	AllowedOrigins              []string `toml:"allowed_origins"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing", env)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.PublicBaseURL == "" {
		c.PublicBaseURL = fmt.Sprintf("http://%s:%d", c.Host, c.Port)
	}
	c.PublicBaseURL = strings.TrimSuffix(c.PublicBaseURL, "/")
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.DocCacheSizeMB == 0 {
		c.DocCacheSizeMB = 16
	}
	if c.DocCacheTTLSecs == 0 {
		c.DocCacheTTLSecs = 60
	}
	if c.MaxUploadSizeMB == 0 {
		c.MaxUploadSizeMB = 10
	}
	if c.SessionTTLHours == 0 {
		c.SessionTTLHours = 24 * 7
	}
	if c.SessionCleanHour == 0 {
		c.SessionCleanHour = 8
	}
	if c.LoginRateLimitAllowedPerMin == 0 {
		c.LoginRateLimitAllowedPerMin = 15
	}
}

func Load(env, path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path empty")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return Parse(env, string(content))
}

func Parse(env, content string) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.Decode(content, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode toml config: %w", err)
	}
	return tomlConfig.Get(env)
}
