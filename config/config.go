package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"go-agroadvisor/engine"
)

// Config holds all service configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Engine     EngineConfig     `yaml:"engine"`
	MarketData MarketDataConfig `yaml:"market_data"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	Mode        string   `yaml:"mode"` // debug, release, test
	CORSOrigins []string `yaml:"cors_origins"`
}

// DatabaseConfig configures the favourites ledger database.
type DatabaseConfig struct {
	Driver          string `yaml:"driver"` // mysql, postgres, sqlite
	DSN             string `yaml:"dsn"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime"`
}

// AuthConfig configures JWT issuing.
type AuthConfig struct {
	JWTSecret  string   `yaml:"jwt_secret"`
	TokenTTL   string   `yaml:"token_ttl"`
	AdminUsers []string `yaml:"admin_users"` // usernames given the admin role at registration
}

// EngineConfig points the recommender at its knowledge tables.
type EngineConfig struct {
	KnowledgeBasePath string `yaml:"knowledge_base_path"` // empty = built-in catalog
	LocationsPath     string `yaml:"locations_path"`      // empty = built-in table
	MaxResults        int    `yaml:"max_results"`
	DefaultTrendDays  int    `yaml:"default_trend_days"`
	MaxTrendDays      int    `yaml:"max_trend_days"`
}

// MarketDataConfig configures the real price-trend provider.
type MarketDataConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Timeout string `yaml:"timeout"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
			Mode: "release",
		},
		Database: DatabaseConfig{
			Driver:          "mysql",
			DSN:             "root:root@tcp(127.0.0.1:3306)/agro?parseTime=true&charset=utf8mb4",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "5m",
		},
		Auth: AuthConfig{
			JWTSecret: "agroadvisor_secret_key",
			TokenTTL:  "168h",
		},
		Engine: EngineConfig{
			MaxResults:       8,
			DefaultTrendDays: 30,
			MaxTrendDays:     365,
		},
		MarketData: MarketDataConfig{
			Timeout: "5s",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file over the defaults and applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("AGRO_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("AGRO_DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("AGRO_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("AGRO_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("AGRO_MARKET_URL"); v != "" {
		c.MarketData.BaseURL = v
		c.MarketData.Enabled = true
	}
	if v := os.Getenv("AGRO_MARKET_API_KEY"); v != "" {
		c.MarketData.APIKey = v
	}
	if v := os.Getenv("AGRO_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Database.Driver) {
	case "mysql", "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("database.driver: unsupported driver %q", c.Database.Driver))
	}
	switch c.Server.Mode {
	case "", "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode: unsupported mode %q", c.Server.Mode))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret: must not be empty"))
	}
	for name, d := range map[string]string{
		"auth.token_ttl":             c.Auth.TokenTTL,
		"database.conn_max_lifetime": c.Database.ConnMaxLifetime,
		"market_data.timeout":        c.MarketData.Timeout,
	} {
		if d == "" {
			continue
		}
		if _, err := time.ParseDuration(d); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if c.Engine.MaxResults < 0 || c.Engine.MaxResults > engine.DefaultMaxResults {
		errs = append(errs, fmt.Errorf("engine.max_results: must be 0 (default) to %d, got %d",
			engine.DefaultMaxResults, c.Engine.MaxResults))
	}
	if c.Engine.DefaultTrendDays <= 0 || c.Engine.MaxTrendDays < c.Engine.DefaultTrendDays {
		errs = append(errs, fmt.Errorf("engine: trend days must satisfy 0 < default (%d) <= max (%d)",
			c.Engine.DefaultTrendDays, c.Engine.MaxTrendDays))
	}
	if c.MarketData.Enabled && c.MarketData.BaseURL == "" {
		errs = append(errs, errors.New("market_data.base_url: required when enabled"))
	}
	return errors.Join(errs...)
}

// TokenDuration returns the parsed token lifetime, defaulting to seven days.
func (a AuthConfig) TokenDuration() time.Duration {
	return parseDuration(a.TokenTTL, 7*24*time.Hour)
}

// Lifetime returns the parsed connection lifetime.
func (d DatabaseConfig) Lifetime() time.Duration {
	return parseDuration(d.ConnMaxLifetime, 5*time.Minute)
}

// TimeoutDuration returns the parsed provider timeout.
func (m MarketDataConfig) TimeoutDuration() time.Duration {
	return parseDuration(m.Timeout, 5*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
