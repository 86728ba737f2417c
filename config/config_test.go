package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8, cfg.Engine.MaxResults)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenDuration())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agro.yaml")
	doc := `
server:
  addr: ":9090"
database:
  driver: sqlite
  dsn: "file:ledger.db"
engine:
  max_results: 5
  default_trend_days: 14
  max_trend_days: 90
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Engine.MaxResults)
	assert.Equal(t, 14, cfg.Engine.DefaultTrendDays)
	// untouched sections keep their defaults
	assert.Equal(t, "168h", cfg.Auth.TokenTTL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("database and secret", func(t *testing.T) {
		t.Setenv("AGRO_DB_DRIVER", "postgres")
		t.Setenv("AGRO_DB_DSN", "postgres://localhost/agro")
		t.Setenv("AGRO_JWT_SECRET", "s3cret")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "postgres://localhost/agro", cfg.Database.DSN)
		assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	})

	t.Run("market url enables provider", func(t *testing.T) {
		t.Setenv("AGRO_MARKET_URL", "http://prices.local")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.True(t, cfg.MarketData.Enabled)
		assert.Equal(t, "http://prices.local", cfg.MarketData.BaseURL)
	})
}

func TestValidate(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Database.Driver = "oracle"
		assert.ErrorContains(t, cfg.Validate(), "database.driver")
	})

	t.Run("bad duration", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Auth.TokenTTL = "a week"
		assert.ErrorContains(t, cfg.Validate(), "auth.token_ttl")
	})

	t.Run("trend days", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Engine.MaxTrendDays = 10
		assert.ErrorContains(t, cfg.Validate(), "trend days")
	})

	t.Run("max results above cap", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Engine.MaxResults = 20
		assert.ErrorContains(t, cfg.Validate(), "engine.max_results")
	})

	t.Run("server mode", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Server.Mode = "production"
		assert.ErrorContains(t, cfg.Validate(), "server.mode")
	})

	t.Run("market data without url", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MarketData.Enabled = true
		assert.ErrorContains(t, cfg.Validate(), "market_data.base_url")
	})
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "warn"}, false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger(LoggingConfig{Level: "warn"}, true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = NewLogger(LoggingConfig{Level: "loud"}, false)
	assert.Error(t, err)
}
