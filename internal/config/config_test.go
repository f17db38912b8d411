package config

import (
	"testing"
	"time"

	"amphorank/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "ADMIN_PORT", "STACK_FILE", "HOLD_DROP_FILE", "LOG_LEVEL", "LOG_FORMAT", "RANDOM_SEED", "GIN_MODE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.GinMode)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "6060", cfg.Admin.Port)
	assert.True(t, cfg.Admin.Enabled)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, int64(42), cfg.Ranking.RandomSeed)
	assert.False(t, cfg.HasDataFiles())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STACK_FILE", "data/stack.xlsx")
	t.Setenv("HOLD_DROP_FILE", "data/hold_drop.xlsx")
	t.Setenv("XLSX_SHEET", "Results")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("RANDOM_SEED", "7")
	t.Setenv("ADMIN_ENABLED", "false")
	t.Setenv("ENGINE_CONFIG", "engine.yaml")
	t.Setenv("REQUEST_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.True(t, cfg.HasDataFiles())
	assert.Equal(t, "Results", cfg.Data.Sheet)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, int64(7), cfg.Ranking.RandomSeed)
	assert.False(t, cfg.Admin.Enabled)
	assert.Equal(t, "engine.yaml", cfg.Engine.Path)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("GIN_MODE", "loud")
	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err, ""))
}

func TestLoadRequiresBothDataFiles(t *testing.T) {
	t.Setenv("STACK_FILE", "stack.csv")
	t.Setenv("HOLD_DROP_FILE", "")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err, ""))
}

func TestUnparseableNumbersFallBack(t *testing.T) {
	t.Setenv("RANDOM_SEED", "many")
	t.Setenv("ADMIN_ENABLED", "perhaps")

	assert.Equal(t, int64(42), getEnvInt64OrDefault("RANDOM_SEED", 42))
	assert.True(t, getEnvBoolOrDefault("ADMIN_ENABLED", true))
}
