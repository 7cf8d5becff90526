package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "muselink", cfg.Database.Name)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, 60, cfg.Worker.StaleProjectDays)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("RATE_LIMIT_RPS", "7.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, 90*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, 7.5, cfg.Server.RateLimitRPS)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("CACHE_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "muselink",
		Password: "secret",
		Name:     "muselink",
	}
	assert.Equal(t,
		"host=db.internal port=5432 user=muselink password=secret dbname=muselink sslmode=disable",
		db.DSN(),
	)
}
