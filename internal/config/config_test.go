package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, "bcrypt", cfg.HashAlgorithm)
	assert.Equal(t, 12, cfg.HashCost)
	assert.Equal(t, 5*time.Second, cfg.StorageTimeout)
	assert.Equal(t, "accounts", cfg.MetricsNamespace)
	assert.Empty(t, cfg.SigningKeys)
}

func TestLoad_SigningKeys(t *testing.T) {
	t.Setenv("SIGNING_KEYS", "new-key, old-key ,")
	cfg := Load()

	assert.Equal(t, []string{"new-key", "old-key"}, cfg.SigningKeys)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL_SECONDS", "60")
	t.Setenv("HASH_ALGORITHM", "argon2id")
	t.Setenv("HASH_COST", "10")
	cfg := Load()

	assert.Equal(t, time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, "argon2id", cfg.HashAlgorithm)
	assert.Equal(t, 10, cfg.HashCost)
}

func TestGetGinMode(t *testing.T) {
	cfg := &Config{LogLevel: "debug"}
	assert.Equal(t, "debug", cfg.GetGinMode())

	cfg.LogLevel = "info"
	assert.Equal(t, "release", cfg.GetGinMode())
}
