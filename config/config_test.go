package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "TOKEN_TTL", "BCRYPT_COST", "REDIS_ADDR", "REDIS_PASSWORD", "CORS_ORIGINS", "ALLOW_SIGNUP", "APP_ENV", "LOG_LEVEL", "JWT_SECRET"} {
		t.Setenv(k, "")
	}
	t.Setenv("DB_DSN", "postgres://u:p@localhost:5432/users?sslmode=disable")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.AllowSignup)
	assert.Empty(t, cfg.CORSOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,,")
	t.Setenv("ALLOW_SIGNUP", "true")
	t.Setenv("APP_ENV", "production")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.True(t, cfg.AllowSignup)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoadMissingDSN(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_DSN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadInvalidValues(t *testing.T) {
	cases := map[string]string{
		"TOKEN_TTL":    "soon",
		"BCRYPT_COST":  "99",
		"ALLOW_SIGNUP": "maybe",
	}
	for key, val := range cases {
		setBaseEnv(t)
		t.Setenv(key, val)
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for %s=%s", key, val)
		}
	}
}

func TestValidateAPI(t *testing.T) {
	cfg := &Config{}
	require.Error(t, cfg.ValidateAPI())

	cfg.JWTSecret = "secret"
	require.NoError(t, cfg.ValidateAPI())
}
