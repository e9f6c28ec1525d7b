package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config holds all application settings.
type Config struct {
	Port          string
	DSN           string
	JWTSecret     string
	TokenTTL      time.Duration
	BcryptCost    int
	RedisAddr     string
	RedisPassword string
	CORSOrigins   []string
	AllowSignup   bool
	Env           string
	LogLevel      string
}

const (
	defaultPort       = "8080"
	defaultTokenTTL   = time.Hour
	defaultBcryptCost = 10
)

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		return nil, fmt.Errorf("DB_DSN must be set")
	}

	cfg := &Config{
		Port:          getenv("PORT", defaultPort),
		DSN:           dsn,
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      defaultTokenTTL,
		BcryptCost:    defaultBcryptCost,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CORSOrigins:   splitList(os.Getenv("CORS_ORIGINS")),
		Env:           getenv("APP_ENV", "dev"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q", v)
		}
		cfg.TokenTTL = ttl
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("invalid BCRYPT_COST %q", v)
		}
		cfg.BcryptCost = cost
	}

	if v := os.Getenv("ALLOW_SIGNUP"); v != "" {
		allow, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ALLOW_SIGNUP %q", v)
		}
		cfg.AllowSignup = allow
	}

	return cfg, nil
}

// ValidateAPI checks the settings only the HTTP service needs.
func (c *Config) ValidateAPI() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	return nil
}

// IsProduction reports whether APP_ENV selects release mode.
func (c *Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
