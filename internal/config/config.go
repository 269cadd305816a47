// Package config loads runtime settings from the environment, with an
// optional .env overlay for local development. All values are read once
// at process start and injected into constructors.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseDSN string
	JWTSecret   string
	Port        string
	TokenTTL    time.Duration // zero disables token expiry
	CORSOrigin  string
}

// LoadDotenv overlays the first .env file found walking up from the
// working directory. Missing files are not an error.
func LoadDotenv() {
	for _, p := range []string{".env", filepath.Join("..", ".env"), filepath.Join("..", "..", ".env")} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Overload(p)
			return
		}
	}
}

// Load reads configuration from the environment. DATABASE_URL and
// JWT_SECRET are required; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseDSN: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		Port:        envOr("PORT", "8080"),
		TokenTTL:    24 * time.Hour,
		CORSOrigin:  envOr("CORS_ORIGIN", "*"),
	}

	if cfg.DatabaseDSN == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	if v := strings.TrimSpace(os.Getenv("TOKEN_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, errors.New("TOKEN_TTL must be a non-negative duration")
		}
		cfg.TokenTTL = d
	}

	return cfg, nil
}

func envOr(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}
