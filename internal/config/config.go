package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime setting of the service. All fields are
// populated from environment variables; zero values fall back to the
// defaults suitable for local development.
type Config struct {
	// Address is the TCP address the HTTP server listens on.
	// Env: ADDRESS
	Address string `env:"ADDRESS"`

	// SecretKey signs session tokens. Must be overridden in production.
	// Env: SECRET_KEY
	SecretKey string `env:"SECRET_KEY"`

	// DBPath is the sqlite database file location.
	// Env: DB_PATH
	DBPath string `env:"DB_PATH"`

	// CookieSecure marks the session cookie Secure. Enable behind TLS.
	// Env: COOKIE_SECURE
	CookieSecure bool `env:"COOKIE_SECURE"`

	// Timezone is the IANA zone name used for timestamps.
	// Env: TZ
	Timezone string `env:"TZ"`

	// SessionTTL is how long an issued session stays valid. Every
	// authenticated request re-signs the token with a fresh TTL.
	// Env: SESSION_TTL
	SessionTTL time.Duration `env:"SESSION_TTL"`

	SMTP SMTP `envPrefix:"SMTP_"`
}

// SMTP configures the outbound mail collaborator. When Host is empty the
// service falls back to a log-only mailer, which is what local development
// and the test suite use.
type SMTP struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

func Load() (Config, error) {
	cfg := Config{
		Address:    ":8080",
		SecretKey:  "change_me_in_production",
		DBPath:     filepath.Join("data", "vitalcheck.db"),
		Timezone:   "UTC",
		SessionTTL: 7 * 24 * time.Hour,
		SMTP:       SMTP{Port: 587},
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
