// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the school site configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
	"school-cms-session-secret-change",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"SCMS_DB_PATH" envDefault:"./data/schoolcms.db"`
	SessionSecret string `env:"SCMS_SESSION_SECRET,required"`
	ServerHost    string `env:"SCMS_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"SCMS_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"SCMS_ENV" envDefault:"development"`
	LogLevel      string `env:"SCMS_LOG_LEVEL" envDefault:"info"`
	BasePath      string `env:"SCMS_BASE_PATH"`
	UploadsDir    string `env:"SCMS_UPLOADS_DIR" envDefault:"./uploads"`

	// Origins allowed to submit cross-origin forms (e.g. a reverse proxy host).
	TrustedOrigins []string `env:"SCMS_TRUSTED_ORIGINS" envSeparator:","`

	// Rate limiting
	LoginRateLimit float64 `env:"SCMS_LOGIN_RATE_LIMIT" envDefault:"0.5"`
	LoginBurst     int     `env:"SCMS_LOGIN_BURST" envDefault:"5"`
	FormRateLimit  float64 `env:"SCMS_FORM_RATE_LIMIT" envDefault:"1"`
	FormBurst      int     `env:"SCMS_FORM_BURST" envDefault:"5"`

	EventRetentionDays int `env:"SCMS_EVENT_RETENTION_DAYS" envDefault:"90"`

	// GeoIP configuration
	GeoIPDBPath string `env:"SCMS_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Inquiry notifications (Resend)
	ResendAPIKey string `env:"SCMS_RESEND_API_KEY"`
	NotifyFrom   string `env:"SCMS_NOTIFY_FROM"`
	NotifyTo     string `env:"SCMS_NOTIFY_TO"`

	MetricsEnabled bool `env:"SCMS_METRICS_ENABLED" envDefault:"false"`

	// DSN of the legacy MySQL school_cms database, used by -import-legacy.
	LegacyMySQLDSN string `env:"SCMS_LEGACY_MYSQL_DSN"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// NotificationsEnabled returns true if new-inquiry e-mails can be sent.
func (c Config) NotificationsEnabled() bool {
	return c.ResendAPIKey != "" && c.NotifyFrom != "" && c.NotifyTo != ""
}

// NormalizedBasePath returns the base path with a leading slash and no
// trailing slash, or "" when the site is served from the root.
func (c Config) NormalizedBasePath() string {
	p := strings.Trim(strings.TrimSpace(c.BasePath), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that env tags cannot express.
func (c *Config) Validate() error {
	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("SCMS_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(c.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if c.SessionSecret == weak {
			return fmt.Errorf("SCMS_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(c.SessionSecret) {
		slog.Warn("SCMS_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	switch c.Env {
	case "development", "production":
	default:
		return fmt.Errorf("SCMS_ENV must be development or production, got %q", c.Env)
	}

	if c.EventRetentionDays < 1 {
		return fmt.Errorf("SCMS_EVENT_RETENTION_DAYS must be positive, got %d", c.EventRetentionDays)
	}

	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
