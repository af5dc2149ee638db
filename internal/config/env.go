// Package config loads server settings from the environment and page
// content from a YAML site file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Server holds process-level settings read from SURAT_* variables
type Server struct {
	HTTPPort int    `env:"SURAT_HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"SURAT_LOG_LEVEL" envDefault:"info"`

	Storage     string `env:"SURAT_STORAGE"      envDefault:"memory"`
	RedisURL    string `env:"SURAT_REDIS_URL"`
	DatabaseURL string `env:"SURAT_DATABASE_URL"`

	BlobBackend     string `env:"SURAT_BLOB_BACKEND"`
	BlobBucket      string `env:"SURAT_BLOB_BUCKET"`
	BlobBaseURL     string `env:"SURAT_BLOB_BASE_URL"`
	CloudinaryCloud string `env:"SURAT_CLOUDINARY_CLOUD"`
	BlobTransform   string `env:"SURAT_BLOB_TRANSFORM"`

	SiteFile          string `env:"SURAT_SITE_FILE"`
	DebugTokenHash    string `env:"SURAT_DEBUG_TOKEN_HASH"`
	AllowGuessedNames bool   `env:"SURAT_ALLOW_GUESSED_NAMES" envDefault:"false"`
	SecureCookies     bool   `env:"SURAT_SECURE_COOKIES"      envDefault:"false"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServer reads and validates the server configuration
func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks that the selected backends have what they need
func (c Server) Validate() error {
	switch strings.ToLower(c.Storage) {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return errors.New("SURAT_REDIS_URL required when SURAT_STORAGE=redis")
		}
	case "sqlite", "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("SURAT_DATABASE_URL required when SURAT_STORAGE=%s", c.Storage)
		}
	default:
		return fmt.Errorf("invalid SURAT_STORAGE %q: must be memory, redis, sqlite or postgres", c.Storage)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid SURAT_HTTP_PORT %d", c.HTTPPort)
	}
	return nil
}

// SlogLevel maps LogLevel onto slog, defaulting to info
func (c Server) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
