// Package config loads the service configuration from the process
// environment.
//
// The loading sequence is:
//  1. Load a .env file via godotenv (non-fatal if absent, never overrides
//     variables already set).
//  2. Populate Config from PREVIEW_* variables with envconfig.
//  3. Validate the populated struct with go-playground/validator.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/example/recurrence-preview/internal/localization"
)

// Prefix is prepended to every environment variable name.
const Prefix = "PREVIEW"

// Storage backends accepted by STORAGE.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config captures environment driven configuration values for the preview service.
type Config struct {
	HTTPPort        int                   `envconfig:"HTTP_PORT" default:"8080" validate:"min=1,max=65535"`
	Storage         string                `envconfig:"STORAGE" default:"sqlite" validate:"oneof=sqlite memory"`
	SQLiteDSN       string                `envconfig:"SQLITE_DSN" default:"file:preview.db" validate:"required_if=Storage sqlite"`
	TranslationFile string                `envconfig:"TRANSLATIONS_FILE"`
	DefaultLanguage localization.Language `envconfig:"DEFAULT_LANGUAGE" default:"en_GB"`
	CacheTTL        time.Duration         `envconfig:"CACHE_TTL" default:"30s" validate:"gt=0"`
	CacheEntries    int                   `envconfig:"CACHE_ENTRIES" default:"128" validate:"min=1"`
	LogLevel        string                `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	ShutdownTimeout time.Duration         `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`
	CalendarDomain  string                `envconfig:"CALENDAR_DOMAIN" default:"recurrence-preview" validate:"required,hostname_rfc1123"`
	EventDuration   time.Duration         `envconfig:"EVENT_DURATION" default:"1h" validate:"gt=0"`
	MaxOccurrences  int                   `envconfig:"MAX_OCCURRENCES" default:"5000" validate:"min=1"`
}

// SlogLevel converts LogLevel into a slog.Level.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ConfigErrorType categorizes configuration loading failures.
type ConfigErrorType string

const (
	// ErrDotenv indicates a .env file exists but could not be read.
	ErrDotenv ConfigErrorType = "DOTENV_FAILED"
	// ErrParsing indicates a variable could not be converted to its field type.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
	// ErrValidation indicates the configuration failed struct validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
)

// ConfigError is returned by Load and wraps the underlying cause.
type ConfigError struct {
	Type    ConfigErrorType
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Load parses configuration values from the current process environment,
// reading ./.env first when present.
func Load() (Config, error) {
	return load()
}

// LoadFiles behaves like Load but reads the named dotenv files instead of ./.env.
func LoadFiles(filenames ...string) (Config, error) {
	return load(filenames...)
}

func load(filenames ...string) (Config, error) {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, &ConfigError{Type: ErrDotenv, Message: "failed to read dotenv file", Err: err}
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, &ConfigError{
			Type:    ErrParsing,
			Message: "failed to process environment configuration",
			Err:     err,
		}
	}
	cfg.SQLiteDSN = strings.TrimSpace(cfg.SQLiteDSN)
	cfg.TranslationFile = strings.TrimSpace(cfg.TranslationFile)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, &ConfigError{
			Type:    ErrValidation,
			Message: "configuration validation failed",
			Err:     err,
		}
	}
	return cfg, nil
}
