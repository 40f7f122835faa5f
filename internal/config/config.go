// Package config loads cy2pw settings from file, environment and defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/specvital/cy2pw/pkg/migrate"
)

// Config is the top-level configuration struct for cy2pw.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	OutputDir      string        `mapstructure:"output_dir"`
	Workers        int           `mapstructure:"workers"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Exclude        []string      `mapstructure:"exclude"`
	Patterns       []string      `mapstructure:"patterns"`
	AddImport      bool          `mapstructure:"add_import"`
	RenameSpecs    bool          `mapstructure:"rename_specs"`
	SharedCommands bool          `mapstructure:"shared_commands"`
	MaxFileSize    string        `mapstructure:"max_file_size"`
	LogLevel       string        `mapstructure:"log_level"`
	Format         string        `mapstructure:"format"`
}

// Default values applied when neither file nor environment set a key.
const (
	DefaultWorkers        = migrate.DefaultWorkers
	DefaultTimeout        = migrate.DefaultTimeout
	DefaultAddImport      = false
	DefaultRenameSpecs    = true
	DefaultSharedCommands = true
	DefaultMaxFileSize    = "10MB"
	DefaultLogLevel       = "warn"
	DefaultFormat         = FormatText
)

// Report formats.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formats lists the accepted report formats.
var Formats = []string{FormatText, FormatTable, FormatJSON, FormatYAML}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidWorkers indicates the workers value is out of range.
	ErrInvalidWorkers = fmt.Errorf("workers must be between 0 and %d", migrate.MaxWorkers)
	// ErrInvalidTimeout indicates the timeout is negative.
	ErrInvalidTimeout = errors.New("timeout must be non-negative")
	// ErrInvalidMaxFileSize indicates max_file_size is not a byte size.
	ErrInvalidMaxFileSize = errors.New("max_file_size must be a byte size such as 512KB or 10MB")
	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("log_level must be one of debug, info, warn, error")
	// ErrInvalidFormat indicates an unknown report format.
	ErrInvalidFormat = errors.New("format must be one of text, table, json, yaml")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if c.Workers < 0 || c.Workers > migrate.MaxWorkers {
		return ErrInvalidWorkers
	}

	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if _, err := c.MaxFileSizeBytes(); err != nil {
		return err
	}

	if c.LogLevel != "" {
		if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
			return ErrInvalidLogLevel
		}
	}

	if c.Format != "" && !isFormat(c.Format) {
		return ErrInvalidFormat
	}

	return nil
}

// MaxFileSizeBytes parses MaxFileSize. Empty means no explicit limit.
func (c *Config) MaxFileSizeBytes() (int64, error) {
	if c.MaxFileSize == "" {
		return 0, nil
	}

	size, err := humanize.ParseBytes(c.MaxFileSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMaxFileSize, c.MaxFileSize)
	}
	return int64(size), nil
}

// Level returns the slog level for LogLevel, defaulting to warn.
func (c *Config) Level() slog.Level {
	if level, ok := logLevels[strings.ToLower(c.LogLevel)]; ok {
		return level
	}
	return slog.LevelWarn
}

// MigrateOptions translates the configuration into migrator options.
func (c *Config) MigrateOptions(logger *slog.Logger) []migrate.MigrateOption {
	// Validate has already accepted the size.
	maxFileSize, _ := c.MaxFileSizeBytes()

	return []migrate.MigrateOption{
		migrate.WithOutputDir(c.OutputDir),
		migrate.WithWorkers(c.Workers),
		migrate.WithTimeout(c.Timeout),
		migrate.WithExcludePatterns(c.Exclude),
		migrate.WithPatterns(c.Patterns),
		migrate.WithPlaywrightImport(c.AddImport),
		migrate.WithRenameSpecs(c.RenameSpecs),
		migrate.WithSharedCommands(c.SharedCommands),
		migrate.WithMaxFileSize(maxFileSize),
		migrate.WithLogger(logger),
	}
}

func isFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
