package migrate

import (
	"log/slog"
	"time"
)

// MigrateOptions configures migrator behavior.
type MigrateOptions struct {
	// AddImport prepends the Playwright test import to converted specs.
	AddImport bool

	// DryRun converts files without writing anything.
	DryRun bool

	// ExcludePatterns lists directory names or doublestar globs (relative to
	// the source root) to skip. Combined with DefaultSkipPatterns.
	ExcludePatterns []string

	// Logger receives per-file progress. Nil discards logs.
	Logger *slog.Logger

	// MaxFileSize is the maximum file size in bytes to process.
	// Larger files are skipped.
	MaxFileSize int64

	// OutputDir is where converted files are written.
	// Empty means a "playwright" directory next to the source root.
	OutputDir string

	// Patterns specifies doublestar globs selecting the files to migrate.
	// Empty means every JavaScript/TypeScript file.
	Patterns []string

	// RenameSpecs renames *.cy.* files to *.spec.*.
	// Default: true (opt-out via WithRenameSpecs(false)).
	RenameSpecs bool

	// SharedCommands registers the custom commands of every file before
	// converting, so specs can call commands declared in support files.
	// Default: true.
	SharedCommands bool

	// Timeout is the maximum duration for the entire migration.
	// Zero or negative values use DefaultTimeout.
	Timeout time.Duration

	// Workers specifies the number of concurrent file conversions.
	// Zero or negative values use runtime.GOMAXPROCS(0).
	Workers int
}

// MigrateOption is a functional option for configuring Migrator.
type MigrateOption func(*MigrateOptions)

// WithWorkers sets the number of concurrent file conversions.
// Negative values are ignored.
func WithWorkers(n int) MigrateOption {
	return func(o *MigrateOptions) {
		if n >= 0 {
			o.Workers = n
		}
	}
}

// WithTimeout sets the migration timeout duration.
// Negative values are ignored.
func WithTimeout(d time.Duration) MigrateOption {
	return func(o *MigrateOptions) {
		if d >= 0 {
			o.Timeout = d
		}
	}
}

// WithExcludePatterns adds directory names or globs to skip during discovery.
func WithExcludePatterns(patterns []string) MigrateOption {
	return func(o *MigrateOptions) {
		o.ExcludePatterns = patterns
	}
}

// WithMaxFileSize sets the maximum file size to process.
func WithMaxFileSize(size int64) MigrateOption {
	return func(o *MigrateOptions) {
		if size >= 0 {
			o.MaxFileSize = size
		}
	}
}

// WithPatterns sets glob patterns selecting the files to migrate.
func WithPatterns(patterns []string) MigrateOption {
	return func(o *MigrateOptions) {
		o.Patterns = patterns
	}
}

// WithOutputDir sets the output directory.
func WithOutputDir(dir string) MigrateOption {
	return func(o *MigrateOptions) {
		o.OutputDir = dir
	}
}

// WithDryRun enables or disables writing output files.
func WithDryRun(enabled bool) MigrateOption {
	return func(o *MigrateOptions) {
		o.DryRun = enabled
	}
}

// WithPlaywrightImport enables or disables the test/expect import.
func WithPlaywrightImport(enabled bool) MigrateOption {
	return func(o *MigrateOptions) {
		o.AddImport = enabled
	}
}

// WithRenameSpecs enables or disables the *.cy.* to *.spec.* rename.
func WithRenameSpecs(enabled bool) MigrateOption {
	return func(o *MigrateOptions) {
		o.RenameSpecs = enabled
	}
}

// WithSharedCommands enables or disables cross-file custom commands.
func WithSharedCommands(enabled bool) MigrateOption {
	return func(o *MigrateOptions) {
		o.SharedCommands = enabled
	}
}

// WithLogger sets the logger for progress events.
func WithLogger(logger *slog.Logger) MigrateOption {
	return func(o *MigrateOptions) {
		o.Logger = logger
	}
}

func applyDefaults(opts *MigrateOptions) {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
}

// newDefaultOptions returns MigrateOptions with default values.
func newDefaultOptions() MigrateOptions {
	return MigrateOptions{
		RenameSpecs:    true,
		SharedCommands: true,
	}
}
