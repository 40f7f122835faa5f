// Package migrate converts a Cypress test directory into a Playwright one.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/specvital/cy2pw/pkg/domain"
	"github.com/specvital/cy2pw/pkg/engine"
	"github.com/specvital/cy2pw/pkg/parser/detection"
	"github.com/specvital/cy2pw/pkg/parser/jstest"
	"github.com/specvital/cy2pw/pkg/source"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	// DefaultWorkers indicates that the migrator should use GOMAXPROCS as the worker count.
	DefaultWorkers = 0
	// DefaultTimeout is the default migration timeout duration.
	DefaultTimeout = 5 * time.Minute
	// MaxWorkers is the maximum number of concurrent workers allowed.
	MaxWorkers = 1024
	// DefaultMaxFileSize is the default maximum file size for conversion (10MB).
	DefaultMaxFileSize = 10 * 1024 * 1024
)

// DefaultSkipPatterns contains directory names that are skipped by default during discovery.
var DefaultSkipPatterns = []string{
	"node_modules",
	".git",
	"dist",
	"coverage",
	".cache",
	"screenshots",
	"videos",
	"downloads",
}

var (
	// ErrMigrateCancelled is returned when migration is cancelled via context.
	ErrMigrateCancelled = errors.New("migrate: migration cancelled")
	// ErrMigrateTimeout is returned when migration exceeds the timeout duration.
	ErrMigrateTimeout = errors.New("migrate: migration timeout")
	// ErrOutputCollision is reported when two inputs map to the same output path.
	ErrOutputCollision = errors.New("migrate: output path collision")
)

// Migration phases reported in MigrateError.
const (
	PhaseDiscovery = "discovery"
	PhaseRead      = "read"
	PhaseConvert   = "convert"
	PhaseLayout    = "layout"
	PhaseWrite     = "write"
)

// Migrator discovers Cypress sources and converts them in parallel.
type Migrator struct {
	options *MigrateOptions
}

// Result contains the outcome of a migration run.
type Result struct {
	// Report contains one entry per discovered file.
	Report *domain.Report

	// Errors contains non-fatal errors encountered during migration.
	Errors []MigrateError

	// Stats provides migration statistics.
	Stats Stats
}

// MigrateError represents an error that occurred during a specific phase of migration.
type MigrateError struct {
	// Err is the underlying error.
	Err error

	// Path is the file path where the error occurred (may be empty for non-file errors).
	Path string

	// Phase indicates which phase the error occurred in.
	// Values: "discovery", "read", "convert", "layout", "write"
	Phase string
}

// Error implements the error interface.
func (e MigrateError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Phase, e.Path, e.Err)
}

func (e MigrateError) Unwrap() error {
	return e.Err
}

// Stats provides statistics about the migration.
type Stats struct {
	// FilesDiscovered is the number of candidate files found.
	FilesDiscovered int
	// FilesWritten is the number of files written to the output directory.
	FilesWritten int
	// BytesRead is the total size of the discovered files.
	BytesRead int64
	// Commands is the number of custom commands shared across files.
	Commands int
	// Rewrites is the total number of rewritten nodes.
	Rewrites int
	// Duration is the total migration duration.
	Duration time.Duration
}

// NewMigrator creates a new migrator with the given options.
func NewMigrator(opts ...MigrateOption) *Migrator {
	options := newDefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	applyDefaults(&options)

	return &Migrator{options: &options}
}

// Migrate converts every source file under src.Root():
//  1. Discover candidate files
//  2. Read them in parallel
//  3. Register custom commands declared anywhere in the tree
//  4. Convert files in parallel
//  5. Write results under the output directory (unless DryRun)
//
// The caller is responsible for calling src.Close() when done.
func (m *Migrator) Migrate(ctx context.Context, src source.Source) (*Result, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, m.options.Timeout)
	defer cancel()

	outputDir := m.options.OutputDir
	if outputDir == "" {
		outputDir = DefaultOutputDir(src.Root())
	}

	result := &Result{
		Report: &domain.Report{
			RootPath:  src.Root(),
			OutputDir: outputDir,
			Files:     []domain.FileResult{},
		},
		Errors: []MigrateError{},
	}

	files, errs := m.discoverFiles(ctx, src)
	for _, err := range errs {
		result.Errors = append(result.Errors, MigrateError{
			Err:   err,
			Phase: PhaseDiscovery,
		})
	}
	result.Stats.FilesDiscovered = len(files)
	m.options.Logger.Debug("discovered files", "root", src.Root(), "count", len(files))

	if len(files) > 0 {
		m.migrateFiles(ctx, src, files, outputDir, result)
	}

	result.Stats.Duration = time.Since(startTime)
	result.Report.Duration = result.Stats.Duration

	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return result, ErrMigrateTimeout
		}
		if errors.Is(err, context.Canceled) {
			return result, ErrMigrateCancelled
		}
	}

	return result, nil
}

// Migrate is a convenience function that creates a Migrator and runs it.
func Migrate(ctx context.Context, src source.Source, opts ...MigrateOption) (*Result, error) {
	return NewMigrator(opts...).Migrate(ctx, src)
}

func (m *Migrator) migrateFiles(ctx context.Context, src source.Source, files []string, outputDir string, result *Result) {
	loaded, errs := m.loadFiles(ctx, src, files)
	result.Errors = append(result.Errors, errs...)

	var tracker *engine.CommandSet
	if m.options.SharedCommands {
		tracker = engine.NewCommandTracker()
		m.registerCommands(ctx, loaded, tracker)
		result.Stats.Commands = len(tracker.Names())
	}

	result.Errors = append(result.Errors, m.convertFiles(ctx, loaded, tracker)...)
	result.Errors = append(result.Errors, m.layout(loaded)...)

	for i := range loaded {
		file := &loaded[i]
		if file.Status != domain.MigrationStatusFailed && !m.options.DryRun {
			if err := writeOutput(outputDir, file); err != nil {
				result.Errors = append(result.Errors, MigrateError{Err: err, Path: file.Path, Phase: PhaseWrite})
				file.Status = domain.MigrationStatusFailed
				file.Error = err.Error()
			} else {
				result.Stats.FilesWritten++
			}
		}
		result.Stats.BytesRead += file.Size
		result.Stats.Rewrites += file.Rewrites
		m.logFile(file)
	}

	result.Report.Files = loaded
	sort.SliceStable(result.Errors, func(i, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})
}

// loadFiles reads paths in parallel. Unreadable files are kept as failed
// entries so the report lists every discovered file.
func (m *Migrator) loadFiles(ctx context.Context, src source.Source, paths []string) ([]domain.FileResult, []MigrateError) {
	sem := semaphore.NewWeighted(int64(m.workers()))
	g, gCtx := errgroup.WithContext(ctx)

	var (
		mu       sync.Mutex
		files    = make([]domain.FileResult, 0, len(paths))
		failures = make([]MigrateError, 0)
	)

	for _, path := range paths {
		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)

			file, migrateErr := m.loadFile(gCtx, src, path)

			mu.Lock()
			defer mu.Unlock()

			if migrateErr != nil {
				failures = append(failures, *migrateErr)
				files = append(files, domain.FileResult{
					Path:     path,
					Language: domain.DetectLanguage(path),
					Status:   domain.MigrationStatusFailed,
					Error:    migrateErr.Err.Error(),
				})
				return nil
			}
			files = append(files, *file)
			return nil
		})
	}

	_ = g.Wait()

	// Sort by path for deterministic output order.
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, failures
}

// convertFiles converts the loaded files in place, in parallel.
func (m *Migrator) convertFiles(ctx context.Context, files []domain.FileResult, tracker *engine.CommandSet) []MigrateError {
	sem := semaphore.NewWeighted(int64(m.workers()))
	g, gCtx := errgroup.WithContext(ctx)

	var (
		mu       sync.Mutex
		failures = make([]MigrateError, 0)
	)

	for i := range files {
		file := &files[i]
		if file.Status == domain.MigrationStatusFailed {
			continue
		}
		g.Go(func() error {
			migrateErr := &MigrateError{Path: file.Path, Phase: PhaseConvert}
			if err := sem.Acquire(gCtx, 1); err != nil {
				migrateErr.Err = err
			} else {
				migrateErr = m.convertFile(gCtx, file, tracker)
				sem.Release(1)
			}

			if migrateErr == nil {
				return nil
			}

			file.Status = domain.MigrationStatusFailed
			file.Error = migrateErr.Err.Error()

			mu.Lock()
			failures = append(failures, *migrateErr)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return failures
}

func (m *Migrator) workers() int {
	workers := m.options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}
	return workers
}

func (m *Migrator) loadFile(ctx context.Context, src source.Source, path string) (*domain.FileResult, *MigrateError) {
	content, err := readFileFromSource(ctx, src, path)
	if err != nil {
		return nil, &MigrateError{Err: err, Path: path, Phase: PhaseRead}
	}

	return &domain.FileResult{
		Path:     filepath.ToSlash(path),
		Language: domain.DetectLanguage(path),
		Size:     int64(len(content)),
		Original: content,
	}, nil
}

// registerCommands records every Cypress.Commands.add declaration in the
// tree so specs can invoke commands declared in support files. Files that do
// not parse are skipped here; their conversion reports the error.
func (m *Migrator) registerCommands(ctx context.Context, files []domain.FileResult, tracker engine.CommandTracker) {
	for _, file := range files {
		if ctx.Err() != nil {
			return
		}
		if file.Status == domain.MigrationStatusFailed {
			continue
		}
		names, err := engine.DeclaredCommands(ctx, file.Original, file.Language)
		if err != nil {
			m.options.Logger.Debug("skip command registration", "path", file.Path, "error", err)
			continue
		}
		for _, name := range names {
			tracker.Track(name)
		}
	}
}

func (m *Migrator) convertFile(ctx context.Context, file *domain.FileResult, tracker *engine.CommandSet) *MigrateError {
	if err := ctx.Err(); err != nil {
		return &MigrateError{Err: err, Path: file.Path, Phase: PhaseConvert}
	}

	if !detection.IsCypressSpecFile(file.Path) && !detection.UsesCypress(ctx, file.Language, file.Original) {
		file.Status = domain.MigrationStatusUnchanged
		file.Output = file.Original
		return nil
	}

	opts := []engine.ConvertOption{
		engine.WithLanguage(file.Language),
		engine.WithPlaywrightImport(m.options.AddImport),
	}
	if tracker != nil {
		opts = append(opts, engine.WithTracker(tracker))
	}

	converted, err := engine.Convert(ctx, file.Original, opts...)
	if err != nil {
		return &MigrateError{Err: fmt.Errorf("convert: %w", err), Path: file.Path, Phase: PhaseConvert}
	}

	file.Output = []byte(converted.Output)
	file.Rewrites = converted.Rewrites
	file.Residuals = converted.Residuals

	switch {
	case len(converted.Residuals) > 0:
		file.Status = domain.MigrationStatusPartial
	case converted.Changed():
		file.Status = domain.MigrationStatusMigrated
	default:
		file.Status = domain.MigrationStatusUnchanged
	}

	return nil
}

// layout assigns output paths and fails every file whose output path is
// already taken by an earlier one.
func (m *Migrator) layout(files []domain.FileResult) []MigrateError {
	taken := make(map[string]string, len(files))
	var errs []MigrateError

	for i := range files {
		file := &files[i]
		out := OutputPath(file.Path, m.options.RenameSpecs)

		if prev, ok := taken[out]; ok {
			err := fmt.Errorf("%w: %s and %s both map to %s", ErrOutputCollision, prev, file.Path, out)
			errs = append(errs, MigrateError{Err: err, Path: file.Path, Phase: PhaseLayout})
			file.Status = domain.MigrationStatusFailed
			file.Error = err.Error()
			continue
		}

		taken[out] = file.Path
		file.OutputPath = out
	}

	return errs
}

func (m *Migrator) logFile(file *domain.FileResult) {
	logger := m.options.Logger.With("path", file.Path, "status", string(file.Status))

	switch file.Status {
	case domain.MigrationStatusFailed:
		logger.Warn("migration failed", "error", file.Error)
	case domain.MigrationStatusPartial:
		logger.Info("migrated with residual cypress references", "residuals", len(file.Residuals))
	default:
		logger.Debug("file processed", "rewrites", file.Rewrites, "output", file.OutputPath)
	}
}

func writeOutput(outputDir string, file *domain.FileResult) error {
	target := filepath.Join(outputDir, filepath.FromSlash(file.OutputPath))

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", file.OutputPath, err)
	}
	if err := os.WriteFile(target, file.Output, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", file.OutputPath, err)
	}
	return nil
}

// discoverFiles walks the source root to find JavaScript/TypeScript sources.
// Returns slash-separated paths relative to the source root.
func (m *Migrator) discoverFiles(ctx context.Context, src source.Source) ([]string, []error) {
	rootPath := src.Root()
	skipSet, globs := splitExcludes(append(append([]string{}, DefaultSkipPatterns...), m.options.ExcludePatterns...))

	var (
		files []string
		errs  []error
	)

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, walkErr error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if walkErr != nil {
			errs = append(errs, fmt.Errorf("access error at %s: %w", path, walkErr))
			return nil
		}

		relPath, err := filepath.Rel(rootPath, path)
		if err != nil {
			errs = append(errs, fmt.Errorf("compute relative path for %s: %w", path, err))
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if path != rootPath && (skipSet[d.Name()] || matchesAnyPattern(relPath, globs)) {
				return filepath.SkipDir
			}
			return nil
		}

		if !isSourceCandidate(relPath) || matchesAnyPattern(relPath, globs) {
			return nil
		}

		if len(m.options.Patterns) > 0 && !matchesAnyPattern(relPath, m.options.Patterns) {
			return nil
		}

		if m.options.MaxFileSize > 0 {
			info, err := d.Info()
			if err != nil {
				errs = append(errs, fmt.Errorf("failed to get file info for %s: %w", path, err))
				return nil
			}
			if info.Size() > m.options.MaxFileSize {
				m.options.Logger.Debug("skip oversized file", "path", relPath, "size", info.Size())
				return nil
			}
		}

		files = append(files, relPath)
		return nil
	})
	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			errs = append(errs, err)
		}
	}

	return files, errs
}

// splitExcludes separates bare directory names from glob patterns.
func splitExcludes(patterns []string) (map[string]bool, []string) {
	names := make(map[string]bool, len(patterns))
	var globs []string
	for _, p := range patterns {
		if strings.ContainsAny(p, "*?[{/") {
			globs = append(globs, p)
			continue
		}
		names[p] = true
	}
	return names, globs
}

func isSourceCandidate(relPath string) bool {
	if detection.IsCypressConfigFile(relPath) {
		return false
	}
	return jstest.SupportedExtensions[strings.ToLower(filepath.Ext(relPath))]
}

func matchesAnyPattern(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, relPath); matched {
			return true
		}
	}
	return false
}

// readFileFromSource reads a file from source using relative path.
func readFileFromSource(ctx context.Context, src source.Source, relPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := src.Open(ctx, relPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", relPath, err)
	}
	return content, nil
}
