package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/specvital/cy2pw/internal/config"
	"github.com/specvital/cy2pw/pkg/domain"
	"github.com/specvital/cy2pw/pkg/migrate"
	"github.com/specvital/cy2pw/pkg/source"
)

// ErrFilesFailed is returned with --fail-on-error when a file failed to convert.
var ErrFilesFailed = errors.New("some files failed to migrate")

type migrateFlags struct {
	configPath  string
	outputDir   string
	workers     int
	timeout     time.Duration
	exclude     []string
	patterns    []string
	format      string
	dryRun      bool
	diff        bool
	addImport   bool
	noRename    bool
	failOnError bool
	verbose     bool
}

// NewMigrateCommand creates the migrate subcommand.
func NewMigrateCommand() *cobra.Command {
	var flags migrateFlags

	cmd := &cobra.Command{
		Use:   "migrate <cypress-dir>",
		Short: "Convert a Cypress directory into a Playwright directory",
		Long: `Convert every JavaScript/TypeScript file under <cypress-dir>.

Specs and support files are written to --out (default: a "playwright"
directory next to <cypress-dir>). The cypress/ and e2e/ path segments are
dropped and *.cy.* files are renamed to *.spec.*. Custom commands declared
in any file are available to every spec.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "config file (default: .cy2pw.yaml in the working or home directory)")
	cmd.Flags().StringVarP(&flags.outputDir, "out", "o", "", "output directory")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "concurrent conversions (0 = GOMAXPROCS)")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", migrate.DefaultTimeout, "overall migration timeout")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "directory names or globs to skip (repeatable)")
	cmd.Flags().StringSliceVar(&flags.patterns, "pattern", nil, "globs selecting the files to migrate (repeatable)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", config.FormatText, "report format: text, table, json, yaml")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "convert without writing files")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a diff of every converted file")
	cmd.Flags().BoolVar(&flags.addImport, "add-import", false, "prepend the @playwright/test import to converted specs")
	cmd.Flags().BoolVar(&flags.noRename, "no-rename", false, "keep *.cy.* file names")
	cmd.Flags().BoolVar(&flags.failOnError, "fail-on-error", false, "exit non-zero when a file fails to convert")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "log every processed file")

	return cmd
}

func runMigrate(cmd *cobra.Command, dir string, flags migrateFlags) error {
	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return err
	}
	applyMigrateFlags(cmd, cfg, flags)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	src, err := source.NewLocalSource(dir)
	if err != nil {
		return err
	}
	defer src.Close()

	logger := newLogger(cmd.ErrOrStderr(), cfg.Level(), flags.verbose)
	opts := append(cfg.MigrateOptions(logger), migrate.WithDryRun(flags.dryRun))

	result, migrateErr := migrate.Migrate(cmd.Context(), src, opts...)
	if result == nil {
		return migrateErr
	}

	out := cmd.OutOrStdout()
	if flags.diff {
		for _, f := range result.Report.Files {
			if f.Status == domain.MigrationStatusMigrated || f.Status == domain.MigrationStatusPartial {
				fmt.Fprint(out, lineDiff(f.Path, string(f.Original), string(f.Output)))
			}
		}
	}

	if err := renderReport(out, result, cfg.Format, flags.dryRun); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if migrateErr != nil {
		return migrateErr
	}
	if flags.failOnError && result.Report.Count(domain.MigrationStatusFailed) > 0 {
		return ErrFilesFailed
	}
	return nil
}

// applyMigrateFlags overrides config values with explicitly set flags.
func applyMigrateFlags(cmd *cobra.Command, cfg *config.Config, flags migrateFlags) {
	changed := cmd.Flags().Changed

	if changed("out") {
		cfg.OutputDir = flags.outputDir
	}
	if changed("workers") {
		cfg.Workers = flags.workers
	}
	if changed("timeout") {
		cfg.Timeout = flags.timeout
	}
	if changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, flags.exclude...)
	}
	if changed("pattern") {
		cfg.Patterns = flags.patterns
	}
	if changed("format") {
		cfg.Format = flags.format
	}
	if changed("add-import") {
		cfg.AddImport = flags.addImport
	}
	if changed("no-rename") {
		cfg.RenameSpecs = !flags.noRename
	}
}
