package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/specvital/cy2pw/pkg/domain"
	"github.com/specvital/cy2pw/pkg/engine"
)

type convertFlags struct {
	diff      bool
	addImport bool
	lenient   bool
	commands  []string
	verbose   bool
}

// NewConvertCommand creates the convert subcommand.
func NewConvertCommand() *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a single file and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a diff instead of the converted file")
	cmd.Flags().BoolVar(&flags.addImport, "add-import", false, "prepend the @playwright/test import")
	cmd.Flags().BoolVar(&flags.lenient, "lenient", false, "convert files with syntax errors instead of rejecting them")
	cmd.Flags().StringSliceVar(&flags.commands, "commands", nil, "files declaring custom commands used by <file> (repeatable)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "log conversion details")

	return cmd
}

func runConvert(cmd *cobra.Command, path string, flags convertFlags) error {
	ctx := cmd.Context()
	logger := newLogger(cmd.ErrOrStderr(), slog.LevelWarn, flags.verbose)

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	tracker := engine.NewCommandTracker()
	for _, commandsPath := range flags.commands {
		declared, err := os.ReadFile(commandsPath)
		if err != nil {
			return fmt.Errorf("read %s: %w", commandsPath, err)
		}
		names, err := engine.DeclaredCommands(ctx, declared, domain.DetectLanguage(commandsPath))
		if err != nil {
			return fmt.Errorf("collect commands from %s: %w", commandsPath, err)
		}
		for _, name := range names {
			tracker.Track(name)
		}
	}

	opts := []engine.ConvertOption{
		engine.WithLanguage(domain.DetectLanguage(path)),
		engine.WithTracker(tracker),
		engine.WithPlaywrightImport(flags.addImport),
	}
	if flags.lenient {
		opts = append(opts, engine.WithLenientParsing())
	}

	result, err := engine.Convert(ctx, content, opts...)
	if err != nil {
		return fmt.Errorf("convert %s: %w", path, err)
	}

	logger.Debug("converted", "path", path, "rewrites", result.Rewrites, "functions", result.Functions)
	for _, r := range result.Residuals {
		logger.Warn("cypress reference left", "path", path, "line", r.Line, "text", r.Text)
	}

	out := cmd.OutOrStdout()
	if flags.diff {
		fmt.Fprint(out, lineDiff(filepath.ToSlash(path), string(content), result.Output))
		return nil
	}

	fmt.Fprint(out, result.Output)
	return nil
}
