// Package main provides the entry point for the cy2pw CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/specvital/cy2pw/cmd/cy2pw/commands"
)

// Set via -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cy2pw",
		Short: "cy2pw - Cypress to Playwright test migration",
		Long: `cy2pw rewrites Cypress test sources into Playwright test sources.

Commands:
  migrate   Convert a Cypress directory into a Playwright directory
  convert   Convert a single file and print the result`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewConvertCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "cy2pw %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
