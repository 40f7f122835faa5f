//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/specvital/cy2pw/pkg/domain"
	"github.com/specvital/cy2pw/pkg/migrate"
	"github.com/specvital/cy2pw/pkg/source"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: go run scripts/migrate.go <cypress-dir>\n")
		os.Exit(1)
	}

	path := os.Args[1]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	src, err := source.NewLocalSource(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "source error: %v\n", err)
		os.Exit(1)
	}
	defer src.Close()

	result, err := migrate.Migrate(ctx, src, migrate.WithDryRun(true))
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate error: %v\n", err)
		os.Exit(1)
	}

	output := map[string]interface{}{
		"filesDiscovered": result.Stats.FilesDiscovered,
		"commands":        result.Stats.Commands,
		"rewrites":        result.Stats.Rewrites,
		"duration":        result.Stats.Duration.String(),
		"statuses":        countStatuses(result.Report),
	}
	json.NewEncoder(os.Stdout).Encode(output)
}

func countStatuses(report *domain.Report) map[domain.MigrationStatus]int {
	counts := make(map[domain.MigrationStatus]int)
	for _, file := range report.Files {
		counts[file.Status]++
	}
	return counts
}
