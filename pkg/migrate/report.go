package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/specvital/cy2pw/pkg/domain"
)

// Summary aggregates a report by migration status.
type Summary struct {
	Total     int `json:"total" yaml:"total"`
	Migrated  int `json:"migrated" yaml:"migrated"`
	Partial   int `json:"partial" yaml:"partial"`
	Failed    int `json:"failed" yaml:"failed"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
	Residuals int `json:"residuals" yaml:"residuals"`
}

// Summarize counts the files of report per status.
func Summarize(report *domain.Report) Summary {
	if report == nil {
		return Summary{}
	}

	s := Summary{
		Total:     len(report.Files),
		Migrated:  report.Count(domain.MigrationStatusMigrated),
		Partial:   report.Count(domain.MigrationStatusPartial),
		Failed:    report.Count(domain.MigrationStatusFailed),
		Unchanged: report.Count(domain.MigrationStatusUnchanged),
	}
	for _, f := range report.Files {
		s.Residuals += len(f.Residuals)
	}
	return s
}

// OK reports whether no file failed.
func (s Summary) OK() bool {
	return s.Failed == 0
}

// NextSteps returns follow-up instructions for the user, in order.
func NextSteps(report *domain.Report, dryRun bool) []string {
	if report == nil || len(report.Files) == 0 {
		return nil
	}

	s := Summarize(report)
	var steps []string

	if dryRun {
		steps = append(steps, fmt.Sprintf("re-run without --dry-run to write %d file(s) to %s", s.Total-s.Failed, report.OutputDir))
	} else {
		steps = append(steps, "install Playwright: npm init playwright@latest")
		steps = append(steps, fmt.Sprintf("review the converted tests in %s", report.OutputDir))
	}
	if s.Partial > 0 {
		steps = append(steps, fmt.Sprintf("replace the %d remaining cy./Cypress reference(s) in %d partially migrated file(s)", s.Residuals, s.Partial))
	}
	if s.Failed > 0 {
		steps = append(steps, fmt.Sprintf("convert the %d failed file(s) by hand", s.Failed))
	}
	if !dryRun && s.Migrated+s.Partial > 0 {
		steps = append(steps, "run the suite: npx playwright test "+filepath.Base(report.OutputDir))
	}

	return steps
}
