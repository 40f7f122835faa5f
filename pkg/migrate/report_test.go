package migrate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/specvital/cy2pw/pkg/domain"
	"github.com/specvital/cy2pw/pkg/migrate"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		OutputDir: "/work/playwright",
		Files: []domain.FileResult{
			{Path: "e2e/a.cy.js", Status: domain.MigrationStatusMigrated},
			{Path: "e2e/b.cy.js", Status: domain.MigrationStatusPartial, Residuals: []domain.Residual{{Line: 2}, {Line: 5}}},
			{Path: "e2e/c.cy.js", Status: domain.MigrationStatusFailed, Error: "boom"},
			{Path: "plugins/index.js", Status: domain.MigrationStatusUnchanged},
		},
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	got := migrate.Summarize(sampleReport())

	assert.Equal(t, migrate.Summary{
		Total:     4,
		Migrated:  1,
		Partial:   1,
		Failed:    1,
		Unchanged: 1,
		Residuals: 2,
	}, got)
	assert.False(t, got.OK())
	assert.True(t, migrate.Summarize(nil).OK())
}

func TestNextSteps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		report *domain.Report
		dryRun bool
		want   []string
	}{
		{
			name:   "should guide through a written migration",
			report: sampleReport(),
			want: []string{
				"install Playwright: npm init playwright@latest",
				"review the converted tests in /work/playwright",
				"replace the 2 remaining cy./Cypress reference(s) in 1 partially migrated file(s)",
				"convert the 1 failed file(s) by hand",
				"run the suite: npx playwright test playwright",
			},
		},
		{
			name:   "should suggest writing after a dry run",
			report: &domain.Report{OutputDir: "/out", Files: []domain.FileResult{{Status: domain.MigrationStatusMigrated}}},
			dryRun: true,
			want:   []string{"re-run without --dry-run to write 1 file(s) to /out"},
		},
		{
			name:   "should return nothing for an empty report",
			report: &domain.Report{},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, migrate.NextSteps(tt.report, tt.dryRun))
		})
	}
}
