package domain

import "testing"

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		want     Language
	}{
		{name: "should detect JavaScript for .js", filename: "todo.cy.js", want: LanguageJavaScript},
		{name: "should detect JavaScript for .jsx", filename: "component.cy.jsx", want: LanguageJavaScript},
		{name: "should detect JavaScript for .mjs", filename: "support/commands.mjs", want: LanguageJavaScript},
		{name: "should detect TypeScript for .ts", filename: "login.cy.ts", want: LanguageTypeScript},
		{name: "should detect TSX for .tsx", filename: "Button.cy.tsx", want: LanguageTSX},
		{name: "should default to TypeScript for unknown extension", filename: "spec.mts", want: LanguageTypeScript},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := DetectLanguage(tt.filename); got != tt.want {
				t.Errorf("DetectLanguage(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestReport_Count(t *testing.T) {
	t.Parallel()

	report := Report{
		Files: []FileResult{
			{Path: "a.cy.js", Status: MigrationStatusMigrated},
			{Path: "b.cy.js", Status: MigrationStatusPartial},
			{Path: "c.cy.js", Status: MigrationStatusMigrated},
			{Path: "d.cy.js", Status: MigrationStatusFailed},
		},
	}

	if got := report.Count(MigrationStatusMigrated); got != 2 {
		t.Errorf("Count(migrated) = %d, want 2", got)
	}
	if got := report.Count(MigrationStatusUnchanged); got != 0 {
		t.Errorf("Count(unchanged) = %d, want 0", got)
	}

	partial := report.ByStatus(MigrationStatusPartial)
	if len(partial) != 1 || partial[0].Path != "b.cy.js" {
		t.Errorf("ByStatus(partial) = %+v, want [b.cy.js]", partial)
	}
}
