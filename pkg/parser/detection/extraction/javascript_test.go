package extraction

import (
	"bytes"
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/cy2pw/pkg/domain"
	"github.com/specvital/cy2pw/pkg/parser/tspool"
)

func TestWithoutComments(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`\bcy\.visit\s*\(`)

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{
			name:    "pattern found without comments",
			content: `cy.visit('/');`,
			want:    true,
		},
		{
			name:    "pattern in single-line comment",
			content: `// cy.visit('/');`,
			want:    false,
		},
		{
			name:    "pattern in multi-line comment",
			content: `/* cy.visit('/'); */ const a = 1;`,
			want:    false,
		},
		{
			name:    "regression: glob pattern with /* in string",
			content: `const g = "**/*.ts"; cy.visit(g);`,
			want:    true,
		},
		{
			name:    "pattern after single-line comment",
			content: "// open the page\ncy.visit('/');",
			want:    true,
		},
		{
			name:    "empty content",
			content: ``,
			want:    false,
		},
		{
			name:    "fallback: malformed JS pattern in comment",
			content: `{ // cy.visit('/')`,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := pattern.Match(WithoutComments(context.Background(), domain.LanguageTypeScript, []byte(tt.content)))
			if got != tt.want {
				t.Errorf("pattern match after WithoutComments() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractJSImports(t *testing.T) {
	t.Parallel()

	content := []byte(`import { test, expect } from '@playwright/test';
import 'cypress-real-events';
const helpers = require("./helpers");
`)

	got := ExtractJSImports(context.Background(), content)
	assert.Equal(t, []string{"@playwright/test", "cypress-real-events", "./helpers"}, got)
	assert.Nil(t, ExtractJSImports(context.Background(), []byte("const a = 1;")))
}

func TestStripComments(t *testing.T) {
	t.Parallel()

	src := []byte("// cy.visit('/')\nconst glob = '**/*.cy.js'; /* a\nb */ run();\n")

	tree, err := tspool.Parse(context.Background(), domain.LanguageJavaScript, src)
	require.NoError(t, err)
	defer tree.Close()

	stripped, err := StripComments(tree.RootNode(), src, domain.LanguageJavaScript)
	require.NoError(t, err)

	assert.Len(t, stripped, len(src))
	assert.NotContains(t, string(stripped), "cy.visit")
	assert.Contains(t, string(stripped), "'**/*.cy.js'")
	assert.Contains(t, string(stripped), "run();")
	assert.Equal(t, 3, bytes.Count(stripped, []byte("\n")))
}
