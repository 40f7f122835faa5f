package detection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/cy2pw/pkg/domain"
	"github.com/specvital/cy2pw/pkg/parser/tspool"
)

func TestIsCypressSpecFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		want     bool
	}{
		{name: "should match .cy.ts", filename: "e2e/login.cy.ts", want: true},
		{name: "should match .cy.jsx", filename: "login.cy.jsx", want: true},
		{name: "should not match plain spec", filename: "login.spec.ts", want: false},
		{name: "should not match support file", filename: "support/commands.js", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsCypressSpecFile(tt.filename))
		})
	}
}

func TestIsCypressConfigFile(t *testing.T) {
	t.Parallel()

	assert.True(t, IsCypressConfigFile("project/cypress.config.ts"))
	assert.True(t, IsCypressConfigFile(`project\cypress.config.js`))
	assert.True(t, IsCypressConfigFile("cypress.json"))
	assert.False(t, IsCypressConfigFile("cypress/e2e/config.cy.ts"))
}

func TestFindCypressPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "should find cy.visit", content: "cy.visit('/');", want: "cy.visit()"},
		{name: "should find custom command declaration", content: "Cypress.Commands.add('login', () => {});", want: "Cypress.Commands.add()"},
		{name: "should find custom command invocation", content: "cy.login('bob');", want: "cy.login()"},
		{name: "should report the first call in source order", content: "const a = Cypress.env('user');\ncy.get('a');", want: "Cypress.env()"},
		{name: "should skip commented calls before a real one", content: "/* cy.visit('/') */\ncy.get('a').click();", want: "cy.get()"},
		{name: "should ignore cy text inside strings", content: "const doc = 'see cy';\npage.goto('/');", want: ""},
		{name: "should ignore commented calls", content: "// cy.get('a')\nconst a = 1;", want: ""},
		{name: "should ignore unrelated code", content: "page.goto('/');", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FindCypressPattern(context.Background(), domain.LanguageJavaScript, []byte(tt.content))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != "", UsesCypress(context.Background(), domain.LanguageJavaScript, []byte(tt.content)))
		})
	}
}

func TestImportsPlaywright(t *testing.T) {
	t.Parallel()

	assert.True(t, ImportsPlaywright(context.Background(), []byte("import { test, expect } from '@playwright/test';")))
	assert.True(t, ImportsPlaywright(context.Background(), []byte(`const { test } = require("@playwright/test/reporter");`)))
	assert.False(t, ImportsPlaywright(context.Background(), []byte("import { test } from './fixtures';")))
	assert.False(t, IsPlaywrightImport("@playwright/testing"))
}

func TestFindResiduals(t *testing.T) {
	t.Parallel()

	source := []byte(`test('a', async ({ page }) => {
  await page.goto('/');
  cy.request('/api').then(() => cy.log('done'));
  Cypress.env('token');
});
`)

	tree, err := tspool.Parse(context.Background(), domain.LanguageJavaScript, source)
	require.NoError(t, err)
	defer tree.Close()

	residuals, err := FindResiduals(tree.RootNode(), source, domain.LanguageJavaScript)
	require.NoError(t, err)

	require.Len(t, residuals, 2)
	assert.Equal(t, 3, residuals[0].Line)
	assert.Equal(t, "cy.request('/api').then(() => cy.log('done'));", residuals[0].Text)
	assert.Equal(t, 4, residuals[1].Line)
	assert.Equal(t, "Cypress.env('token');", residuals[1].Text)
}
