// Package detection recognizes Cypress sources, Playwright imports and the
// Cypress references that survive a conversion.
package detection

import (
	"context"
	"path"
	"regexp"
	"strings"

	"github.com/specvital/cy2pw/pkg/domain"
	"github.com/specvital/cy2pw/pkg/parser/detection/extraction"
)

var cypressFilenamePattern = regexp.MustCompile(`\.cy\.(js|ts|jsx|tsx)$`)

var cypressConfigFiles = map[string]bool{
	"cypress.config.cjs": true,
	"cypress.config.js":  true,
	"cypress.config.mjs": true,
	"cypress.config.mts": true,
	"cypress.config.ts":  true,
	"cypress.json":       true,
}

// cypressCallPattern matches any cy command call and the Cypress globals a
// spec or support file calls. Group 1 is the cy command, group 2 the
// Cypress member.
var cypressCallPattern = regexp.MustCompile(`\bcy\.([A-Za-z_$][\w$]*)\s*\(|\bCypress\.(Commands\.add|env)\s*\(`)

// IsCypressSpecFile reports whether filename follows the *.cy.{js,ts,jsx,tsx}
// convention.
func IsCypressSpecFile(filename string) bool {
	return cypressFilenamePattern.MatchString(filename)
}

// IsCypressConfigFile reports whether filename is a Cypress project
// configuration file. Those describe the runner, not tests, and are never
// converted.
func IsCypressConfigFile(filename string) bool {
	return cypressConfigFiles[path.Base(strings.ReplaceAll(filename, `\`, "/"))]
}

// FindCypressPattern returns the first Cypress call found outside comments,
// such as "cy.visit()" or "Cypress.Commands.add()", or "" when content does
// not use Cypress. Comments are stripped once per call.
func FindCypressPattern(ctx context.Context, lang domain.Language, content []byte) string {
	m := cypressCallPattern.FindSubmatch(extraction.WithoutComments(ctx, lang, content))
	switch {
	case m == nil:
		return ""
	case len(m[1]) > 0:
		return "cy." + string(m[1]) + "()"
	default:
		return "Cypress." + string(m[2]) + "()"
	}
}

// UsesCypress reports whether content calls into the Cypress vocabulary.
func UsesCypress(ctx context.Context, lang domain.Language, content []byte) bool {
	return FindCypressPattern(ctx, lang, content) != ""
}
