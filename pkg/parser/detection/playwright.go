package detection

import (
	"context"
	"strings"

	"github.com/specvital/cy2pw/pkg/parser/detection/extraction"
	"github.com/specvital/cy2pw/pkg/parser/jstest"
)

// IsPlaywrightImport reports whether importPath names the Playwright test
// runner.
func IsPlaywrightImport(importPath string) bool {
	return importPath == jstest.PlaywrightPath || strings.HasPrefix(importPath, jstest.PlaywrightPath+"/")
}

// ImportsPlaywright reports whether content already imports the Playwright
// test runner.
func ImportsPlaywright(ctx context.Context, content []byte) bool {
	for _, imp := range extraction.ExtractJSImports(ctx, content) {
		if IsPlaywrightImport(imp) {
			return true
		}
	}
	return false
}
