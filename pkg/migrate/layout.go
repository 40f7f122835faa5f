package migrate

import (
	"path"
	"path/filepath"
	"strings"
)

// droppedSegments are Cypress layout directories with no Playwright
// counterpart; cypress/e2e/auth/login.cy.ts lands in auth/login.spec.ts.
var droppedSegments = map[string]bool{
	"cypress": true,
	"e2e":     true,
}

// DefaultOutputDir returns the "playwright" directory next to root.
func DefaultOutputDir(root string) string {
	return filepath.Join(filepath.Dir(root), "playwright")
}

// OutputPath maps a slash-separated path relative to the source root to its
// path relative to the output directory.
func OutputPath(relPath string, renameSpecs bool) string {
	dir, file := path.Split(filepath.ToSlash(relPath))

	var kept []string
	for _, segment := range strings.Split(strings.Trim(dir, "/"), "/") {
		if segment == "" || droppedSegments[segment] {
			continue
		}
		kept = append(kept, segment)
	}

	if renameSpecs {
		file = specName(file)
	}
	return path.Join(append(kept, file)...)
}

// specName renames login.cy.ts to login.spec.ts.
func specName(file string) string {
	ext := path.Ext(file)
	stem := strings.TrimSuffix(file, ext)
	if !strings.HasSuffix(stem, ".cy") {
		return file
	}
	return strings.TrimSuffix(stem, ".cy") + ".spec" + ext
}
