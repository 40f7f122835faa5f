// Package domain defines the core types shared by the migration engine and runner.
package domain

import "path/filepath"

// Language represents a source language understood by the parser.
type Language string

// Supported source languages.
const (
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguageTSX        Language = "tsx"
)

// DetectLanguage determines the source language based on file extension.
// Unknown extensions default to TypeScript, whose grammar accepts plain JavaScript.
func DetectLanguage(filename string) Language {
	switch filepath.Ext(filename) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return LanguageJavaScript
	case ".tsx":
		return LanguageTSX
	default:
		return LanguageTypeScript
	}
}
