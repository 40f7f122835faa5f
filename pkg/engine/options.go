package engine

import "github.com/specvital/cy2pw/pkg/domain"

// DefaultIndent is the indentation unit of generated blocks.
const DefaultIndent = "  "

// ConvertOptions configures a single conversion.
type ConvertOptions struct {
	// AddImport prepends the Playwright test import when the output uses
	// test or expect and does not import them yet.
	AddImport bool

	// Indent is the indentation unit of generated blocks.
	// Empty means DefaultIndent.
	Indent string

	// Language selects the grammar. Zero value means TypeScript, which also
	// accepts plain JavaScript.
	Language domain.Language

	// Lenient converts inputs that contain syntax errors instead of
	// rejecting them. Erroneous regions are passed through.
	Lenient bool

	// Tracker records custom commands. If nil, a fresh CommandSet is used
	// for the conversion.
	Tracker CommandTracker
}

// ConvertOption is a functional option for configuring Convert.
type ConvertOption func(*ConvertOptions)

// WithLanguage sets the grammar used to parse the input.
func WithLanguage(lang domain.Language) ConvertOption {
	return func(o *ConvertOptions) {
		o.Language = lang
	}
}

// WithTracker shares a custom command registry across conversions.
func WithTracker(tracker CommandTracker) ConvertOption {
	return func(o *ConvertOptions) {
		o.Tracker = tracker
	}
}

// WithPlaywrightImport enables or disables the test/expect import.
// Default: false.
func WithPlaywrightImport(enabled bool) ConvertOption {
	return func(o *ConvertOptions) {
		o.AddImport = enabled
	}
}

// WithIndent sets the indentation unit of generated blocks.
// Empty values are ignored.
func WithIndent(unit string) ConvertOption {
	return func(o *ConvertOptions) {
		if unit != "" {
			o.Indent = unit
		}
	}
}

// WithLenientParsing converts inputs with syntax errors.
func WithLenientParsing() ConvertOption {
	return func(o *ConvertOptions) {
		o.Lenient = true
	}
}

func applyDefaults(opts *ConvertOptions) {
	if opts.Indent == "" {
		opts.Indent = DefaultIndent
	}
	if opts.Language == "" {
		opts.Language = domain.LanguageTypeScript
	}
	if opts.Tracker == nil {
		opts.Tracker = NewCommandTracker()
	}
}
