package domain

import "time"

// Residual is a Cypress reference left in converted output.
type Residual struct {
	// Line is the 1-based line of the reference in the output.
	Line int `json:"line" yaml:"line"`
	// Text is the trimmed output line holding the reference.
	Text string `json:"text" yaml:"text"`
}

// FileResult describes the conversion of one file.
type FileResult struct {
	// Error holds the failure message for failed files.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
	// Language is the grammar the file was parsed with.
	Language Language `json:"language" yaml:"language"`
	// OutputPath is where the converted file was (or would be) written.
	OutputPath string `json:"outputPath,omitempty" yaml:"outputPath,omitempty"`
	// Path is the input path relative to the migrated root.
	Path string `json:"path" yaml:"path"`
	// Residuals lists Cypress references that survived the conversion.
	Residuals []Residual `json:"residuals,omitempty" yaml:"residuals,omitempty"`
	// Rewrites is the number of rewritten nodes.
	Rewrites int `json:"rewrites" yaml:"rewrites"`
	// Size is the input size in bytes.
	Size int64 `json:"size" yaml:"size"`
	// Status is the migration outcome.
	Status MigrationStatus `json:"status" yaml:"status"`

	// Original and Output hold the file contents; they are not serialized.
	Original []byte `json:"-" yaml:"-"`
	Output   []byte `json:"-" yaml:"-"`
}

// Report represents the outcome of a migration run.
type Report struct {
	// Duration is the wall time of the run.
	Duration time.Duration `json:"duration" yaml:"duration"`
	// Files contains one entry per discovered file, sorted by path.
	Files []FileResult `json:"files" yaml:"files"`
	// OutputDir is the directory converted files are written to.
	OutputDir string `json:"outputDir" yaml:"outputDir"`
	// RootPath is the migrated Cypress directory.
	RootPath string `json:"rootPath" yaml:"rootPath"`
}

// Count returns the number of files with the given status.
func (r Report) Count(status MigrationStatus) int {
	count := 0
	for _, f := range r.Files {
		if f.Status == status {
			count++
		}
	}
	return count
}

// ByStatus returns the files with the given status, preserving order.
func (r Report) ByStatus(status MigrationStatus) []FileResult {
	var files []FileResult
	for _, f := range r.Files {
		if f.Status == status {
			files = append(files, f)
		}
	}
	return files
}
