package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/specvital/cy2pw/internal/config"
	"github.com/specvital/cy2pw/pkg/domain"
	"github.com/specvital/cy2pw/pkg/migrate"
)

// ErrUnknownFormat is returned for a report format no renderer handles.
var ErrUnknownFormat = errors.New("unknown report format")

// reportDocument is the machine-readable form of a migration run.
type reportDocument struct {
	RootPath  string              `json:"rootPath" yaml:"rootPath"`
	OutputDir string              `json:"outputDir" yaml:"outputDir"`
	DryRun    bool                `json:"dryRun" yaml:"dryRun"`
	Duration  string              `json:"duration" yaml:"duration"`
	Summary   migrate.Summary     `json:"summary" yaml:"summary"`
	Files     []domain.FileResult `json:"files" yaml:"files"`
	Errors    []string            `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func newReportDocument(result *migrate.Result, dryRun bool) reportDocument {
	doc := reportDocument{
		RootPath:  result.Report.RootPath,
		OutputDir: result.Report.OutputDir,
		DryRun:    dryRun,
		Duration:  result.Stats.Duration.Round(time.Millisecond).String(),
		Summary:   migrate.Summarize(result.Report),
		Files:     result.Report.Files,
	}
	for _, e := range result.Errors {
		doc.Errors = append(doc.Errors, e.Error())
	}
	return doc
}

// renderReport writes result to w in the given format.
func renderReport(w io.Writer, result *migrate.Result, format string, dryRun bool) error {
	switch format {
	case config.FormatText, "":
		renderText(w, result, dryRun)
		return nil
	case config.FormatTable:
		renderTable(w, result)
		return nil
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newReportDocument(result, dryRun))
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newReportDocument(result, dryRun)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func renderText(w io.Writer, result *migrate.Result, dryRun bool) {
	report := result.Report
	summary := migrate.Summarize(report)

	if summary.Total == 0 {
		color.New(color.FgYellow).Fprintf(w, "No JavaScript or TypeScript files found in %s\n", report.RootPath)
		return
	}

	verb := "Migrated"
	if dryRun {
		verb = "Converted (dry run)"
	}
	fmt.Fprintf(w, "%s %d file(s), %s, from %s in %s\n",
		verb, summary.Total, humanize.Bytes(uint64(result.Stats.BytesRead)), report.RootPath,
		result.Stats.Duration.Round(time.Millisecond))

	color.New(color.FgGreen).Fprintf(w, "  migrated:  %d\n", summary.Migrated)

	color.New(color.FgYellow).Fprintf(w, "  partial:   %d\n", summary.Partial)
	for _, f := range report.ByStatus(domain.MigrationStatusPartial) {
		fmt.Fprintf(w, "    %s\n", f.Path)
		for _, r := range f.Residuals {
			fmt.Fprintf(w, "      %s:%d  %s\n", f.OutputPath, r.Line, r.Text)
		}
	}

	color.New(color.FgRed).Fprintf(w, "  failed:    %d\n", summary.Failed)
	for _, f := range report.ByStatus(domain.MigrationStatusFailed) {
		fmt.Fprintf(w, "    %s: %s\n", f.Path, f.Error)
	}

	fmt.Fprintf(w, "  unchanged: %d\n", summary.Unchanged)

	if steps := migrate.NextSteps(report, dryRun); len(steps) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Next steps:")
		for i, step := range steps {
			color.New(color.FgCyan).Fprintf(w, "  %d. %s\n", i+1, step)
		}
	}
}

func renderTable(w io.Writer, result *migrate.Result) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)

	tbl.AppendHeader(table.Row{"File", "Status", "Output", "Rewrites", "Residuals", "Size"})

	for _, f := range result.Report.Files {
		tbl.AppendRow(table.Row{
			f.Path,
			string(f.Status),
			f.OutputPath,
			strconv.Itoa(f.Rewrites),
			strconv.Itoa(len(f.Residuals)),
			humanize.Bytes(uint64(f.Size)),
		})
	}

	summary := migrate.Summarize(result.Report)
	tbl.AppendFooter(table.Row{
		fmt.Sprintf("Total: %d files", summary.Total),
		fmt.Sprintf("%d ok / %d failed", summary.Total-summary.Failed, summary.Failed),
		"",
		strconv.Itoa(result.Stats.Rewrites),
		strconv.Itoa(summary.Residuals),
		humanize.Bytes(uint64(result.Stats.BytesRead)),
	})

	tbl.Render()
}
