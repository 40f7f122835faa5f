// Package engine rewrites Cypress test sources into Playwright test sources.
//
// Conversion is a single bottom-up pass over a tree-sitter syntax tree. Each
// call in statement position is classified by its canonical dotted name and
// dispatched to a converter that builds a replacement fragment; everything
// else is emitted byte for byte.
package engine

import (
	"bytes"
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/cy2pw/pkg/domain"
	"github.com/specvital/cy2pw/pkg/jsgen"
	"github.com/specvital/cy2pw/pkg/parser"
	"github.com/specvital/cy2pw/pkg/parser/detection"
	"github.com/specvital/cy2pw/pkg/parser/tspool"
)

// Result is the outcome of converting one source.
type Result struct {
	// Output is the converted source.
	Output string
	// Rewrites is the total number of rewritten calls and functions.
	Rewrites int
	// Categories counts rewritten calls per category.
	Categories map[Category]int
	// Functions is the number of helper functions that received the page.
	Functions int
	// Commands lists the custom commands declared in this source.
	Commands []string
	// Residuals lists Cypress references left in Output.
	Residuals []domain.Residual
	// ImportAdded reports whether the Playwright import was prepended.
	ImportAdded bool
}

// Changed reports whether the conversion rewrote anything.
func (r *Result) Changed() bool {
	return r.Rewrites > 0 || r.ImportAdded
}

// Convert rewrites source from the Cypress vocabulary to the Playwright
// vocabulary. Blank input is returned unchanged. Inputs with syntax errors
// are rejected with a *SyntaxError unless WithLenientParsing is set; an
// unknown `.should()` keyword fails with *UnknownValidationError.
func Convert(ctx context.Context, source []byte, opts ...ConvertOption) (*Result, error) {
	var options ConvertOptions
	for _, opt := range opts {
		opt(&options)
	}
	applyDefaults(&options)

	if len(bytes.TrimSpace(source)) == 0 {
		return &Result{Output: string(source), Categories: map[Category]int{}}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree, err := tspool.Parse(ctx, options.Language, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() && !options.Lenient {
		return nil, syntaxError(root)
	}

	t := newTransformer(source, root, options)
	if err := t.visit(root, 0); err != nil {
		return nil, err
	}

	result := &Result{
		Output:     t.r.Render(root),
		Categories: t.counts,
		Functions:  t.functions,
		Commands:   t.declared,
	}
	for _, n := range t.counts {
		result.Rewrites += n
	}
	result.Rewrites += t.functions

	if options.AddImport && usesRunner(t.counts) && !detection.ImportsPlaywright(ctx, []byte(result.Output)) {
		result.Output = insertImport(root, result.Output, t.b, options.Indent)
		result.ImportAdded = true
	}

	residuals, err := findResiduals(ctx, options.Language, result.Output)
	if err != nil {
		return nil, err
	}
	result.Residuals = residuals

	return result, nil
}

func usesRunner(counts map[Category]int) bool {
	return counts[CategoryHook] > 0 || counts[CategoryValidation] > 0
}

// insertImport places the Playwright import before the first top-level
// statement, after any leading comments. Comments are never rewritten, so
// offsets before that statement are identical in source and output.
func insertImport(root *sitter.Node, output string, b *Builder, indent string) string {
	var first *sitter.Node
	for _, child := range parser.NamedChildren(root) {
		if child.Type() == "hash_bang_line" {
			continue
		}
		first = child
		break
	}

	offset := 0
	separator := "\n"
	if first != nil {
		offset = int(first.StartByte())
		if first.Type() != "import_statement" {
			separator = "\n\n"
		}
	}

	line := jsgen.Print(b.PlaywrightImport(), jsgen.WithIndentUnit(indent))
	return output[:offset] + line + separator + output[offset:]
}

func findResiduals(ctx context.Context, lang domain.Language, output string) ([]domain.Residual, error) {
	src := []byte(output)

	tree, err := tspool.Parse(ctx, lang, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return detection.FindResiduals(tree.RootNode(), src, lang)
}

func syntaxError(root *sitter.Node) error {
	bad := tspool.FirstError(root)
	if bad == nil {
		return fmt.Errorf("%w: unparsable input", ErrSyntax)
	}
	pos := bad.StartPoint()
	return &SyntaxError{Line: int(pos.Row) + 1, Column: int(pos.Column) + 1}
}
