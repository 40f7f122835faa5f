// Package tspool parses JavaScript and TypeScript test sources with
// tree-sitter.
//
// A parser is created per parse. One whose ParseCtx was cancelled keeps its
// cancel flag and fails every later parse, so parsers are never reused.
// Parsers returned by Get must stay on a single goroutine.
package tspool

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/specvital/cy2pw/pkg/domain"
)

// MaxTreeDepth bounds every recursive walk over a syntax tree.
const MaxTreeDepth = 1000

// grammars maps each source language to its grammar. TypeScript is the
// fallback since it accepts plain JavaScript as well.
var grammars = sync.OnceValue(func() map[domain.Language]*sitter.Language {
	return map[domain.Language]*sitter.Language{
		domain.LanguageJavaScript: javascript.GetLanguage(),
		domain.LanguageTypeScript: typescript.GetLanguage(),
		domain.LanguageTSX:        tsx.GetLanguage(),
	}
})

// GetLanguage returns the grammar used for lang.
func GetLanguage(lang domain.Language) *sitter.Language {
	table := grammars()
	if g, ok := table[lang]; ok {
		return g
	}
	return table[domain.LanguageTypeScript]
}

// Get returns a new parser for lang. The caller owns it and must Close it.
func Get(lang domain.Language) *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(GetLanguage(lang))
	return p
}

// Parse parses source with a fresh parser. The caller must Close the tree.
func Parse(ctx context.Context, lang domain.Language, source []byte) (*sitter.Tree, error) {
	p := Get(lang)
	defer p.Close()

	tree, err := p.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s source: %w", lang, err)
	}
	return tree, nil
}

// FirstError returns the earliest ERROR or MISSING node under root, or nil
// when the tree parsed cleanly.
func FirstError(root *sitter.Node) *sitter.Node {
	if root == nil || !root.HasError() {
		return nil
	}
	return firstError(root, 0)
}

func firstError(node *sitter.Node, depth int) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	if depth > MaxTreeDepth || !node.HasError() {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if bad := firstError(node.Child(i), depth+1); bad != nil {
			return bad
		}
	}
	return nil
}
