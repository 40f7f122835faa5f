package engine

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/cy2pw/pkg/jsgen"
	"github.com/specvital/cy2pw/pkg/parser"
	"github.com/specvital/cy2pw/pkg/parser/jstest"
)

const textSelectorPrefix = "text="

// findAnchor ascends from a chained call through its receivers until it
// reaches the cy.get / cy.contains call the chain starts from.
func findAnchor(node *sitter.Node, source []byte) *sitter.Node {
	if node == nil || node.Type() != "call_expression" {
		return nil
	}

	switch ResolveName(node, source) {
	case anchorGet, anchorContains:
		return node
	}

	fn := node.ChildByFieldName("function")
	if fn == nil || fn.Type() != "member_expression" {
		return nil
	}
	return findAnchor(fn.ChildByFieldName("object"), source)
}

// anchorArgs returns the locator arguments of an anchor. cy.get arguments
// are kept as written; a cy.contains text literal becomes a "text=" selector
// in the same quote style. ok is false for contains calls that cannot be
// expressed as a selector literal.
func (t *transformer) anchorArgs(anchor *sitter.Node) ([]jsgen.Expr, bool) {
	args := parser.CallArguments(anchor)
	if ResolveName(anchor, t.source) != anchorContains {
		return t.r.Raws(args), true
	}

	if len(args) != 1 || !jstest.IsStringLiteral(args[0]) {
		return nil, false
	}
	text := t.r.Text(args[0])
	quote := jstest.QuoteChar(text)
	if quote == 0 {
		return nil, false
	}
	return []jsgen.Expr{jsgen.String{Value: textSelectorPrefix + text[1:len(text)-1], Quote: quote}}, true
}

// chainAnchor returns the locator arguments of the anchor a chained call
// applies to. ok is false when the chain has no usable anchor.
func (t *transformer) chainAnchor(c *callSite) ([]jsgen.Expr, bool) {
	fn := c.node.ChildByFieldName("function")
	if fn == nil {
		return nil, false
	}
	anchor := findAnchor(fn.ChildByFieldName("object"), t.source)
	if anchor == nil {
		return nil, false
	}
	return t.anchorArgs(anchor)
}
