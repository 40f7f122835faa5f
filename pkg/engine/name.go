package engine

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/cy2pw/pkg/parser"
	"github.com/specvital/cy2pw/pkg/parser/tspool"
)

// ResolveName returns the canonical dotted name of a call or member chain,
// e.g. `cy.get('a').first().click()` resolves to "cy.get.first.click".
// Node shapes other than calls, members and identifiers contribute nothing,
// so `foo().bar` resolves to "foo.bar" and `this.x` to "x".
func ResolveName(node *sitter.Node, source []byte) string {
	var parts []string
	collectName(node, source, &parts, 0)

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

func collectName(node *sitter.Node, source []byte, parts *[]string, depth int) {
	if node == nil || depth > tspool.MaxTreeDepth {
		return
	}

	switch node.Type() {
	case "call_expression":
		collectName(node.ChildByFieldName("function"), source, parts, depth+1)
	case "member_expression":
		if prop := node.ChildByFieldName("property"); prop != nil {
			*parts = append(*parts, parser.GetNodeText(prop, source))
		}
		collectName(node.ChildByFieldName("object"), source, parts, depth+1)
	case "identifier":
		*parts = append(*parts, parser.GetNodeText(node, source))
	}
}
