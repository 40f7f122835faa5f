package jstest

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/cy2pw/pkg/parser"
)

// UnquoteString returns the value of a JavaScript string or template
// literal. Template bodies are returned raw. Text that is not a literal, or
// whose escapes do not decode, is returned unchanged.
func UnquoteString(text string) string {
	q := QuoteChar(text)
	if q == 0 {
		return text
	}

	inner := text[1 : len(text)-1]
	switch q {
	case '`':
		return inner
	case '\'':
		inner = strings.ReplaceAll(inner, `\'`, `'`)
		inner = strings.ReplaceAll(inner, `"`, `\"`)
	}

	value, err := strconv.Unquote(`"` + inner + `"`)
	if err != nil {
		return text
	}
	return value
}

// QuoteChar returns the delimiter of a string or template literal, or 0.
func QuoteChar(text string) byte {
	if len(text) < 2 {
		return 0
	}
	switch text[0] {
	case '"', '\'', '`':
		if text[len(text)-1] == text[0] {
			return text[0]
		}
	}
	return 0
}

// IsStringLiteral reports whether node is a plain string or a template
// string.
func IsStringLiteral(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	switch node.Type() {
	case "string", "template_string":
		return true
	default:
		return false
	}
}

// ExtractStringValue extracts a string value from a node if it's a string literal.
// Returns empty string for non-string nodes (identifiers, expressions, etc.).
func ExtractStringValue(node *sitter.Node, source []byte) string {
	if !IsStringLiteral(node) {
		return ""
	}
	return UnquoteString(parser.GetNodeText(node, source))
}

// FindCallback returns the first function argument.
func FindCallback(args []*sitter.Node) *sitter.Node {
	for _, arg := range args {
		if parser.IsFunctionNode(arg) {
			return arg
		}
	}
	return nil
}

// IsFirstArgString checks if the first argument is a string literal.
func IsFirstArgString(args []*sitter.Node) bool {
	return len(args) > 0 && IsStringLiteral(args[0])
}
