// Package parser holds tree-sitter helpers shared by the conversion engine
// and the vocabulary detectors.
package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/cy2pw/pkg/parser/tspool"
)

// GetNodeText returns the source text covered by node, or "" when node is
// nil or its range does not fit in source.
func GetNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if start > end || int(end) > len(source) {
		return ""
	}
	return string(source[start:end])
}

// Line returns the 1-based line of the node start.
func Line(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}

// NamedChildren returns the named direct children of node, skipping
// comments.
func NamedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}

	var children []*sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		children = append(children, child)
	}
	return children
}

// CallArguments returns the argument nodes of a call_expression.
// Template-literal tagged calls have no arguments node and yield nil.
func CallArguments(call *sitter.Node) []*sitter.Node {
	if call == nil || call.Type() != "call_expression" {
		return nil
	}

	args := call.ChildByFieldName("arguments")
	if args == nil || args.Type() != "arguments" {
		return nil
	}
	return NamedChildren(args)
}

// FunctionParams returns the parameter nodes of a function-like node.
// Arrow functions with a single bare parameter are reported as that one
// identifier.
func FunctionParams(fn *sitter.Node) []*sitter.Node {
	if fn == nil {
		return nil
	}

	if params := fn.ChildByFieldName("parameters"); params != nil {
		return NamedChildren(params)
	}
	if param := fn.ChildByFieldName("parameter"); param != nil {
		return []*sitter.Node{param}
	}
	return nil
}

// IsFunctionNode reports whether node is an arrow function or a function
// expression.
func IsFunctionNode(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	switch node.Type() {
	case "arrow_function", "function", "function_expression":
		return true
	default:
		return false
	}
}

// WalkTree visits node and its descendants depth first. Returning false from
// visit skips the children of that node.
func WalkTree(node *sitter.Node, visit func(*sitter.Node) bool) {
	walk(node, visit, 0)
}

func walk(node *sitter.Node, visit func(*sitter.Node) bool, depth int) {
	if node == nil || depth > tspool.MaxTreeDepth || !visit(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		walk(node.Child(i), visit, depth+1)
	}
}
