package engine

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/cy2pw/pkg/jsgen"
	"github.com/specvital/cy2pw/pkg/parser"
	"github.com/specvital/cy2pw/pkg/parser/tspool"
)

// funcDef is a named function: a function declaration, or a variable
// initialized with an arrow function or function expression.
type funcDef struct {
	name string
	fn   *sitter.Node
}

// namedFunction returns the definition a node introduces, if any.
func namedFunction(node *sitter.Node, source []byte) (funcDef, bool) {
	switch node.Type() {
	case "function_declaration":
		name := node.ChildByFieldName("name")
		if name == nil {
			return funcDef{}, false
		}
		return funcDef{name: parser.GetNodeText(name, source), fn: node}, true
	case "variable_declarator":
		name := node.ChildByFieldName("name")
		value := node.ChildByFieldName("value")
		if name == nil || name.Type() != "identifier" || !parser.IsFunctionNode(value) {
			return funcDef{}, false
		}
		return funcDef{name: parser.GetNodeText(name, source), fn: value}, true
	default:
		return funcDef{}, false
	}
}

// bodyUsage is what a function body calls, ignoring nested named functions
// and runner hooks, which receive the page on their own.
type bodyUsage struct {
	cy    bool
	calls map[string]bool
}

func scanBody(body *sitter.Node, source []byte) bodyUsage {
	usage := bodyUsage{calls: make(map[string]bool)}
	scanNode(body, source, &usage, 0)
	return usage
}

func scanNode(node *sitter.Node, source []byte, usage *bodyUsage, depth int) {
	if node == nil || depth > tspool.MaxTreeDepth {
		return
	}
	if _, ok := namedFunction(node, source); ok {
		return
	}

	if node.Type() == "call_expression" {
		name := ResolveName(node, source)
		if IsHook(name) || IsCustomCommandDeclaration(name) {
			return
		}
		if IsCy(name) {
			usage.cy = true
		}
		if fn := node.ChildByFieldName("function"); fn != nil && fn.Type() == "identifier" {
			usage.calls[parser.GetNodeText(fn, source)] = true
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		scanNode(node.Child(i), source, usage, depth+1)
	}
}

// findCarriers returns the names of functions that need the page: those
// calling cy directly and, transitively, those calling such functions.
func findCarriers(root *sitter.Node, source []byte) map[string]bool {
	usages := make(map[string]bodyUsage)
	parser.WalkTree(root, func(node *sitter.Node) bool {
		def, ok := namedFunction(node, source)
		if !ok {
			return true
		}
		usage := scanBody(def.fn.ChildByFieldName("body"), source)
		if prev, seen := usages[def.name]; seen {
			usage.cy = usage.cy || prev.cy
			for name := range prev.calls {
				usage.calls[name] = true
			}
		}
		usages[def.name] = usage
		return true
	})

	carriers := make(map[string]bool)
	for name, usage := range usages {
		if usage.cy {
			carriers[name] = true
		}
	}

	for changed := true; changed; {
		changed = false
		for name, usage := range usages {
			if carriers[name] {
				continue
			}
			for callee := range usage.calls {
				if carriers[callee] {
					carriers[name] = true
					changed = true
					break
				}
			}
		}
	}
	return carriers
}

func (t *transformer) isCarrier(def funcDef) bool {
	return t.carriers[def.name] && def.fn.ChildByFieldName("body") != nil
}

// rewriteFunctionDeclaration makes a carrier function declaration async and
// gives it the page as first parameter.
func (t *transformer) rewriteFunctionDeclaration(node *sitter.Node) {
	def, ok := namedFunction(node, t.source)
	if !ok || !t.isCarrier(def) {
		return
	}

	t.r.Replace(node, t.b.AsyncFunctionWithCarrier(t.funcDecl(node, def.name)))
	t.functions++
}

// rewriteFunctionVariable does the same for `const name = (...) => ...` and
// `const name = function (...) {...}`.
func (t *transformer) rewriteFunctionVariable(node *sitter.Node) {
	def, ok := namedFunction(node, t.source)
	if !ok || !t.isCarrier(def) {
		return
	}

	if def.fn.Type() == "arrow_function" {
		t.r.Replace(def.fn, t.b.AsyncArrowWithCarrier(jsgen.Arrow{
			TypeParams: t.r.Text(def.fn.ChildByFieldName("type_parameters")),
			Params:     t.r.Raws(parser.FunctionParams(def.fn)),
			ReturnType: t.r.Text(def.fn.ChildByFieldName("return_type")),
			Body:       t.r.Raw(def.fn.ChildByFieldName("body")),
		}))
	} else {
		name := ""
		if n := def.fn.ChildByFieldName("name"); n != nil {
			name = parser.GetNodeText(n, t.source)
		}
		t.r.Replace(def.fn, t.b.AsyncFunctionWithCarrier(t.funcDecl(def.fn, name)))
	}
	t.functions++
}

func (t *transformer) funcDecl(fn *sitter.Node, name string) jsgen.FuncDecl {
	return jsgen.FuncDecl{
		Name:       name,
		TypeParams: t.r.Text(fn.ChildByFieldName("type_parameters")),
		Params:     t.r.Raws(parser.FunctionParams(fn)),
		ReturnType: t.r.Text(fn.ChildByFieldName("return_type")),
		Body:       t.r.Raw(fn.ChildByFieldName("body")),
	}
}

func (t *transformer) matchHelperCall(c *callSite) bool {
	fn := c.node.ChildByFieldName("function")
	return fn != nil && fn.Type() == "identifier" && t.carriers[c.name]
}

// convertHelperCall passes the page to a carrier function:
// `visit(id)` becomes `await visit(page, id)`.
func (t *transformer) convertHelperCall(c *callSite) (jsgen.Node, error) {
	args := t.b.WithCarrier(t.r.Raws(c.args))
	return t.b.Await(t.b.Call(jsgen.Ident(c.name), args...)), nil
}
