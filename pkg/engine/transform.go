package engine

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/cy2pw/pkg/jsgen"
	"github.com/specvital/cy2pw/pkg/parser"
	"github.com/specvital/cy2pw/pkg/parser/tspool"
)

// callSite is a call expression in a position the orchestrator rewrites.
type callSite struct {
	node *sitter.Node
	name string
	args []*sitter.Node
	// statement is the enclosing expression_statement, if the call (or its
	// await) is one.
	statement *sitter.Node
	// awaited is the await_expression wrapping the call, if any.
	awaited *sitter.Node
	// syncScope is set when the call sits inside a function that stays
	// synchronous, where an await would not parse.
	syncScope bool
}

// rule pairs a classifier predicate with its converter. Converters return a
// nil fragment to leave the call untouched.
type rule struct {
	category Category
	// statement rules replace the whole expression statement and only apply
	// to calls in statement position.
	statement bool
	// awaits marks rules whose fragment is awaited; they are skipped in a
	// synchronous scope.
	awaits  bool
	match   func(t *transformer, c *callSite) bool
	convert func(t *transformer, c *callSite) (jsgen.Node, error)
}

// dispatchRules lists the rules in priority order; the first match wins.
func dispatchRules() []rule {
	return []rule{
		{category: CategoryHook, match: (*transformer).matchHook, convert: (*transformer).convertHook},
		{category: CategoryCustomCommandDeclaration, statement: true, match: (*transformer).matchCustomCommandDeclaration, convert: (*transformer).convertCustomCommandDeclaration},
		{category: CategoryHelperCall, awaits: true, match: (*transformer).matchHelperCall, convert: (*transformer).convertHelperCall},
		{category: CategoryAction, awaits: true, match: (*transformer).matchAction, convert: (*transformer).convertAction},
		{category: CategoryValidation, awaits: true, match: (*transformer).matchValidation, convert: (*transformer).convertValidation},
		{category: CategoryCommand, awaits: true, match: (*transformer).matchCommand, convert: (*transformer).convertCommand},
		{category: CategoryCustomCommandInvocation, awaits: true, match: (*transformer).matchCustomCommandInvocation, convert: (*transformer).convertCustomCommandInvocation},
	}
}

type transformer struct {
	source   []byte
	b        *Builder
	r        *rewriter
	tracker  CommandTracker
	carriers map[string]bool
	rules    []rule

	counts    map[Category]int
	functions int
	declared  []string
}

func newTransformer(source []byte, root *sitter.Node, opts ConvertOptions) *transformer {
	return &transformer{
		source:   source,
		b:        NewBuilder(),
		r:        newRewriter(source, opts.Indent),
		tracker:  opts.Tracker,
		carriers: findCarriers(root, source),
		rules:    dispatchRules(),
		counts:   make(map[Category]int),
	}
}

// visit rewrites the tree bottom-up: children are converted before the node
// itself, so converters see already-rewritten callback bodies and arguments.
func (t *transformer) visit(node *sitter.Node, depth int) error {
	if depth > tspool.MaxTreeDepth {
		return nil
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		if err := t.visit(node.Child(i), depth+1); err != nil {
			return err
		}
	}

	switch node.Type() {
	case "call_expression":
		return t.dispatch(node)
	case "function_declaration":
		t.rewriteFunctionDeclaration(node)
	case "variable_declarator":
		t.rewriteFunctionVariable(node)
	}
	return nil
}

func (t *transformer) dispatch(call *sitter.Node) error {
	site := t.callSiteOf(call)
	if site == nil {
		return nil
	}

	for _, rl := range t.rules {
		if rl.statement && (site.statement == nil || site.awaited != nil) {
			continue
		}
		if rl.awaits && site.syncScope {
			continue
		}
		if !rl.match(t, site) {
			continue
		}

		fragment, err := rl.convert(t, site)
		if err != nil {
			return err
		}
		if fragment == nil {
			return nil
		}

		t.apply(site, rl.statement, fragment)
		t.counts[rl.category]++
		return nil
	}
	return nil
}

func (t *transformer) apply(site *callSite, statement bool, fragment jsgen.Node) {
	if statement {
		t.r.Replace(site.statement, fragment)
		return
	}
	// The call is already awaited: keep the existing await.
	if aw, ok := fragment.(*jsgen.Await); ok && site.awaited != nil {
		t.r.Replace(site.node, aw.Expr)
		return
	}
	t.r.Replace(site.node, fragment)
}

// callSiteOf returns the call site for calls used as statements, awaited or
// as an arrow function's expression body. Calls elsewhere (arguments,
// initializers, conditions) are left alone.
func (t *transformer) callSiteOf(call *sitter.Node) *callSite {
	site := &callSite{node: call}

	parent := call.Parent()
	if parent == nil {
		return nil
	}
	if parent.Type() == "await_expression" {
		site.awaited = parent
		parent = parent.Parent()
		if parent == nil {
			return nil
		}
	}

	switch parent.Type() {
	case "expression_statement":
		site.statement = parent
		if site.awaited == nil {
			if fn := enclosingFunction(parent); fn != nil && !t.becomesAsync(fn) {
				site.syncScope = true
			}
		}
	case "arrow_function":
		body := parent.ChildByFieldName("body")
		anchor := call
		if site.awaited != nil {
			anchor = site.awaited
		}
		if body == nil || keyOf(body) != keyOf(anchor) || !t.becomesAsync(parent) {
			return nil
		}
	default:
		if site.awaited == nil {
			return nil
		}
	}

	site.name = ResolveName(call, t.source)
	site.args = parser.CallArguments(call)
	return site
}

// enclosingFunction returns the nearest function around node, or nil at
// module level.
func enclosingFunction(node *sitter.Node) *sitter.Node {
	for n := node.Parent(); n != nil; n = n.Parent() {
		switch n.Type() {
		case "arrow_function", "function", "function_expression", "function_declaration",
			"generator_function", "generator_function_declaration", "method_definition":
			return n
		}
	}
	return nil
}

// isAsync reports whether fn carries the async keyword.
func isAsync(fn *sitter.Node) bool {
	for i := 0; i < int(fn.ChildCount()); i++ {
		child := fn.Child(i)
		switch child.Type() {
		case "async":
			return true
		case "formal_parameters", "identifier", "statement_block":
			return false
		}
	}
	return false
}

// becomesAsync reports whether a function is, or will be rewritten to be,
// async: test and hook callbacks, custom command callbacks and carrier
// functions. Suite callbacks stay synchronous.
func (t *transformer) becomesAsync(fn *sitter.Node) bool {
	if isAsync(fn) {
		return true
	}
	if fn.Type() == "function_declaration" {
		def, ok := namedFunction(fn, t.source)
		return ok && t.isCarrier(def)
	}

	parent := fn.Parent()
	if parent == nil {
		return false
	}
	switch parent.Type() {
	case "variable_declarator":
		def, ok := namedFunction(parent, t.source)
		return ok && t.carriers[def.name]
	case "arguments":
		call := parent.Parent()
		if call == nil {
			return false
		}
		name := ResolveName(call, t.source)
		return (IsHook(name) && !IsDescribe(name)) || IsCustomCommandDeclaration(name)
	default:
		return false
	}
}
