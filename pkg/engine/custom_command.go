package engine

import (
	"context"
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/cy2pw/pkg/domain"
	"github.com/specvital/cy2pw/pkg/jsgen"
	"github.com/specvital/cy2pw/pkg/parser"
	"github.com/specvital/cy2pw/pkg/parser/jstest"
	"github.com/specvital/cy2pw/pkg/parser/tspool"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// customCommand extracts the name and callback of a
// `Cypress.Commands.add(name, [options,] callback)` call.
func customCommand(call *sitter.Node, source []byte) (string, *sitter.Node, bool) {
	if !IsCustomCommandDeclaration(ResolveName(call, source)) {
		return "", nil, false
	}

	args := parser.CallArguments(call)
	if len(args) < 2 || !jstest.IsFirstArgString(args) {
		return "", nil, false
	}

	name := jstest.ExtractStringValue(args[0], source)
	if !identifierPattern.MatchString(name) {
		return "", nil, false
	}

	callback := jstest.FindCallback(args[1:])
	if callback == nil {
		return "", nil, false
	}
	return name, callback, true
}

func (t *transformer) matchCustomCommandDeclaration(c *callSite) bool {
	return IsCustomCommandDeclaration(c.name)
}

// convertCustomCommandDeclaration turns the command into an async function
// taking the page last. Top-level declarations are exported.
func (t *transformer) convertCustomCommandDeclaration(c *callSite) (jsgen.Node, error) {
	name, callback, ok := customCommand(c.node, t.source)
	if !ok {
		return nil, nil
	}

	var body jsgen.Node = jsgen.Raw("{}")
	if b := callback.ChildByFieldName("body"); b != nil {
		if b.Type() == "statement_block" {
			body = t.r.Raw(b)
		} else {
			body = &jsgen.Block{Stmts: []jsgen.Stmt{&jsgen.Return{Value: t.r.Raw(b)}}}
		}
	}

	fn := t.b.ExportedAsyncFunction(name, t.r.Raws(parser.FunctionParams(callback)), body)
	if parent := c.statement.Parent(); parent == nil || parent.Type() != "program" {
		fn.Export = false
	}

	t.tracker.Track(name)
	t.declared = append(t.declared, name)
	return fn, nil
}

func (t *transformer) matchCustomCommandInvocation(c *callSite) bool {
	name := CustomCommandName(c.name)
	return name != "" && t.tracker.Exists(name)
}

// convertCustomCommandInvocation rewrites `cy.name(args...)` into
// `await name(args..., page)`.
func (t *transformer) convertCustomCommandInvocation(c *callSite) (jsgen.Node, error) {
	name := CustomCommandName(c.name)
	args := append(t.r.Raws(c.args), t.b.Carrier())
	return t.b.Await(t.b.Call(jsgen.Ident(name), args...)), nil
}

// DeclaredCommands returns the custom commands declared in source, in
// declaration order. It lets a migration register the commands of support
// files before converting the specs that call them.
func DeclaredCommands(ctx context.Context, source []byte, lang domain.Language) ([]string, error) {
	tree, err := tspool.Parse(ctx, lang, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var names []string
	parser.WalkTree(tree.RootNode(), func(node *sitter.Node) bool {
		if node.Type() != "call_expression" {
			return true
		}
		if name, _, ok := customCommand(node, source); ok {
			names = append(names, name)
		}
		return true
	})
	return names, nil
}
