package engine

import (
	"strings"

	"github.com/specvital/cy2pw/pkg/jsgen"
	"github.com/specvital/cy2pw/pkg/parser/jstest"
)

// Builder constructs the Playwright fragments emitted by the converters.
// It is stateless apart from the carrier identifier, so equal inputs always
// build equal fragments.
type Builder struct {
	carrier jsgen.Ident
}

func NewBuilder() *Builder {
	return &Builder{carrier: jsgen.Ident(jstest.ObjectPage)}
}

// Carrier returns the page identifier threaded through converted code.
func (b *Builder) Carrier() jsgen.Ident {
	return b.carrier
}

func (b *Builder) Await(expr jsgen.Expr) *jsgen.Await {
	return &jsgen.Await{Expr: expr}
}

func (b *Builder) Member(object jsgen.Expr, property string) *jsgen.Member {
	return &jsgen.Member{Object: object, Property: property}
}

func (b *Builder) Call(callee jsgen.Expr, args ...jsgen.Expr) *jsgen.Call {
	return &jsgen.Call{Callee: callee, Args: args}
}

// MethodCall builds `object.method(args...)`.
func (b *Builder) MethodCall(object jsgen.Expr, method string, args ...jsgen.Expr) *jsgen.Call {
	return b.Call(b.Member(object, method), args...)
}

// PageCall builds `await page.method(args...)`.
func (b *Builder) PageCall(method string, args ...jsgen.Expr) *jsgen.Await {
	return b.Await(b.MethodCall(b.carrier, method, args...))
}

// Locator builds `page.locator(args...)`.
func (b *Builder) Locator(args ...jsgen.Expr) *jsgen.Call {
	return b.MethodCall(b.carrier, "locator", args...)
}

// LocatorSubject builds `page.locator(anchorArgs...)[.first()|.last()]`.
func (b *Builder) LocatorSubject(anchorArgs []jsgen.Expr, positional string) jsgen.Expr {
	var subject jsgen.Expr = b.Locator(anchorArgs...)
	if positional != "" {
		subject = b.MethodCall(subject, positional)
	}
	return subject
}

// LocatorChain builds
// `await page.locator(anchorArgs...)[.first()|.last()].property(args...)`.
func (b *Builder) LocatorChain(anchorArgs []jsgen.Expr, positional, property string, args []jsgen.Expr) *jsgen.Await {
	return b.Await(b.MethodCall(b.LocatorSubject(anchorArgs, positional), property, args...))
}

// Expect builds `await expect(subject)[.not].matcher(args...)`.
func (b *Builder) Expect(subject jsgen.Expr, matcher string, args []jsgen.Expr, negated bool) *jsgen.Await {
	var assertion jsgen.Expr = b.Call(jsgen.Ident(jstest.ObjectExpect), subject)
	if negated {
		assertion = b.Member(assertion, "not")
	}
	return b.Await(b.MethodCall(assertion, matcher, args...))
}

// TestCallback builds `async ({ page }) => body`.
func (b *Builder) TestCallback(body jsgen.Node) *jsgen.Arrow {
	return &jsgen.Arrow{
		Async:  true,
		Params: []jsgen.Expr{&jsgen.ObjectPattern{Names: []string{string(b.carrier)}}},
		Body:   body,
	}
}

// SuiteCallback builds `() => body`.
func (b *Builder) SuiteCallback(body jsgen.Node) *jsgen.Arrow {
	return &jsgen.Arrow{Body: body}
}

// HookWithTitle builds `callee(titleArgs..., callback)` for test and suite
// declarations. callee is a dotted runner name such as "test.describe.only".
func (b *Builder) HookWithTitle(callee jsgen.Expr, titleArgs []jsgen.Expr, callback *jsgen.Arrow) *jsgen.Call {
	args := append(append([]jsgen.Expr{}, titleArgs...), callback)
	return b.Call(callee, args...)
}

// HookWithoutTitle builds `test.<hook>(async ({ page }) => body)`.
func (b *Builder) HookWithoutTitle(hook string, body jsgen.Node) *jsgen.Call {
	return b.Call(b.Member(jsgen.Ident(jstest.FuncTest), hook), b.TestCallback(body))
}

// WithCarrier returns params with the carrier prepended.
func (b *Builder) WithCarrier(params []jsgen.Expr) []jsgen.Expr {
	return append([]jsgen.Expr{b.carrier}, params...)
}

// AsyncFunctionWithCarrier rebuilds a function declaration or expression as
// async with the carrier as first parameter.
func (b *Builder) AsyncFunctionWithCarrier(fn jsgen.FuncDecl) *jsgen.FuncDecl {
	fn.Async = true
	fn.Params = b.WithCarrier(fn.Params)
	fn.ReturnType = promiseReturnType(fn.ReturnType)
	return &fn
}

// AsyncArrowWithCarrier rebuilds an arrow function as async with the
// carrier as first parameter.
func (b *Builder) AsyncArrowWithCarrier(fn jsgen.Arrow) *jsgen.Arrow {
	fn.Async = true
	fn.Params = b.WithCarrier(fn.Params)
	fn.ReturnType = promiseReturnType(fn.ReturnType)
	return &fn
}

// promiseReturnType wraps a TypeScript return annotation in Promise<...>,
// as required for async functions.
func promiseReturnType(annotation string) string {
	inner := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(annotation), ":"))
	if inner == "" || strings.HasPrefix(inner, "Promise<") {
		return annotation
	}
	return ": Promise<" + inner + ">"
}

// ExportedAsyncFunction builds `export async function name(params..., page) body`.
func (b *Builder) ExportedAsyncFunction(name string, params []jsgen.Expr, body jsgen.Node) *jsgen.FuncDecl {
	return &jsgen.FuncDecl{
		Export: true,
		Async:  true,
		Name:   name,
		Params: append(append([]jsgen.Expr{}, params...), b.carrier),
		Body:   body,
	}
}

// RouteHandler builds the page.route callback answering a request with the
// given status and body. A non-empty method adds a guard that falls back for
// requests using other methods. Nil status or body omits the property.
func (b *Builder) RouteHandler(method string, status, body jsgen.Expr) *jsgen.Arrow {
	route := jsgen.Ident("route")

	var stmts []jsgen.Stmt
	if method != "" {
		stmts = append(stmts, &jsgen.If{
			Cond: &jsgen.Binary{
				Left:  b.MethodCall(b.MethodCall(route, "request"), "method"),
				Op:    "!==",
				Right: jsgen.String{Value: method},
			},
			Then: &jsgen.Block{Stmts: []jsgen.Stmt{
				&jsgen.ExprStmt{Expr: b.MethodCall(route, "fallback")},
				&jsgen.Return{},
			}},
		})
	}

	var props []jsgen.Property
	if status != nil {
		props = append(props, jsgen.Property{Key: "status", Value: status})
	}
	if body != nil {
		props = append(props, jsgen.Property{Key: "body", Value: body})
	}
	stmts = append(stmts, &jsgen.ExprStmt{
		Expr: b.MethodCall(route, "fulfill", &jsgen.Object{Properties: props}),
	})

	return &jsgen.Arrow{
		Params: []jsgen.Expr{route},
		Body:   &jsgen.Block{Stmts: stmts},
	}
}

// Route builds `await page.route(url, handler)`.
func (b *Builder) Route(url jsgen.Expr, handler *jsgen.Arrow) *jsgen.Await {
	return b.PageCall("route", url, handler)
}

// PlaywrightImport builds `import { test, expect } from '@playwright/test';`.
func (b *Builder) PlaywrightImport() *jsgen.Import {
	return &jsgen.Import{
		Names: []string{jstest.FuncTest, jstest.ObjectExpect},
		From:  jstest.PlaywrightPath,
	}
}

// runnerCallee builds the dotted Playwright runner callee, e.g.
// test.describe.only.
func (b *Builder) runnerCallee(parts ...string) jsgen.Expr {
	var callee jsgen.Expr = jsgen.Ident(jstest.FuncTest)
	for _, p := range parts {
		if p != "" {
			callee = b.Member(callee, p)
		}
	}
	return callee
}
