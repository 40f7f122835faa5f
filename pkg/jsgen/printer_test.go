package jsgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrint_Expressions(t *testing.T) {
	t.Parallel()

	page := Ident("page")

	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			name: "should print awaited member call",
			node: &Await{Expr: &Call{
				Callee: &Member{Object: page, Property: "goto"},
				Args:   []Expr{String{Value: "/home"}},
			}},
			want: "await page.goto('/home')",
		},
		{
			name: "should keep the requested quote",
			node: String{Value: "text=Save", Quote: '`'},
			want: "`text=Save`",
		},
		{
			name: "should print destructured async arrow with raw body",
			node: &Arrow{
				Async:  true,
				Params: []Expr{&ObjectPattern{Names: []string{"page"}}},
				Body:   Raw("{\n  x();\n}"),
			},
			want: "async ({ page }) => {\n  x();\n}",
		},
		{
			name: "should print arrow without body as empty block",
			node: &Arrow{},
			want: "() => {}",
		},
		{
			name: "should print binary expression",
			node: &Binary{Left: Raw("a"), Op: "!==", Right: String{Value: "GET"}},
			want: "a !== 'GET'",
		},
		{
			name: "should print anonymous async function expression",
			node: &FuncDecl{Async: true, Params: []Expr{page, Raw("id")}, Body: Raw("{}")},
			want: "async function (page, id) {}",
		},
		{
			name: "should print empty object and pattern",
			node: &Call{Callee: Ident("f"), Args: []Expr{&Object{}, &ObjectPattern{}}},
			want: "f({}, {})",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Print(tt.node))
		})
	}
}

func TestPrint_NestedBlocks(t *testing.T) {
	t.Parallel()

	route := Ident("route")
	handler := &Arrow{
		Params: []Expr{route},
		Body: &Block{Stmts: []Stmt{
			&If{
				Cond: &Binary{Left: Raw("route.request().method()"), Op: "!==", Right: String{Value: "POST"}},
				Then: &Block{Stmts: []Stmt{
					&ExprStmt{Expr: &Call{Callee: &Member{Object: route, Property: "fallback"}}},
					&Return{},
				}},
			},
			&ExprStmt{Expr: &Call{
				Callee: &Member{Object: route, Property: "fulfill"},
				Args: []Expr{&Object{Properties: []Property{
					{Key: "status", Value: Raw("201")},
				}}},
			}},
		}},
	}

	want := "(route) => {\n" +
		"    if (route.request().method() !== 'POST') {\n" +
		"      route.fallback();\n" +
		"      return;\n" +
		"    }\n" +
		"    route.fulfill({\n" +
		"      status: 201,\n" +
		"    });\n" +
		"  }"

	assert.Equal(t, want, Print(handler, WithBaseIndent("  ")))
}

func TestPrint_Statements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node Node
		opts []PrintOption
		want string
	}{
		{
			name: "should print exported async function declaration",
			node: &FuncDecl{
				Export: true,
				Async:  true,
				Name:   "login",
				Params: []Expr{Raw("user"), Ident("page")},
				Body:   &Block{Stmts: []Stmt{Raw("await page.goto('/login');")}},
			},
			opts: []PrintOption{WithIndentUnit("\t")},
			want: "export async function login(user, page) {\n\tawait page.goto('/login');\n}",
		},
		{
			name: "should keep type annotations",
			node: &FuncDecl{
				Async:      true,
				Name:       "open",
				TypeParams: "<T>",
				Params:     []Expr{Ident("page"), Raw("id: T")},
				ReturnType: ": Promise<void>",
				Body:       &Block{},
			},
			want: "async function open<T>(page, id: T): Promise<void> {}",
		},
		{
			name: "should print value return",
			node: &Return{Value: Ident("x")},
			want: "return x;",
		},
		{
			name: "should print named import",
			node: &Import{Names: []string{"test", "expect"}, From: "@playwright/test"},
			want: "import { test, expect } from '@playwright/test';",
		},
		{
			name: "should print if without body as empty block",
			node: &If{Cond: Ident("ok")},
			want: "if (ok) {}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Print(tt.node, tt.opts...))
		})
	}
}
