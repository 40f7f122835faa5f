package jstest

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/cy2pw/pkg/domain"
	"github.com/specvital/cy2pw/pkg/parser"
	"github.com/specvital/cy2pw/pkg/parser/tspool"
)

func TestUnquoteString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "should unquote double quotes", input: `"[data-test=new-todo]"`, want: "[data-test=new-todo]"},
		{name: "should unquote single quotes", input: `'/login'`, want: "/login"},
		{name: "should keep template bodies raw", input: "`${text}{enter}`", want: "${text}{enter}"},
		{name: "should decode escaped single quotes", input: `'it\'s done'`, want: "it's done"},
		{name: "should keep double quotes inside single quotes", input: `'say "hi"'`, want: `say "hi"`},
		{name: "should decode escape sequences", input: `'a\tb'`, want: "a\tb"},
		{name: "should return a single character as-is", input: "a", want: "a"},
		{name: "should return mismatched quotes as-is", input: `"hello'`, want: `"hello'`},
		{name: "should return identifiers as-is", input: "selector", want: "selector"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := UnquoteString(tt.input)

			if got != tt.want {
				t.Errorf("UnquoteString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestQuoteChar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  byte
	}{
		{name: "should detect single quote", input: `'a'`, want: '\''},
		{name: "should detect double quote", input: `"a"`, want: '"'},
		{name: "should detect backtick", input: "`a`", want: '`'},
		{name: "should reject bare identifier", input: "abc", want: 0},
		{name: "should reject mismatched delimiters", input: `'a"`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := QuoteChar(tt.input); got != tt.want {
				t.Errorf("QuoteChar(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFindCallbackAndFirstArg(t *testing.T) {
	t.Parallel()

	source := []byte("it('works', function () {});\nit(name, () => {});")
	tree, err := tspool.Parse(context.Background(), domain.LanguageJavaScript, source)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer tree.Close()

	var calls [][2]bool
	parser.WalkTree(tree.RootNode(), func(n *sitter.Node) bool {
		if n.Type() != "call_expression" {
			return true
		}
		args := parser.CallArguments(n)
		calls = append(calls, [2]bool{IsFirstArgString(args), FindCallback(args) != nil})
		return false
	})

	want := [][2]bool{{true, true}, {false, true}}
	if len(calls) != len(want) {
		t.Fatalf("got %d calls, want %d", len(calls), len(want))
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d: got %v, want %v", i, calls[i], want[i])
		}
	}

	if got := ExtractStringValue(nil, source); got != "" {
		t.Errorf("ExtractStringValue(nil) = %q, want empty", got)
	}
}
