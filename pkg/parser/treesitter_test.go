package parser_test

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/cy2pw/pkg/domain"
	"github.com/specvital/cy2pw/pkg/parser"
	"github.com/specvital/cy2pw/pkg/parser/tspool"
)

func parseJS(t *testing.T, src string) (*sitter.Node, []byte) {
	t.Helper()

	source := []byte(src)
	tree, err := tspool.Parse(context.Background(), domain.LanguageJavaScript, source)
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree.RootNode(), source
}

func findFirst(root *sitter.Node, nodeType string) *sitter.Node {
	var found *sitter.Node
	parser.WalkTree(root, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.Type() == nodeType {
			found = n
			return false
		}
		return true
	})
	return found
}

func TestCallArguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{name: "should return arguments without comments", source: "cy.get('a', /* opts */ { timeout: 1 });", want: []string{"'a'", "{ timeout: 1 }"}},
		{name: "should return nothing for an empty call", source: "cy.reload();", want: nil},
		{name: "should return nothing for a tagged template", source: "html`<p></p>`;", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root, src := parseJS(t, tt.source)
			call := findFirst(root, "call_expression")
			require.NotNil(t, call)

			var got []string
			for _, arg := range parser.CallArguments(call) {
				got = append(got, parser.GetNodeText(arg, src))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFunctionParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{name: "should read a bare arrow parameter", source: "const f = text => text;", want: []string{"text"}},
		{name: "should read parenthesised parameters", source: "const f = (a, b) => a;", want: []string{"a", "b"}},
		{name: "should read function expression parameters", source: "const f = function (user) {};", want: []string{"user"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root, src := parseJS(t, tt.source)
			var fn *sitter.Node
			parser.WalkTree(root, func(n *sitter.Node) bool {
				if fn == nil && parser.IsFunctionNode(n) {
					fn = n
				}
				return fn == nil
			})
			require.NotNil(t, fn)

			var got []string
			for _, p := range parser.FunctionParams(fn) {
				got = append(got, parser.GetNodeText(p, src))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetNodeText(t *testing.T) {
	t.Parallel()

	root, src := parseJS(t, "cy.visit('/');\n\ncy.reload();")
	call := findFirst(root, "call_expression")

	assert.Equal(t, "cy.visit('/')", parser.GetNodeText(call, src))
	assert.Equal(t, 1, parser.Line(call))
	assert.Empty(t, parser.GetNodeText(nil, src))
	assert.Empty(t, parser.GetNodeText(call, src[:3]))
}
