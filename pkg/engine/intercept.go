package engine

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/cy2pw/pkg/jsgen"
	"github.com/specvital/cy2pw/pkg/parser"
	"github.com/specvital/cy2pw/pkg/parser/jstest"
)

var httpMethods = map[string]bool{
	"DELETE":  true,
	"GET":     true,
	"HEAD":    true,
	"OPTIONS": true,
	"PATCH":   true,
	"POST":    true,
	"PUT":     true,
}

// convertIntercept turns a stubbed `cy.intercept([method,] url, { statusCode, body })`
// into `await page.route(url, handler)`. Interceptions without a static
// response (spies, handler functions, aliases) are left untouched.
func (t *transformer) convertIntercept(c *callSite) jsgen.Node {
	args := c.args

	var method string
	if len(args) == 3 {
		method = strings.ToUpper(jstest.ExtractStringValue(args[0], t.source))
		if !httpMethods[method] {
			return nil
		}
		args = args[1:]
	}
	if len(args) != 2 {
		return nil
	}

	url, options := args[0], args[1]
	if !jstest.IsStringLiteral(url) || options.Type() != "object" {
		return nil
	}

	status, body := t.staticResponse(options)
	if status == nil && body == nil {
		return nil
	}

	return t.b.Route(routePattern(t.r.Text(url)), t.b.RouteHandler(method, status, body))
}

// routePattern rewrites the `**` wildcard of a URL literal.
func routePattern(literal string) jsgen.Raw {
	return jsgen.Raw(strings.ReplaceAll(literal, "**", ".*"))
}

// staticResponse reads the statusCode and body properties of an intercept
// options object. Missing properties are nil.
func (t *transformer) staticResponse(options *sitter.Node) (status, body jsgen.Expr) {
	for _, prop := range parser.NamedChildren(options) {
		var key string
		var value *sitter.Node

		switch prop.Type() {
		case "pair":
			keyNode := prop.ChildByFieldName("key")
			key = jstest.UnquoteString(parser.GetNodeText(keyNode, t.source))
			value = prop.ChildByFieldName("value")
		case "shorthand_property_identifier":
			key = parser.GetNodeText(prop, t.source)
			value = prop
		default:
			continue
		}

		switch key {
		case "statusCode":
			status = t.r.Raw(value)
		case "body":
			body = t.r.Raw(value)
		}
	}
	return status, body
}
