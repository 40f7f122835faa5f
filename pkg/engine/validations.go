package engine

import (
	"strings"

	"github.com/specvital/cy2pw/pkg/jsgen"
	"github.com/specvital/cy2pw/pkg/parser"
	"github.com/specvital/cy2pw/pkg/parser/jstest"
)

// validations maps chai keywords accepted by `.should()` to web-first
// Playwright matchers.
var validations = map[string]string{
	"be.checked":  "toBeChecked",
	"be.disabled": "toBeDisabled",
	"be.visible":  "toBeVisible",
	"contain":     "toContainText",
	"have.attr":   "toHaveAttribute",
	"have.class":  "toHaveClass",
	"have.length": "toHaveCount",
	"have.text":   "toHaveText",
	"have.value":  "toHaveValue",
}

// Matchers asserting a state take no expected value.
var stateMatchers = map[string]bool{
	"toBeChecked":  true,
	"toBeDisabled": true,
	"toBeVisible":  true,
}

// MatcherOf returns the Playwright matcher for a chai keyword without its
// `not.` prefix.
func MatcherOf(keyword string) (string, bool) {
	matcher, ok := validations[keyword]
	return matcher, ok
}

func (t *transformer) matchValidation(c *callSite) bool {
	return IsValidation(c.name)
}

// convertValidation rewrites `.should(keyword, args...)` into an expect
// assertion on the anchored locator. Keywords outside the table fail the
// conversion rather than emitting a wrong assertion.
func (t *transformer) convertValidation(c *callSite) (jsgen.Node, error) {
	if !jstest.IsFirstArgString(c.args) {
		return nil, nil
	}

	keyword := jstest.UnquoteString(parser.GetNodeText(c.args[0], t.source))
	negated := IsNegated(keyword)

	matcher, ok := MatcherOf(strings.TrimPrefix(keyword, negatePrefix))
	if !ok {
		return nil, &UnknownValidationError{Keyword: keyword}
	}

	anchorArgs, ok := t.chainAnchor(c)
	if !ok {
		return nil, nil
	}

	var args []jsgen.Expr
	if !stateMatchers[matcher] {
		args = t.r.Raws(c.args[1:])
	}

	subject := t.b.LocatorSubject(anchorArgs, Positional(c.name))
	return t.b.Expect(subject, matcher, args, negated), nil
}
