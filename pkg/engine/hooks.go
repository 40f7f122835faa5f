package engine

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/cy2pw/pkg/jsgen"
	"github.com/specvital/cy2pw/pkg/parser/jstest"
)

func (t *transformer) matchHook(c *callSite) bool {
	return IsHook(c.name)
}

// convertHook rewrites it/describe/beforeEach/afterEach into the Playwright
// runner. Test and hook callbacks become async arrows receiving the page;
// suite callbacks stay synchronous. Arguments other than the callback are
// kept in place.
func (t *transformer) convertHook(c *callSite) (jsgen.Node, error) {
	kind, modifier := splitHook(c.name)
	callback := jstest.FindCallback(c.args)
	// A callback passed by reference cannot be rebuilt.
	if callback == nil && len(c.args) > 1 {
		return nil, nil
	}
	body := t.callbackBody(callback)
	leading := t.r.Raws(argsBefore(c.args, callback))

	switch kind {
	case hookIt:
		return t.b.HookWithTitle(t.b.runnerCallee(modifier), leading, t.b.TestCallback(body)), nil
	case hookDescribe:
		return t.b.HookWithTitle(t.b.runnerCallee(jstest.FuncDescribe, modifier), leading, t.b.SuiteCallback(body)), nil
	case hookBeforeEach, hookAfterEach:
		hook := jstest.FuncBeforeEach
		if kind == hookAfterEach {
			hook = jstest.FuncAfterEach
		}
		if len(leading) > 0 {
			return t.b.HookWithTitle(t.b.runnerCallee(hook), leading, t.b.TestCallback(body)), nil
		}
		return t.b.HookWithoutTitle(hook, body), nil
	default:
		return nil, nil
	}
}

// callbackBody returns the rewritten body of a callback, or nil when there
// is no callback.
func (t *transformer) callbackBody(callback *sitter.Node) jsgen.Node {
	if callback == nil {
		return nil
	}
	body := callback.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	return t.r.Raw(body)
}

// argsBefore returns the arguments preceding callback, or all arguments when
// callback is nil.
func argsBefore(args []*sitter.Node, callback *sitter.Node) []*sitter.Node {
	if callback == nil {
		return args
	}
	for i, arg := range args {
		if keyOf(arg) == keyOf(callback) {
			return args[:i]
		}
	}
	return args
}
