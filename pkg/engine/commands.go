package engine

import (
	"strings"

	"github.com/specvital/cy2pw/pkg/jsgen"
	"github.com/specvital/cy2pw/pkg/parser/jstest"
)

const aliasPrefix = "@"

func (t *transformer) matchCommand(c *callSite) bool {
	_, ok := CommandOf(c.name)
	return ok
}

func (t *transformer) convertCommand(c *callSite) (jsgen.Node, error) {
	cmd, _ := CommandOf(c.name)

	switch cmd {
	case CommandVisit:
		return t.b.PageCall("goto", t.r.Raws(c.args)...), nil
	case CommandWait:
		// Waiting on a route alias has no timeout equivalent.
		if len(c.args) == 0 || strings.HasPrefix(jstest.ExtractStringValue(c.args[0], t.source), aliasPrefix) {
			return nil, nil
		}
		return t.b.PageCall("waitForTimeout", t.r.Raws(c.args)...), nil
	case CommandClearCookies:
		return t.b.Await(t.b.MethodCall(t.b.MethodCall(t.b.Carrier(), "context"), "clearCookies")), nil
	case CommandIntercept:
		return t.convertIntercept(c), nil
	default:
		return nil, nil
	}
}
