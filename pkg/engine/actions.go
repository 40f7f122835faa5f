package engine

import "github.com/specvital/cy2pw/pkg/jsgen"

func (t *transformer) matchAction(c *callSite) bool {
	_, ok := ActionOf(c.name)
	return ok
}

func (t *transformer) convertAction(c *callSite) (jsgen.Node, error) {
	action, _ := ActionOf(c.name)

	anchorArgs, ok := t.chainAnchor(c)
	if !ok {
		return nil, nil
	}

	args := t.r.Raws(c.args)
	if action.EmptyArg {
		args = append([]jsgen.Expr{jsgen.Raw(`""`)}, args...)
	}

	return t.b.LocatorChain(anchorArgs, Positional(c.name), action.Method, args), nil
}
