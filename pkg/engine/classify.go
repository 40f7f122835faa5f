package engine

import (
	"strings"

	"github.com/specvital/cy2pw/pkg/parser/jstest"
)

// Category is the pattern family a call expression belongs to.
type Category int

const (
	CategoryUnrecognized Category = iota
	CategoryHook
	CategoryCustomCommandDeclaration
	CategoryHelperCall
	CategoryAction
	CategoryValidation
	CategoryCommand
	CategoryCustomCommandInvocation
)

func (c Category) String() string {
	switch c {
	case CategoryHook:
		return "hook"
	case CategoryCustomCommandDeclaration:
		return "custom-command-declaration"
	case CategoryHelperCall:
		return "helper-call"
	case CategoryAction:
		return "action"
	case CategoryValidation:
		return "validation"
	case CategoryCommand:
		return "command"
	case CategoryCustomCommandInvocation:
		return "custom-command-invocation"
	default:
		return "unrecognized"
	}
}

const (
	cyPrefix = jstest.ObjectCy + "."

	anchorGet      = "cy.get"
	anchorContains = "cy.contains"

	positionalFirst = "first"
	positionalLast  = "last"

	methodShould = "should"
	negatePrefix = "not."
)

// Action describes how one Cypress action maps onto a Playwright locator
// method.
type Action struct {
	// Name is the Cypress method, e.g. "select".
	Name string
	// Method is the Playwright locator method, e.g. "selectOption".
	Method string
	// EmptyArg prepends an empty string argument ("clear" becomes fill("")).
	EmptyArg bool
}

var actions = map[string]Action{
	"blur":           {Name: "blur", Method: "blur"},
	"check":          {Name: "check", Method: "check"},
	"clear":          {Name: "clear", Method: "fill", EmptyArg: true},
	"click":          {Name: "click", Method: "click"},
	"dblclick":       {Name: "dblclick", Method: "dblclick"},
	"focus":          {Name: "focus", Method: "focus"},
	"scrollIntoView": {Name: "scrollIntoView", Method: "scrollIntoViewIfNeeded"},
	"scrollTo":       {Name: "scrollTo", Method: "scroll"},
	"select":         {Name: "select", Method: "selectOption"},
	"type":           {Name: "type", Method: "type"},
	"uncheck":        {Name: "uncheck", Method: "uncheck"},
}

// Command is one of the page-level Cypress commands.
type Command string

const (
	CommandClearCookies Command = "clearCookies"
	CommandIntercept    Command = "intercept"
	CommandVisit        Command = "visit"
	CommandWait         Command = "wait"
)

var commands = map[string]Command{
	"cy.clearCookies": CommandClearCookies,
	"cy.intercept":    CommandIntercept,
	"cy.visit":        CommandVisit,
	"cy.wait":         CommandWait,
}

type hookKind int

const (
	hookNone hookKind = iota
	hookIt
	hookDescribe
	hookBeforeEach
	hookAfterEach
)

// splitHook separates a hook name into its base function and an optional
// only/skip modifier, resolving Mocha aliases.
func splitHook(name string) (hookKind, string) {
	base, modifier, _ := strings.Cut(name, ".")
	if alias, ok := jstest.HookAliases[base]; ok {
		base = alias
	}

	switch modifier {
	case "", jstest.ModifierOnly, jstest.ModifierSkip:
	default:
		return hookNone, ""
	}

	switch base {
	case jstest.FuncIt:
		return hookIt, modifier
	case jstest.FuncDescribe:
		return hookDescribe, modifier
	case jstest.FuncBeforeEach, jstest.FuncAfterEach:
		if modifier != "" {
			return hookNone, ""
		}
		if base == jstest.FuncBeforeEach {
			return hookBeforeEach, ""
		}
		return hookAfterEach, ""
	default:
		return hookNone, ""
	}
}

// IsHook reports whether name is a runner hook: it, describe (with their
// only/skip variants and the context/specify aliases), beforeEach or
// afterEach.
func IsHook(name string) bool {
	kind, _ := splitHook(name)
	return kind != hookNone
}

func IsIt(name string) bool {
	kind, _ := splitHook(name)
	return kind == hookIt
}

func IsDescribe(name string) bool {
	kind, _ := splitHook(name)
	return kind == hookDescribe
}

func IsBeforeEach(name string) bool {
	kind, _ := splitHook(name)
	return kind == hookBeforeEach
}

func IsAfterEach(name string) bool {
	kind, _ := splitHook(name)
	return kind == hookAfterEach
}

// HookModifier returns "only", "skip" or "".
func HookModifier(name string) string {
	_, modifier := splitHook(name)
	return modifier
}

// IsCy reports whether name is rooted at the cy global.
func IsCy(name string) bool {
	return strings.HasPrefix(name, cyPrefix)
}

// anchoredChain splits `cy.get[.first|.last].<method>` into the positional
// accessor and the trailing method. ok is false for any other shape.
func anchoredChain(name string) (positional, method string, ok bool) {
	var rest string
	switch {
	case strings.HasPrefix(name, anchorGet+"."):
		rest = strings.TrimPrefix(name, anchorGet+".")
	case strings.HasPrefix(name, anchorContains+"."):
		rest = strings.TrimPrefix(name, anchorContains+".")
	default:
		return "", "", false
	}

	parts := strings.Split(rest, ".")
	switch len(parts) {
	case 1:
		return "", parts[0], true
	case 2:
		if parts[0] != positionalFirst && parts[0] != positionalLast {
			return "", "", false
		}
		return parts[0], parts[1], true
	default:
		return "", "", false
	}
}

// ActionOf returns the action a canonical name ends in when the name has
// the `cy.<get|contains>[.first|.last].<action>` shape.
func ActionOf(name string) (Action, bool) {
	_, method, ok := anchoredChain(name)
	if !ok {
		return Action{}, false
	}
	action, ok := actions[method]
	return action, ok
}

// Positional returns "first", "last" or "" for an anchored chain.
func Positional(name string) string {
	positional, _, _ := anchoredChain(name)
	return positional
}

// IsValidation reports whether name is a `.should` assertion on an anchored
// chain.
func IsValidation(name string) bool {
	_, method, ok := anchoredChain(name)
	return ok && method == methodShould
}

// CommandOf returns the page-level command name resolves to.
func CommandOf(name string) (Command, bool) {
	cmd, ok := commands[name]
	return cmd, ok
}

// IsCustomCommandDeclaration reports whether name is Cypress.Commands.add.
func IsCustomCommandDeclaration(name string) bool {
	return name == jstest.ObjectCypress+"."+jstest.ObjectCommands+"."+jstest.MethodAdd
}

// CustomCommandName returns the command a `cy.<name>` invocation calls, or
// "" for longer chains.
func CustomCommandName(name string) string {
	if !IsCy(name) {
		return ""
	}
	rest := strings.TrimPrefix(name, cyPrefix)
	if rest == "" || strings.Contains(rest, ".") {
		return ""
	}
	return rest
}

// IsNegated reports whether an assertion keyword carries the `not.` prefix.
func IsNegated(keyword string) bool {
	return strings.HasPrefix(keyword, negatePrefix)
}
