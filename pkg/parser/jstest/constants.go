// Package jstest holds the JavaScript test-runner vocabulary shared by the
// Cypress source classifier and the Playwright emitter.
package jstest

const (
	FuncAfterEach  = "afterEach"
	FuncBeforeEach = "beforeEach"
	FuncDescribe   = "describe"
	FuncIt         = "it"
	FuncTest       = "test"

	// Mocha BDD aliases accepted by Cypress.
	FuncContext = "context"
	FuncSpecify = "specify"

	ModifierOnly = "only"
	ModifierSkip = "skip"

	// Cypress globals.
	ObjectCy       = "cy"
	ObjectCypress  = "Cypress"
	ObjectCommands = "Commands"
	MethodAdd      = "add"

	// Playwright globals.
	ObjectExpect   = "expect"
	ObjectPage     = "page"
	PlaywrightPath = "@playwright/test"
)

// HookAliases maps Mocha aliases to their canonical Cypress hook.
var HookAliases = map[string]string{
	FuncContext: FuncDescribe,
	FuncSpecify: FuncIt,
}

// SupportedExtensions defines valid JavaScript/TypeScript file extensions.
var SupportedExtensions = map[string]bool{
	".cjs": true,
	".js":  true,
	".jsx": true,
	".mjs": true,
	".ts":  true,
	".tsx": true,
}
