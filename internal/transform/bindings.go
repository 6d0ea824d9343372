package transform

import (
	"github.com/conneroisu/sfcc/internal/ast"
	"github.com/conneroisu/sfcc/internal/shared"
)

// ResolveSetupReference finds the script binding a component tag refers to,
// trying the tag as written, camelized and PascalCased. It returns the
// binding name as declared.
func ResolveSetupReference(tag string, bindings ast.BindingOracle) (string, bool) {
	if bindings == nil {
		return "", false
	}
	camel := shared.Camelize(tag)
	pascal := shared.Capitalize(camel)
	for _, name := range []string{tag, camel, pascal} {
		if bindings.IsBinding(name) {
			return name, true
		}
	}
	return "", false
}

var coreComponents = map[string]ast.RuntimeHelper{
	"Teleport":         ast.Teleport,
	"teleport":         ast.Teleport,
	"Suspense":         ast.Suspense,
	"suspense":         ast.Suspense,
	"KeepAlive":        ast.KeepAlive,
	"keep-alive":       ast.KeepAlive,
	"BaseTransition":   ast.BaseTransition,
	"base-transition":  ast.BaseTransition,
	"Transition":       ast.Transition,
	"transition":       ast.Transition,
	"TransitionGroup":  ast.TransitionGroup,
	"transition-group": ast.TransitionGroup,
}

// CoreComponent returns the runtime helper a built-in component tag maps
// to. Built-ins are never resolved as assets.
func CoreComponent(tag string) (ast.RuntimeHelper, bool) {
	h, ok := coreComponents[tag]
	return h, ok
}

// NeedsResolution reports whether a component tag must be resolved by name
// at runtime: it is neither built in, nor the dynamic <component>, nor a
// script binding.
func NeedsResolution(tag string, bindings ast.BindingOracle) bool {
	if _, core := CoreComponent(tag); core || tag == "component" {
		return false
	}
	_, bound := ResolveSetupReference(tag, bindings)
	return !bound
}
