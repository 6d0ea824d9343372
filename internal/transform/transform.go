// Package transform resolves directive semantics ahead of codegen. Resolvers
// turn raw directive nodes into structured data and name the runtime helpers
// codegen will need; they never emit text.
package transform

import (
	"fmt"

	"github.com/conneroisu/sfcc/internal/ast"
	"github.com/conneroisu/sfcc/internal/errors"
)

// builtinDirectives never resolve to a runtime directive asset.
var builtinDirectives = map[string]bool{
	"bind": true, "on": true, "if": true, "else-if": true, "else": true,
	"for": true, "model": true, "show": true, "slot": true, "once": true,
	"memo": true, "text": true, "html": true, "cloak": true, "pre": true,
	"is": true,
}

// IsBuiltinDirective reports whether name is handled by the compiler itself.
func IsBuiltinDirective(name string) bool {
	return builtinDirectives[name]
}

// Options configures the transform pass.
type Options struct {
	// Bindings decides which component tags are script bindings and need
	// no runtime resolution. May be nil.
	Bindings ast.BindingOracle
}

// Transform validates directives, records the assets the template resolves
// at runtime and marks the root as transformed. Template problems become
// diagnostics; structural breaches of If/For nodes panic. Running it again
// on a transformed root leaves the root untouched and reports the same
// diagnostics.
func Transform(root *ast.RootNode, opts Options) *errors.DiagnosticCollector {
	diags := errors.NewDiagnosticCollector()
	if root.Helpers == nil {
		root.Helpers = ast.NewHelperSet()
	}
	t := &transformer{root: root, opts: opts, diags: diags, register: !root.Transformed}
	t.walkChildren(root.Children)
	root.Transformed = true
	return diags
}

type transformer struct {
	root  *ast.RootNode
	opts  Options
	diags *errors.DiagnosticCollector
	// register is false on repeat runs, which only collect diagnostics.
	register bool
}

func (t *transformer) walkChildren(children []ast.Node) {
	for _, child := range children {
		t.walk(child)
	}
}

func (t *transformer) walk(n ast.Node) {
	switch node := n.(type) {
	case *ast.ElementNode:
		t.element(node)
		t.walkChildren(node.Children)
	case *ast.IfNode:
		errors.Assert(len(node.Branches) > 0, "if node at %s has no branches", node.Location)
		for i, branch := range node.Branches {
			errors.Assert(branch.Condition != nil || i == len(node.Branches)-1,
				"if node at %s has an else branch before its last branch", node.Location)
			t.walkChildren(branch.Children)
		}
	case *ast.ForNode:
		errors.Assert(len(node.Children) > 0, "for node at %s has no children", node.Location)
		if node.Source == nil || ast.ExpressionText(node.Source) == "" {
			t.diags.Warn(errors.ErrCodeVForNoSource, "v-for is missing its source expression", node.Location)
		}
		t.walkChildren(node.Children)
	}
}

func (t *transformer) element(el *ast.ElementNode) {
	if t.register && el.TagType == ast.ElementTypeComponent && NeedsResolution(el.Tag, t.opts.Bindings) {
		t.root.AddComponent(el.Tag)
	}
	for _, p := range el.Props {
		dir, ok := p.(*ast.Directive)
		if !ok {
			continue
		}
		t.directive(el, dir)
	}
}

func (t *transformer) directive(el *ast.ElementNode, dir *ast.Directive) {
	switch dir.Name {
	case "on":
		if dir.Arg == nil && dir.Exp == nil {
			t.diags.Warn(errors.ErrCodeVOnNoExpression,
				fmt.Sprintf("v-on on <%s> has neither an event nor a handler", el.Tag), dir.Location)
		}
	case "bind":
		if dir.Exp == nil {
			t.diags.Warn(errors.ErrCodeVBindNoExpression,
				fmt.Sprintf("v-bind on <%s> is missing its value", el.Tag), dir.Location)
		}
	case "model":
		if dir.Exp == nil {
			t.diags.Warn(errors.ErrCodeVModelNoExpr,
				fmt.Sprintf("v-model on <%s> is missing its value", el.Tag), dir.Location)
		}
	case "show":
		if dir.Exp == nil {
			t.diags.Warn(errors.ErrCodeVShowNoExpression,
				fmt.Sprintf("v-show on <%s> is missing its value", el.Tag), dir.Location)
		}
	default:
		if t.register && !IsBuiltinDirective(dir.Name) && !t.isBinding("v-"+dir.Name) {
			t.root.AddDirective(dir.Name)
		}
	}
}

// isBinding applies the same name variants codegen uses when it resolves
// an asset reference.
func (t *transformer) isBinding(name string) bool {
	_, ok := ResolveSetupReference(name, t.opts.Bindings)
	return ok
}
