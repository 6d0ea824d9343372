package transform

import (
	"github.com/conneroisu/sfcc/internal/ast"
	"github.com/conneroisu/sfcc/internal/shared"
)

// FindKeyBinding returns the :key / v-bind:key directive of el, if any.
// Static key attributes are not bindings and are ignored.
func FindKeyBinding(el *ast.ElementNode) *ast.Directive {
	for _, p := range el.Props {
		dir, ok := p.(*ast.Directive)
		if ok && dir.Name == "bind" && ast.IsStaticArgOf(dir.Arg, "key") {
			return dir
		}
	}
	return nil
}

// ElementKey returns the key el passes to the runtime: the expression of
// its :key binding or the literal of a static key attribute. A :key
// without a value counts as absent.
func ElementKey(el *ast.ElementNode) ast.Node {
	for _, p := range el.Props {
		switch prop := p.(type) {
		case *ast.Attribute:
			if prop.Name == "key" {
				value := ""
				if prop.Value != nil {
					value = prop.Value.Content
				}
				return ast.NewSimpleExpression(value, true)
			}
		case *ast.Directive:
			if prop.Name == "bind" && ast.IsStaticArgOf(prop.Arg, "key") && prop.Exp != nil {
				return prop.Exp
			}
		}
	}
	return nil
}

// IsKeyProp reports whether p is a key attribute or key binding.
func IsKeyProp(p ast.Prop) bool {
	switch prop := p.(type) {
	case *ast.Attribute:
		return prop.Name == "key"
	case *ast.Directive:
		return prop.Name == "bind" && ast.IsStaticArgOf(prop.Arg, "key")
	}
	return false
}

// BindPropName returns the prop name a v-bind directive writes, honoring
// the .camel modifier. It returns false for the argument-less object form
// and for computed names.
func BindPropName(dir *ast.Directive) (string, bool) {
	if dir.Arg == nil || !ast.IsStaticExp(dir.Arg) {
		return "", false
	}
	name := ast.ExpressionText(dir.Arg)
	if dir.HasModifier("camel") {
		name = shared.Camelize(name)
	}
	if dir.HasModifier("prop") {
		name = "." + name
	} else if dir.HasModifier("attr") {
		name = "^" + name
	}
	return name, true
}
