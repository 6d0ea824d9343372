package transform

import (
	"github.com/conneroisu/sfcc/internal/ast"
)

// ModelBinding is a component v-model split into its value prop and the
// update event prop.
type ModelBinding struct {
	PropName   string
	EventName  string
	Value      string
	Modifiers  []string
	ModifierOf string
}

// ResolveModel resolves v-model / v-model:arg on a component. It returns
// nil for other directives or when the value expression is missing.
func ResolveModel(dir *ast.Directive) *ModelBinding {
	if dir == nil || dir.Name != "model" || dir.Exp == nil {
		return nil
	}
	prop := "modelValue"
	if dir.Arg != nil {
		prop = ast.ExpressionText(dir.Arg)
	}
	m := &ModelBinding{
		PropName:  prop,
		EventName: "onUpdate:" + prop,
		Value:     ast.ExpressionText(dir.Exp),
		Modifiers: dir.Modifiers,
	}
	if len(dir.Modifiers) > 0 {
		if prop == "modelValue" {
			m.ModifierOf = "modelModifiers"
		} else {
			m.ModifierOf = prop + "Modifiers"
		}
	}
	return m
}
