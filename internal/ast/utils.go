package ast

import "strings"

// IsStaticExp reports whether n is a static simple expression.
func IsStaticExp(n Node) bool {
	exp, ok := n.(*SimpleExpression)
	return ok && exp.IsStatic
}

// IsStaticArgOf reports whether arg is the static argument name.
func IsStaticArgOf(arg ExpressionNode, name string) bool {
	exp, ok := arg.(*SimpleExpression)
	return ok && exp.IsStatic && exp.Content == name
}

// ExpressionText returns the source text of an expression. Compound
// expressions are flattened part by part; interpolations keep their
// mustache-free content.
func ExpressionText(e ExpressionNode) string {
	if e == nil {
		return ""
	}
	switch exp := e.(type) {
	case *SimpleExpression:
		return exp.Content
	case *CompoundExpression:
		var sb strings.Builder
		for _, part := range exp.Parts {
			writePartText(&sb, part)
		}
		return sb.String()
	default:
		return ""
	}
}

func writePartText(sb *strings.Builder, part CompoundPart) {
	switch p := part.(type) {
	case Raw:
		sb.WriteString(string(p))
	case *SimpleExpression:
		sb.WriteString(p.Content)
	case *CompoundExpression:
		sb.WriteString(ExpressionText(p))
	case *InterpolationNode:
		sb.WriteString(ExpressionText(p.Content))
	case *TextNode:
		sb.WriteString(p.Content)
	}
}

// FindDir returns the first directive on el whose name is name.
func FindDir(el *ElementNode, name string) *Directive {
	for _, p := range el.Props {
		if dir, ok := p.(*Directive); ok && dir.Name == name {
			return dir
		}
	}
	return nil
}

// FindProp returns the attribute or v-bind directive named name. With
// dynamicOnly set, static attributes are skipped.
func FindProp(el *ElementNode, name string, dynamicOnly bool) Prop {
	for _, p := range el.Props {
		switch prop := p.(type) {
		case *Attribute:
			if !dynamicOnly && prop.Name == name {
				return prop
			}
		case *Directive:
			if prop.Name == "bind" && IsStaticArgOf(prop.Arg, name) {
				return prop
			}
		}
	}
	return nil
}

// IsTemplateNode reports whether n is a <template> wrapper element.
func IsTemplateNode(n Node) bool {
	el, ok := n.(*ElementNode)
	return ok && el.TagType == ElementTypeTemplate
}

// IsText reports whether n renders as text (text, interpolation or a
// compound of them).
func IsText(n Node) bool {
	switch n.Type() {
	case NodeText, NodeInterpolation, NodeCompoundExpression:
		return true
	default:
		return false
	}
}
