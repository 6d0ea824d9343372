package codegen

import (
	"github.com/conneroisu/sfcc/internal/ast"
)

func exp(s string) *ast.SimpleExpression    { return ast.NewSimpleExpression(s, false) }
func static(s string) *ast.SimpleExpression { return ast.NewSimpleExpression(s, true) }

func text(s string) *ast.TextNode {
	return &ast.TextNode{Content: s, Location: ast.LocStub}
}

func interp(s string) *ast.InterpolationNode {
	return &ast.InterpolationNode{Content: exp(s), Location: ast.LocStub}
}

func node(tag string, tagType ast.ElementType, props []ast.Prop, children []ast.Node) *ast.ElementNode {
	return &ast.ElementNode{Tag: tag, TagType: tagType, Props: props, Children: children, Location: ast.LocStub}
}

func elem(tag string, props []ast.Prop, children ...ast.Node) *ast.ElementNode {
	return node(tag, ast.ElementTypeElement, props, children)
}

func comp(tag string, props []ast.Prop, children ...ast.Node) *ast.ElementNode {
	return node(tag, ast.ElementTypeComponent, props, children)
}

func tmpl(props []ast.Prop, children ...ast.Node) *ast.ElementNode {
	return node("template", ast.ElementTypeTemplate, props, children)
}

func slot(props []ast.Prop, children ...ast.Node) *ast.ElementNode {
	return node("slot", ast.ElementTypeSlot, props, children)
}

func props(p ...ast.Prop) []ast.Prop { return p }

func attr(name, value string) *ast.Attribute {
	return &ast.Attribute{Name: name, Value: text(value), Location: ast.LocStub}
}

func directive(name string, arg ast.ExpressionNode, value string, mods ...string) *ast.Directive {
	d := &ast.Directive{Name: name, RawName: "v-" + name, Arg: arg, Modifiers: mods, Location: ast.LocStub}
	if value != "" {
		d.Exp = exp(value)
	}
	return d
}

func bind(arg, value string, mods ...string) *ast.Directive {
	return directive("bind", static(arg), value, mods...)
}

func on(event, handler string, mods ...string) *ast.Directive {
	return directive("on", static(event), handler, mods...)
}

func forNode(source, value string, children ...ast.Node) *ast.ForNode {
	f := &ast.ForNode{Source: exp(source), Children: children, Location: ast.LocStub}
	if value != "" {
		f.Value = exp(value)
	}
	return f
}

func branch(cond string, children ...ast.Node) *ast.IfBranchNode {
	b := &ast.IfBranchNode{Children: children, Location: ast.LocStub}
	if cond != "" {
		b.Condition = exp(cond)
	}
	return b
}

func ifNode(branches ...*ast.IfBranchNode) *ast.IfNode {
	return &ast.IfNode{Branches: branches, Location: ast.LocStub}
}

// gen emits n through a fresh context and returns the code and the root
// holding the helper set.
func gen(n ast.Node, opts Options) (string, *ast.RootNode) {
	root := ast.NewRoot(n)
	ctx := NewContext(root, opts)
	GenNode(ctx, n)
	return ctx.Code(), root
}
