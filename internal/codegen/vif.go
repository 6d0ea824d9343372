package codegen

import (
	"strconv"

	"github.com/conneroisu/sfcc/internal/ast"
	"github.com/conneroisu/sfcc/internal/errors"
)

// genIf emits a branch chain as nested ternaries. Without a v-else the last
// alternative is a v-if comment node.
func (g *generator) genIf(n *ast.IfNode) {
	errors.Assert(len(n.Branches) > 0, "if node at %s has no branches", n.Location)
	c := g.ctx
	c.Helper(ast.OpenBlock)
	createComment := c.Helper(ast.CreateComment)

	conditioned := 0
	hasElse := false
	for i, branch := range n.Branches {
		if i > 0 {
			c.Newline()
			c.Push(": ")
		}
		if branch.Condition == nil {
			g.genIfBranch(branch, i)
			hasElse = true
			break
		}
		conditioned++
		c.Push("(")
		g.genNode(branch.Condition)
		c.Push(")")
		c.Indent()
		c.Push("? ")
		g.genIfBranch(branch, i)
	}
	if !hasElse {
		c.Newline()
		c.Push(": " + createComment + `("v-if", true)`)
	}
	for range conditioned {
		c.Deindent(true)
	}
}

// BranchKey returns the key expression of branch i: the user key when it
// is present and non-empty, the branch position otherwise.
func BranchKey(branch *ast.IfBranchNode, i int) ast.Node {
	switch key := branch.UserKey.(type) {
	case *ast.Attribute:
		if key.Value != nil && key.Value.Content != "" {
			return ast.NewSimpleExpression(key.Value.Content, true)
		}
	case *ast.Directive:
		if key.Exp != nil && ast.ExpressionText(key.Exp) != "" {
			return key.Exp
		}
	}
	return raw(strconv.Itoa(i))
}

func keyObject(key ast.Node) *ast.ObjectExpression {
	return &ast.ObjectExpression{
		Properties: []*ast.Property{ast.NewProperty("key", key)},
		Location:   ast.LocStub,
	}
}

func (g *generator) genIfBranch(branch *ast.IfBranchNode, i int) {
	key := BranchKey(branch, i)
	if len(branch.Children) == 1 {
		if el, ok := branch.Children[0].(*ast.ElementNode); ok && g.genBranchElement(el, key) {
			return
		}
	}
	g.genFragment(keyObject(key), branch.Children, true)
}

// genBranchElement handles single-element branch bodies. It reports false
// for shapes that fall back to a keyed fragment.
func (g *generator) genBranchElement(el *ast.ElementNode, key ast.Node) bool {
	c := g.ctx
	switch el.TagType {
	case ast.ElementTypeTemplate:
		if len(el.Children) == 1 {
			if inner, ok := el.Children[0].(*ast.ElementNode); ok && g.genBranchElement(inner, key) {
				return true
			}
		}
		g.genFragment(keyObject(key), el.Children, true)
		return true
	case ast.ElementTypeComponent:
		// Only the key is passed; the component's own props are not merged
		// on this path.
		c.Push("(" + c.Helper(ast.OpenBlock) + "(), ")
		g.genCall(c.Helper(ast.CreateBlock), raw(g.componentRef(el)), keyObject(key))
		c.Push(")")
		return true
	case ast.ElementTypeElement:
		g.genBlockElement(el, key)
		return true
	}
	return false
}
