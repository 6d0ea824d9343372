package codegen

import (
	"strings"

	"github.com/conneroisu/sfcc/internal/ast"
	"github.com/conneroisu/sfcc/internal/errors"
	"github.com/conneroisu/sfcc/internal/shared"
	"github.com/conneroisu/sfcc/internal/transform"
)

// itemTextFlag is the TEXT flag as emitted on loop items, without the name
// comment.
const itemTextFlag = "1"

// FragmentFlag decides the fragment patch flag of a loop. A digit-only
// source is a compile-time range and wins over keys; otherwise the loop is
// keyed when any Element child binds :key. Component children are not
// scanned.
func FragmentFlag(f *ast.ForNode) ast.PatchFlag {
	if isStableSource(f) {
		return ast.PatchFlagStableFragment
	}
	for _, child := range f.Children {
		el, ok := child.(*ast.ElementNode)
		if ok && el.TagType == ast.ElementTypeElement && transform.FindKeyBinding(el) != nil {
			return ast.PatchFlagKeyedFragment
		}
	}
	return ast.PatchFlagUnkeyedFragment
}

func isStableSource(f *ast.ForNode) bool {
	return shared.IsDigits(strings.TrimSpace(ast.ExpressionText(f.Source)))
}

// LoopParams renders the renderList callback parameters. A missing value
// alias becomes _ and a missing key before an index becomes __.
func LoopParams(f *ast.ForNode) string {
	value := ast.ExpressionText(f.Value)
	key := ast.ExpressionText(f.Key)
	index := ast.ExpressionText(f.Index)
	if value == "" {
		value = "_"
	}
	params := []string{value}
	switch {
	case index != "":
		if key == "" {
			key = "__"
		}
		params = append(params, key, index)
	case key != "":
		params = append(params, key)
	}
	return strings.Join(params, ", ")
}

func (g *generator) genFor(f *ast.ForNode) {
	errors.Assert(len(f.Children) > 0, "for node at %s has no children", f.Location)
	c := g.ctx
	openBlock := c.Helper(ast.OpenBlock)
	createElementBlock := c.Helper(ast.CreateElementBlock)
	fragment := c.Helper(ast.Fragment)
	renderList := c.Helper(ast.RenderList)

	stable := isStableSource(f)
	flag := FragmentFlag(f)
	source := ast.ExpressionText(f.Source)
	if source == "" {
		source = "undefined"
	}

	if stable {
		c.Push("(" + openBlock + "(), ")
	} else {
		c.Push("(" + openBlock + "(true), ")
	}
	c.Push(createElementBlock + "(" + fragment + ", null, " + renderList + "(" + source + ", (" + LoopParams(f) + ") => {")
	c.Indent()
	c.Push("return ")
	g.genForItem(f, stable)
	c.Deindent(false)
	c.Push("}), " + flagText(flag) + "))")
}

func (g *generator) genForItem(f *ast.ForNode, stable bool) {
	if len(f.Children) != 1 {
		g.genFragment(nil, f.Children, true)
		return
	}
	el, ok := f.Children[0].(*ast.ElementNode)
	if !ok || el.TagType == ast.ElementTypeSlot {
		g.genNode(f.Children[0])
		return
	}
	props := g.buildProps(el, transform.ElementKey(el))
	g.withRuntimeDirectives(el, func() {
		if stable {
			g.genStableItem(el, props)
		} else {
			g.genBlockItem(el, props)
		}
	})
}

// itemChildren returns the children argument of a loop item and whether a
// direct child is an interpolation.
func itemChildren(el *ast.ElementNode) (ast.Node, bool) {
	hasInterpolation := false
	for _, child := range el.Children {
		if child.Type() == ast.NodeInterpolation {
			hasInterpolation = true
		}
	}
	switch len(el.Children) {
	case 0:
		return nil, hasInterpolation
	case 1:
		if ast.IsText(el.Children[0]) {
			return el.Children[0], hasInterpolation
		}
	}
	return &childList{nodes: el.Children}, hasInterpolation
}

func textFlagArg(hasInterpolation bool) ast.Node {
	if hasInterpolation {
		return raw(itemTextFlag)
	}
	return nil
}

// genStableItem emits the item of a compile-time range directly, without a
// block of its own.
func (g *generator) genStableItem(el *ast.ElementNode, props ast.Node) {
	c := g.ctx
	switch el.TagType {
	case ast.ElementTypeComponent:
		_, interp := itemChildren(el)
		g.genCall(c.Helper(ast.CreateVNode), raw(g.componentRef(el)), props, g.buildSlots(el), textFlagArg(interp))
	case ast.ElementTypeTemplate:
		g.genCall(c.Helper(ast.CreateVNode), raw(c.Helper(ast.Fragment)), props,
			&childList{nodes: el.Children}, raw(flagText(ast.PatchFlagStableFragment)))
	default:
		children, interp := itemChildren(el)
		g.genCall(c.Helper(ast.CreateElementVNode), raw(shared.Stringify(el.Tag)), props, children, textFlagArg(interp))
	}
}

// genBlockItem emits the item of a dynamic list as its own block so the
// runtime can track it by key.
func (g *generator) genBlockItem(el *ast.ElementNode, props ast.Node) {
	c := g.ctx
	c.Push("(" + c.Helper(ast.OpenBlock) + "(), ")
	switch el.TagType {
	case ast.ElementTypeComponent:
		_, interp := itemChildren(el)
		g.genCall(c.Helper(ast.CreateBlock), raw(g.componentRef(el)), props, g.buildSlots(el), textFlagArg(interp))
	case ast.ElementTypeTemplate:
		g.genCall(c.Helper(ast.CreateElementBlock), raw(c.Helper(ast.Fragment)), props,
			&childList{nodes: el.Children}, raw(flagText(ast.PatchFlagStableFragment)))
	default:
		children, interp := itemChildren(el)
		g.genCall(c.Helper(ast.CreateElementBlock), raw(shared.Stringify(el.Tag)), props, children, textFlagArg(interp))
	}
	c.Push(")")
}

// genFragment emits children as a Fragment block with STABLE_FRAGMENT.
func (g *generator) genFragment(props ast.Node, children []ast.Node, block bool) {
	c := g.ctx
	if block {
		c.Push("(" + c.Helper(ast.OpenBlock) + "(), ")
		g.genCall(c.Helper(ast.CreateElementBlock), raw(c.Helper(ast.Fragment)), props,
			&childList{nodes: children}, raw(flagText(ast.PatchFlagStableFragment)))
		c.Push(")")
		return
	}
	g.genCall(c.Helper(ast.CreateVNode), raw(c.Helper(ast.Fragment)), props,
		&childList{nodes: children}, raw(flagText(ast.PatchFlagStableFragment)))
}
