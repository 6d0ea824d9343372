package codegen

import (
	"strings"

	"github.com/conneroisu/sfcc/internal/ast"
	"github.com/conneroisu/sfcc/internal/shared"
	"github.com/conneroisu/sfcc/internal/transform"
)

// slotStable is the compiled-slots flag telling the runtime the slot
// object never changes shape.
const slotStable = "1 /* STABLE */"

// genElement emits a nested element as a plain vnode call.
func (g *generator) genElement(el *ast.ElementNode) {
	if once := ast.FindDir(el, "once"); once != nil {
		index := g.root.Cached
		g.root.Cached++
		g.genNode(&ast.CacheExpression{
			Index:    index,
			Value:    withoutDirective(el, once),
			IsVOnce:  true,
			Location: el.Location,
		})
		return
	}
	if el.TagType == ast.ElementTypeSlot {
		g.genSlotOutlet(el)
		return
	}
	g.withRuntimeDirectives(el, func() {
		g.genVNodeCall(el, g.buildProps(el, nil), false)
	})
}

// genBlockElement emits el as a block: (openBlock(), createXBlock(...)).
// key, when set, is merged in front of the element's own props.
func (g *generator) genBlockElement(el *ast.ElementNode, key ast.Node) {
	if el.TagType == ast.ElementTypeSlot {
		g.genSlotOutlet(el)
		return
	}
	g.withRuntimeDirectives(el, func() {
		g.genVNodeCall(el, g.buildProps(el, key), true)
	})
}

// genVNodeCall emits the creation call for el with already built props.
// Children and the TEXT flag follow the lone-child rule.
func (g *generator) genVNodeCall(el *ast.ElementNode, props ast.Node, block bool) {
	c := g.ctx
	if block {
		c.Push("(" + c.Helper(ast.OpenBlock) + "(), ")
	}
	switch el.TagType {
	case ast.ElementTypeComponent:
		ref := g.componentRef(el)
		helper := ast.CreateVNode
		if block {
			helper = ast.CreateBlock
		}
		g.genCall(c.Helper(helper), raw(ref), props, g.buildSlots(el))
	case ast.ElementTypeTemplate:
		helper := ast.CreateVNode
		if block {
			helper = ast.CreateElementBlock
		}
		g.genCall(c.Helper(helper), raw(c.Helper(ast.Fragment)), props,
			&childList{nodes: el.Children}, raw(flagText(ast.PatchFlagStableFragment)))
	default:
		helper := ast.CreateElementVNode
		if block {
			helper = ast.CreateElementBlock
		}
		children, flag := loneChildArg(el.Children)
		g.genCall(c.Helper(helper), raw(shared.Stringify(el.Tag)), props, children, flag)
	}
	if block {
		c.Push(")")
	}
}

// loneChildArg returns the children argument of an element: a lone text
// child is passed as is, a lone interpolation adds the TEXT flag, anything
// else becomes an array.
func loneChildArg(children []ast.Node) (ast.Node, ast.Node) {
	switch len(children) {
	case 0:
		return nil, nil
	case 1:
		switch children[0].(type) {
		case *ast.TextNode:
			return children[0], nil
		case *ast.InterpolationNode, *ast.CompoundExpression:
			return children[0], raw(flagText(ast.PatchFlagText))
		}
	}
	return &childList{nodes: children}, nil
}

// componentRef resolves the expression a component tag is referenced by.
func (g *generator) componentRef(el *ast.ElementNode) string {
	c := g.ctx
	if h, ok := transform.CoreComponent(el.Tag); ok {
		return c.Helper(h)
	}
	if el.Tag == "component" {
		if ref, ok := g.dynamicComponentRef(el); ok {
			return ref
		}
	}
	return g.assetRef(el.Tag, "component")
}

// assetRef references a component or directive by its script binding when
// one is in scope and otherwise registers it for runtime resolution.
func (g *generator) assetRef(name, kind string) string {
	lookup := name
	if kind == "directive" {
		lookup = "v-" + name
	}
	if binding, ok := transform.ResolveSetupReference(lookup, g.opts.Bindings); ok {
		if !g.opts.Inline {
			return "$setup[" + shared.Stringify(binding) + "]"
		}
		if t, _ := g.opts.Bindings.BindingOf(binding); needsUnref(t) {
			return g.ctx.Helper(ast.Unref) + "(" + binding + ")"
		}
		return binding
	}
	if kind == "directive" {
		g.root.AddDirective(name)
	} else {
		g.root.AddComponent(name)
	}
	return shared.ToValidAssetID(name, kind)
}

func needsUnref(t ast.BindingType) bool {
	switch t {
	case ast.BindingSetupRef, ast.BindingSetupMaybeRef, ast.BindingSetupLet:
		return true
	}
	return false
}

func (g *generator) dynamicComponentRef(el *ast.ElementNode) (string, bool) {
	switch is := ast.FindProp(el, "is", false).(type) {
	case *ast.Attribute:
		if is.Value == nil || is.Value.Content == "" {
			return "", false
		}
		return g.assetRef(is.Value.Content, "component"), true
	case *ast.Directive:
		if is.Exp == nil {
			return "", false
		}
		return g.ctx.Helper(ast.ResolveDynamicComponent) + "(" + ast.ExpressionText(is.Exp) + ")", true
	}
	return "", false
}

// buildSlots compiles component children into a slots object. Children
// wrapped in <template v-slot:name> become named slots; the rest form the
// default slot.
func (g *generator) buildSlots(el *ast.ElementNode) ast.Node {
	if len(el.Children) == 0 {
		return nil
	}
	var (
		props    []*ast.Property
		implicit []ast.Node
	)
	var defaultParams []string
	if dir := ast.FindDir(el, "slot"); dir != nil && dir.Exp != nil {
		defaultParams = []string{ast.ExpressionText(dir.Exp)}
	}
	for _, child := range el.Children {
		tmpl, ok := child.(*ast.ElementNode)
		var dir *ast.Directive
		if ok && tmpl.TagType == ast.ElementTypeTemplate {
			dir = ast.FindDir(tmpl, "slot")
		}
		if dir == nil {
			implicit = append(implicit, child)
			continue
		}
		name := "default"
		if dir.Arg != nil {
			name = ast.ExpressionText(dir.Arg)
		}
		var params []string
		if dir.Exp != nil {
			params = []string{ast.ExpressionText(dir.Exp)}
		}
		key := ast.NewSimpleExpression(name, true)
		if dir.Arg != nil && !ast.IsStaticExp(dir.Arg) {
			key = ast.NewSimpleExpression(name, false)
		}
		props = append(props, &ast.Property{
			Key:      key,
			Value:    g.slotFunction(params, tmpl.Children),
			Location: tmpl.Location,
		})
	}
	if len(implicit) > 0 && !onlyWhitespace(implicit) {
		props = append([]*ast.Property{ast.NewProperty("default", g.slotFunction(defaultParams, implicit))}, props...)
	}
	props = append(props, ast.NewProperty("_", raw(slotStable)))
	return &ast.ObjectExpression{Properties: props, Location: el.Location}
}

func (g *generator) slotFunction(params []string, children []ast.Node) ast.Node {
	return ast.NewCall(ast.WithCtx, &ast.FunctionExpression{
		Params:   params,
		Returns:  &childList{nodes: children},
		Location: ast.LocStub,
	})
}

func onlyWhitespace(nodes []ast.Node) bool {
	for _, n := range nodes {
		text, ok := n.(*ast.TextNode)
		if !ok || strings.TrimSpace(text.Content) != "" {
			return false
		}
	}
	return true
}

// genSlotOutlet emits <slot> as renderSlot($slots, name, props, fallback).
func (g *generator) genSlotOutlet(el *ast.ElementNode) {
	c := g.ctx
	var name ast.Node = raw(`"default"`)
	rest := &ast.ElementNode{Tag: el.Tag, TagType: el.TagType, Location: el.Location}
	for _, p := range el.Props {
		switch prop := p.(type) {
		case *ast.Attribute:
			if prop.Name == "name" {
				if prop.Value != nil {
					name = raw(shared.Stringify(prop.Value.Content))
				}
				continue
			}
		case *ast.Directive:
			if prop.Name == "bind" && ast.IsStaticArgOf(prop.Arg, "name") && prop.Exp != nil {
				name = prop.Exp
				continue
			}
		}
		rest.Props = append(rest.Props, p)
	}
	props := g.buildProps(rest, nil)
	var fallback ast.Node
	if len(el.Children) > 0 {
		fallback = &ast.FunctionExpression{Returns: &childList{nodes: el.Children}, Location: ast.LocStub}
		if props == nil {
			props = raw("{}")
		}
	}
	g.genCall(c.Helper(ast.RenderSlot), raw("$slots"), name, props, fallback)
}

// withRuntimeDirectives wraps the code emitted by body in withDirectives
// when el carries v-show, a native v-model or custom directives.
func (g *generator) withRuntimeDirectives(el *ast.ElementNode, body func()) {
	dirs := g.runtimeDirectives(el)
	if dirs == nil {
		body()
		return
	}
	g.ctx.Push(g.ctx.Helper(ast.WithDirectives) + "(")
	body()
	g.ctx.Push(", ")
	g.genNode(dirs)
	g.ctx.Push(")")
}

func (g *generator) runtimeDirectives(el *ast.ElementNode) *ast.ArrayExpression {
	var list []ast.Node
	for _, p := range el.Props {
		dir, ok := p.(*ast.Directive)
		if !ok {
			continue
		}
		var ref string
		switch {
		case dir.Name == "show":
			ref = g.ctx.Helper(ast.VShow)
		case dir.Name == "model" && el.TagType != ast.ElementTypeComponent:
			ref = g.ctx.Helper(modelDirective(el))
		case !transform.IsBuiltinDirective(dir.Name):
			ref = g.assetRef(dir.Name, "directive")
		default:
			continue
		}
		list = append(list, directiveEntry(ref, dir))
	}
	if len(list) == 0 {
		return nil
	}
	return &ast.ArrayExpression{Elements: list, Location: el.Location}
}

// directiveEntry builds [dir, exp, arg, modifiers] with trailing missing
// entries dropped and inner ones as void 0.
func directiveEntry(ref string, dir *ast.Directive) *ast.ArrayExpression {
	entries := []ast.Node{raw(ref)}
	var exp, arg, mods ast.Node
	if dir.Exp != nil {
		exp = dir.Exp
	}
	if dir.Arg != nil {
		if ast.IsStaticExp(dir.Arg) {
			arg = raw(shared.Stringify(ast.ExpressionText(dir.Arg)))
		} else {
			arg = dir.Arg
		}
	}
	if len(dir.Modifiers) > 0 {
		mods = modifierObject(dir.Modifiers)
	}
	if dir.Name == "model" {
		// the argument of a native v-model is not passed to the directive
		arg = nil
	}
	tail := []ast.Node{exp, arg, mods}
	last := -1
	for i, n := range tail {
		if n != nil {
			last = i
		}
	}
	for _, n := range tail[:last+1] {
		if n == nil {
			n = raw("void 0")
		}
		entries = append(entries, n)
	}
	return &ast.ArrayExpression{Elements: entries, Location: dir.Location}
}

func modifierObject(mods []string) *ast.ObjectExpression {
	obj := &ast.ObjectExpression{Location: ast.LocStub}
	for _, m := range mods {
		obj.Properties = append(obj.Properties, ast.NewProperty(m, raw("true")))
	}
	return obj
}

// modelDirective picks the runtime directive for a native v-model.
func modelDirective(el *ast.ElementNode) ast.RuntimeHelper {
	switch el.Tag {
	case "select":
		return ast.VModelSelect
	case "textarea":
		return ast.VModelText
	case "input":
		switch t := ast.FindProp(el, "type", false).(type) {
		case *ast.Directive:
			return ast.VModelDynamic
		case *ast.Attribute:
			if t.Value != nil {
				switch t.Value.Content {
				case "checkbox":
					return ast.VModelCheckbox
				case "radio":
					return ast.VModelRadio
				}
			}
		}
		return ast.VModelText
	}
	return ast.VModelDynamic
}

// withoutDirective returns a shallow copy of el without dir.
func withoutDirective(el *ast.ElementNode, dir *ast.Directive) *ast.ElementNode {
	cp := *el
	cp.Props = make([]ast.Prop, 0, len(el.Props))
	for _, p := range el.Props {
		if p != ast.Prop(dir) {
			cp.Props = append(cp.Props, p)
		}
	}
	return &cp
}
