package codegen

import (
	"regexp"
	"slices"

	"github.com/conneroisu/sfcc/internal/ast"
	"github.com/conneroisu/sfcc/internal/shared"
	"github.com/conneroisu/sfcc/internal/transform"
)

var (
	memberExpRe = regexp.MustCompile(`^[A-Za-z_$][\w$]*(?:\s*\.\s*[A-Za-z_$][\w$]*|\[[^\]]+\])*$`)
	fnExpRe     = regexp.MustCompile(`^\s*(?:async\s+)?(?:\([^)]*?\)|[\w$]+)\s*=>|^\s*(?:async\s+)?function(?:\s+[\w$]+)?\s*\(`)
)

// buildProps compiles the props of el into an object literal, a mergeProps
// call when object spreads are present, or nil when there is nothing to
// pass. The key is always the first property: key when set, the element's
// own key otherwise. Structural directives and directives applied through
// withDirectives are skipped.
func (g *generator) buildProps(el *ast.ElementNode, key ast.Node) ast.Node {
	var (
		args  []ast.Node
		props []*ast.Property
	)
	if key == nil {
		key = transform.ElementKey(el)
	}
	if key != nil {
		props = append(props, ast.NewProperty("key", key))
	}
	flush := func() {
		if len(props) > 0 {
			args = append(args, &ast.ObjectExpression{Properties: props, Location: el.Location})
			props = nil
		}
	}
	isDynamicComponent := el.Tag == "component" && el.TagType == ast.ElementTypeComponent

	for _, p := range el.Props {
		if transform.IsKeyProp(p) {
			continue
		}
		switch prop := p.(type) {
		case *ast.Attribute:
			if isDynamicComponent && prop.Name == "is" {
				continue
			}
			value := ""
			if prop.Value != nil {
				value = prop.Value.Content
			}
			props = append(props, ast.NewProperty(prop.Name, ast.NewSimpleExpression(value, true)))
		case *ast.Directive:
			switch prop.Name {
			case "bind":
				if prop.Exp == nil {
					continue
				}
				if prop.Arg == nil {
					flush()
					args = append(args, prop.Exp)
					continue
				}
				name, static := transform.BindPropName(prop)
				if !static {
					props = append(props, &ast.Property{
						Key:      ast.NewSimpleExpression(ast.ExpressionText(prop.Arg)+` || ""`, false),
						Value:    prop.Exp,
						Location: prop.Location,
					})
					continue
				}
				if isDynamicComponent && name == "is" {
					continue
				}
				props = append(props, ast.NewProperty(name, prop.Exp))
			case "on":
				binding := transform.ResolveEvent(prop)
				if binding.IsObjectForm() {
					if prop.Exp == nil {
						continue
					}
					flush()
					args = append(args, ast.NewCall(ast.ToHandlers, prop.Exp))
					continue
				}
				props = append(props, g.eventProperty(binding))
			case "model":
				props = append(props, g.modelProperties(el, prop)...)
			case "text":
				if prop.Exp != nil {
					props = append(props, ast.NewProperty("textContent", ast.NewCall(ast.ToDisplayString, prop.Exp)))
				}
			case "html":
				if prop.Exp != nil {
					props = append(props, ast.NewProperty("innerHTML", prop.Exp))
				}
			}
		}
	}

	if len(args) == 0 {
		if len(props) == 0 {
			return nil
		}
		return &ast.ObjectExpression{Properties: props, Location: el.Location}
	}
	flush()
	if len(args) == 1 {
		if call, ok := args[0].(*ast.CallExpression); ok && call.Callee.Helper == ast.ToHandlers {
			return call
		}
		return ast.NewCall(ast.NormalizeProps, ast.NewCall(ast.GuardReactiveProps, args[0]))
	}
	return ast.NewCall(ast.MergeProps, args...)
}

// eventProperty compiles a v-on directive with an event name into its
// handler prop.
func (g *generator) eventProperty(b *transform.EventBinding) *ast.Property {
	helpers := b.Helpers()
	var key ast.ExpressionNode = ast.NewSimpleExpression(b.PropName(), true)
	if slices.Contains(helpers, ast.ToHandlerKey) {
		evt, _ := transform.EventName(b.Dir)
		key = ast.NewSimpleExpression(g.ctx.Helper(ast.ToHandlerKey)+"("+evt+")", false)
	}

	exp := b.Handler()
	var handler string
	switch {
	case exp == "":
		handler = "() => {}"
	case memberExpRe.MatchString(exp):
		handler = exp
		if g.opts.CacheHandlers {
			handler = "(...args) => (" + exp + " && " + exp + "(...args))"
		}
	case fnExpRe.MatchString(exp):
		handler = exp
	default:
		handler = "$event => (" + exp + ")"
	}

	var value ast.Node = ast.NewSimpleExpression(handler, false)
	for _, h := range helpers {
		switch h {
		case ast.WithModifiers:
			value = ast.NewCall(ast.WithModifiers, value, stringArray(b.Modifiers.GuardModifiers()))
		case ast.WithKeys:
			value = ast.NewCall(ast.WithKeys, value, stringArray(b.Modifiers.Keys))
		}
	}
	if g.opts.CacheHandlers && !b.IsDynamic() {
		value = g.cached(value)
	}
	return &ast.Property{Key: key, Value: value, Location: b.Dir.Location}
}

// modelProperties compiles v-model. Components get the value prop, the
// update handler and the modifiers object; native elements only get the
// update handler because the value is applied by a runtime directive.
func (g *generator) modelProperties(el *ast.ElementNode, dir *ast.Directive) []*ast.Property {
	m := transform.ResolveModel(dir)
	if m == nil {
		return nil
	}
	var update ast.Node = ast.NewSimpleExpression("$event => (("+m.Value+") = $event)", false)
	if g.opts.CacheHandlers {
		update = g.cached(update)
	}
	if el.TagType != ast.ElementTypeComponent {
		return []*ast.Property{ast.NewProperty(m.EventName, update)}
	}
	props := []*ast.Property{
		ast.NewProperty(m.PropName, ast.NewSimpleExpression(m.Value, false)),
		ast.NewProperty(m.EventName, update),
	}
	if m.ModifierOf != "" {
		props = append(props, ast.NewProperty(m.ModifierOf, modifierObject(m.Modifiers)))
	}
	return props
}

func (g *generator) cached(value ast.Node) *ast.CacheExpression {
	index := g.root.Cached
	g.root.Cached++
	return &ast.CacheExpression{Index: index, Value: value, Location: ast.LocStub}
}

func stringArray(list []string) *ast.ArrayExpression {
	arr := &ast.ArrayExpression{Location: ast.LocStub}
	for _, s := range list {
		arr.Elements = append(arr.Elements, raw(shared.Stringify(s)))
	}
	return arr
}
