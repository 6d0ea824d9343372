package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/sfcc/internal/ast"
	"github.com/conneroisu/sfcc/internal/errors"
)

func static(s string) *ast.SimpleExpression { return ast.NewSimpleExpression(s, true) }
func dyn(s string) *ast.SimpleExpression    { return ast.NewSimpleExpression(s, false) }

func dir(name string, arg, exp ast.ExpressionNode, mods ...string) *ast.Directive {
	return &ast.Directive{Name: name, Arg: arg, Exp: exp, Modifiers: mods, Location: ast.LocStub}
}

func component(tag string, props ...ast.Prop) *ast.ElementNode {
	return &ast.ElementNode{Tag: tag, TagType: ast.ElementTypeComponent, Props: props}
}

func element(tag string, props ...ast.Prop) *ast.ElementNode {
	return &ast.ElementNode{Tag: tag, TagType: ast.ElementTypeElement, Props: props}
}

func codes(dc *errors.DiagnosticCollector) []string {
	var out []string
	for _, d := range dc.Diagnostics() {
		out = append(out, d.Code)
	}
	return out
}

func TestTransform_Assets(t *testing.T) {
	root := ast.NewRoot(
		component("my-panel", dir("tooltip", nil, dyn("tip"))),
		component("Teleport"),
		component("component"),
		component("Bound"),
		element("div", dir("focus", nil, nil), dir("show", nil, dyn("ok"))),
		&ast.IfNode{Branches: []*ast.IfBranchNode{{
			Condition: dyn("a"),
			Children:  []ast.Node{component("my-panel"), component("inner-thing")},
		}}},
	)

	diags := Transform(root, Options{Bindings: ast.BindingMetadata{"Bound": ast.BindingSetupConst}})
	assert.Empty(t, codes(diags))
	assert.Equal(t, []string{"my-panel", "inner-thing"}, root.Components)
	assert.Equal(t, []string{"tooltip", "focus"}, root.Directives)
	assert.True(t, root.Transformed)

	again := Transform(root, Options{})
	assert.Equal(t, 0, again.Len())
	assert.Len(t, root.Components, 2)
	assert.Len(t, root.Directives, 2)
}

func TestTransform_BoundDirectiveIsNotAnAsset(t *testing.T) {
	root := ast.NewRoot(element("div", dir("focus", nil, nil)))
	Transform(root, Options{Bindings: ast.BindingMetadata{"vFocus": ast.BindingSetupConst}})
	assert.Empty(t, root.Directives)
}

func TestTransform_Diagnostics(t *testing.T) {
	root := ast.NewRoot(
		element("div",
			dir("on", nil, nil),
			dir("bind", static("title"), nil),
			dir("model", nil, nil),
			dir("show", nil, nil),
			dir("on", static("click"), dyn("go")),
		),
		&ast.ForNode{Source: dyn(""), Value: dyn("x"), Children: []ast.Node{element("li")}},
	)

	diags := Transform(root, Options{})
	assert.Equal(t, []string{
		errors.ErrCodeVOnNoExpression,
		errors.ErrCodeVBindNoExpression,
		errors.ErrCodeVModelNoExpr,
		errors.ErrCodeVShowNoExpression,
		errors.ErrCodeVForNoSource,
	}, codes(diags))
	assert.False(t, diags.HasErrors(), "template problems are warnings")

	again := Transform(root, Options{})
	assert.Equal(t, codes(diags), codes(again))
}

func TestTransform_ElseMustBeLast(t *testing.T) {
	chain := &ast.IfNode{Branches: []*ast.IfBranchNode{
		{Children: []ast.Node{element("p")}},
		{Condition: dyn("ok"), Children: []ast.Node{element("span")}},
	}}

	assert.Panics(t, func() { Transform(ast.NewRoot(chain), Options{}) })
}

func TestTransform_StructuralInvariants(t *testing.T) {
	tests := map[string]ast.Node{
		"if without branches": &ast.IfNode{},
		"for without body":    &ast.ForNode{Source: dyn("items")},
	}
	for name, node := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Panics(t, func() { Transform(ast.NewRoot(node), Options{}) })
		})
	}
}

func TestIsBuiltinDirective(t *testing.T) {
	for _, name := range []string{"bind", "on", "if", "for", "model", "show", "memo"} {
		assert.True(t, IsBuiltinDirective(name), name)
	}
	assert.False(t, IsBuiltinDirective("tooltip"))
}

func TestResolveSetupReference(t *testing.T) {
	bindings := ast.BindingMetadata{"MyPanel": ast.BindingSetupConst, "item-row": ast.BindingSetupConst}

	name, ok := ResolveSetupReference("my-panel", bindings)
	require.True(t, ok)
	assert.Equal(t, "MyPanel", name)

	name, ok = ResolveSetupReference("item-row", bindings)
	require.True(t, ok)
	assert.Equal(t, "item-row", name)

	_, ok = ResolveSetupReference("other", bindings)
	assert.False(t, ok)
	_, ok = ResolveSetupReference("my-panel", nil)
	assert.False(t, ok)
}

func TestCoreComponentAndResolution(t *testing.T) {
	h, ok := CoreComponent("keep-alive")
	require.True(t, ok)
	assert.Equal(t, ast.KeepAlive, h)
	_, ok = CoreComponent("my-panel")
	assert.False(t, ok)

	assert.False(t, NeedsResolution("Transition", nil))
	assert.False(t, NeedsResolution("component", nil))
	assert.True(t, NeedsResolution("my-panel", nil))
	assert.False(t, NeedsResolution("my-panel", ast.BindingMetadata{"myPanel": ast.BindingSetupConst}))
}

func TestKeyBinding(t *testing.T) {
	key := dir("bind", static("key"), dyn("item.id"))
	el := element("li", &ast.Attribute{Name: "key"}, dir("bind", static("title"), dyn("t")), key)

	assert.Equal(t, key, FindKeyBinding(el))
	assert.Nil(t, FindKeyBinding(element("li", &ast.Attribute{Name: "key"})))
	assert.True(t, IsKeyProp(el.Props[0]))
	assert.False(t, IsKeyProp(el.Props[1]))
	assert.True(t, IsKeyProp(key))
	assert.False(t, IsKeyProp(dir("bind", dyn("key"), dyn("x"))), "computed argument is not a key")
}

func TestElementKey(t *testing.T) {
	bound := dir("bind", static("key"), dyn("item.id"))
	assert.Equal(t, bound.Exp, ElementKey(element("li", dir("bind", static("title"), dyn("t")), bound)))

	attr := &ast.Attribute{Name: "key", Value: &ast.TextNode{Content: "fixed"}}
	assert.Equal(t, ast.NewSimpleExpression("fixed", true), ElementKey(element("li", attr)))

	assert.Nil(t, ElementKey(element("li", dir("bind", static("key"), nil))), "a :key without value is absent")
	assert.Nil(t, ElementKey(element("li", dir("bind", static("title"), dyn("t")))))
}

func TestBindPropName(t *testing.T) {
	tests := []struct {
		name   string
		dir    *ast.Directive
		want   string
		wantOK bool
	}{
		{"plain", dir("bind", static("title"), dyn("t")), "title", true},
		{"camel", dir("bind", static("view-box"), dyn("v"), "camel"), "viewBox", true},
		{"prop", dir("bind", static("text-content"), dyn("v"), "prop"), ".text-content", true},
		{"attr", dir("bind", static("aria-label"), dyn("v"), "attr"), "^aria-label", true},
		{"object form", dir("bind", nil, dyn("attrs")), "", false},
		{"computed", dir("bind", dyn("name"), dyn("v")), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BindPropName(tt.dir)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveModel(t *testing.T) {
	m := ResolveModel(dir("model", nil, dyn("text")))
	require.NotNil(t, m)
	assert.Equal(t, "modelValue", m.PropName)
	assert.Equal(t, "onUpdate:modelValue", m.EventName)
	assert.Equal(t, "text", m.Value)
	assert.Empty(t, m.ModifierOf)

	m = ResolveModel(dir("model", static("title"), dyn("t"), "trim"))
	require.NotNil(t, m)
	assert.Equal(t, "onUpdate:title", m.EventName)
	assert.Equal(t, "titleModifiers", m.ModifierOf)

	m = ResolveModel(dir("model", nil, dyn("v"), "lazy"))
	assert.Equal(t, "modelModifiers", m.ModifierOf)

	assert.Nil(t, ResolveModel(dir("model", nil, nil)))
	assert.Nil(t, ResolveModel(dir("bind", nil, dyn("x"))))
	assert.Nil(t, ResolveModel(nil))
}

func TestEventModifiers(t *testing.T) {
	m := ParseEventModifiers([]string{"enter", "stop", "once", "capture", "exact", "esc"})

	assert.True(t, m.Stop)
	assert.True(t, m.Once)
	assert.Equal(t, []string{"enter", "esc"}, m.Keys)
	assert.Equal(t, []string{"stop", "exact"}, m.GuardModifiers())
	assert.Equal(t, "CaptureOnce", m.OptionSuffix())
	assert.True(t, m.NeedsGuard())

	opts := ParseEventModifiers([]string{"passive", "once"})
	assert.False(t, opts.NeedsGuard())
	assert.Equal(t, "OncePassive", opts.OptionSuffix())
}

func TestResolveEvent(t *testing.T) {
	tests := []struct {
		name    string
		dir     *ast.Directive
		prop    string
		helpers []ast.RuntimeHelper
	}{
		{"static", dir("on", static("click"), dyn("go")), "onClick", nil},
		{"options", dir("on", static("click"), dyn("go"), "once", "capture"), "onClickCaptureOnce", nil},
		{"guards", dir("on", static("click"), dyn("go"), "prevent"), "onClick", []ast.RuntimeHelper{ast.WithModifiers}},
		{"keys", dir("on", static("keyup"), dyn("go"), "enter"), "onKeyup", []ast.RuntimeHelper{ast.WithKeys}},
		{"dynamic", dir("on", dyn("evt"), dyn("go"), "stop"), "", []ast.RuntimeHelper{ast.ToHandlerKey, ast.WithModifiers}},
		{"object", dir("on", nil, dyn("handlers")), "", []ast.RuntimeHelper{ast.ToHandlers}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ResolveEvent(tt.dir)
			require.NotNil(t, b)
			assert.Equal(t, tt.prop, b.PropName())
			assert.Equal(t, tt.helpers, b.Helpers())
		})
	}

	b := ResolveEvent(dir("on", dyn("evt"), dyn("go")))
	name, ok := EventName(b.Dir)
	assert.True(t, ok)
	assert.Equal(t, "evt", name)
	assert.True(t, b.IsDynamic())
	assert.Equal(t, "go", b.Handler())

	assert.Nil(t, ResolveEvent(dir("bind", nil, dyn("x"))))
	assert.Equal(t, "onSelectKoma", HandlerPropName("select-koma"))
}
