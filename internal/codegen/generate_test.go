package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/sfcc/internal/ast"
)

func TestGenerate_EmptyRoot(t *testing.T) {
	result := Generate(ast.NewRoot(), Options{})

	assert.Equal(t, "export function render(_ctx, _cache) {\n  return null\n}", result.Code)
	assert.Empty(t, result.Preamble)
	assert.Empty(t, result.Helpers)
}

func TestGenerate_SingleElement(t *testing.T) {
	result := Generate(ast.NewRoot(elem("div", nil, text("hi"))), Options{})

	assert.Equal(t, `import { openBlock, createElementBlock } from "vue"

export function render(_ctx, _cache) {
  return (openBlock(), createElementBlock("div", null, "hi"))
}`, result.Code)
	assert.Equal(t, []ast.RuntimeHelper{ast.OpenBlock, ast.CreateElementBlock}, result.Helpers)
}

func TestGenerate_RootKey(t *testing.T) {
	result := Generate(ast.NewRoot(elem("div", props(bind("key", "k")), text("x"))), Options{})

	assert.Contains(t, result.Render, `return (openBlock(), createElementBlock("div", { key: k }, "x"))`)
}

func TestGenerate_Modes(t *testing.T) {
	root := func() *ast.RootNode { return ast.NewRoot(elem("p", nil, interp("msg"))) }

	t.Run("helper prefix", func(t *testing.T) {
		result := Generate(root(), Options{HelperPrefix: "_"})
		assert.Equal(t,
			`import { openBlock as _openBlock, createElementBlock as _createElementBlock, toDisplayString as _toDisplayString } from "vue"`,
			result.Preamble)
		assert.Contains(t, result.Render, `(_openBlock(), _createElementBlock("p", null, _toDisplayString(msg), 1 /* TEXT */))`)
	})

	t.Run("function mode", func(t *testing.T) {
		result := Generate(root(), Options{Mode: ModeFunction})
		assert.Equal(t, "const { openBlock, createElementBlock, toDisplayString } = Vue", result.Preamble)
		assert.Contains(t, result.Render, "return function render(_ctx, _cache) {")
	})

	t.Run("function mode with prefix and global", func(t *testing.T) {
		result := Generate(root(), Options{Mode: ModeFunction, HelperPrefix: "_", RuntimeGlobalName: "Runtime"})
		assert.Equal(t,
			"const { openBlock: _openBlock, createElementBlock: _createElementBlock, toDisplayString: _toDisplayString } = Runtime",
			result.Preamble)
	})

	t.Run("inline", func(t *testing.T) {
		result := Generate(root(), Options{Inline: true})
		assert.Contains(t, result.Render, "(_ctx, _cache) => {")
		assert.NotContains(t, result.Render, "function render")
	})

	t.Run("runtime module", func(t *testing.T) {
		result := Generate(root(), Options{RuntimeModule: "@vue/runtime-dom"})
		assert.Contains(t, result.Preamble, `from "@vue/runtime-dom"`)
	})
}

func TestGenerate_Assets(t *testing.T) {
	root := ast.NewRoot(comp("my-button", props(directive("focus", nil, ""))))
	result := Generate(root, Options{})

	assert.Equal(t, `import { withDirectives, openBlock, createBlock, resolveComponent, resolveDirective } from "vue"

export function render(_ctx, _cache) {
  const _component_my_button = resolveComponent("my-button")
  const _directive_focus = resolveDirective("focus")

  return withDirectives((openBlock(), createBlock(_component_my_button)), [
    [_directive_focus]
  ])
}`, result.Code)
	assert.Equal(t, []string{"my-button"}, result.Components)
	assert.Equal(t, []string{"focus"}, result.Directives)
}

func TestGenerate_FragmentRoot(t *testing.T) {
	result := Generate(ast.NewRoot(text("a"), elem("span", nil)), Options{})

	assert.Equal(t, `export function render(_ctx, _cache) {
  return (openBlock(), createElementBlock(Fragment, null, [
    createTextVNode("a"),
    createElementVNode("span")
  ], 64 /* STABLE_FRAGMENT */))
}`, result.Render)
}

func TestGenerate_LoopRoot(t *testing.T) {
	li := elem("li", props(bind("key", "item.id")), interp("item.name"))
	result := Generate(ast.NewRoot(forNode("items", "item", li)), Options{})

	assert.Equal(t, `export function render(_ctx, _cache) {
  return (openBlock(true), createElementBlock(Fragment, null, renderList(items, (item) => {
    return (openBlock(), createElementBlock("li", { key: item.id }, toDisplayString(item.name), 1))
  }), 128 /* KEYED_FRAGMENT */))
}`, result.Render)
	assert.Equal(t, `import { openBlock, createElementBlock, Fragment, renderList, toDisplayString } from "vue"`, result.Preamble)
}

func TestGenerate_PreambleExtras(t *testing.T) {
	root := ast.NewRoot(elem("img", props(attr("src", "x"))))
	root.Imports = []ast.ImportItem{{Exp: "_imports_0", Path: "./logo.png"}}
	root.Hoists = []ast.Node{&ast.ObjectExpression{Properties: []*ast.Property{ast.NewProperty("class", static("static"))}}}
	root.Temps = 2

	result := Generate(root, Options{})

	assert.Equal(t, `import { openBlock, createElementBlock } from "vue"
import _imports_0 from "./logo.png"

const _hoisted_1 = { class: "static" }`, result.Preamble)
	assert.Contains(t, result.Render, "  let _temp0, _temp1\n\n  return ")
}

func TestGenerate_SSRHelpersImportedSeparately(t *testing.T) {
	root := ast.NewRoot(&ast.CallExpression{Callee: ast.HelperCallee(ast.SSRInterpolate), Arguments: []ast.Node{exp("x")}})
	result := Generate(root, Options{})

	assert.Equal(t, `import { ssrInterpolate } from "vue/server-renderer"`, result.Preamble)
	assert.Contains(t, result.Render, "return ssrInterpolate(x)")
}

func TestGenerate_Deterministic(t *testing.T) {
	build := func() *ast.RootNode {
		return ast.NewRoot(
			ifNode(branch("ok", comp("my-comp", nil)), branch("", elem("p", props(on("click", "go", "stop")), interp("msg")))),
			forNode("list", "x", elem("li", props(bind("key", "x.id")), interp("x"))),
		)
	}
	root := build()
	first := Generate(root, Options{CacheHandlers: true})
	second := Generate(root, Options{CacheHandlers: true})
	fresh := Generate(build(), Options{CacheHandlers: true})

	require.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Helpers, second.Helpers)
	assert.Equal(t, first.Code, fresh.Code)
	assert.Equal(t, first.Helpers, fresh.Helpers)
}

func TestGenerate_HelpersMatchCode(t *testing.T) {
	root := ast.NewRoot(elem("div", props(on("click", "go", "stop")), interp("x")))
	result := Generate(root, Options{})

	for _, h := range result.Helpers {
		assert.Contains(t, result.Render, h.Name()+"(", "helper %s listed but unused", h.Name())
	}
	for _, h := range ast.AllHelpers() {
		if !containsHelper(result.Helpers, h) {
			assert.NotContains(t, result.Render, " "+h.Name()+"(")
		}
	}
}

func containsHelper(list []ast.RuntimeHelper, h ast.RuntimeHelper) bool {
	for _, v := range list {
		if v == h {
			return true
		}
	}
	return false
}
