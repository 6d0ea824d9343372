package codegen

import (
	"strconv"
	"strings"

	"github.com/conneroisu/sfcc/internal/ast"
	"github.com/conneroisu/sfcc/internal/errors"
	"github.com/conneroisu/sfcc/internal/shared"
)

// Result is the output of Generate.
type Result struct {
	// Code is the complete module: preamble followed by the render function.
	Code string
	// Preamble holds helper imports, user imports and hoisted constants.
	Preamble string
	// Render is the render function alone.
	Render string
	// Helpers lists the runtime helpers Code references, in first-use order.
	Helpers    []ast.RuntimeHelper
	Components []string
	Directives []string
}

// Generate compiles a transformed root into render-function source.
// Generating the same root twice yields identical results.
func Generate(root *ast.RootNode, opts Options) *Result {
	errors.Assert(root != nil, "codegen: nil root")
	root.Helpers = ast.NewHelperSet()
	root.Cached = 0

	g := newGenerator(root, opts)
	g.ctx.indentLevel = 1
	g.genRoot()
	body := g.ctx.Code()

	hoists := g.genHoists()
	render := g.genRenderFunction(body)
	preamble := g.genPreamble(hoists)

	code := render
	if preamble != "" {
		code = preamble + "\n\n" + render
	}
	return &Result{
		Code:       code,
		Preamble:   preamble,
		Render:     render,
		Helpers:    root.Helpers.List(),
		Components: append([]string(nil), root.Components...),
		Directives: append([]string(nil), root.Directives...),
	}
}

func (g *generator) genRoot() {
	children := g.root.Children
	switch len(children) {
	case 0:
		g.ctx.Push("null")
	case 1:
		if el, ok := children[0].(*ast.ElementNode); ok {
			g.genBlockElement(el, nil)
			return
		}
		g.genNode(children[0])
	default:
		g.genFragment(nil, children, true)
	}
}

func (g *generator) genHoists() []string {
	lines := make([]string, 0, len(g.root.Hoists))
	for i, h := range g.root.Hoists {
		ctx := NewContext(g.root, g.opts)
		ctx.Push("const _hoisted_" + strconv.Itoa(i+1) + " = ")
		GenNode(ctx, h)
		lines = append(lines, ctx.Code())
	}
	return lines
}

func (g *generator) genRenderFunction(body string) string {
	fn := NewContext(g.root, g.opts)
	switch {
	case g.opts.Inline:
		fn.Push("(_ctx, _cache) => {")
	case g.opts.Mode == ModeFunction:
		fn.Push("return function render(_ctx, _cache) {")
	default:
		fn.Push("export function render(_ctx, _cache) {")
	}
	fn.Indent()

	var decls []string
	for _, name := range g.root.Components {
		decls = append(decls, "const "+shared.ToValidAssetID(name, "component")+" = "+
			fn.Helper(ast.ResolveComponent)+"("+shared.Stringify(name)+")")
	}
	for _, name := range g.root.Directives {
		decls = append(decls, "const "+shared.ToValidAssetID(name, "directive")+" = "+
			fn.Helper(ast.ResolveDirective)+"("+shared.Stringify(name)+")")
	}
	if g.root.Temps > 0 {
		temps := make([]string, g.root.Temps)
		for i := range temps {
			temps[i] = "_temp" + strconv.Itoa(i)
		}
		decls = append(decls, "let "+strings.Join(temps, ", "))
	}
	for i, d := range decls {
		if i > 0 {
			fn.Newline()
		}
		fn.Push(d)
	}
	if len(decls) > 0 {
		fn.Push("\n")
		fn.Newline()
	}

	fn.Push("return ")
	fn.Push(body)
	fn.Deindent(false)
	fn.Push("}")
	return fn.Code()
}

func (g *generator) genPreamble(hoists []string) string {
	var runtime, ssr []ast.RuntimeHelper
	for _, h := range g.root.Helpers.List() {
		if h.IsSSR() {
			ssr = append(ssr, h)
		} else {
			runtime = append(runtime, h)
		}
	}

	var lines []string
	if len(runtime) > 0 {
		lines = append(lines, g.helperImport(runtime, g.opts.RuntimeModule, g.opts.RuntimeGlobalName))
	}
	if len(ssr) > 0 {
		lines = append(lines, g.helperImport(ssr, g.opts.SSRRuntimeModule,
			"require("+shared.Stringify(g.opts.SSRRuntimeModule)+")"))
	}
	for _, imp := range g.root.Imports {
		lines = append(lines, "import "+imp.Exp+" from "+shared.Stringify(imp.Path))
	}
	if len(hoists) > 0 {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, hoists...)
	}
	return strings.Join(lines, "\n")
}

// helperImport declares helpers as an ES import in module mode and as a
// destructuring of global in function mode.
func (g *generator) helperImport(helpers []ast.RuntimeHelper, module, global string) string {
	specs := make([]string, len(helpers))
	function := g.opts.Mode == ModeFunction && !g.opts.Inline
	for i, h := range helpers {
		name := h.Name()
		local := g.opts.HelperPrefix + name
		switch {
		case local == name:
			specs[i] = name
		case function:
			specs[i] = name + ": " + local
		default:
			specs[i] = name + " as " + local
		}
	}
	if function {
		return "const { " + strings.Join(specs, ", ") + " } = " + global
	}
	return "import { " + strings.Join(specs, ", ") + " } from " + shared.Stringify(module)
}
