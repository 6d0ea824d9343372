package codegen

import (
	"fmt"
	"strconv"

	"github.com/conneroisu/sfcc/internal/ast"
	"github.com/conneroisu/sfcc/internal/errors"
	"github.com/conneroisu/sfcc/internal/shared"
)

// generator walks one tree. It owns the output context for the call.
type generator struct {
	ctx  *Context
	opts Options
	root *ast.RootNode
}

func newGenerator(root *ast.RootNode, opts Options) *generator {
	ctx := NewContext(root, opts)
	return &generator{ctx: ctx, opts: ctx.opts, root: root}
}

// childList is a list of template children emitted as an array literal.
// Text-like entries become createTextVNode calls.
type childList struct {
	nodes []ast.Node
}

func (l *childList) Type() ast.NodeType      { return ast.NodeJSArrayExpression }
func (l *childList) Loc() ast.SourceLocation { return ast.LocStub }

// raw is pre-rendered code used as a call argument.
type raw string

func (r raw) Type() ast.NodeType      { return ast.NodeSimpleExpression }
func (r raw) Loc() ast.SourceLocation { return ast.LocStub }

// GenNode appends the code for a single node to ctx.
func GenNode(ctx *Context, n ast.Node) {
	g := &generator{ctx: ctx, opts: ctx.opts, root: ctx.root}
	g.genNode(n)
}

func (g *generator) genNode(n ast.Node) {
	c := g.ctx
	switch node := n.(type) {
	case raw:
		c.Push(string(node))
	case *childList:
		g.genNodeListAsArray(node.nodes, true)
	case *ast.ElementNode:
		g.genElement(node)
	case *ast.IfNode:
		g.genIf(node)
	case *ast.ForNode:
		g.genFor(node)
	case *ast.TextNode:
		c.Push(shared.Stringify(node.Content))
	case *ast.CommentNode:
		c.Push(c.Helper(ast.CreateComment) + "(" + shared.Stringify(node.Content) + ")")
	case *ast.InterpolationNode:
		c.Push(c.Helper(ast.ToDisplayString) + "(")
		g.genNode(node.Content)
		c.Push(")")
	case *ast.SimpleExpression:
		g.genExpression(node)
	case *ast.CompoundExpression:
		g.genCompound(node)
	case *ast.CallExpression:
		g.genCallExpression(node)
	case *ast.ObjectExpression:
		g.genObjectExpression(node)
	case *ast.ArrayExpression:
		g.genNodeListAsArray(node.Elements, false)
	case *ast.FunctionExpression:
		g.genFunctionExpression(node)
	case *ast.ConditionalExpression:
		g.genConditionalExpression(node)
	case *ast.CacheExpression:
		g.genCacheExpression(node)
	case *ast.BlockStatement:
		g.genBlockStatement(node)
	case nil:
		errors.Assert(false, "codegen: nil node")
	default:
		errors.Assert(false, "codegen: unexpected %s node", n.Type())
	}
}

// genChild emits a node in children-array position.
func (g *generator) genChild(n ast.Node) {
	c := g.ctx
	switch n.(type) {
	case *ast.TextNode:
		c.Push(c.Helper(ast.CreateText) + "(")
		g.genNode(n)
		c.Push(")")
	case *ast.InterpolationNode, *ast.CompoundExpression:
		c.Push(c.Helper(ast.CreateText) + "(")
		g.genNode(n)
		c.Push(", " + flagText(ast.PatchFlagText) + ")")
	default:
		g.genNode(n)
	}
}

func (g *generator) genExpression(exp *ast.SimpleExpression) {
	if exp.IsStatic {
		g.ctx.Push(shared.Stringify(exp.Content))
		return
	}
	g.ctx.Push(exp.Content)
}

func (g *generator) genCompound(exp *ast.CompoundExpression) {
	for _, part := range exp.Parts {
		switch p := part.(type) {
		case ast.Raw:
			g.ctx.Push(string(p))
		case *ast.SimpleExpression:
			g.genExpression(p)
		case *ast.CompoundExpression:
			g.genCompound(p)
		case *ast.InterpolationNode:
			g.genNode(p)
		case *ast.TextNode:
			g.genNode(p)
		}
	}
}

// genNodeListAsArray emits nodes as an array literal, one entry per line
// when there are more than three or any entry is not text-like.
func (g *generator) genNodeListAsArray(nodes []ast.Node, asChildren bool) {
	c := g.ctx
	multilines := len(nodes) > 3
	for _, n := range nodes {
		if !isTextLike(n) {
			multilines = true
		}
	}
	c.Push("[")
	if multilines {
		c.Indent()
	}
	for i, n := range nodes {
		if asChildren {
			g.genChild(n)
		} else {
			g.genNode(n)
		}
		if i < len(nodes)-1 {
			if multilines {
				c.Push(",")
				c.Newline()
			} else {
				c.Push(", ")
			}
		}
	}
	if multilines {
		c.Deindent(false)
	}
	c.Push("]")
}

func isTextLike(n ast.Node) bool {
	switch n.(type) {
	case raw, *ast.SimpleExpression:
		return true
	}
	return ast.IsText(n)
}

// genCall emits callee(args...) with trailing null arguments trimmed.
func (g *generator) genCall(callee string, args ...ast.Node) {
	g.ctx.Push(callee + "(")
	g.genNullableArgs(args)
	g.ctx.Push(")")
}

// genNullableArgs emits args separated by ", ". Trailing nil entries are
// dropped and inner ones become null.
func (g *generator) genNullableArgs(args []ast.Node) {
	end := len(args)
	for end > 0 && isNullArg(args[end-1]) {
		end--
	}
	for i, a := range args[:end] {
		if i > 0 {
			g.ctx.Push(", ")
		}
		if isNullArg(a) {
			g.ctx.Push("null")
			continue
		}
		g.genNode(a)
	}
}

func isNullArg(n ast.Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case raw:
		return v == "" || v == "null"
	case *ast.ObjectExpression:
		return v == nil
	case *ast.CallExpression:
		return v == nil
	case *childList:
		return v == nil
	}
	return false
}

func (g *generator) genCallExpression(call *ast.CallExpression) {
	callee := call.Callee.Name
	if call.Callee.IsHelper() {
		callee = g.ctx.Helper(call.Callee.Helper)
	}
	g.genCall(callee, call.Arguments...)
}

func (g *generator) genObjectExpression(obj *ast.ObjectExpression) {
	c := g.ctx
	if len(obj.Properties) == 0 {
		c.Push("{}")
		return
	}
	multilines := false
	if len(obj.Properties) > 1 {
		for _, p := range obj.Properties {
			if _, simple := p.Value.(*ast.SimpleExpression); !simple {
				if _, r := p.Value.(raw); !r {
					multilines = true
				}
			}
		}
	}
	if multilines {
		c.Push("{")
		c.Indent()
	} else {
		c.Push("{ ")
	}
	for i, p := range obj.Properties {
		g.genPropertyKey(p.Key)
		c.Push(": ")
		g.genNode(p.Value)
		if i < len(obj.Properties)-1 {
			c.Push(",")
			if multilines {
				c.Newline()
			} else {
				c.Push(" ")
			}
		}
	}
	if multilines {
		c.Deindent(false)
		c.Push("}")
	} else {
		c.Push(" }")
	}
}

func (g *generator) genPropertyKey(key ast.ExpressionNode) {
	switch k := key.(type) {
	case *ast.SimpleExpression:
		if k.IsStatic {
			if shared.IsSimpleIdentifier(k.Content) {
				g.ctx.Push(k.Content)
			} else {
				g.ctx.Push(shared.Stringify(k.Content))
			}
			return
		}
		g.ctx.Push("[" + k.Content + "]")
	default:
		g.ctx.Push("[")
		g.genNode(key)
		g.ctx.Push("]")
	}
}

func (g *generator) genFunctionExpression(fn *ast.FunctionExpression) {
	c := g.ctx
	c.Push("(")
	for i, p := range fn.Params {
		if i > 0 {
			c.Push(", ")
		}
		c.Push(p)
	}
	c.Push(") => ")
	block := fn.Newline || fn.Body != nil
	if block {
		c.Push("{")
		c.Indent()
	}
	switch {
	case fn.Returns != nil:
		if fn.Newline {
			c.Push("return ")
		}
		g.genNode(fn.Returns)
	case fn.Body != nil:
		g.genStatements(fn.Body.Body)
	}
	if block {
		c.Deindent(false)
		c.Push("}")
	}
}

func (g *generator) genConditionalExpression(cond *ast.ConditionalExpression) {
	c := g.ctx
	test := ""
	if exp, ok := cond.Test.(*ast.SimpleExpression); ok {
		test = exp.Content
	}
	parens := !shared.IsSimpleIdentifier(test)
	if parens {
		c.Push("(")
	}
	g.genNode(cond.Test)
	if parens {
		c.Push(")")
	}
	if cond.Newline {
		c.Indent()
	} else {
		c.Push(" ")
	}
	c.Push("? ")
	g.genNode(cond.Consequent)
	if cond.Newline {
		c.Newline()
	} else {
		c.Push(" ")
	}
	c.Push(": ")
	g.genNode(cond.Alternate)
	if cond.Newline {
		c.Deindent(true)
	}
}

func (g *generator) genCacheExpression(cache *ast.CacheExpression) {
	c := g.ctx
	slot := "_cache[" + strconv.Itoa(cache.Index) + "]"
	c.Push(slot + " || (")
	if cache.IsVOnce {
		c.Indent()
		c.Push(c.Helper(ast.SetBlockTracking) + "(-1),")
		c.Newline()
		c.Push("(")
	}
	c.Push(slot + " = ")
	g.genNode(cache.Value)
	if cache.IsVOnce {
		c.Push(fmt.Sprintf(").cacheIndex = %d,", cache.Index))
		c.Newline()
		c.Push(c.Helper(ast.SetBlockTracking) + "(1),")
		c.Newline()
		c.Push(slot)
		c.Deindent(false)
	}
	c.Push(")")
}

func (g *generator) genBlockStatement(block *ast.BlockStatement) {
	g.ctx.Push("{")
	g.ctx.Indent()
	g.genStatements(block.Body)
	g.ctx.Deindent(false)
	g.ctx.Push("}")
}

func (g *generator) genStatements(stmts []ast.Node) {
	for i, s := range stmts {
		if i > 0 {
			g.ctx.Newline()
		}
		g.genNode(s)
	}
}

// flagText renders a patch flag with its names in a trailing comment.
func flagText(f ast.PatchFlag) string {
	return fmt.Sprintf("%d /* %s */", int(f), f.String())
}
