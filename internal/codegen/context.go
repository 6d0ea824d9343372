// Package codegen turns a transformed template tree into render-function
// source text. Element creation calls carry block tracking and patch flags so
// the runtime can skip unchanged subtrees.
//
// Output is byte-for-byte deterministic for a given tree and options, and the
// helper set on the root lists exactly the runtime helpers the text
// references, in first-use order.
package codegen

import (
	"strings"

	"github.com/conneroisu/sfcc/internal/ast"
)

// Mode selects how the generated render function is packaged.
type Mode string

const (
	// ModeModule emits an ES module with a named render export.
	ModeModule Mode = "module"
	// ModeFunction emits a function body that reads helpers from a global.
	ModeFunction Mode = "function"
)

// Options configures code generation.
type Options struct {
	Mode Mode
	// Inline emits the render function as an arrow function meant to be
	// returned from setup(), referencing setup bindings directly.
	Inline bool
	// HelperPrefix is prepended to every helper symbol in generated code.
	HelperPrefix string
	// RuntimeModule is the module helpers are imported from.
	RuntimeModule string
	// SSRRuntimeModule is the module server-rendering helpers come from.
	SSRRuntimeModule string
	// RuntimeGlobalName is the global read in function mode.
	RuntimeGlobalName string
	// CacheHandlers memoizes event handlers in the render cache.
	CacheHandlers bool
	// Bindings decides whether a component tag is an in-scope binding.
	Bindings ast.BindingOracle
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Mode:              ModeModule,
		RuntimeModule:     "vue",
		SSRRuntimeModule:  "vue/server-renderer",
		RuntimeGlobalName: "Vue",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Mode == "" {
		o.Mode = d.Mode
	}
	if o.RuntimeModule == "" {
		o.RuntimeModule = d.RuntimeModule
	}
	if o.SSRRuntimeModule == "" {
		o.SSRRuntimeModule = d.SSRRuntimeModule
	}
	if o.RuntimeGlobalName == "" {
		o.RuntimeGlobalName = d.RuntimeGlobalName
	}
	return o
}

const indentUnit = "  "

// Context is the append-only output buffer shared by every emitter of one
// compile. It is not safe for concurrent use; each compile owns its own.
type Context struct {
	opts        Options
	root        *ast.RootNode
	code        strings.Builder
	indentLevel int
}

// NewContext creates an output context writing helper usage into root.
func NewContext(root *ast.RootNode, opts Options) *Context {
	if root.Helpers == nil {
		root.Helpers = ast.NewHelperSet()
	}
	return &Context{opts: opts.withDefaults(), root: root}
}

// Push appends code verbatim.
func (c *Context) Push(code string) {
	c.code.WriteString(code)
}

// Newline starts a new line at the current indentation.
func (c *Context) Newline() {
	c.newline(c.indentLevel)
}

// Indent increases the indentation and starts a new line.
func (c *Context) Indent() {
	c.indentLevel++
	c.newline(c.indentLevel)
}

// Deindent decreases the indentation, starting a new line unless
// withoutNewline is set.
func (c *Context) Deindent(withoutNewline bool) {
	c.indentLevel--
	if !withoutNewline {
		c.newline(c.indentLevel)
	}
}

func (c *Context) newline(level int) {
	c.code.WriteString("\n")
	c.code.WriteString(strings.Repeat(indentUnit, level))
}

// Helper registers h as used and returns the symbol to reference it by.
func (c *Context) Helper(h ast.RuntimeHelper) string {
	c.root.Helpers.Add(h)
	return c.opts.HelperPrefix + h.Name()
}

// IndentLevel returns the current indentation depth.
func (c *Context) IndentLevel() int {
	return c.indentLevel
}

// Code returns everything pushed so far.
func (c *Context) Code() string {
	return c.code.String()
}
