// Package compiler runs the transform and codegen passes over a template
// tree and caches the generated code per fixture.
package compiler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/conneroisu/sfcc/internal/ast"
	"github.com/conneroisu/sfcc/internal/cache"
	"github.com/conneroisu/sfcc/internal/codegen"
	"github.com/conneroisu/sfcc/internal/errors"
	"github.com/conneroisu/sfcc/internal/fixture"
	"github.com/conneroisu/sfcc/internal/logging"
	"github.com/conneroisu/sfcc/internal/transform"
)

// Result is one compiled template.
type Result struct {
	Name        string              `json:"name"                 yaml:"name"`
	Code        string              `json:"code"                 yaml:"code"`
	Preamble    string              `json:"preamble,omitempty"   yaml:"preamble,omitempty"`
	Render      string              `json:"render"               yaml:"render"`
	Helpers     []string            `json:"helpers"              yaml:"helpers"`
	Components  []string            `json:"components,omitempty" yaml:"components,omitempty"`
	Directives  []string            `json:"directives,omitempty" yaml:"directives,omitempty"`
	Diagnostics []errors.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Duration    time.Duration       `json:"-"                    yaml:"-"`
	CacheHit    bool                `json:"cache_hit"            yaml:"cache_hit"`
	Hash        string              `json:"hash,omitempty"       yaml:"hash,omitempty"`
}

// Compiler compiles template trees with a fixed set of codegen options.
type Compiler struct {
	opts    codegen.Options
	logger  logging.Logger
	cache   *cache.ResultCache
	metrics *Metrics
}

// New creates a compiler. The cache may be nil to disable caching.
func New(opts codegen.Options, logger logging.Logger, rc *cache.ResultCache) *Compiler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Compiler{
		opts:    opts,
		logger:  logger.WithComponent("compiler"),
		cache:   rc,
		metrics: NewMetrics(),
	}
}

// Metrics returns the compiler's counters.
func (c *Compiler) Metrics() *Metrics {
	return c.metrics
}

// Cache returns the result cache, nil when caching is off.
func (c *Compiler) Cache() *cache.ResultCache {
	return c.cache
}

// Compile transforms and generates root. A tree that breaks a structural
// invariant panics with an internal CompilerError; callers at a command
// boundary use SafeCompile instead.
func (c *Compiler) Compile(ctx context.Context, root *ast.RootNode) (*Result, error) {
	return c.compile(ctx, "", root, c.opts)
}

// SafeCompile is Compile with invariant panics turned into errors.
func (c *Compiler) SafeCompile(ctx context.Context, root *ast.RootNode) (res *Result, err error) {
	defer c.logInternal(ctx, "", &err)
	defer errors.Recover(&err)
	return c.Compile(ctx, root)
}

// CompileFixture compiles a decoded fixture. The fixture's bindings replace
// the configured ones and results are served from the cache when the
// fixture bytes and options are unchanged.
func (c *Compiler) CompileFixture(ctx context.Context, fx *fixture.Fixture) (res *Result, err error) {
	defer c.logInternal(ctx, fx.Name, &err)
	defer errors.Recover(&err)

	opts := c.opts
	if fx.Bindings != nil {
		opts.Bindings = fx.Bindings
	}

	key := cache.Key(fx.Source, Fingerprint(opts))
	if cached, ok := c.lookup(key); ok {
		cached.Name = fx.Name
		c.metrics.Record(0, true, nil)
		c.logger.Debug(ctx, "cache hit", "file", fx.Name, "hash", key)
		return cached, nil
	}

	res, err = c.compile(ctx, fx.Name, fx.Root, opts)
	if err != nil {
		return nil, err
	}
	res.Hash = key
	c.store(key, fx.Name, res)
	return res, nil
}

// CompileFile loads and compiles the fixture at path.
func (c *Compiler) CompileFile(ctx context.Context, path string) (*Result, error) {
	fx, err := fixture.Load(path)
	if err != nil {
		c.metrics.Record(0, false, err)
		return nil, err
	}
	return c.CompileFixture(ctx, fx)
}

func (c *Compiler) compile(ctx context.Context, name string, root *ast.RootNode, opts codegen.Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	op := logging.StartOperation(c.logger, "compile")
	diags := transform.Transform(root, transform.Options{Bindings: opts.Bindings})
	gen := codegen.Generate(root, opts)

	res := &Result{
		Name:        name,
		Code:        gen.Code,
		Preamble:    gen.Preamble,
		Render:      gen.Render,
		Helpers:     helperNames(gen.Helpers),
		Components:  gen.Components,
		Directives:  gen.Directives,
		Diagnostics: diags.Diagnostics(),
	}
	res.Duration = op.End(ctx,
		"file", name,
		"helpers", len(res.Helpers),
		"bytes", len(res.Code),
		"diagnostics", len(res.Diagnostics))
	c.metrics.Record(res.Duration, false, nil)
	return res, nil
}

// logInternal runs after errors.Recover has turned an invariant panic into
// an error.
func (c *Compiler) logInternal(ctx context.Context, name string, errp *error) {
	if *errp != nil && errors.IsInternal(*errp) {
		c.metrics.Record(0, false, *errp)
		c.logger.Fatal(ctx, *errp, "invariant violated during compile", "file", name)
	}
}

// cachedResult is the cache payload. Diagnostic locations are flattened
// because SourceLocation is not serialized with the diagnostic itself.
type cachedResult struct {
	Result
	Locations []ast.SourceLocation `json:"locations,omitempty"`
}

func (c *Compiler) lookup(key string) (*Result, bool) {
	if c.cache == nil {
		return nil, false
	}
	data, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	var cr cachedResult
	if err := json.Unmarshal(data, &cr); err != nil {
		return nil, false
	}
	for i := range cr.Diagnostics {
		if i < len(cr.Locations) {
			cr.Diagnostics[i].Loc = cr.Locations[i]
		}
	}
	res := cr.Result
	res.CacheHit = true
	return &res, true
}

func (c *Compiler) store(key, source string, res *Result) {
	if c.cache == nil {
		return
	}
	cr := cachedResult{Result: *res}
	for _, d := range res.Diagnostics {
		cr.Locations = append(cr.Locations, d.Loc)
	}
	data, err := json.Marshal(cr)
	if err != nil {
		return
	}
	c.cache.Set(key, source, data)
}

// Fingerprint renders the options that influence generated code into a
// stable string. Bindings are excluded; fixture bytes already carry them.
func Fingerprint(opts codegen.Options) string {
	return strings.Join([]string{
		string(opts.Mode),
		fmt.Sprint(opts.Inline),
		opts.HelperPrefix,
		opts.RuntimeModule,
		opts.SSRRuntimeModule,
		opts.RuntimeGlobalName,
		fmt.Sprint(opts.CacheHandlers),
	}, "|")
}

func helperNames(helpers []ast.RuntimeHelper) []string {
	names := make([]string, len(helpers))
	for i, h := range helpers {
		names[i] = h.Name()
	}
	return names
}
