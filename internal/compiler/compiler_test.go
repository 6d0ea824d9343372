package compiler

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/sfcc/internal/ast"
	"github.com/conneroisu/sfcc/internal/cache"
	"github.com/conneroisu/sfcc/internal/codegen"
	"github.com/conneroisu/sfcc/internal/errors"
	"github.com/conneroisu/sfcc/internal/fixture"
	"github.com/conneroisu/sfcc/internal/logging"
)

const divFixture = "children: [{element: div, children: [{text: hi}]}]"

func newTestCompiler(rc *cache.ResultCache) (*Compiler, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.LevelDebug,
		Format: "json",
		Output: &buf,
	})
	return New(codegen.DefaultOptions(), logger, rc), &buf
}

func mustParse(t *testing.T, src string) *fixture.Fixture {
	t.Helper()
	fx, err := fixture.Parse("test.tmpl.yml", []byte(src))
	require.NoError(t, err)
	return fx
}

func TestCompile(t *testing.T) {
	c, logs := newTestCompiler(nil)
	res, err := c.Compile(context.Background(), mustParse(t, divFixture).Root)
	require.NoError(t, err)

	assert.Equal(t, `import { openBlock, createElementBlock } from "vue"

export function render(_ctx, _cache) {
  return (openBlock(), createElementBlock("div", null, "hi"))
}`, res.Code)
	assert.Equal(t, []string{"openBlock", "createElementBlock"}, res.Helpers)
	assert.Empty(t, res.Diagnostics)
	assert.False(t, res.CacheHit)
	assert.Contains(t, logs.String(), `"operation":"compile"`)
	assert.Equal(t, int64(1), c.Metrics().Snapshot().Succeeded)
}

func TestCompile_Diagnostics(t *testing.T) {
	c, _ := newTestCompiler(nil)
	root := mustParse(t, "children: [{element: div, props: [{dir: bind, arg: title}]}]").Root
	res, err := c.Compile(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, errors.ErrCodeVBindNoExpression, res.Diagnostics[0].Code)
	assert.Contains(t, res.Render, `(openBlock(), createElementBlock("div"))`)

	// Recompiling the same tree reports its warnings again.
	again, err := c.Compile(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, res.Diagnostics, again.Diagnostics)
}

func TestCompile_Assets(t *testing.T) {
	c, _ := newTestCompiler(nil)
	res, err := c.Compile(context.Background(), mustParse(t, `
children:
  - element: my-panel
    props: [{dir: tooltip, exp: tip}]
`).Root)
	require.NoError(t, err)
	assert.Equal(t, []string{"my-panel"}, res.Components)
	assert.Equal(t, []string{"tooltip"}, res.Directives)
	assert.Contains(t, res.Render, `const _component_my_panel = resolveComponent("my-panel")`)
}

func TestCompile_CanceledContext(t *testing.T) {
	c, _ := newTestCompiler(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Compile(ctx, ast.NewRoot())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompile_InvariantPanics(t *testing.T) {
	c, _ := newTestCompiler(nil)
	assert.Panics(t, func() {
		_, _ = c.Compile(context.Background(), ast.NewRoot(&ast.IfNode{}))
	})
}

func TestSafeCompile(t *testing.T) {
	c, logs := newTestCompiler(nil)
	res, err := c.SafeCompile(context.Background(), ast.NewRoot(&ast.IfNode{}))

	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, errors.IsInternal(err))
	assert.Contains(t, logs.String(), `"fatal":true`)
	assert.Equal(t, int64(1), c.Metrics().Snapshot().Failed)

	res, err = c.SafeCompile(context.Background(), ast.NewRoot())
	require.NoError(t, err)
	assert.Contains(t, res.Render, "return null")
}

func TestCompileFixture_Cache(t *testing.T) {
	rc := cache.NewResultCache(1<<20, time.Hour)
	c, _ := newTestCompiler(rc)
	src := "children: [{element: div, props: [{dir: bind, arg: title}]}]"

	first, err := c.CompileFixture(context.Background(), mustParse(t, src))
	require.NoError(t, err)
	assert.False(t, first.CacheHit)
	assert.NotEmpty(t, first.Hash)

	second, err := c.CompileFixture(context.Background(), mustParse(t, src))
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Helpers, second.Helpers)
	assert.Equal(t, first.Diagnostics, second.Diagnostics)

	snap := c.Metrics().Snapshot()
	assert.Equal(t, int64(2), snap.Succeeded)
	assert.Equal(t, int64(1), snap.CacheHits)
	assert.Equal(t, int64(1), rc.Stats().Hits)
}

func TestCompileFixture_OptionsChangeKey(t *testing.T) {
	rc := cache.NewResultCache(1<<20, time.Hour)
	logger := logging.NewNopLogger()
	module := New(codegen.DefaultOptions(), logger, rc)
	fnOpts := codegen.DefaultOptions()
	fnOpts.Mode = codegen.ModeFunction
	function := New(fnOpts, logger, rc)

	a, err := module.CompileFixture(context.Background(), mustParse(t, divFixture))
	require.NoError(t, err)
	b, err := function.CompileFixture(context.Background(), mustParse(t, divFixture))
	require.NoError(t, err)

	assert.False(t, b.CacheHit)
	assert.NotEqual(t, a.Hash, b.Hash)
	assert.Contains(t, b.Preamble, "= Vue")
}

func TestCompileFixture_Bindings(t *testing.T) {
	c, _ := newTestCompiler(nil)
	res, err := c.CompileFixture(context.Background(), mustParse(t, `
bindings: {Panel: setup-const}
children: [{element: Panel}]
`))
	require.NoError(t, err)
	assert.Empty(t, res.Components)
	assert.Contains(t, res.Render, `$setup["Panel"]`)
}

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.tmpl.yml")
	require.NoError(t, os.WriteFile(path, []byte(divFixture), 0o600))

	c, _ := newTestCompiler(nil)
	res, err := c.CompileFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, res.Name)

	_, err = c.CompileFile(context.Background(), filepath.Join(dir, "missing.tmpl.yml"))
	require.Error(t, err)
	assert.Equal(t, int64(1), c.Metrics().Snapshot().Failed)
}

func TestFingerprint(t *testing.T) {
	opts := codegen.DefaultOptions()
	base := Fingerprint(opts)
	assert.Equal(t, base, Fingerprint(codegen.DefaultOptions()))

	opts.CacheHandlers = true
	assert.NotEqual(t, base, Fingerprint(opts))

	opts = codegen.DefaultOptions()
	opts.Bindings = ast.BindingMetadata{"x": ast.BindingSetupConst}
	assert.Equal(t, base, Fingerprint(opts))
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.Record(10*time.Millisecond, false, nil)
	m.Record(30*time.Millisecond, false, nil)
	m.Record(0, true, nil)
	m.Record(0, false, assert.AnError)

	snap := m.Snapshot()
	assert.Equal(t, int64(4), snap.TotalCompiles)
	assert.Equal(t, int64(3), snap.Succeeded)
	assert.Equal(t, int64(1), snap.Failed)
	assert.Equal(t, int64(1), snap.CacheHits)
	assert.Equal(t, 20*time.Millisecond, snap.AverageDuration)

	m.Reset()
	assert.Equal(t, MetricsSnapshot{}, m.Snapshot())
}

func TestCompileAll(t *testing.T) {
	c, _ := newTestCompiler(cache.NewResultCache(1<<20, 0))
	dir := t.TempDir()

	var paths []string
	for i := range 12 {
		path := filepath.Join(dir, fmt.Sprintf("f%02d.tmpl.yml", i))
		content := fmt.Sprintf("children: [{element: p, children: [{text: n%d}]}]", i)
		if i == 5 {
			content = "children: [{bogus: 1}]"
		}
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		paths = append(paths, path)
	}

	results := c.CompileAll(context.Background(), paths, 4)
	require.Len(t, results, len(paths))
	for i, fr := range results {
		assert.Equal(t, paths[i], fr.Path)
		if i == 5 {
			assert.Error(t, fr.Err)
			continue
		}
		require.NoError(t, fr.Err)
		assert.Contains(t, fr.Result.Code, fmt.Sprintf(`"n%d"`, i))
	}
	snap := c.Metrics().Snapshot()
	assert.Equal(t, int64(11), snap.Succeeded)
	assert.Equal(t, int64(1), snap.Failed)
}

func TestCompileAll_Canceled(t *testing.T) {
	c, _ := newTestCompiler(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := c.CompileAll(ctx, []string{"a.tmpl.yml", "b.tmpl.yml"}, 0)
	require.Len(t, results, 2)
	for _, fr := range results {
		assert.Error(t, fr.Err)
		assert.Nil(t, fr.Result)
	}
	assert.Empty(t, c.CompileAll(context.Background(), nil, 3))
}
