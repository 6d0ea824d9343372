package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/sfcc/internal/codegen"
	"github.com/conneroisu/sfcc/internal/config"
	"github.com/conneroisu/sfcc/internal/logging"
	"github.com/conneroisu/sfcc/internal/watcher"
)

const (
	divFixture = "children: [{element: div, children: [{text: hi}]}]"
	divModule  = `import { openBlock, createElementBlock } from "vue"

export function render(_ctx, _cache) {
  return (openBlock(), createElementBlock("div", null, "hi"))
}`
)

// captureOutput redirects cmd's output streams for the duration of the test.
func captureOutput(t *testing.T, cmd *cobra.Command) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	t.Cleanup(func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
	})
	return &out, &errOut
}

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveHandlerName(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"click", "onClick"},
		{"click.once.capture", "onClickCaptureOnce"},
		{"keyup.enter.passive", "onKeyupPassive"},
		{"update:modelValue", "onUpdate:modelValue"},
		{"select-koma", "onSelectKoma"},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			n, err := resolveHandlerName(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.Prop)
			assert.Equal(t, tt.spec, n.Event)
		})
	}

	_, err := resolveHandlerName(".once")
	assert.Error(t, err)
}

func TestRunHandlerName(t *testing.T) {
	out, _ := captureOutput(t, handlerNameCmd)

	require.NoError(t, runHandlerName(handlerNameCmd, []string{"click.once"}))
	assert.Equal(t, "onClickOnce\n", out.String())

	out.Reset()
	require.NoError(t, runHandlerName(handlerNameCmd, []string{"click", "focus.capture"}))
	assert.Contains(t, out.String(), "click")
	assert.Contains(t, out.String(), "onFocusCapture")

	handlerNameFlags.OutputFormat = "json"
	t.Cleanup(func() { handlerNameFlags.OutputFormat = "text" })
	out.Reset()
	require.NoError(t, runHandlerName(handlerNameCmd, []string{"click"}))

	var names []handlerName
	require.NoError(t, json.Unmarshal(out.Bytes(), &names))
	assert.Equal(t, []handlerName{{Event: "click", Prop: "onClick"}}, names)
}

func TestRunHelpers(t *testing.T) {
	resetViper(t)
	out, _ := captureOutput(t, helpersCmd)

	require.NoError(t, runHelpers(helpersCmd, nil))
	assert.Contains(t, out.String(), "NAME")
	assert.Contains(t, out.String(), "createElementBlock")
	assert.Contains(t, out.String(), "ssrInterpolate")

	helpersSSR = true
	helpersFlags.OutputFormat = "json"
	t.Cleanup(func() {
		helpersSSR = false
		helpersFlags.OutputFormat = "table"
	})
	out.Reset()
	require.NoError(t, runHelpers(helpersCmd, nil))

	var list []helperInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &list))
	require.NotEmpty(t, list)
	for _, h := range list {
		assert.Equal(t, "ssr", h.Kind, h.Name)
		assert.Equal(t, "vue/server-renderer", h.Module)
	}
}

func TestRunCompile(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	path := writeFixture(t, dir, "app.tmpl.yml", divFixture)
	out, _ := captureOutput(t, compileCmd)

	require.NoError(t, runCompile(compileCmd, []string{path}))
	assert.Equal(t, divModule+"\n", out.String())
}

func TestRunCompile_Directory(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	writeFixture(t, dir, "a.tmpl.yml", divFixture)
	writeFixture(t, dir, "b.tmpl.yaml", divFixture)
	writeFixture(t, dir, "notes.yml", "not a fixture")
	out, _ := captureOutput(t, compileCmd)

	require.NoError(t, runCompile(compileCmd, []string{dir}))
	assert.Contains(t, out.String(), "// "+filepath.Join(dir, "a.tmpl.yml"))
	assert.Contains(t, out.String(), "// "+filepath.Join(dir, "b.tmpl.yaml"))
	assert.NotContains(t, out.String(), "notes.yml")
}

func TestRunCompile_OutDirAndReport(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	path := writeFixture(t, dir, "app.tmpl.yml", divFixture)
	outDir := filepath.Join(dir, "dist")
	reportPath := filepath.Join(dir, "report.html")

	compileOutDir = outDir
	compileHTML = reportPath
	compileFlags.Quiet = true
	t.Cleanup(func() {
		compileOutDir = ""
		compileHTML = ""
		compileFlags.Quiet = false
	})
	out, _ := captureOutput(t, compileCmd)

	require.NoError(t, runCompile(compileCmd, []string{path}))
	assert.Empty(t, out.String())

	module, err := os.ReadFile(filepath.Join(outDir, "app.js"))
	require.NoError(t, err)
	assert.Equal(t, divModule+"\n", string(module))

	page, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), "createElementBlock")
}

func TestRunCompile_Errors(t *testing.T) {
	resetViper(t)
	captureOutput(t, compileCmd)

	err := runCompile(compileCmd, []string{t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no fixtures found")

	dir := t.TempDir()
	writeFixture(t, dir, "good.tmpl.yml", divFixture)
	writeFixture(t, dir, "bad.tmpl.yml", "children: [{element: div, text: x}]")
	err = runCompile(compileCmd, []string{dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 fixtures failed")
}

func TestRunCompile_Diagnostics(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	path := writeFixture(t, dir, "app.tmpl.yml", "children: [{element: div, props: [{dir: bind, arg: title}]}]")
	_, errOut := captureOutput(t, compileCmd)

	require.NoError(t, runCompile(compileCmd, []string{path}))
	assert.Contains(t, errOut.String(), path+": ")
}

func TestRebuilder(t *testing.T) {
	cfg := config.Default()
	c := newCompiler(cfg.CompilerOptions(), cfg, logging.NewNopLogger())
	var out, errOut bytes.Buffer
	rb := newRebuilder(c, logging.NewNopLogger(), &out, &errOut)

	dir := t.TempDir()
	path := writeFixture(t, dir, "app.tmpl.yml", divFixture)
	ctx := context.Background()
	created := []watcher.ChangeEvent{{Type: watcher.EventTypeCreated, Path: path}}

	require.NoError(t, rb.handle(ctx, created))
	assert.Equal(t, divModule+"\n", out.String())

	// Unchanged content is skipped.
	out.Reset()
	require.NoError(t, rb.handle(ctx, created))
	assert.Empty(t, out.String())

	writeFixture(t, dir, "app.tmpl.yml", "children: [{element: span, children: [{text: changed}]}]")
	out.Reset()
	require.NoError(t, rb.handle(ctx, []watcher.ChangeEvent{{Type: watcher.EventTypeModified, Path: path}}))
	assert.Contains(t, out.String(), `createElementBlock("span", null, "changed")`)

	require.NoError(t, os.Remove(path))
	out.Reset()
	require.NoError(t, rb.handle(ctx, []watcher.ChangeEvent{{Type: watcher.EventTypeDeleted, Path: path}}))
	assert.Empty(t, out.String())
	assert.Equal(t, 0, c.Cache().Len())
	assert.Empty(t, rb.hashes)
}

func TestRebuilder_Failures(t *testing.T) {
	cfg := config.Default()
	c := newCompiler(cfg.CompilerOptions(), cfg, logging.NewNopLogger())
	var out, errOut bytes.Buffer
	rb := newRebuilder(c, logging.NewNopLogger(), &out, &errOut)
	rb.outDir = t.TempDir()

	dir := t.TempDir()
	good := writeFixture(t, dir, "good.tmpl.yml", divFixture)
	bad := writeFixture(t, dir, "bad.tmpl.yml", "children: [{bogus: 1}]")

	err := rb.handle(context.Background(), []watcher.ChangeEvent{
		{Type: watcher.EventTypeCreated, Path: bad},
		{Type: watcher.EventTypeCreated, Path: good},
		{Type: watcher.EventTypeModified, Path: filepath.Join(dir, "missing.tmpl.yml")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 fixtures failed")
	assert.FileExists(t, filepath.Join(rb.outDir, "good.js"))
	assert.Empty(t, out.String())
}

func TestModuleName(t *testing.T) {
	tests := map[string]string{
		"app.tmpl.yml":             "app.js",
		"dir/list.tmpl.yaml":       "list.js",
		"/abs/plain.yml":           "plain.js",
		"weird.yaml":               "weird.js",
		"noext":                    "noext.js",
		"nested/a.b.tmpl.yml":      "a.b.js",
		filepath.Join("x", "y.js"): "y.js.js",
	}
	for in, want := range tests {
		assert.Equal(t, want, moduleName(in), in)
	}
}

func TestValidateFormatWithSuggestion(t *testing.T) {
	allowed := []string{"text", "json", "yaml"}

	assert.NoError(t, ValidateFormatWithSuggestion("json", allowed))

	err := ValidateFormatWithSuggestion("jsno", allowed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "json"?`)

	err = ValidateFormatWithSuggestion("markdown", allowed)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")
	assert.Contains(t, err.Error(), "text, json, yaml")
}

func TestStandardFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	flags := AddStandardFlags(cmd, []string{"text", "json"}, "compiler", "output")

	assert.Equal(t, "text", flags.OutputFormat)
	require.NoError(t, cmd.Flags().Set("mode", "function"))
	require.NoError(t, cmd.Flags().Set("helper-prefix", "_"))
	assert.Error(t, cmd.Flags().Set("mode", "modul"))

	opts := codegen.DefaultOptions()
	opts.CacheHandlers = true
	flags.ApplyCompiler(cmd, &opts)
	assert.Equal(t, codegen.ModeFunction, opts.Mode)
	assert.Equal(t, "_", opts.HelperPrefix)
	assert.True(t, opts.CacheHandlers, "unset flags leave options alone")

	flags.OutputFormat = "xml"
	assert.Error(t, flags.ValidateFlags())
	flags.OutputFormat = "json"
	flags.Quiet, flags.Verbose = true, true
	assert.Error(t, flags.ValidateFlags())
}

func TestRunVersion(t *testing.T) {
	out, _ := captureOutput(t, versionCmd)

	require.NoError(t, runVersion(versionCmd, nil))
	assert.Contains(t, out.String(), "Version: ")
	assert.Contains(t, out.String(), "Build type: ")

	versionFlags.OutputFormat = "json"
	t.Cleanup(func() { versionFlags.OutputFormat = "text" })
	out.Reset()
	require.NoError(t, runVersion(versionCmd, nil))

	var info map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.NotEmpty(t, info["go_version"])
	assert.NotEmpty(t, info["platform"])
}

func TestRunConfigShow(t *testing.T) {
	resetViper(t)
	viper.Set("compiler.mode", "function")
	out, _ := captureOutput(t, configShowCmd)

	require.NoError(t, runConfigShow(configShowCmd, nil))
	assert.Contains(t, out.String(), "mode: function")
	assert.Contains(t, out.String(), "runtime_module: vue")
	assert.Contains(t, out.String(), "debounce: 300ms")
}

func TestRunConfigValidate(t *testing.T) {
	dir := t.TempDir()
	out, _ := captureOutput(t, configValidateCmd)
	t.Cleanup(func() {
		configFile = ""
		configStrict = false
	})

	configFile = writeFixture(t, dir, "valid.yml", "compiler:\n  mode: module\n")
	require.NoError(t, runConfigValidate(configValidateCmd, nil))
	assert.Contains(t, out.String(), "is valid")

	configFile = writeFixture(t, dir, "warn.yml", "compiler:\n  mode: function\n  inline: true\n")
	out.Reset()
	require.NoError(t, runConfigValidate(configValidateCmd, nil))
	assert.Contains(t, out.String(), "compiler.inline")

	configStrict = true
	assert.Error(t, runConfigValidate(configValidateCmd, nil))

	configFile = writeFixture(t, dir, "bad.yml", "compiler:\n  mode: modul\n")
	out.Reset()
	err := runConfigValidate(configValidateCmd, nil)
	require.Error(t, err)
	assert.Contains(t, out.String(), "compiler.mode")

	configFile = filepath.Join(dir, "missing.yml")
	assert.Error(t, runConfigValidate(configValidateCmd, nil))
}
