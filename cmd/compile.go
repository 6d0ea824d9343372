package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conneroisu/sfcc/internal/compiler"
	"github.com/conneroisu/sfcc/internal/config"
	"github.com/conneroisu/sfcc/internal/errors"
	"github.com/conneroisu/sfcc/internal/fixture"
	"github.com/conneroisu/sfcc/internal/report"
)

var compileCmd = &cobra.Command{
	Use:     "compile [paths...]",
	Aliases: []string{"c"},
	Short:   "Compile template fixtures into render functions",
	Long: `Compile YAML template fixtures into render-function modules.

Paths may be fixture files or directories; directories are searched for
files matching watch.patterns (default *.tmpl.yml and *.tmpl.yaml).

Examples:
  sfcc compile app.tmpl.yml                  # Print the module
  sfcc compile ./templates -o json           # All fixtures as JSON
  sfcc compile ./templates --out-dir dist    # Write one .js file per fixture
  sfcc compile app.tmpl.yml -m function      # Function mode preamble
  sfcc compile ./templates -j 4              # Four compile workers
  sfcc compile ./templates --html report.html -q`,
	RunE: runCompile,
}

var (
	compileFlags  *StandardFlags
	compileHTML   string
	compileOutDir string
	compileJobs   int
)

func init() {
	rootCmd.AddCommand(compileCmd)

	compileFlags = AddStandardFlags(compileCmd, []string{"text", "json", "yaml"}, "compiler", "output")
	compileCmd.Flags().StringVar(&compileHTML, "html", "", "Write an HTML report to this file")
	compileCmd.Flags().StringVar(&compileOutDir, "out-dir", "", "Write generated modules to this directory")
	compileCmd.Flags().IntVarP(&compileJobs, "jobs", "j", 0, "Fixtures compiled in parallel (default GOMAXPROCS)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.TargetFiles = args

	if f := cmd.Flags().Lookup("output"); f == nil || !f.Changed {
		compileFlags.OutputFormat = cfg.Output.Format
	}
	if err := compileFlags.ValidateFlags(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	outDir := cfg.Output.Dir
	if compileOutDir != "" {
		outDir = compileOutDir
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	paths := cfg.TargetFiles
	if len(paths) == 0 {
		paths = []string{"."}
	}
	files, err := fixture.Discover(paths, cfg.Watch.Patterns)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no fixtures found in %s", strings.Join(paths, ", "))
	}

	opts := cfg.CompilerOptions()
	compileFlags.ApplyCompiler(cmd, &opts)
	c := newCompiler(opts, cfg, logger)
	ctx := commandContext(cmd)
	handler := errors.NewErrorHandler(logger)

	var results []*compiler.Result
	failed := 0
	for _, fr := range c.CompileAll(ctx, files, compileJobs) {
		if fr.Err != nil {
			failed++
			handler.Handle(ctx, fr.Err)
			continue
		}
		results = append(results, fr.Result)
	}

	printDiagnostics(cmd.ErrOrStderr(), results)

	if outDir != "" {
		if err := writeModules(outDir, results); err != nil {
			return err
		}
	}
	if compileHTML != "" {
		if err := writeReport(cmd, compileHTML, c.Metrics().Snapshot(), results); err != nil {
			return err
		}
	}
	if !compileFlags.Quiet {
		if err := printResults(cmd.OutOrStdout(), compileFlags.OutputFormat, results, compileFlags.Verbose); err != nil {
			return err
		}
	}

	logger.Info(ctx, "compile finished", "files", len(files), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d fixtures failed to compile", failed, len(files))
	}
	return nil
}

func printResults(w io.Writer, format string, results []*compiler.Result, verbose bool) error {
	if format != "text" {
		return writeStructured(w, format, results)
	}
	for i, res := range results {
		if len(results) > 1 || verbose {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "// %s\n", res.Name)
		}
		if verbose {
			fmt.Fprintf(w, "// helpers: %s\n", strings.Join(res.Helpers, ", "))
		}
		fmt.Fprintln(w, res.Code)
	}
	return nil
}

func printDiagnostics(w io.Writer, results []*compiler.Result) {
	for _, res := range results {
		for _, d := range res.Diagnostics {
			fmt.Fprintf(w, "%s: %s\n", res.Name, d.Error())
		}
	}
}

// moduleName maps a fixture path to the file its module is written to.
func moduleName(fixturePath string) string {
	base := filepath.Base(fixturePath)
	for _, suffix := range []string{".tmpl.yml", ".tmpl.yaml", ".yml", ".yaml"} {
		if strings.HasSuffix(base, suffix) {
			base = strings.TrimSuffix(base, suffix)
			break
		}
	}
	return base + ".js"
}

func writeModules(dir string, results []*compiler.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, res := range results {
		path := filepath.Join(dir, moduleName(res.Name))
		if err := os.WriteFile(path, []byte(res.Code+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

func writeReport(cmd *cobra.Command, path string, metrics compiler.MetricsSnapshot, results []*compiler.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer f.Close()

	page := report.Page(report.Summary{Metrics: metrics}, results)
	if err := page.Render(commandContext(cmd), f); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
