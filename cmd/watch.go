package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conneroisu/sfcc/internal/cache"
	"github.com/conneroisu/sfcc/internal/compiler"
	"github.com/conneroisu/sfcc/internal/config"
	"github.com/conneroisu/sfcc/internal/errors"
	"github.com/conneroisu/sfcc/internal/fixture"
	"github.com/conneroisu/sfcc/internal/logging"
	"github.com/conneroisu/sfcc/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch [dirs...]",
	Aliases: []string{"w"},
	Short:   "Recompile fixtures when they change",
	Long: `Watch directories for fixture changes and recompile the changed files.
Rapid changes are debounced (watch.debounce, default 300ms) and files whose
content did not change are skipped.

Examples:
  sfcc watch                        # Watch the current directory
  sfcc watch ./templates --out-dir dist
  sfcc watch ./templates -o json`,
	RunE: runWatch,
}

var (
	watchFlags     *StandardFlags
	watchOutDir    string
	watchNoInitial bool
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchFlags = AddStandardFlags(watchCmd, []string{"text", "json", "yaml"}, "compiler", "output")
	watchCmd.Flags().StringVar(&watchOutDir, "out-dir", "", "Write generated modules to this directory")
	watchCmd.Flags().BoolVar(&watchNoInitial, "no-initial", false, "Skip compiling existing fixtures at startup")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if f := cmd.Flags().Lookup("output"); f == nil || !f.Changed {
		watchFlags.OutputFormat = cfg.Output.Format
	}
	if err := watchFlags.ValidateFlags(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := cfg.CompilerOptions()
	watchFlags.ApplyCompiler(cmd, &opts)
	rb := newRebuilder(newCompiler(opts, cfg, logger), logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
	rb.format = watchFlags.OutputFormat
	rb.outDir = cfg.Output.Dir
	if watchOutDir != "" {
		rb.outDir = watchOutDir
	}

	fw, err := watcher.NewFileWatcher(cfg.Watch.Debounce, logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Stop()

	fw.AddFilter(watcher.FixtureFilter(cfg.Watch.Patterns))
	fw.AddFilter(watcher.IgnoreFilter(cfg.Watch.Ignore))
	fw.AddFilter(watcher.NoHiddenFilter)
	fw.AddHandler(rb.handle)

	dirs := args
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	for _, dir := range dirs {
		if err := fw.AddRecursive(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !watchNoInitial {
		files, err := fixture.Discover(dirs, cfg.Watch.Patterns)
		if err != nil {
			return err
		}
		events := make([]watcher.ChangeEvent, 0, len(files))
		for _, f := range files {
			events = append(events, watcher.ChangeEvent{Type: watcher.EventTypeCreated, Path: f})
		}
		if err := rb.handle(ctx, events); err != nil {
			logger.Warn(ctx, err, "initial compile had failures")
		}
	}

	if err := fw.Start(ctx); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	logger.Info(ctx, "watching for fixture changes", "dirs", dirs, "debounce", cfg.Watch.Debounce.String())

	<-ctx.Done()
	logger.Info(context.Background(), "stopping watcher")
	return nil
}

// rebuilder recompiles the fixtures named in a batch of change events.
type rebuilder struct {
	compiler *compiler.Compiler
	logger   logging.Logger
	errs     *errors.ErrorHandler
	hasher   *cache.FileHasher
	out      io.Writer
	errOut   io.Writer
	format   string
	outDir   string

	mu     sync.Mutex
	hashes map[string]string
}

func newRebuilder(c *compiler.Compiler, logger logging.Logger, out, errOut io.Writer) *rebuilder {
	return &rebuilder{
		compiler: c,
		logger:   logger,
		errs:     errors.NewErrorHandler(logger),
		hasher:   cache.NewFileHasher(),
		out:      out,
		errOut:   errOut,
		format:   "text",
		hashes:   make(map[string]string),
	}
}

// handle compiles every changed fixture whose content hash moved and drops
// cached results for removed ones. It returns an error when any fixture
// failed; the rest of the batch is still processed.
func (rb *rebuilder) handle(ctx context.Context, events []watcher.ChangeEvent) error {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	var (
		results []*compiler.Result
		failed  int
		removed bool
	)
	for _, event := range events {
		if event.Gone() {
			removed = true
			delete(rb.hashes, event.Path)
			if rc := rb.compiler.Cache(); rc != nil {
				rc.InvalidateSource(event.Path)
			}
			rb.logger.Info(ctx, "fixture removed", "file", event.Path)
			continue
		}

		hash, err := rb.hasher.Hash(event.Path)
		if err != nil {
			failed++
			rb.logger.Error(ctx, err, "cannot read fixture", "file", event.Path)
			continue
		}
		if rb.hashes[event.Path] == hash {
			rb.logger.Debug(ctx, "fixture unchanged", "file", event.Path)
			continue
		}

		res, err := rb.compiler.CompileFile(ctx, event.Path)
		if err != nil {
			failed++
			rb.errs.Handle(ctx, err)
			continue
		}
		rb.hashes[event.Path] = hash
		results = append(results, res)
	}
	if removed {
		rb.hasher.Forget()
	}

	printDiagnostics(rb.errOut, results)
	if rb.outDir != "" {
		if err := writeModules(rb.outDir, results); err != nil {
			return err
		}
	} else if len(results) > 0 {
		if err := printResults(rb.out, rb.format, results, false); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d fixtures failed to compile", failed)
	}
	return nil
}
