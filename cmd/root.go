// Package cmd provides the sfcc command-line interface.
//
// Configuration is read from several sources with this precedence:
//
//  1. Command-line flags (--config, --log-level, --mode, ...)
//  2. SFCC_CONFIG_FILE environment variable, naming the config file
//  3. Individual environment variables (SFCC_COMPILER_MODE, SFCC_LOG_LEVEL, ...)
//  4. The .sfcc.yml file in the working directory
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/sfcc/internal/cache"
	"github.com/conneroisu/sfcc/internal/codegen"
	"github.com/conneroisu/sfcc/internal/compiler"
	"github.com/conneroisu/sfcc/internal/config"
	"github.com/conneroisu/sfcc/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sfcc",
	Short: "Compile component templates into render functions",
	Long: `sfcc compiles template trees, described as YAML fixtures, into JavaScript
render functions that call the component runtime.

Quick Start:
  sfcc compile app.tmpl.yml          Print the generated render function
  sfcc compile ./templates -o json   Compile every fixture under a directory
  sfcc watch ./templates             Recompile fixtures as they change
  sfcc helpers                       List the runtime helpers
  sfcc handler-name click.once       Show the prop a v-on handler compiles to`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .sfcc.yml, can also use SFCC_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig points viper at the config file and enables SFCC_ environment
// overrides. A missing file is not an error; defaults apply.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("SFCC_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sfcc")
	}

	viper.SetEnvPrefix("SFCC")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the command logger. Records go to stderr, and also to a
// daily JSON file when log.dir is set. The returned func closes the file.
func newLogger(cfg *config.Config) (logging.Logger, func(), error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	console := logging.NewLogger(&logging.LoggerConfig{
		Level:     level,
		Format:    cfg.Log.Format,
		Output:    os.Stderr,
		Component: "cli",
	})
	if cfg.Log.Dir == "" {
		return console, func() {}, nil
	}

	file, err := logging.NewFileLogger(&logging.LoggerConfig{Level: level, Component: "cli"}, cfg.Log.Dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logging.NewMultiLogger(console, file), func() { _ = file.Close() }, nil
}

// newCompiler wires the compiler options, logger and result cache.
func newCompiler(opts codegen.Options, cfg *config.Config, logger logging.Logger) *compiler.Compiler {
	var rc *cache.ResultCache
	if cfg.Cache.MaxSize > 0 {
		rc = cache.NewResultCache(cfg.Cache.MaxSize, cfg.Cache.TTL)
	}
	return compiler.New(opts, logger, rc)
}

// commandContext returns the command context, which is nil when a run
// function is called directly.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
