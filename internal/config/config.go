// Package config loads sfcc configuration with Viper from .sfcc.yml,
// SFCC_ environment variables and command-line flags.
//
// Load applies defaults for anything left unset and rejects values that
// would make code generation or the watcher misbehave.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/conneroisu/sfcc/internal/codegen"
	"github.com/conneroisu/sfcc/internal/errors"
)

type Config struct {
	Compiler    CompilerConfig `json:"compiler" mapstructure:"compiler" yaml:"compiler"`
	Watch       WatchConfig    `json:"watch" mapstructure:"watch" yaml:"watch"`
	Output      OutputConfig   `json:"output" mapstructure:"output" yaml:"output"`
	Cache       CacheConfig    `json:"cache" mapstructure:"cache" yaml:"cache"`
	Log         LogConfig      `json:"log" mapstructure:"log" yaml:"log"`
	TargetFiles []string       `json:"-" mapstructure:"-" yaml:"-"` // CLI arguments, not from config file
}

type CompilerConfig struct {
	Mode              string `json:"mode" mapstructure:"mode" yaml:"mode"`
	Inline            bool   `json:"inline" mapstructure:"inline" yaml:"inline"`
	HelperPrefix      string `json:"helper_prefix" mapstructure:"helper_prefix" yaml:"helper_prefix"`
	RuntimeModule     string `json:"runtime_module" mapstructure:"runtime_module" yaml:"runtime_module"`
	SSRRuntimeModule  string `json:"ssr_runtime_module" mapstructure:"ssr_runtime_module" yaml:"ssr_runtime_module"`
	RuntimeGlobalName string `json:"runtime_global_name" mapstructure:"runtime_global_name" yaml:"runtime_global_name"`
	CacheHandlers     bool   `json:"cache_handlers" mapstructure:"cache_handlers" yaml:"cache_handlers"`
}

type WatchConfig struct {
	Debounce time.Duration `json:"debounce" mapstructure:"debounce" yaml:"debounce"`
	Patterns []string      `json:"patterns" mapstructure:"patterns" yaml:"patterns"`
	Ignore   []string      `json:"ignore" mapstructure:"ignore" yaml:"ignore"`
}

type OutputConfig struct {
	Format string `json:"format" mapstructure:"format" yaml:"format"`
	// Dir receives one .js file per compiled fixture; empty prints to stdout.
	Dir string `json:"dir" mapstructure:"dir" yaml:"dir"`
}

type CacheConfig struct {
	MaxSize int64         `json:"max_size" mapstructure:"max_size" yaml:"max_size"`
	TTL     time.Duration `json:"ttl" mapstructure:"ttl" yaml:"ttl"`
}

type LogConfig struct {
	Level  string `json:"level" mapstructure:"level" yaml:"level"`
	Format string `json:"format" mapstructure:"format" yaml:"format"`
	Dir    string `json:"dir" mapstructure:"dir" yaml:"dir"`
}

const (
	DefaultDebounce   = 300 * time.Millisecond
	DefaultCacheSize  = 8 << 20
	DefaultCacheTTL   = 10 * time.Minute
	DefaultOutputKind = "text"
)

// Load reads the configuration currently held by viper.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, errors.WrapConfig(err, "cannot decode configuration")
	}

	// viper reports slices set through flags or env only via GetStringSlice
	if viper.IsSet("watch.patterns") && len(config.Watch.Patterns) == 0 {
		config.Watch.Patterns = viper.GetStringSlice("watch.patterns")
	}
	if viper.IsSet("watch.ignore") && len(config.Watch.Ignore) == 0 {
		config.Watch.Ignore = viper.GetStringSlice("watch.ignore")
	}

	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Read decodes a single configuration file and fills in defaults without
// validating, so callers can report every problem at once.
func Read(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeFileNotFound, "failed to read configuration file "+path)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.WrapConfig(err, "failed to parse configuration")
	}
	applyDefaults(&config)
	return &config, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	var config Config
	applyDefaults(&config)
	return &config
}

func applyDefaults(config *Config) {
	defaults := codegen.DefaultOptions()
	if config.Compiler.Mode == "" {
		config.Compiler.Mode = string(defaults.Mode)
	}
	if config.Compiler.RuntimeModule == "" {
		config.Compiler.RuntimeModule = defaults.RuntimeModule
	}
	if config.Compiler.SSRRuntimeModule == "" {
		config.Compiler.SSRRuntimeModule = defaults.SSRRuntimeModule
	}
	if config.Compiler.RuntimeGlobalName == "" {
		config.Compiler.RuntimeGlobalName = defaults.RuntimeGlobalName
	}

	if config.Watch.Debounce == 0 {
		config.Watch.Debounce = DefaultDebounce
	}
	if len(config.Watch.Patterns) == 0 {
		config.Watch.Patterns = []string{"*.tmpl.yml", "*.tmpl.yaml"}
	}
	if len(config.Watch.Ignore) == 0 {
		config.Watch.Ignore = []string{"node_modules", ".git"}
	}

	if config.Output.Format == "" {
		config.Output.Format = DefaultOutputKind
	}

	if config.Cache.MaxSize == 0 {
		config.Cache.MaxSize = DefaultCacheSize
	}
	if config.Cache.TTL == 0 {
		config.Cache.TTL = DefaultCacheTTL
	}

	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}
}

// CompilerOptions maps the compiler section to code generation options.
func (c *Config) CompilerOptions() codegen.Options {
	return codegen.Options{
		Mode:              codegen.Mode(c.Compiler.Mode),
		Inline:            c.Compiler.Inline,
		HelperPrefix:      c.Compiler.HelperPrefix,
		RuntimeModule:     c.Compiler.RuntimeModule,
		SSRRuntimeModule:  c.Compiler.SSRRuntimeModule,
		RuntimeGlobalName: c.Compiler.RuntimeGlobalName,
		CacheHandlers:     c.Compiler.CacheHandlers,
	}
}

// validateConfig returns the first validation error, if any.
func validateConfig(config *Config) error {
	result := ValidateConfigWithDetails(config)
	if result.HasErrors() {
		first := result.Errors[0]
		return errors.NewConfigError(errors.ErrCodeConfigInvalid, "invalid configuration: "+first.Error()).
			WithContext("field", first.Field)
	}
	return nil
}

// validatePath validates a file path for security
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path contains traversal: %s", path)
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}
