package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/conneroisu/sfcc/internal/logging"
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)

// ValidationError represents a configuration validation error with suggestions
type ValidationError struct {
	Field       string
	Value       interface{}
	Message     string
	Suggestions []string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the result of configuration validation
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings) > 0
}

// String returns a formatted string of all validation issues
func (vr *ValidationResult) String() string {
	var builder strings.Builder

	if len(vr.Errors) > 0 {
		builder.WriteString("Validation errors:\n")
		for _, err := range vr.Errors {
			builder.WriteString(fmt.Sprintf("  - %s: %s\n", err.Field, err.Message))
			for _, suggestion := range err.Suggestions {
				builder.WriteString(fmt.Sprintf("    hint: %s\n", suggestion))
			}
		}
	}

	if len(vr.Warnings) > 0 {
		builder.WriteString("Validation warnings:\n")
		for _, warning := range vr.Warnings {
			builder.WriteString(fmt.Sprintf("  - %s: %s\n", warning.Field, warning.Message))
			for _, suggestion := range warning.Suggestions {
				builder.WriteString(fmt.Sprintf("    hint: %s\n", suggestion))
			}
		}
	}

	return builder.String()
}

func (vr *ValidationResult) addError(field string, value interface{}, msg string, suggestions ...string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Value: value, Message: msg, Suggestions: suggestions})
}

func (vr *ValidationResult) addWarning(field string, value interface{}, msg string, suggestions ...string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Value: value, Message: msg, Suggestions: suggestions})
}

// ValidateConfigWithDetails validates every section and collects all
// problems instead of stopping at the first.
func ValidateConfigWithDetails(config *Config) *ValidationResult {
	result := &ValidationResult{}

	validateCompilerConfig(&config.Compiler, result)
	validateWatchConfig(&config.Watch, result)
	validateOutputConfig(&config.Output, result)
	validateCacheConfig(&config.Cache, result)
	validateLogConfig(&config.Log, result)

	result.Valid = !result.HasErrors()
	return result
}

func validateCompilerConfig(c *CompilerConfig, result *ValidationResult) {
	switch c.Mode {
	case "module", "function":
	default:
		result.addError("compiler.mode", c.Mode, fmt.Sprintf("unknown mode %q", c.Mode),
			"Use \"module\" for ES module output", "Use \"function\" for a function body reading a global")
	}
	if c.HelperPrefix != "" && !identifierRe.MatchString(c.HelperPrefix) {
		result.addError("compiler.helper_prefix", c.HelperPrefix, "helper prefix must be a JavaScript identifier",
			"Use \"_\" to match the conventional runtime prefix")
	}
	if strings.TrimSpace(c.RuntimeModule) == "" {
		result.addError("compiler.runtime_module", c.RuntimeModule, "runtime module cannot be empty")
	}
	if !identifierRe.MatchString(c.RuntimeGlobalName) {
		result.addError("compiler.runtime_global_name", c.RuntimeGlobalName, "runtime global must be a JavaScript identifier")
	}
	if c.Inline && c.Mode == "function" {
		result.addWarning("compiler.inline", c.Inline, "inline output ignores function mode",
			"Set compiler.mode to \"module\" when compiling inline templates")
	}
}

func validateWatchConfig(c *WatchConfig, result *ValidationResult) {
	if c.Debounce < 0 {
		result.addError("watch.debounce", c.Debounce, "debounce cannot be negative")
	}
	for _, pattern := range c.Patterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.addError("watch.patterns", pattern, fmt.Sprintf("invalid glob: %v", err))
		}
	}
	for _, ignore := range c.Ignore {
		if err := validatePath(ignore); err != nil {
			result.addError("watch.ignore", ignore, err.Error())
		}
	}
}

func validateOutputConfig(c *OutputConfig, result *ValidationResult) {
	switch c.Format {
	case "text", "json", "yaml":
	default:
		result.addError("output.format", c.Format, fmt.Sprintf("unknown output format %q", c.Format),
			"Use one of: text, json, yaml")
	}
	if c.Dir != "" {
		if err := validatePath(c.Dir); err != nil {
			result.addError("output.dir", c.Dir, err.Error())
		}
	}
}

func validateCacheConfig(c *CacheConfig, result *ValidationResult) {
	if c.MaxSize < 0 {
		result.addError("cache.max_size", c.MaxSize, "cache size cannot be negative")
	}
	if c.TTL < 0 {
		result.addError("cache.ttl", c.TTL, "cache ttl cannot be negative")
	}
}

func validateLogConfig(c *LogConfig, result *ValidationResult) {
	if _, err := logging.ParseLevel(c.Level); err != nil {
		result.addError("log.level", c.Level, err.Error(), "Use one of: debug, info, warn, error")
	}
	switch c.Format {
	case "text", "json":
	default:
		result.addError("log.format", c.Format, fmt.Sprintf("unknown log format %q", c.Format))
	}
	if c.Dir != "" {
		if err := validatePath(c.Dir); err != nil {
			result.addError("log.dir", c.Dir, err.Error())
		}
	}
}
