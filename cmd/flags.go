package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/conneroisu/sfcc/internal/codegen"
)

// StandardFlags provides consistent flag definitions across commands
type StandardFlags struct {
	// Compiler flags
	Mode          string
	Inline        bool
	HelperPrefix  string
	CacheHandlers bool

	// Output flags
	OutputFormat string
	Verbose      bool
	Quiet        bool

	formats []string
}

// AddStandardFlags adds standard flags to a command. Each flag type names
// a group: "compiler" or "output". The first format is the default output
// format.
func AddStandardFlags(cmd *cobra.Command, formats []string, flagTypes ...string) *StandardFlags {
	flags := &StandardFlags{formats: formats}

	for _, flagType := range flagTypes {
		switch flagType {
		case "compiler":
			addCompilerFlags(cmd, flags)
		case "output":
			addOutputFlags(cmd, flags)
		}
	}

	return flags
}

func addCompilerFlags(cmd *cobra.Command, flags *StandardFlags) {
	cmd.Flags().StringVarP(&flags.Mode, "mode", "m", "", "Output mode (module|function), overrides compiler.mode")
	cmd.Flags().BoolVar(&flags.Inline, "inline", false, "Emit an inline render arrow function")
	cmd.Flags().StringVar(&flags.HelperPrefix, "helper-prefix", "", "Prefix for runtime helper identifiers")
	cmd.Flags().BoolVar(&flags.CacheHandlers, "cache-handlers", false, "Cache inline event handlers")

	AddFlagValidation(cmd, "mode", func(mode string) error {
		return ValidateFormatWithSuggestion(mode, []string{string(codegen.ModeModule), string(codegen.ModeFunction)})
	})
}

func addOutputFlags(cmd *cobra.Command, flags *StandardFlags) {
	def := "text"
	if len(flags.formats) > 0 {
		def = flags.formats[0]
	}
	cmd.Flags().StringVarP(&flags.OutputFormat, "output", "o", def,
		fmt.Sprintf("Output format (%s)", strings.Join(flags.formats, "|")))
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable verbose output")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress output")
}

// ApplyCompiler overlays compiler flags the user actually set onto opts.
func (f *StandardFlags) ApplyCompiler(cmd *cobra.Command, opts *codegen.Options) {
	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}
	if changed("mode") {
		opts.Mode = codegen.Mode(f.Mode)
	}
	if changed("inline") {
		opts.Inline = f.Inline
	}
	if changed("helper-prefix") {
		opts.HelperPrefix = f.HelperPrefix
	}
	if changed("cache-handlers") {
		opts.CacheHandlers = f.CacheHandlers
	}
}

// ValidateFlags validates flag combinations and values
func (f *StandardFlags) ValidateFlags() error {
	if len(f.formats) > 0 {
		if err := ValidateFormatWithSuggestion(f.OutputFormat, f.formats); err != nil {
			return err
		}
	}

	if f.Quiet && f.Verbose {
		return fmt.Errorf("cannot specify both --quiet and --verbose")
	}

	return nil
}

// AddFlagValidation adds validation for a specific flag
func AddFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	flag := cmd.Flags().Lookup(flagName)
	if flag == nil {
		return
	}

	flag.Value = &validatingValue{
		Value:       flag.Value,
		validator:   validator,
		originalSet: flag.Value.Set,
	}
}

type validatingValue struct {
	pflag.Value
	validator   func(string) error
	originalSet func(string) error
}

func (v *validatingValue) Set(val string) error {
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return err
		}
	}
	return v.originalSet(val)
}

// ValidateFormatWithSuggestion accepts one of allowed and otherwise names
// the closest allowed value.
func ValidateFormatWithSuggestion(value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}

	best, bestDist := "", -1
	for _, a := range allowed {
		if d := levenshtein(strings.ToLower(value), a); bestDist < 0 || d < bestDist {
			best, bestDist = a, d
		}
	}
	msg := fmt.Sprintf("invalid value %q, must be one of: %s", value, strings.Join(allowed, ", "))
	if best != "" && bestDist <= 2 {
		msg += fmt.Sprintf(" (did you mean %q?)", best)
	}
	return errors.New(msg)
}

func levenshtein(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
