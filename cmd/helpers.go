package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/conneroisu/sfcc/internal/ast"
	"github.com/conneroisu/sfcc/internal/config"
)

var helpersCmd = &cobra.Command{
	Use:   "helpers",
	Short: "List the runtime helpers generated code may import",
	Long: `List every runtime helper known to the code generator together with the
module it is imported from.

Examples:
  sfcc helpers                  # Table of all helpers
  sfcc helpers --ssr            # Only server-renderer helpers
  sfcc helpers -o json          # As JSON`,
	RunE: runHelpers,
}

var (
	helpersFlags *StandardFlags
	helpersSSR   bool
)

func init() {
	rootCmd.AddCommand(helpersCmd)

	helpersFlags = AddStandardFlags(helpersCmd, []string{"table", "json", "yaml"}, "output")
	helpersCmd.Flags().BoolVar(&helpersSSR, "ssr", false, "Only list server-renderer helpers")
}

type helperInfo struct {
	Name   string `json:"name"   yaml:"name"`
	Kind   string `json:"kind"   yaml:"kind"`
	Module string `json:"module" yaml:"module"`
}

func runHelpers(cmd *cobra.Command, args []string) error {
	if err := helpersFlags.ValidateFlags(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	opts := cfg.CompilerOptions()

	var list []helperInfo
	for _, h := range ast.AllHelpers() {
		if helpersSSR && !h.IsSSR() {
			continue
		}
		info := helperInfo{Name: h.Name(), Kind: "runtime", Module: opts.RuntimeModule}
		if h.IsSSR() {
			info.Kind, info.Module = "ssr", opts.SSRRuntimeModule
		}
		list = append(list, info)
	}

	if helpersFlags.OutputFormat != "table" {
		return writeStructured(cmd.OutOrStdout(), helpersFlags.OutputFormat, list)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tMODULE")
	fmt.Fprintln(w, "----\t----\t------")
	for _, info := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, info.Kind, info.Module)
	}
	return w.Flush()
}
