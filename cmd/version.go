package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/sfcc/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display version information for sfcc: the release or development
version, commit, build time, Go version and platform.

Examples:
  sfcc version              # Detailed version info
  sfcc version --short      # One line
  sfcc version -o json      # As JSON`,
	RunE: runVersion,
}

var (
	versionFlags *StandardFlags
	versionShort bool
)

func init() {
	rootCmd.AddCommand(versionCmd)

	versionFlags = AddStandardFlags(versionCmd, []string{"text", "json", "yaml"}, "output")
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Show short version only")
}

func runVersion(cmd *cobra.Command, args []string) error {
	if err := versionFlags.ValidateFlags(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	info := version.Get()

	if versionFlags.OutputFormat != "text" {
		return writeStructured(cmd.OutOrStdout(), versionFlags.OutputFormat, info)
	}
	if versionShort {
		fmt.Fprintln(cmd.OutOrStdout(), info.Short())
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), info.String())
	if info.IsRelease() {
		fmt.Fprintln(cmd.OutOrStdout(), "Build type: release")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Build type: development")
	}
	return nil
}
