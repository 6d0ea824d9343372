package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/conneroisu/sfcc/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect sfcc configuration",
	Long: `Inspect and validate sfcc configuration.

Examples:
  sfcc config show                     # Resolved configuration as YAML
  sfcc config show -o json             # As JSON
  sfcc config validate                 # Validate .sfcc.yml
  sfcc config validate --file ci.yml --strict`,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Validate a configuration file and report every error and warning with
suggestions. With --strict, warnings fail validation too.`,
	RunE: runConfigValidate,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Long: `Display the configuration after defaults, the configuration file,
SFCC_ environment variables and flags have been applied.`,
	RunE: runConfigShow,
}

var (
	configShowFlags *StandardFlags
	configFile      string
	configStrict    bool
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)

	configValidateCmd.Flags().
		StringVarP(&configFile, "file", "f", "", "Configuration file to validate (default: .sfcc.yml)")
	configValidateCmd.Flags().BoolVar(&configStrict, "strict", false, "Treat warnings as errors")

	configShowFlags = AddStandardFlags(configShowCmd, []string{"yaml", "json"}, "output")
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	target := configFile
	if target == "" {
		target = ".sfcc.yml"
	}
	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("configuration file %s does not exist; use --file to pick another", target)
		}
		return err
	}

	cfg, err := config.Read(target)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	validation := config.ValidateConfigWithDetails(cfg)
	if !validation.HasErrors() && !validation.HasWarnings() {
		fmt.Fprintf(out, "%s is valid\n", target)
		return nil
	}

	fmt.Fprint(out, validation.String())
	switch {
	case validation.HasErrors():
		return fmt.Errorf("configuration validation failed with %d errors", len(validation.Errors))
	case configStrict:
		return fmt.Errorf("configuration validation failed in strict mode with %d warnings",
			len(validation.Warnings))
	}
	fmt.Fprintf(out, "%s is valid with %d warnings\n", target, len(validation.Warnings))
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if err := configShowFlags.ValidateFlags(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg == nil {
		return errors.New("no configuration loaded")
	}
	return writeStructured(cmd.OutOrStdout(), configShowFlags.OutputFormat, cfg)
}
