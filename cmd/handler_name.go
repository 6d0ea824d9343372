package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/conneroisu/sfcc/internal/errors"
	"github.com/conneroisu/sfcc/internal/transform"
)

var handlerNameCmd = &cobra.Command{
	Use:   "handler-name <event[.modifiers]>...",
	Short: "Show the prop name a v-on handler compiles to",
	Long: `Print the handler prop name for each event. Listener option modifiers
(capture, once, passive) become suffixes; other modifiers do not affect the
name.

Examples:
  sfcc handler-name click                 # onClick
  sfcc handler-name click.once.capture    # onClickCaptureOnce
  sfcc handler-name update:modelValue     # onUpdate:modelValue`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHandlerName,
}

var handlerNameFlags *StandardFlags

func init() {
	rootCmd.AddCommand(handlerNameCmd)

	handlerNameFlags = AddStandardFlags(handlerNameCmd, []string{"text", "json", "yaml"}, "output")
}

type handlerName struct {
	Event string `json:"event" yaml:"event"`
	Prop  string `json:"prop"  yaml:"prop"`
}

// resolveHandlerName splits "event.mod1.mod2" and derives its prop name.
func resolveHandlerName(spec string) (handlerName, error) {
	parts := strings.Split(spec, ".")
	if parts[0] == "" {
		return handlerName{}, errors.NewValidationError(errors.ErrCodeValidationFailed,
			fmt.Sprintf("empty event name in %q", spec))
	}
	mods := transform.ParseEventModifiers(parts[1:])
	return handlerName{
		Event: spec,
		Prop:  transform.HandlerPropName(parts[0]) + mods.OptionSuffix(),
	}, nil
}

func runHandlerName(cmd *cobra.Command, args []string) error {
	if err := handlerNameFlags.ValidateFlags(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	names := make([]handlerName, 0, len(args))
	for _, arg := range args {
		n, err := resolveHandlerName(arg)
		if err != nil {
			return err
		}
		names = append(names, n)
	}

	if handlerNameFlags.OutputFormat != "text" {
		return writeStructured(cmd.OutOrStdout(), handlerNameFlags.OutputFormat, names)
	}
	if len(names) == 1 {
		fmt.Fprintln(cmd.OutOrStdout(), names[0].Prop)
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, n := range names {
		fmt.Fprintf(w, "%s\t%s\n", n.Event, n.Prop)
	}
	return w.Flush()
}
