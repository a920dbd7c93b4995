package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/casegen/casegen/config"
)

func newInspectCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Parse annotations and report their structure",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProject(*configPath)
			if err != nil {
				return err
			}
			for _, path := range args {
				if err := inspectFile(cmd.OutOrStdout(), path, cfg); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func inspectFile(out io.Writer, path string, cfg *config.Config) error {
	directives, err := parseFile(path)
	if err != nil {
		return err
	}
	for _, d := range directives {
		fmt.Fprintf(out, "%s:%d: %s", d.Marker.File, d.Marker.Line, d.Marker.Kind)
		if d.Marker.Func != "" {
			fmt.Fprintf(out, " (%s)", d.Marker.Func)
		}
		fmt.Fprintf(out, " items=%d", len(d.Canonical.Items))
		if names := modifierNames(d); len(names) > 0 {
			fmt.Fprintf(out, " modifiers=%s", strings.Join(names, ","))
		}
		fmt.Fprintln(out)

		for _, w := range d.Modifiers.Validate(cfg.ExtraModifiers...) {
			fmt.Fprintf(out, "  warning: %s\n", w)
		}
	}
	return nil
}

func modifierNames(d *Directive) []string {
	names := make([]string, 0, len(d.Modifiers.List))
	for _, mod := range d.Modifiers.List {
		names = append(names, mod.Name.Name)
	}
	return names
}
