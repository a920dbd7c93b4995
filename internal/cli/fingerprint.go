package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFingerprintCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint <file>...",
		Short: "Print the cache key of each annotation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadProject(*configPath); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, path := range args {
				directives, err := parseFile(path)
				if err != nil {
					return err
				}
				for _, d := range directives {
					hx, err := d.Canonical.Hex()
					if err != nil {
						return fmt.Errorf("%s:%d: %w", d.Marker.File, d.Marker.Line, err)
					}
					fmt.Fprintf(out, "%s  %s:%d %s\n", hx, d.Marker.File, d.Marker.Line, d.FuncName())
				}
			}
			return nil
		},
	}
}
