package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newExpandCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "expand <file>...",
		Short: "List the tests each annotation generates",
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
					tests, err := d.Expand()
					if err != nil {
						return fmt.Errorf("%s:%d: %w", d.Marker.File, d.Marker.Line, err)
					}
					for _, test := range tests {
						fmt.Fprintf(out, "%s%s\n", test.Name, formatArgs(test.Args))
					}
				}
			}
			return nil
		},
	}
}

func formatArgs(args map[string]string) string {
	if len(args) == 0 {
		return ""
	}
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=%s", k, args[k])
	}
	return " [" + strings.Join(pairs, " ") + "]"
}
