// Package cli wires the casegen commands. Each command scans one or more
// source files for annotation markers and feeds them through the parser.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/casegen/casegen/config"
)

// Version is the tool version reported by --version and checked against
// a project's min_version.
const Version = "v0.3.0"

// NewRootCmd builds the casegen command tree
func NewRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "casegen",
		Short:         "Parse and expand test generation annotations",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFile, "Project configuration file")

	rootCmd.AddCommand(
		newInspectCmd(&configPath),
		newExpandCmd(&configPath),
		newFingerprintCmd(&configPath),
		newWatchCmd(&configPath),
	)
	return rootCmd
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}

// loadProject loads the project config and enforces its version floor
func loadProject(configPath string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.CheckVersion(Version); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}
