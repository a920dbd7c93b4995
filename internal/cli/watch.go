package cli

import (
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/casegen/casegen/config"
)

func newWatchCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>...",
		Short: "Re-inspect annotations whenever a file changes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProject(*configPath)
			if err != nil {
				return err
			}
			return watch(cmd, args, cfg)
		},
	}
}

func watch(cmd *cobra.Command, paths []string, cfg *config.Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	out := cmd.OutOrStdout()
	for _, path := range paths {
		if err := inspectFile(out, path, cfg); err != nil {
			return err
		}
		if err := watcher.Add(path); err != nil {
			return err
		}
	}

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			slog.Info("file changed", "path", event.Name)
			if err := inspectFile(out, event.Name, cfg); err != nil {
				// Keep watching through transient parse failures; the
				// next save may fix them.
				slog.Warn("inspect failed", "path", event.Name, "error", err)
			}
			// Editors often replace the file; re-arm the watch.
			if !watchListContains(watcher.WatchList(), event.Name) {
				if err := watcher.Add(event.Name); err != nil {
					slog.Warn("re-watch failed", "path", event.Name, "error", err)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)
		}
	}
}

func watchListContains(list []string, path string) bool {
	for _, p := range list {
		if p == path {
			return true
		}
	}
	return false
}
