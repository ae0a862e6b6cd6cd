package cmd

import (
	"fmt"
	"os"

	"keys-monitor/core/config"
	"keys-monitor/core/settings"

	"github.com/spf13/cobra"
)

// settingsCmd shows the saved settings.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the saved addon file",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := settingsStore()
		if err != nil {
			return err
		}
		s := store.Load()
		fmt.Fprintf(cmd.OutOrStdout(), "settings: %s\nfile_path: %s\n", store.Path(), s.FilePath)
		return nil
	},
}

// settingsSetCmd saves the addon file used by sync and --autostart.
var settingsSetCmd = &cobra.Command{
	Use:   "set <file>",
	Short: "Save the addon file to monitor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := os.Stat(args[0])
		if err != nil || !info.Mode().IsRegular() {
			return fmt.Errorf("file not found: %s", args[0])
		}

		store, err := settingsStore()
		if err != nil {
			return err
		}
		if err := store.Save(settings.Settings{FilePath: args[0]}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", args[0])
		return nil
	},
}

func settingsStore() (*settings.Store, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return settings.NewStore(cfg.Settings, nil), nil
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
	RootCmd.AddCommand(settingsCmd)
}
