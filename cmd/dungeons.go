package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"keys-monitor/core/config"
	"keys-monitor/core/logger"
	"keys-monitor/feature/dungeons"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var offlineDungeons bool

// dungeonsCmd prints the dungeon name table.
var dungeonsCmd = &cobra.Command{
	Use:   "dungeons",
	Short: "Fetch and print the dungeon names",
	Long:  `Downloads the AstralKeys dungeon list and prints the id to name table used for location_name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()

		resolver := dungeons.NewResolver(cfg.Dungeons.SourceURL, cfg.Dungeons.Timeout(), l)
		if !offlineDungeons {
			if err := resolver.Refresh(context.Background()); err != nil {
				l.Warn("Showing built-in names", zap.Error(err))
			}
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "ID\tNAME\n")
		for _, e := range dungeons.Entries(resolver.Snapshot()) {
			fmt.Fprintf(w, "%d\t%s\n", e.ID, e.Name)
		}
		fmt.Fprintf(w, "\nsource: %s\n", resolver.Source())
		return w.Flush()
	},
}

func init() {
	dungeonsCmd.Flags().BoolVar(&offlineDungeons, "offline", false, "Print the built-in table without fetching")
	RootCmd.AddCommand(dungeonsCmd)
}
