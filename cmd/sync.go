package cmd

import (
	"context"
	"fmt"

	"keys-monitor/core/config"
	"keys-monitor/core/logger"
	"keys-monitor/core/reconcile"
	"keys-monitor/feature/keys"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dryRunSync bool

// syncCmd runs a single pass without watching.
var syncCmd = &cobra.Command{
	Use:   "sync [file]",
	Short: "Merge the addon file into the sheet once",
	Long: `Parses the AstralKeys SavedVariables file, merges it into the shared sheet and
writes the result back. Without an argument the saved file is used.

Examples:
  # Preview the merge
  sync ~/WTF/Account/NAME/SavedVariables/AstralKeys.lua --dry-run

  # Sync the saved file
  sync`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Merge and report without writing")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	comp, err := buildComponents(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer comp.Close()

	path := comp.monitor.SavedPath()
	if len(args) == 1 {
		path = args[0]
	}

	result, err := comp.keys.Sync(ctx, path, keys.SyncOptions{DryRun: dryRunSync})
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	printPlanReport(l, result.Plan)
	if dryRunSync {
		l.Info("Dry-run mode: No changes were made.")
	}
	return nil
}

// printPlanReport prints a merge report using logger.
func printPlanReport(l *zap.Logger, plan *reconcile.Plan) {
	if plan == nil || plan.Empty {
		l.Info("No keys found in the addon file")
		return
	}

	s := plan.Summary
	l.Info("Merge report",
		zap.Int("fresh", s.Fresh),
		zap.Int("remote", s.Remote),
		zap.Int("inserted", s.Inserted),
		zap.Int("updated", s.Updated),
		zap.Int("kept", s.Kept),
		zap.Int("carried", s.Carried),
		zap.Int("total", s.Total),
	)

	// Show a sample of the decisions that changed something
	maxShow := 5
	shown := 0
	for _, action := range plan.Actions {
		if action.Type != reconcile.ActionInsert && action.Type != reconcile.ActionUpdate {
			continue
		}
		if shown == maxShow {
			l.Info("Additional changes not shown", zap.Int("count", s.Inserted+s.Updated-maxShow))
			break
		}
		l.Info("Change",
			zap.String("type", string(action.Type)),
			zap.String("unit", action.Unit),
			zap.String("local", action.Local),
			zap.String("remote", action.Remote),
		)
		shown++
	}
}
