package reconcile

import (
	"context"
	"fmt"
)

// ReconcileWithPlan loads the remote snapshot and merges fresh records into it.
// It does NOT write anything; use ApplyPlan for that.
// An empty fresh set returns an empty plan without touching the store.
func ReconcileWithPlan(
	ctx context.Context,
	engine *Engine,
	store Store,
	fresh []Record,
	timestamps map[string]string,
) (*Plan, error) {
	if len(dedupe(fresh)) == 0 {
		return engine.Merge(nil, nil, nil), nil
	}

	snapshot, err := store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load remote rows: %w", err)
	}

	return engine.Merge(fresh, timestamps, snapshot), nil
}

// ApplyPlan writes the plan's rows to the store.
// Returns whether a write happened. Empty plans and dry runs never write.
func ApplyPlan(ctx context.Context, store Store, plan *Plan, opts ApplyOptions) (bool, error) {
	if plan == nil || plan.Empty || len(plan.Rows) == 0 || opts.DryRun {
		return false, nil
	}

	if err := store.ReplaceAll(ctx, plan.Rows); err != nil {
		return false, fmt.Errorf("failed to replace remote rows: %w", err)
	}
	return true, nil
}
