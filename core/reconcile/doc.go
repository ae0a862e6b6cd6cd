// Package reconcile merges keystone records parsed from the local addon file
// into the shared remote row set.
//
// The remote store is authoritative and keyed by unit. The merge is
// last-writer-wins on the producer timestamp (generated_at):
//   - a unit unknown to the store is always inserted;
//   - a unit known to both sides is replaced only when the local timestamp is
//     strictly greater, otherwise the stored row is carried over byte for byte;
//   - every stored unit the local file does not mention is carried over.
//
// No unit from either side ever disappears from the output.
//
// # Components
//
//  1. Engine: the pure merge over a Snapshot, producing a Plan.
//  2. Store: the remote row store (see core/sheet for implementations).
//  3. Plan/Apply: ReconcileWithPlan loads and merges, ApplyPlan writes.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(resolver, hostname, logger)
//	plan, err := reconcile.ReconcileWithPlan(ctx, engine, store, records, timestamps)
//	if err != nil {
//	    return err
//	}
//	written, err := reconcile.ApplyPlan(ctx, store, plan, reconcile.ApplyOptions{})
package reconcile
