package reconcile

import "context"

// Store is the remote row store the engine reconciles against.
// Implementations live in core/sheet.
type Store interface {
	// LoadAll reads every row currently held by the store, in store order.
	LoadAll(ctx context.Context) (*Snapshot, error)

	// ReplaceAll clears the row range and writes rows in order.
	// Readers must never observe a partially written range.
	ReplaceAll(ctx context.Context, rows []Row) error
}

// NameResolver maps a dungeon id to its display name. Resolve never fails;
// unknown ids map to a placeholder.
type NameResolver interface {
	Resolve(id int) string
}
