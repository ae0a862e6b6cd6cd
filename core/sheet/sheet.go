package sheet

import (
	"context"
	"errors"
	"fmt"

	"keys-monitor/core/reconcile"
	"keys-monitor/core/storage"

	"gorm.io/gorm"
)

// ErrUnknownDriver is returned by New for an unsupported Config.Driver.
var ErrUnknownDriver = errors.New("unknown sheet driver")

// Deps are the backends New may build on. Only the one selected by the
// driver has to be set.
type Deps struct {
	Storage storage.Client
	Bucket  string
	Object  string
	DB      *gorm.DB
}

// New returns the store selected by cfg.Driver. The table store is migrated.
func New(ctx context.Context, cfg Config, deps Deps) (reconcile.Store, error) {
	switch cfg.Driver {
	case DriverObject, "":
		if deps.Storage == nil {
			return nil, fmt.Errorf("object sheet needs a storage client")
		}
		return NewObjectStore(deps.Storage, deps.Bucket, deps.Object), nil
	case DriverDatabase:
		if deps.DB == nil {
			return nil, fmt.Errorf("database sheet needs a database connection")
		}
		store := NewTableStore(deps.DB)
		if err := store.Migrate(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Driver)
	}
}
