// Package database opens the GORM connection used by the table-backed sheet store.
//
// Connect supports mysql (default), postgres and sqlite. sqlite is mostly
// useful for a single-machine setup and for tests (":memory:").
//
// The inspector helpers (GetTableColumns, MissingColumns) let the sheet store
// verify its table after migration on any of the three dialects.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	missing, err := database.MissingColumns(db, "key_rows", []string{"unit", "generated_at"})
package database
