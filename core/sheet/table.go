package sheet

import (
	"context"
	"fmt"

	"keys-monitor/core/database"
	"keys-monitor/core/reconcile"

	"gorm.io/gorm"
)

// TableName is the table holding the sheet rows.
const TableName = "key_rows"

// KeyRow is one sheet row. Position keeps the sheet order.
type KeyRow struct {
	ID           uint   `gorm:"primaryKey"`
	Position     int    `gorm:"index"`
	Unit         string `gorm:"size:255;index"`
	KeyLevel     string `gorm:"size:32"`
	LocationName string `gorm:"size:255"`
	LastUpdated  string `gorm:"size:32"`
	SourceID     string `gorm:"size:255"`
	GeneratedAt  string `gorm:"size:32"`
}

// TableName overrides the default gorm table name.
func (KeyRow) TableName() string {
	return TableName
}

var requiredColumns = []string{
	"position", "unit", "key_level", "location_name", "last_updated", "source_id", "generated_at",
}

// TableStore keeps the sheet in a SQL table.
type TableStore struct {
	db *gorm.DB
}

// NewTableStore creates a store on db. Call Migrate before first use.
func NewTableStore(db *gorm.DB) *TableStore {
	return &TableStore{db: db}
}

// Migrate creates or updates the table and checks its columns.
func (s *TableStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&KeyRow{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", TableName, err)
	}

	missing, err := database.MissingColumns(s.db.WithContext(ctx), TableName, requiredColumns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns %v", TableName, missing)
	}
	return nil
}

// LoadAll reads every row ordered by position.
func (s *TableStore) LoadAll(ctx context.Context) (*reconcile.Snapshot, error) {
	var models []KeyRow
	if err := s.db.WithContext(ctx).Order("position").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", TableName, err)
	}

	rows := make([]reconcile.Row, 0, len(models))
	for _, m := range models {
		rows = append(rows, reconcile.Row{
			Unit:         m.Unit,
			KeyLevel:     m.KeyLevel,
			LocationName: m.LocationName,
			LastUpdated:  m.LastUpdated,
			SourceID:     m.SourceID,
			GeneratedAt:  m.GeneratedAt,
		})
	}
	return reconcile.NewSnapshot(rows), nil
}

// ReplaceAll deletes every row and inserts rows in one transaction.
func (s *TableStore) ReplaceAll(ctx context.Context, rows []reconcile.Row) error {
	models := make([]KeyRow, 0, len(rows))
	for i, r := range rows {
		models = append(models, KeyRow{
			Position:     i,
			Unit:         r.Unit,
			KeyLevel:     r.KeyLevel,
			LocationName: r.LocationName,
			LastUpdated:  r.LastUpdated,
			SourceID:     r.SourceID,
			GeneratedAt:  r.GeneratedAt,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&KeyRow{}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.CreateInBatches(models, 100).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace %s: %w", TableName, err)
	}
	return nil
}
