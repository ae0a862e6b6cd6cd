package sheet

import (
	"context"
	"testing"

	"keys-monitor/core/database"
	"keys-monitor/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("Object", func(t *testing.T) {
		store, err := New(ctx, Config{Driver: DriverObject}, Deps{Storage: new(mocks.Client), Bucket: "b", Object: "o"})
		require.NoError(t, err)
		assert.IsType(t, &ObjectStore{}, store)
	})

	t.Run("Object Without Client", func(t *testing.T) {
		_, err := New(ctx, Config{Driver: DriverObject}, Deps{})
		assert.Error(t, err)
	})

	t.Run("Database", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
		require.NoError(t, err)
		defer database.Close(db)

		store, err := New(ctx, Config{Driver: DriverDatabase}, Deps{DB: db})
		require.NoError(t, err)
		assert.IsType(t, &TableStore{}, store)
	})

	t.Run("Database Without Connection", func(t *testing.T) {
		_, err := New(ctx, Config{Driver: DriverDatabase}, Deps{})
		assert.Error(t, err)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := New(ctx, Config{Driver: "spreadsheet"}, Deps{})
		assert.ErrorIs(t, err, ErrUnknownDriver)
	})
}
