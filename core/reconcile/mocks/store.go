package mocks

import (
	"context"
	"fmt"

	"keys-monitor/core/reconcile"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of reconcile.Store
type Store struct {
	mock.Mock
}

func (m *Store) LoadAll(ctx context.Context) (*reconcile.Snapshot, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*reconcile.Snapshot); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) ReplaceAll(ctx context.Context, rows []reconcile.Row) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

// Resolver is a static reconcile.NameResolver for tests.
type Resolver map[int]string

func (r Resolver) Resolve(id int) string {
	if name, ok := r[id]; ok {
		return name
	}
	return fmt.Sprintf("Unknown (%d)", id)
}
