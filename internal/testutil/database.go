// Package testutil provides shared helpers for milkrun tests.
package testutil

import (
	"context"
	"testing"

	"milkrun/internal/storage"
)

// SetupTestStore creates a migrated in-memory SQLite store that is closed
// automatically when the test finishes.
func SetupTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()

	store, err := storage.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}
