// Package testutil provides shared test fixtures.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/ledgercheck/internal/crypt"
	"github.com/Veraticus/ledgercheck/internal/storage"
)

// SetupTestDB creates a migrated in-memory SQLite store that is closed when
// the test ends.
func SetupTestDB(t *testing.T) *storage.Store {
	t.Helper()

	store, err := storage.Open(context.Background(), storage.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return store
}

// NewTestCipher returns a cipher with a freshly generated key.
func NewTestCipher(t *testing.T) *crypt.FernetCipher {
	t.Helper()

	key, err := crypt.GenerateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	cipher, err := crypt.NewCipher(key)
	if err != nil {
		t.Fatalf("failed to create cipher: %v", err)
	}
	return cipher
}
