package docstore

import "testing"

// NewTestStore creates a fresh in-memory document store.
func NewTestStore(t *testing.T) *SQLite {
	t.Helper()

	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}

	t.Cleanup(func() { store.Close() })

	return store
}
