package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "linkconv.db")
	db, err := OpenDB(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return NewStore(db)
}

func mustCreateSection(t *testing.T, store *Store, markup string) Section {
	t.Helper()
	section, err := store.CreateSection(context.Background(), markup)
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	return section
}
