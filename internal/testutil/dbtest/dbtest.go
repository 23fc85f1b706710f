// Package dbtest provides shared database helpers for tests: a throwaway
// store with the production schema loaded, and an FTS5 availability guard.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/mailsift/mailsift/internal/store"
)

// NewStore opens a store in a per-test temp directory with the schema
// initialized. The store is closed automatically at test cleanup.
func NewStore(t testing.TB) *store.Store {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "mailsift.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.InitSchema(); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return s
}

// RequireFTS5 skips the test when the sqlite driver was built without the
// FTS5 module (the mattn driver needs the sqlite_fts5 build tag).
func RequireFTS5(t testing.TB, s *store.Store) {
	t.Helper()
	if !s.FTS5Available() {
		t.Skip("sqlite build lacks FTS5; build tests with -tags sqlite_fts5")
	}
}
