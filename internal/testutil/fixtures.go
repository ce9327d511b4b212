// Package testutil provides test helper utilities for dyslexia tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/alprnalcri/dyslexia-cli/internal/store"
)

// TempHome points DYSLEXIA_HOME at a fresh temp directory and returns
// its path. The env var is restored when the test finishes.
func TempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DYSLEXIA_HOME", dir)
	return dir
}

// OpenStore opens a key-value store backed by a fresh temp database.
// Closed automatically when the test finishes.
func OpenStore(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}
