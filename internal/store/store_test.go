package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestGetAbsent(t *testing.T) {
	st := openTestStore(t)

	_, present, err := st.Get(context.Background(), TokenKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if present {
		t.Error("expected no value in a fresh store")
	}
}

func TestSetGet(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.Set(ctx, TokenKey, "tok-123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, present, err := st.Get(ctx, TokenKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !present {
		t.Fatal("expected value to be present")
	}
	if value != "tok-123" {
		t.Errorf("Get: got %q, want %q", value, "tok-123")
	}
}

func TestSetOverwrites(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.Set(ctx, TokenKey, "first"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := st.Set(ctx, TokenKey, "second"); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}

	value, _, err := st.Get(ctx, TokenKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "second" {
		t.Errorf("Get after overwrite: got %q, want %q", value, "second")
	}
}

func TestRemoveIdempotent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	// Removing an absent key is not an error.
	if err := st.Remove(ctx, TokenKey); err != nil {
		t.Fatalf("Remove on absent key failed: %v", err)
	}

	if err := st.Set(ctx, TokenKey, "tok"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := st.Remove(ctx, TokenKey); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := st.Remove(ctx, TokenKey); err != nil {
		t.Fatalf("second Remove failed: %v", err)
	}

	_, present, err := st.Get(ctx, TokenKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if present {
		t.Error("expected value gone after Remove")
	}
}
