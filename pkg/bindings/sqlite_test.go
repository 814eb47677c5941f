package bindings

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestSQLiteStore(t *testing.T, path string) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(SQLiteStoreConfig{Path: path})
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	return store
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bindings.db")

	store := newTestSQLiteStore(t, path)
	defer store.Close()

	if _, ok, err := store.Get(ctx, "acme"); err != nil || ok {
		t.Fatalf("Get on empty store: ok=%v err=%v", ok, err)
	}

	if err := store.Put(ctx, "acme", EnvDev); err != nil {
		t.Fatalf("Put: %v", err)
	}

	env, ok, err := store.Get(ctx, "acme")
	if err != nil || !ok || env != EnvDev {
		t.Fatalf("Get after Put: env=%q ok=%v err=%v", env, ok, err)
	}

	// Upsert overwrites.
	if err := store.Put(ctx, "acme", EnvStable); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	env, _, _ = store.Get(ctx, "acme")
	if env != EnvStable {
		t.Errorf("Get after overwrite = %q, want %q", env, EnvStable)
	}

	if err := store.Delete(ctx, "acme"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "acme"); ok {
		t.Error("binding still present after Delete")
	}
	if err := store.Delete(ctx, "acme"); err != nil {
		t.Errorf("Delete of missing binding: %v", err)
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bindings.db")

	store := newTestSQLiteStore(t, path)
	if err := store.Put(ctx, "globex", EnvDev); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := newTestSQLiteStore(t, path)
	defer reopened.Close()

	env, ok, err := reopened.Get(ctx, "globex")
	if err != nil || !ok || env != EnvDev {
		t.Fatalf("Get after reopen: env=%q ok=%v err=%v", env, ok, err)
	}
}

func TestSQLiteStore_JournalModeAndBusyTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bindings.db")

	store, err := NewSQLiteStore(SQLiteStoreConfig{
		Path:        path,
		BusyTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer store.Close()

	var journalMode string
	if err := store.db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("journal_mode = %q, want %q", journalMode, "wal")
	}

	var busyTimeout int
	if err := store.db.QueryRow("PRAGMA busy_timeout;").Scan(&busyTimeout); err != nil {
		t.Fatalf("query busy_timeout: %v", err)
	}
	if busyTimeout != 5000 {
		t.Errorf("busy_timeout = %d, want 5000", busyTimeout)
	}
}

func TestNewSQLiteStore_EmptyPath(t *testing.T) {
	if _, err := NewSQLiteStore(SQLiteStoreConfig{}); err == nil {
		t.Error("expected error for empty path, got nil")
	}
}
