package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/aviato/internal/services/reach/storage"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "reach.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), " "); err == nil {
		t.Fatal("expected path error")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTempStore(t)

	if _, ok, err := store.Load(ctx, storage.KeyCurrentUser); err != nil || ok {
		t.Fatalf("load missing: ok=%v err=%v", ok, err)
	}
	if err := store.Save(ctx, storage.KeyCurrentUser, []byte(`{"id":"current-user"}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, storage.KeyCurrentUser, []byte(`{"id":"current-user","name":"Sam"}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, ok, err := store.Load(ctx, storage.KeyCurrentUser)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if string(got) != `{"id":"current-user","name":"Sam"}` {
		t.Fatalf("load = %s", got)
	}

	if err := store.Remove(ctx, storage.KeyCurrentUser); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.Remove(ctx, storage.KeyCurrentUser); err != nil {
		t.Fatalf("remove twice: %v", err)
	}
	if _, ok, _ := store.Load(ctx, storage.KeyCurrentUser); ok {
		t.Fatal("expected removed key")
	}
}

func TestStoreSaveAllStampsRows(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTempStore(t)
	fixed := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	store.clock = func() time.Time { return fixed }

	err := store.SaveAll(ctx, []storage.Record{
		{Key: storage.KeyUsers, Value: []byte(`[]`)},
		{Key: storage.KeyConversations, Value: nil},
	})
	if err != nil {
		t.Fatalf("save all: %v", err)
	}

	var n int
	var stamp int64
	if err := store.sqlDB.QueryRow("SELECT COUNT(*), MAX(updated_at) FROM documents").Scan(&n, &stamp); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 || stamp != fixed.UnixMilli() {
		t.Fatalf("rows=%d stamp=%d, want 2 and %d", n, stamp, fixed.UnixMilli())
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reach.db")
	first, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Save(ctx, storage.KeyUsers, []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	got, ok, err := second.Load(ctx, storage.KeyUsers)
	if err != nil || !ok || string(got) != `[{"id":"a"}]` {
		t.Fatalf("load after reopen = %s ok=%v err=%v", got, ok, err)
	}
}

func TestClosedStore(t *testing.T) {
	t.Parallel()

	var store *Store
	if err := store.Save(context.Background(), storage.KeyUsers, nil); err != storage.ErrClosed {
		t.Fatalf("err = %v, want ErrClosed", err)
	}
}
