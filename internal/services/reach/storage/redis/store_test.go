package redis

import (
	"context"
	"os"
	"testing"

	goredis "github.com/redis/go-redis/v9"

	"github.com/louisbranch/aviato/internal/services/reach/storage"
)

func TestOpenValidatesURL(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), "", ""); err == nil {
		t.Fatal("expected missing url error")
	}
	if _, err := Open(context.Background(), "http://not-redis", ""); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNewNamespacesKeys(t *testing.T) {
	t.Parallel()

	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	if got := New(client, "").key(storage.KeyUsers); got != "aviato:reach:aviato_users" {
		t.Fatalf("key = %q", got)
	}
	if got := New(client, "test:").key(storage.KeyUsers); got != "test:aviato_users" {
		t.Fatalf("key = %q", got)
	}
}

// TestStoreRoundTrip runs against a live server when AVIATO_TEST_REDIS_URL is set.
func TestStoreRoundTrip(t *testing.T) {
	url := os.Getenv("AVIATO_TEST_REDIS_URL")
	if url == "" {
		t.Skip("AVIATO_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	store, err := Open(ctx, url, "aviato:test:"+t.Name()+":")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()
	t.Cleanup(func() { _ = storage.RemoveAll(context.Background(), store) })

	if _, ok, err := store.Load(ctx, storage.KeyUsers); err != nil || ok {
		t.Fatalf("load missing: ok=%v err=%v", ok, err)
	}
	err = storage.SaveAll(ctx, store, []storage.Record{
		{Key: storage.KeyUsers, Value: []byte(`[]`)},
		{Key: storage.KeyCurrentUser, Value: []byte(`{"id":"current-user"}`)},
	})
	if err != nil {
		t.Fatalf("save all: %v", err)
	}
	got, ok, err := store.Load(ctx, storage.KeyCurrentUser)
	if err != nil || !ok || string(got) != `{"id":"current-user"}` {
		t.Fatalf("load = %s ok=%v err=%v", got, ok, err)
	}
	if err := store.Remove(ctx, storage.KeyCurrentUser); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := store.Load(ctx, storage.KeyCurrentUser); ok {
		t.Fatal("expected removed key")
	}
}
