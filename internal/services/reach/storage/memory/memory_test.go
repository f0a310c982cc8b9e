package memory

import (
	"context"
	"testing"

	"github.com/louisbranch/aviato/internal/services/reach/storage"
)

func TestGatewayRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := New()

	if _, ok, err := g.Load(ctx, storage.KeyUsers); err != nil || ok {
		t.Fatalf("Load missing = ok:%v err:%v", ok, err)
	}
	value := []byte(`[{"id":"a"}]`)
	if err := g.Save(ctx, storage.KeyUsers, value); err != nil {
		t.Fatalf("save: %v", err)
	}
	value[0] = 'X'

	got, ok, err := g.Load(ctx, storage.KeyUsers)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if string(got) != `[{"id":"a"}]` {
		t.Fatalf("load = %s, want stored copy", got)
	}

	if err := storage.RemoveAll(ctx, g); err != nil {
		t.Fatalf("remove all: %v", err)
	}
	if _, ok, _ := g.Load(ctx, storage.KeyUsers); ok {
		t.Fatal("expected key removed")
	}
}

func TestGatewaySaveAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := New()
	err := storage.SaveAll(ctx, g, []storage.Record{
		{Key: storage.KeyUsers, Value: []byte(`[]`)},
		{Key: storage.KeyConversations, Value: []byte(`[]`)},
	})
	if err != nil {
		t.Fatalf("save all: %v", err)
	}
	for _, key := range []string{storage.KeyUsers, storage.KeyConversations} {
		if _, ok, _ := g.Load(ctx, key); !ok {
			t.Fatalf("expected %s saved", key)
		}
	}
}

func TestGatewayHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := New().Save(ctx, storage.KeyUsers, nil); err == nil {
		t.Fatal("expected context error")
	}
}
