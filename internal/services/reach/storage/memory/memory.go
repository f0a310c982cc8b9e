// Package memory is an in-process storage.Gateway.
package memory

import (
	"context"
	"sync"

	"github.com/louisbranch/aviato/internal/services/reach/storage"
)

// Gateway keeps documents in a map.
type Gateway struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New returns an empty gateway.
func New() *Gateway {
	return &Gateway{data: make(map[string][]byte)}
}

// Load returns a copy of the stored document.
func (g *Gateway) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	value, ok := g.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// Save stores a copy of value.
func (g *Gateway) Save(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.data[key] = append([]byte(nil), value...)
	return nil
}

// SaveAll stores every record under one lock.
func (g *Gateway) SaveAll(ctx context.Context, records []storage.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range records {
		g.data[r.Key] = append([]byte(nil), r.Value...)
	}
	return nil
}

// Remove deletes key.
func (g *Gateway) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.data, key)
	return nil
}

// Close is a no-op.
func (g *Gateway) Close() error { return nil }
