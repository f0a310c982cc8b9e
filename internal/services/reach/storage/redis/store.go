// Package redis persists reach documents in Redis under a key namespace.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/louisbranch/aviato/internal/services/reach/storage"
)

// DefaultNamespace prefixes every key written by a Store.
const DefaultNamespace = "aviato:reach:"

// Store is a storage.Gateway over a go-redis client.
type Store struct {
	client    goredis.UniversalClient
	namespace string
}

var (
	_ storage.Gateway    = (*Store)(nil)
	_ storage.BatchSaver = (*Store)(nil)
)

// Open connects to url (redis://...) and pings the server.
func Open(ctx context.Context, url, namespace string) (*Store, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("redis url is required")
	}
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	client := goredis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return New(client, namespace), nil
}

// New wraps an existing client. An empty namespace uses DefaultNamespace.
func New(client goredis.UniversalClient, namespace string) *Store {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Store{client: client, namespace: namespace}
}

func (s *Store) key(key string) string {
	return s.namespace + key
}

// Load returns the document under key.
func (s *Store) Load(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis: get %s: %w", key, err)
	}
	return value, true, nil
}

// Save stores value under key without expiry.
func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

// SaveAll writes records in a MULTI/EXEC transaction.
func (s *Store) SaveAll(ctx context.Context, records []storage.Record) error {
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for _, r := range records {
			pipe.Set(ctx, s.key(r.Key), r.Value, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: save all: %w", err)
	}
	return nil
}

// Remove deletes key.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis: del %s: %w", key, err)
	}
	return nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}
