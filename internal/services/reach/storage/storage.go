// Package storage defines the key-value persistence contract for reach
// session state.
package storage

import (
	"context"
	"errors"
)

// Logical records persisted by a session.
const (
	KeyCurrentUser   = "aviato_current_user"
	KeyUsers         = "aviato_users"
	KeyConversations = "aviato_conversations"
)

// Keys lists every key a session writes, in write order.
var Keys = []string{KeyCurrentUser, KeyUsers, KeyConversations}

// ErrClosed is returned by gateways used after Close.
var ErrClosed = errors.New("storage closed")

// Gateway loads and saves JSON documents by key. Load reports false for
// absent keys. Save and Remove are idempotent.
type Gateway interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Record is one key and its JSON value.
type Record struct {
	Key   string
	Value []byte
}

// BatchSaver is implemented by gateways that can write several records
// atomically.
type BatchSaver interface {
	SaveAll(ctx context.Context, records []Record) error
}

// SaveAll writes records through g, atomically when g supports it.
func SaveAll(ctx context.Context, g Gateway, records []Record) error {
	if batch, ok := g.(BatchSaver); ok {
		return batch.SaveAll(ctx, records)
	}
	for _, r := range records {
		if err := g.Save(ctx, r.Key, r.Value); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAll removes every key in Keys.
func RemoveAll(ctx context.Context, g Gateway) error {
	var errs []error
	for _, key := range Keys {
		if err := g.Remove(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
