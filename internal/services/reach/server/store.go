package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/louisbranch/aviato/internal/platform/timeouts"
	"github.com/louisbranch/aviato/internal/services/reach/storage"
	"github.com/louisbranch/aviato/internal/services/reach/storage/memory"
	reachredis "github.com/louisbranch/aviato/internal/services/reach/storage/redis"
	reachsqlite "github.com/louisbranch/aviato/internal/services/reach/storage/sqlite"
)

// Gateway is a storage gateway the server owns and closes.
type Gateway interface {
	storage.Gateway
	Close() error
}

// OpenGateway opens the store selected by cfg.
func OpenGateway(ctx context.Context, cfg Config) (Gateway, error) {
	openCtx, cancel := context.WithTimeout(ctx, timeouts.StoreOpen)
	defer cancel()

	switch cfg.Store {
	case StoreMemory, "":
		return memory.New(), nil
	case StoreSQLite:
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create storage dir: %w", err)
			}
		}
		store, err := reachsqlite.Open(openCtx, cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open reach sqlite store: %w", err)
		}
		return store, nil
	case StoreRedis:
		store, err := reachredis.Open(openCtx, cfg.RedisURL, reachredis.DefaultNamespace)
		if err != nil {
			return nil, fmt.Errorf("open reach redis store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("store %q is not supported", cfg.Store)
	}
}
