// Package server wires the reach session to storage, the MCP transports
// and the gRPC health service.
package server

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/aviato/internal/services/reach/app"
)

// Transport names.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Store names.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Config configures a reach server.
type Config struct {
	Transport    string        `env:"REACH_TRANSPORT"     envDefault:"stdio"`
	HTTPAddr     string        `env:"REACH_HTTP_ADDR"     envDefault:"localhost:8087"`
	GRPCAddr     string        `env:"REACH_GRPC_ADDR"`
	Store        string        `env:"REACH_STORE"         envDefault:"sqlite"`
	DBPath       string        `env:"REACH_DB_PATH"`
	RedisURL     string        `env:"REACH_REDIS_URL"`
	SeedFile     string        `env:"REACH_SEED_FILE"`
	Locale       string        `env:"REACH_LOCALE"        envDefault:"en"`
	Tick         time.Duration `env:"REACH_TICK"          envDefault:"1s"`
	AllowedHosts []string      `env:"REACH_ALLOWED_HOSTS" envSeparator:","`
	JWTSecret    string        `env:"REACH_JWT_SECRET"`
}

func (c Config) normalized() (Config, error) {
	c.Transport = strings.ToLower(strings.TrimSpace(c.Transport))
	if c.Transport == "" {
		c.Transport = TransportStdio
	}
	if c.Transport != TransportStdio && c.Transport != TransportHTTP {
		return c, fmt.Errorf("transport %q is not supported", c.Transport)
	}
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	switch c.Store {
	case "":
		c.Store = StoreMemory
	case StoreMemory, StoreSQLite, StoreRedis:
	default:
		return c, fmt.Errorf("store %q is not supported", c.Store)
	}
	if c.Store == StoreSQLite && strings.TrimSpace(c.DBPath) == "" {
		c.DBPath = filepath.Join("data", "reach.db")
	}
	if c.Store == StoreRedis && strings.TrimSpace(c.RedisURL) == "" {
		return c, fmt.Errorf("redis store requires a redis url")
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = "localhost:8087"
	}
	if c.Tick <= 0 {
		c.Tick = app.DefaultTick
	}
	return c, nil
}
