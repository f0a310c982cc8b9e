// Package reach parses reach command flags and starts the MCP server.
package reach

import (
	"context"
	"flag"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/aviato/internal/platform/cmd"
	"github.com/louisbranch/aviato/internal/services/reach/server"
)

// Config holds reach command configuration.
type Config struct {
	Transport    string        `env:"REACH_TRANSPORT"     envDefault:"stdio"`
	HTTPAddr     string        `env:"REACH_HTTP_ADDR"     envDefault:"localhost:8087"`
	GRPCAddr     string        `env:"REACH_GRPC_ADDR"`
	Store        string        `env:"REACH_STORE"         envDefault:"sqlite"`
	DBPath       string        `env:"REACH_DB_PATH"       envDefault:"data/reach.db"`
	RedisURL     string        `env:"REACH_REDIS_URL"`
	SeedFile     string        `env:"REACH_SEED_FILE"`
	Locale       string        `env:"REACH_LOCALE"        envDefault:"en"`
	Tick         time.Duration `env:"REACH_TICK"          envDefault:"1s"`
	AllowedHosts []string      `env:"REACH_ALLOWED_HOSTS" envSeparator:","`
	JWTSecret    string        `env:"REACH_JWT_SECRET"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	hosts := strings.Join(cfg.AllowedHosts, ",")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "gRPC health server address (empty disables it)")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "Session store: memory, sqlite or redis")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL (for redis store)")
	fs.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "JSON user directory to start from")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Locale for notices and errors")
	fs.DurationVar(&cfg.Tick, "tick", cfg.Tick, "Countdown refresh interval")
	fs.StringVar(&hosts, "allowed-hosts", hosts, "Comma-separated extra hosts accepted by the HTTP transport")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.AllowedHosts = splitHosts(hosts)
	return cfg, nil
}

// Run starts the reach MCP server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceReach, func(ctx context.Context) error {
		return server.Run(ctx, cfg.serverConfig())
	})
}

func (c Config) serverConfig() server.Config {
	return server.Config{
		Transport:    c.Transport,
		HTTPAddr:     c.HTTPAddr,
		GRPCAddr:     c.GRPCAddr,
		Store:        c.Store,
		DBPath:       c.DBPath,
		RedisURL:     c.RedisURL,
		SeedFile:     c.SeedFile,
		Locale:       c.Locale,
		Tick:         c.Tick,
		AllowedHosts: c.AllowedHosts,
		JWTSecret:    c.JWTSecret,
	}
}

func splitHosts(raw string) []string {
	var hosts []string
	for _, host := range strings.Split(raw, ",") {
		if host = strings.TrimSpace(host); host != "" {
			hosts = append(hosts, host)
		}
	}
	return hosts
}
