package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/aviato/internal/services/reach/app"
	"github.com/louisbranch/aviato/internal/services/reach/domain/conversation"
	"github.com/louisbranch/aviato/internal/services/reach/tools"
)

const serverVersion = "0.1.0"

// Server hosts one reach session behind MCP and an optional health service.
type Server struct {
	cfg       Config
	gateway   Gateway
	session   *app.Session
	mcpServer *mcp.Server
	health    *healthService
}

// New opens storage, restores the session and registers the MCP tools.
func New(ctx context.Context, cfg Config) (*Server, error) {
	cfg, err := cfg.normalized()
	if err != nil {
		return nil, err
	}
	directory, err := LoadDirectory(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	gateway, err := OpenGateway(ctx, cfg)
	if err != nil {
		return nil, err
	}

	session := app.New(app.Options{
		Gateway:   gateway,
		Notifier:  app.LogNotifier{Logger: log.Default()},
		Locale:    cfg.Locale,
		Directory: directory,
		Logger:    log.Default(),
	})
	session.Restore(ctx)

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: "aviato-reach", Version: serverVersion}, nil)
	tools.Register(mcpServer, tools.NewHandlers(session, cfg.Locale))

	s := &Server{cfg: cfg, gateway: gateway, session: session, mcpServer: mcpServer}
	if cfg.GRPCAddr != "" {
		s.health, err = newHealthService(cfg.GRPCAddr)
		if err != nil {
			s.Close()
			return nil, err
		}
	}
	return s, nil
}

// Session returns the hosted session.
func (s *Server) Session() *app.Session {
	return s.session
}

// HealthAddr returns the health listener address, if any.
func (s *Server) HealthAddr() string {
	return s.health.addr()
}

// Run creates a server and serves it until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	s, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Serve(ctx)
}

// Serve runs the configured MCP transport until ctx ends.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	healthErr := make(chan error, 1)
	if s.health != nil {
		log.Printf("reach health listening at %v", s.health.addr())
		go func() { healthErr <- s.health.serve() }()
		go s.health.monitor(ctx, s.session.Degraded)
	}
	go watchExpiries(ctx, s.session, s.cfg.Tick, log.Default())

	transportErr := make(chan error, 1)
	go func() { transportErr <- s.serveTransport(ctx) }()

	select {
	case err := <-transportErr:
		return err
	case err := <-healthErr:
		if err != nil {
			return err
		}
		return <-transportErr
	}
}

func (s *Server) serveTransport(ctx context.Context) error {
	switch s.cfg.Transport {
	case TransportHTTP:
		return serveHTTP(ctx, s.cfg.HTTPAddr, newHTTPHandler(s.mcpServer, s.cfg.AllowedHosts, s.cfg.JWTSecret))
	default:
		err := s.mcpServer.Run(ctx, &mcp.StdioTransport{})
		if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return fmt.Errorf("serve MCP: %w", err)
	}
}

// Close releases the health listener and the store.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.close()
		s.health = nil
	}
	if s.gateway != nil {
		if err := s.gateway.Close(); err != nil {
			log.Printf("close reach store: %v", err)
		}
		s.gateway = nil
	}
}

// watchExpiries logs each response window once when it expires unrated.
func watchExpiries(ctx context.Context, session *app.Session, tick time.Duration, logger *log.Logger) {
	seen := map[string]bool{}
	_ = session.Watch(ctx, tick, func(rows []app.ChatRow) {
		logExpired(rows, seen, logger)
	})
}

func logExpired(rows []app.ChatRow, seen map[string]bool, logger *log.Logger) {
	for _, r := range rows {
		if r.Phase != conversation.PhaseExpired || r.Conversation.TimerStarted == nil {
			continue
		}
		key := r.Conversation.ID + "@" + r.Conversation.TimerStarted.UTC().Format(time.RFC3339Nano)
		if seen[key] {
			continue
		}
		seen[key] = true
		logger.Printf("response window with %s expired; rating pending", r.Conversation.UserID)
	}
}
