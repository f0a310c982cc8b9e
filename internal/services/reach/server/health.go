package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/louisbranch/aviato/internal/platform/timeouts"
)

// HealthServiceName is the service name reported by the health server.
const HealthServiceName = "aviato.reach"

type healthService struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
}

func newHealthService(addr string) (*healthService, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(HealthServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	return &healthService{listener: listener, grpcServer: grpcServer, health: healthServer}, nil
}

func (h *healthService) addr() string {
	if h == nil || h.listener == nil {
		return ""
	}
	return h.listener.Addr().String()
}

func (h *healthService) serve() error {
	err := h.grpcServer.Serve(h.listener)
	if err == nil || errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return fmt.Errorf("serve gRPC: %w", err)
}

// monitor republishes the reach status on every poll. A degraded session
// reports NOT_SERVING.
func (h *healthService) monitor(ctx context.Context, degraded func() bool) {
	h.publish(degraded())
	ticker := time.NewTicker(timeouts.HealthPoll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.publish(degraded())
		}
	}
}

func (h *healthService) publish(degraded bool) {
	status := grpc_health_v1.HealthCheckResponse_SERVING
	if degraded {
		status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	h.health.SetServingStatus(HealthServiceName, status)
}

func (h *healthService) close() {
	if h == nil {
		return
	}
	h.health.Shutdown()
	h.grpcServer.GracefulStop()
	_ = h.listener.Close()
}
