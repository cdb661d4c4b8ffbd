// Package grpchealth exposes liveness and readiness over the standard gRPC
// health-checking protocol, for orchestrators that health-check over gRPC.
package grpchealth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ItemsService is the service name whose status follows database readiness.
// The empty service name reports liveness and is always SERVING.
const ItemsService = "items"

const defaultInterval = 5 * time.Second

// ReadyFunc reports whether the service can currently serve requests.
type ReadyFunc func(ctx context.Context) bool

type Server struct {
	grpc     *grpc.Server
	health   *health.Server
	ready    ReadyFunc
	interval time.Duration
	timeout  time.Duration
	log      *zap.Logger
}

func NewServer(ready ReadyFunc, timeout time.Duration, log *zap.Logger) *Server {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ItemsService, healthpb.HealthCheckResponse_NOT_SERVING)

	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	return &Server{
		grpc:     srv,
		health:   hs,
		ready:    ready,
		interval: defaultInterval,
		timeout:  timeout,
		log:      log,
	}
}

// Refresh runs the readiness check once and publishes the result.
func (s *Server) Refresh(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if s.ready(ctx) {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(ItemsService, status)
	return status
}

// Watch refreshes readiness until ctx is done.
func (s *Server) Watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	last := s.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if status := s.Refresh(ctx); status != last {
				s.log.Info("readiness changed", zap.Stringer("status", status))
				last = status
			}
		}
	}
}

// Serve blocks serving the health service on addr. It returns nil once
// Stop has been called.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Stop marks every service NOT_SERVING and drains in-flight calls.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

// Health exposes the underlying health service.
func (s *Server) Health() healthpb.HealthServer {
	return s.health
}
