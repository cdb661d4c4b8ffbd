package grpchealth

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func check(t *testing.T, s *Server, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := s.Health().Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestServer_ReadinessFollowsCheck(t *testing.T) {
	var ready atomic.Bool
	s := NewServer(func(context.Context) bool { return ready.Load() }, 0, zap.NewNop())

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, s, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, s, ItemsService))

	ready.Store(true)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, s.Refresh(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, s, ItemsService))

	ready.Store(false)
	s.Refresh(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, s, ItemsService))
	// liveness is independent of the database
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, s, ""))
}

func TestServer_WatchStopsWithContext(t *testing.T) {
	var calls atomic.Int32
	s := NewServer(func(context.Context) bool { calls.Add(1); return true }, 0, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Watch(ctx)
		close(done)
	}()
	cancel()
	<-done

	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestServer_StopReportsNotServing(t *testing.T) {
	s := NewServer(func(context.Context) bool { return true }, 0, zap.NewNop())
	s.Refresh(context.Background())

	s.Stop()

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, s, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, s, ItemsService))
}
