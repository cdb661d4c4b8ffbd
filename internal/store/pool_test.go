package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lzjever/mbos-items/internal/observability"
)

func TestConnectWith_RetriesUntilPingSucceeds(t *testing.T) {
	obsCore, logs := observer.New(zap.WarnLevel)
	failed := observability.DBConnectAttemptsTotal.WithLabelValues("failed")
	ok := observability.DBConnectAttemptsTotal.WithLabelValues("ok")
	failedBefore, okBefore := testutil.ToFloat64(failed), testutil.ToFloat64(ok)

	calls := 0
	dial := func(ctx context.Context) (*pgxpool.Pool, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("ping db: connection reset")
		}
		return nil, nil
	}

	_, attempts, err := connectWith(context.Background(), retry.NewConstant(time.Millisecond), zap.New(obsCore), dial)

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, calls)
	assert.Equal(t, float64(2), testutil.ToFloat64(failed)-failedBefore)
	assert.Equal(t, float64(1), testutil.ToFloat64(ok)-okBefore)

	warnings := logs.FilterMessage("waiting for db connection").All()
	require.Len(t, warnings, 2)
	for i, entry := range warnings {
		fields := entry.ContextMap()
		assert.Equal(t, int64(i+1), fields["attempt"])
		assert.Equal(t, time.Millisecond, fields["next_delay"])
		assert.Equal(t, "ping db: connection reset", fields["error"])
	}
}

func TestConnectWith_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	dial := func(ctx context.Context) (*pgxpool.Pool, error) {
		calls++
		if calls == 2 {
			cancel()
		}
		return nil, errors.New("connection refused")
	}

	_, attempts, err := connectWith(ctx, retry.NewConstant(time.Millisecond), zap.NewNop(), dial)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 2, attempts)
}

func TestConnectBackoff(t *testing.T) {
	b := connectBackoff(Config{RetryInterval: time.Second, RetryMaxInterval: 3 * time.Second})

	var delays []time.Duration
	for i := 0; i < 4; i++ {
		d, stop := b.Next()
		require.False(t, stop)
		delays = append(delays, d)
	}
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second, 3 * time.Second}, delays)

	d, _ := connectBackoff(Config{}).Next()
	assert.Equal(t, defaultRetryInterval, d)
}
