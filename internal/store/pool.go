package store

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/lzjever/mbos-items/internal/observability"
)

const (
	defaultMaxConns      = 10
	defaultRetryInterval = 2 * time.Second
	connectTimeout       = 5 * time.Second
)

// Config describes how to reach the items database.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int32

	// RetryInterval is the first delay between connect attempts; the delay
	// doubles on each failure up to RetryMaxInterval.
	RetryInterval    time.Duration
	RetryMaxInterval time.Duration
}

// DSN renders the config as a postgres:// connection URL.
func (c Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   "/" + c.Database,
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
	}
	return u.String()
}

func ParseConfig(dsn string, maxConns int32) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if maxConns <= 0 {
		maxConns = defaultMaxConns
	}
	config.MaxConns = maxConns
	config.ConnConfig.ConnectTimeout = connectTimeout
	return config, nil
}

func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := ParseConfig(dsn, defaultMaxConns)
	if err != nil {
		return nil, err
	}
	return open(ctx, config)
}

// open creates the pool and only accepts it once a trivial query succeeds.
func open(ctx context.Context, config *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := New(pool).Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return pool, nil
}

// Connect opens the pool, retrying until the database answers or ctx is
// cancelled. Only a malformed DSN fails immediately.
func Connect(ctx context.Context, cfg Config, log *zap.Logger) (*pgxpool.Pool, error) {
	config, err := ParseConfig(cfg.DSN(), cfg.MaxConns)
	if err != nil {
		return nil, err
	}

	pool, attempts, err := connectWith(ctx, connectBackoff(cfg), log, func(ctx context.Context) (*pgxpool.Pool, error) {
		return open(ctx, config.Copy())
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	log.Info("database connection established",
		zap.String("host", cfg.Host),
		zap.String("port", cfg.Port),
		zap.String("db_name", cfg.Database),
		zap.Int("attempts", attempts),
	)
	return pool, nil
}

func connectBackoff(cfg Config) retry.Backoff {
	interval := cfg.RetryInterval
	if interval <= 0 {
		interval = defaultRetryInterval
	}
	backoff := retry.NewExponential(interval)
	if cfg.RetryMaxInterval > 0 {
		backoff = retry.WithCappedDuration(cfg.RetryMaxInterval, backoff)
	}
	return backoff
}

// dialFunc opens and pings a pool.
type dialFunc func(ctx context.Context) (*pgxpool.Pool, error)

// connectWith calls dial until it returns a pool. Every failed attempt is
// logged together with the delay before the next one.
func connectWith(ctx context.Context, backoff retry.Backoff, log *zap.Logger, dial dialFunc) (*pgxpool.Pool, int, error) {
	var (
		pool    *pgxpool.Pool
		attempt int
		lastErr error
	)

	logged := retry.BackoffFunc(func() (time.Duration, bool) {
		next, stop := backoff.Next()
		log.Warn("waiting for db connection",
			zap.Int("attempt", attempt),
			zap.Duration("next_delay", next),
			zap.Error(lastErr),
		)
		return next, stop
	})

	err := retry.Do(ctx, logged, func(ctx context.Context) error {
		attempt++
		p, err := dial(ctx)
		if err != nil {
			observability.DBConnectAttemptsTotal.WithLabelValues("failed").Inc()
			lastErr = err
			return retry.RetryableError(err)
		}
		observability.DBConnectAttemptsTotal.WithLabelValues("ok").Inc()
		pool = p
		return nil
	})
	return pool, attempt, err
}
