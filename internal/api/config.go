package api

import (
	"time"

	"github.com/lzjever/mbos-items/internal/store"
)

type Config struct {
	DBUser             string        `envconfig:"POSTGRES_USER" required:"true"`
	DBPassword         string        `envconfig:"POSTGRES_PASSWORD" required:"true"`
	DBName             string        `envconfig:"POSTGRES_DB" default:"testdb"`
	DBHost             string        `envconfig:"DB_HOST" default:"db"`
	DBPort             string        `envconfig:"DB_PORT" default:"5432"`
	DBSSLMode          string        `envconfig:"DB_SSLMODE" default:"prefer"`
	DBMaxConns         int32         `envconfig:"DB_MAX_CONNS" default:"10"`
	DBRetryInterval    time.Duration `envconfig:"DB_RETRY_INTERVAL" default:"2s"`
	DBRetryMaxInterval time.Duration `envconfig:"DB_RETRY_MAX_INTERVAL" default:"30s"`

	HTTPAddr        string        `envconfig:"ITEMS_HTTP_ADDR" default:"0.0.0.0:8080"`
	MetricsAddr     string        `envconfig:"ITEMS_METRICS_ADDR" default:"0.0.0.0:9090"`
	GRPCHealthAddr  string        `envconfig:"ITEMS_GRPC_HEALTH_ADDR"`
	LogLevel        string        `envconfig:"ITEMS_LOG_LEVEL" default:"info"`
	ReadyTimeout    time.Duration `envconfig:"ITEMS_READY_TIMEOUT" default:"2s"`
	ShutdownTimeout time.Duration `envconfig:"ITEMS_SHUTDOWN_TIMEOUT" default:"30s"`
}

// Store returns the database settings of the config.
func (c Config) Store() store.Config {
	return store.Config{
		Host:             c.DBHost,
		Port:             c.DBPort,
		User:             c.DBUser,
		Password:         c.DBPassword,
		Database:         c.DBName,
		SSLMode:          c.DBSSLMode,
		MaxConns:         c.DBMaxConns,
		RetryInterval:    c.DBRetryInterval,
		RetryMaxInterval: c.DBRetryMaxInterval,
	}
}
