package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lzjever/mbos-items/internal/api"
	"github.com/lzjever/mbos-items/internal/grpchealth"
	"github.com/lzjever/mbos-items/internal/observability"
	"github.com/lzjever/mbos-items/internal/store"
)

func main() {
	// A missing .env is fine; real environment variables take precedence.
	_ = godotenv.Load()

	var cfg api.Config
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, _ := observability.NewLogger(cfg.LogLevel)
	defer log.Sync()

	// Replace global logger
	zap.ReplaceGlobals(log)

	reg := prometheus.DefaultRegisterer
	observability.RegisterAll(reg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Blocks until the database answers; no listener is bound before.
	pool, err := store.Connect(ctx, cfg.Store(), log)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info("shutdown requested before database became reachable")
			return
		}
		log.Fatal("db connect failed", zap.Error(err))
	}
	defer pool.Close()

	queries := store.New(pool)
	if err := queries.EnsureSchema(ctx); err != nil {
		log.Fatal("ensure schema failed", zap.Error(err))
	}
	log.Info("items table ready")

	// Metrics server
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metricsSrv := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: mux,
	}

	go func() {
		log.Info("metrics server starting", zap.String("addr", cfg.MetricsAddr))
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("metrics server failed", zap.Error(err))
		}
	}()

	// Main API server
	apiHandler := api.NewAPI(pool, cfg.ReadyTimeout, log)
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      apiHandler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("API server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("API server failed", zap.Error(err))
		}
	}()

	var healthSrv *grpchealth.Server
	if cfg.GRPCHealthAddr != "" {
		healthSrv = grpchealth.NewServer(queries.Ready, cfg.ReadyTimeout, log)
		go healthSrv.Watch(ctx)
		go func() {
			log.Info("gRPC health server starting", zap.String("addr", cfg.GRPCHealthAddr))
			if err := healthSrv.Serve(cfg.GRPCHealthAddr); err != nil {
				log.Fatal("gRPC health server failed", zap.Error(err))
			}
		}()
	}

	<-ctx.Done()
	log.Info("shutting down API server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if healthSrv != nil {
		healthSrv.Stop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("API server did not drain in time", zap.Error(err))
	}
	_ = metricsSrv.Shutdown(shutdownCtx)

	log.Info("API server stopped")
}
