package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/lzjever/mbos-items/internal/core"
	"github.com/lzjever/mbos-items/internal/observability"
)

func TestStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("items"),
		postgres.WithPassword("items_pass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start container: %s", err)
	}
	defer pgContainer.Terminate(ctx)

	host, err := pgContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get host: %s", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get port: %s", err)
	}

	cfg := Config{
		Host:          host,
		Port:          port.Port(),
		User:          "items",
		Password:      "items_pass",
		Database:      "testdb",
		SSLMode:       "disable",
		RetryInterval: 100 * time.Millisecond,
	}

	pool, err := Connect(ctx, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to connect: %s", err)
	}
	defer pool.Close()

	queries := New(pool)

	if err := queries.EnsureSchema(ctx); err != nil {
		t.Fatalf("failed to create schema: %s", err)
	}

	if !queries.Ready(ctx) {
		t.Fatal("expected database to be ready")
	}

	var widgetID int64

	t.Run("CreateItem", func(t *testing.T) {
		widgetID, err = queries.CreateItem(ctx, "widget")
		if err != nil {
			t.Fatalf("failed to create item: %s", err)
		}
		if widgetID <= 0 {
			t.Errorf("expected positive id, got %d", widgetID)
		}
	})

	t.Run("ListItems", func(t *testing.T) {
		items, err := queries.ListItems(ctx)
		if err != nil {
			t.Fatalf("failed to list items: %s", err)
		}
		found := false
		for _, it := range items {
			if it.ID == widgetID && it.Name == "widget" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected [%d, widget] in %v", widgetID, items)
		}
	})

	t.Run("UpdateItem", func(t *testing.T) {
		if err := queries.UpdateItem(ctx, widgetID, "gadget"); err != nil {
			t.Fatalf("failed to update item: %s", err)
		}
		item, err := queries.GetItem(ctx, widgetID)
		if err != nil {
			t.Fatalf("failed to get item: %s", err)
		}
		if item.Name != "gadget" {
			t.Errorf("expected name gadget, got %s", item.Name)
		}
	})

	t.Run("EnsureSchemaIdempotent", func(t *testing.T) {
		if err := queries.EnsureSchema(ctx); err != nil {
			t.Fatalf("second schema creation failed: %s", err)
		}
		item, err := queries.GetItem(ctx, widgetID)
		if err != nil {
			t.Fatalf("row lost after second schema creation: %s", err)
		}
		if item.Name != "gadget" {
			t.Errorf("expected name gadget, got %s", item.Name)
		}
	})

	t.Run("DeleteItem", func(t *testing.T) {
		if err := queries.DeleteItem(ctx, widgetID); err != nil {
			t.Fatalf("failed to delete item: %s", err)
		}
		if _, err := queries.GetItem(ctx, widgetID); !errors.Is(err, core.ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound, got %v", err)
		}
		if err := queries.DeleteItem(ctx, widgetID); !errors.Is(err, core.ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound on second delete, got %v", err)
		}
	})

	t.Run("IDsNotReused", func(t *testing.T) {
		id, err := queries.CreateItem(ctx, "next")
		if err != nil {
			t.Fatalf("failed to create item: %s", err)
		}
		if id <= widgetID {
			t.Errorf("expected id greater than %d, got %d", widgetID, id)
		}
	})
}

func TestConnectCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	failed := observability.DBConnectAttemptsTotal.WithLabelValues("failed")
	before := testutil.ToFloat64(failed)

	cfg := Config{
		Host:          "127.0.0.1",
		Port:          "1",
		User:          "nobody",
		Database:      "testdb",
		SSLMode:       "disable",
		RetryInterval: 50 * time.Millisecond,
	}
	_, err := Connect(ctx, cfg, zap.NewNop())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if got := testutil.ToFloat64(failed) - before; got < 2 {
		t.Errorf("expected at least 2 failed attempts before cancellation, got %v", got)
	}
}
