package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lzjever/mbos-items/internal/core"
	"github.com/lzjever/mbos-items/internal/observability"
)

// DBTX is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock pools.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const createItemsTable = `CREATE TABLE IF NOT EXISTS items (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL
)`

const pingQuery = "SELECT 1"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// EnsureSchema creates the items table if it does not exist yet.
func (q *Queries) EnsureSchema(ctx context.Context) error {
	if _, err := q.db.Exec(ctx, createItemsTable); err != nil {
		return fmt.Errorf("create items table: %w", err)
	}
	return nil
}

// Ping issues a trivial query on the database.
func (q *Queries) Ping(ctx context.Context) error {
	_, err := q.db.Exec(ctx, pingQuery)
	return err
}

// Ready reports whether the database can currently serve a trivial query.
// Errors are swallowed.
func (q *Queries) Ready(ctx context.Context) bool {
	if err := q.Ping(ctx); err != nil {
		observability.DBReady.Set(0)
		return false
	}
	observability.DBReady.Set(1)
	return true
}

func (q *Queries) ListItems(ctx context.Context) (items []core.Item, err error) {
	defer observe("list", time.Now(), &err)

	query, args, err := psql.Select("id", "name").From("items").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}
	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	items, err = pgx.CollectRows(rows, scanItem)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if items == nil {
		items = []core.Item{}
	}
	return items, nil
}

func (q *Queries) GetItem(ctx context.Context, id int64) (item core.Item, err error) {
	defer observe("get", time.Now(), &err)

	if !core.IDInRange(id) {
		return core.Item{}, core.ErrItemNotFound
	}
	query, args, err := psql.Select("id", "name").From("items").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return core.Item{}, fmt.Errorf("build get query: %w", err)
	}
	err = q.db.QueryRow(ctx, query, args...).Scan(&item.ID, &item.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Item{}, core.ErrItemNotFound
	}
	if err != nil {
		return core.Item{}, fmt.Errorf("get item %d: %w", id, err)
	}
	return item, nil
}

// CreateItem inserts a row and returns the id assigned by the database.
func (q *Queries) CreateItem(ctx context.Context, name string) (id int64, err error) {
	defer observe("create", time.Now(), &err)

	query, args, err := psql.Insert("items").Columns("name").Values(name).Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert query: %w", err)
	}
	if err := q.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}
	return id, nil
}

// UpdateItem replaces the name of row id.
func (q *Queries) UpdateItem(ctx context.Context, id int64, name string) (err error) {
	defer observe("update", time.Now(), &err)

	if !core.IDInRange(id) {
		return core.ErrItemNotFound
	}
	query, args, err := psql.Update("items").Set("name", name).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}
	tag, err := q.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update item %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrItemNotFound
	}
	return nil
}

func (q *Queries) DeleteItem(ctx context.Context, id int64) (err error) {
	defer observe("delete", time.Now(), &err)

	if !core.IDInRange(id) {
		return core.ErrItemNotFound
	}
	query, args, err := psql.Delete("items").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}
	tag, err := q.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrItemNotFound
	}
	return nil
}

func scanItem(row pgx.CollectableRow) (core.Item, error) {
	var it core.Item
	err := row.Scan(&it.ID, &it.Name)
	return it, err
}

func observe(op string, start time.Time, errp *error) {
	result := "ok"
	switch {
	case errors.Is(*errp, core.ErrItemNotFound):
		result = "not_found"
	case *errp != nil:
		result = "error"
	}
	observability.StoreOpsTotal.WithLabelValues(op, result).Inc()
	observability.StoreOpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
