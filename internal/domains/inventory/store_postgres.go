// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bizportal/internal/platform/database/schema"
	"github.com/taibuivan/bizportal/internal/platform/dberr"
	"github.com/taibuivan/bizportal/internal/portal"
)

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new Postgres implementation of the stock store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var itemColumns = fmt.Sprintf("%s, %s, %s, COALESCE(%s, ''), %s, %s, %s",
	schema.PortalInventoryItem.ID, schema.PortalInventoryItem.CatalogItemID, schema.PortalInventoryItem.OwnerID,
	schema.PortalInventoryItem.EcosystemID, schema.PortalInventoryItem.Location,
	schema.PortalInventoryItem.Quantity, schema.PortalInventoryItem.UpdatedAt,
)

func scanItem(row pgx.Row, extra ...any) (*Item, error) {
	item := &Item{}
	targets := []any{&item.ID, &item.CatalogItemID, &item.OwnerID, &item.EcosystemID, &item.Location, &item.Quantity, &item.UpdatedAt}
	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}
	return item, nil
}

// List returns a page of visible stock rows, optionally for one location.
func (store *PostgresStore) List(ctx context.Context, scope portal.DataScope, location string, limit, offset int) ([]*Item, int, error) {
	var queryBuilder strings.Builder
	clause, args := scope.Clause(schema.PortalInventoryItem.OwnerID, schema.PortalInventoryItem.EcosystemID, 1)
	argID := len(args) + 1

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s WHERE %s`,
		itemColumns, schema.PortalInventoryItem.Table, clause))

	if location != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.PortalInventoryItem.Location, argID))
		args = append(args, location)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s, %s LIMIT $%d OFFSET $%d",
		schema.PortalInventoryItem.Location, schema.PortalInventoryItem.CatalogItemID, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := store.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_inventory_list_failed: %w", err)
	}
	defer rows.Close()

	items := make([]*Item, 0)
	total := 0
	for rows.Next() {
		item, err := scanItem(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_inventory_scan_failed: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_inventory_rows_failed: %w", err)
	}
	return items, total, nil
}

// Get retrieves one visible stock row.
func (store *PostgresStore) Get(ctx context.Context, scope portal.DataScope, id string) (*Item, error) {
	clause, scopeArgs := scope.Clause(schema.PortalInventoryItem.OwnerID, schema.PortalInventoryItem.EcosystemID, 2)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s`,
		itemColumns, schema.PortalInventoryItem.Table, schema.PortalInventoryItem.ID, clause)

	item, err := scanItem(store.pool.QueryRow(ctx, query, append([]any{id}, scopeArgs...)...))
	if err != nil {
		return nil, dberr.Wrap(err, "Inventory item")
	}
	return item, nil
}

/*
Adjust updates the stock row and appends the adjustment in one transaction.

The non-negative guard lives in the UPDATE's WHERE clause, so two concurrent
withdrawals can never both pass it.
*/
func (store *PostgresStore) Adjust(ctx context.Context, scope portal.DataScope, adjustment Adjustment) (*Item, error) {
	clause, scopeArgs := scope.Clause(schema.PortalInventoryItem.OwnerID, schema.PortalInventoryItem.EcosystemID, 3)

	updateQuery := fmt.Sprintf(`
		UPDATE %s SET %s = %s + $2, %s = NOW()
		WHERE %s = $1 AND %s + $2 >= 0 AND %s
		RETURNING %s`,
		schema.PortalInventoryItem.Table,
		schema.PortalInventoryItem.Quantity, schema.PortalInventoryItem.Quantity, schema.PortalInventoryItem.UpdatedAt,
		schema.PortalInventoryItem.ID, schema.PortalInventoryItem.Quantity, clause,
		itemColumns,
	)

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.PortalInventoryAdjustment.Table,
		schema.PortalInventoryAdjustment.ID, schema.PortalInventoryAdjustment.InventoryID,
		schema.PortalInventoryAdjustment.Delta, schema.PortalInventoryAdjustment.Reason,
		schema.PortalInventoryAdjustment.ActorID, schema.PortalInventoryAdjustment.CreatedAt,
	)

	var item *Item
	err := pgx.BeginFunc(ctx, store.pool, func(tx pgx.Tx) error {
		args := append([]any{adjustment.InventoryID, adjustment.Delta}, scopeArgs...)

		var err error
		item, err = scanItem(tx.QueryRow(ctx, updateQuery, args...))
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, insertQuery,
			adjustment.ID, adjustment.InventoryID, adjustment.Delta,
			adjustment.Reason, adjustment.ActorID, adjustment.CreatedAt,
		)
		return err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "Inventory item")
	}
	return item, nil
}
