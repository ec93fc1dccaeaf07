// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bizportal/internal/platform/database/schema"
	"github.com/taibuivan/bizportal/internal/platform/dberr"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/pkg/slice"
)

const resourceName = "Order"

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new Postgres implementation of the order store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var orderColumns = fmt.Sprintf("%s, %s, COALESCE(%s, ''), %s, %s, %s, %s, %s, COALESCE(%s, ''), %s, %s",
	schema.PortalOrder.ID, schema.PortalOrder.CustomerID, schema.PortalOrder.EcosystemID,
	schema.PortalOrder.CatalogItemID, schema.PortalOrder.Quantity, schema.PortalOrder.TotalCents,
	schema.PortalOrder.Status, schema.PortalOrder.Notes, schema.PortalOrder.ApprovedBy,
	schema.PortalOrder.CreatedAt, schema.PortalOrder.UpdatedAt,
)

func scanOrder(row pgx.Row, extra ...any) (*Order, error) {
	order := &Order{}
	targets := []any{
		&order.ID, &order.CustomerID, &order.EcosystemID, &order.CatalogItemID,
		&order.Quantity, &order.TotalCents, &order.Status, &order.Notes,
		&order.ApprovedBy, &order.CreatedAt, &order.UpdatedAt,
	}
	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}
	return order, nil
}

/*
List returns a page of visible orders, newest first.

Visibility is the scope predicate over customerid and ecosystemid.
*/
func (store *PostgresStore) List(ctx context.Context, scope portal.DataScope, statuses []string, limit, offset int) ([]*Order, int, error) {
	var queryBuilder strings.Builder
	clause, args := scope.Clause(schema.PortalOrder.CustomerID, schema.PortalOrder.EcosystemID, 1)
	argID := len(args) + 1

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s WHERE %s`,
		orderColumns, schema.PortalOrder.Table, clause))

	if len(statuses) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = ANY($%d)", schema.PortalOrder.Status, argID))
		args = append(args, statuses)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d",
		schema.PortalOrder.CreatedAt, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := store.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_orders_list_failed: %w", err)
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	total := 0
	for rows.Next() {
		order, err := scanOrder(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_orders_scan_failed: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_orders_rows_failed: %w", err)
	}
	return orders, total, nil
}

// Get retrieves one visible order.
func (store *PostgresStore) Get(ctx context.Context, scope portal.DataScope, id string) (*Order, error) {
	clause, scopeArgs := scope.Clause(schema.PortalOrder.CustomerID, schema.PortalOrder.EcosystemID, 2)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s`,
		orderColumns, schema.PortalOrder.Table, schema.PortalOrder.ID, clause)

	order, err := scanOrder(store.pool.QueryRow(ctx, query, append([]any{id}, scopeArgs...)...))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return order, nil
}

/*
Create inserts a pending order priced from the catalogue in one statement.

INSERT ... SELECT yields no row when the item is missing or inactive, which
surfaces as NOT_FOUND for the catalogue item.
*/
func (store *PostgresStore) Create(ctx context.Context, order *Order) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		SELECT $1, $2, NULLIF($3, ''), c.%s, $5, c.%s * $5, $6, $7
		FROM %s c
		WHERE c.%s = $4 AND c.%s
		RETURNING %s, %s, %s`,
		schema.PortalOrder.Table,
		schema.PortalOrder.ID, schema.PortalOrder.CustomerID, schema.PortalOrder.EcosystemID,
		schema.PortalOrder.CatalogItemID, schema.PortalOrder.Quantity, schema.PortalOrder.TotalCents,
		schema.PortalOrder.Status, schema.PortalOrder.Notes,
		schema.PortalCatalogItem.ID, schema.PortalCatalogItem.PriceCents,
		schema.PortalCatalogItem.Table,
		schema.PortalCatalogItem.ID, schema.PortalCatalogItem.IsActive,
		schema.PortalOrder.TotalCents, schema.PortalOrder.CreatedAt, schema.PortalOrder.UpdatedAt,
	)

	err := store.pool.QueryRow(ctx, query,
		order.ID, order.CustomerID, order.EcosystemID, order.CatalogItemID,
		order.Quantity, order.Status, order.Notes,
	).Scan(&order.TotalCents, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Catalog item")
	}
	return nil
}

// Transition performs a guarded status update. approvedby is only written
// when the target status is approved.
func (store *PostgresStore) Transition(ctx context.Context, scope portal.DataScope, id string, from []Status, to Status, actorID string) (*Order, error) {
	clause, scopeArgs := scope.Clause(schema.PortalOrder.CustomerID, schema.PortalOrder.EcosystemID, 5)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2,
		    %s = CASE WHEN $2 = '%s' THEN $4 ELSE %s END,
		    %s = NOW()
		WHERE %s = $1 AND %s = ANY($3) AND %s
		RETURNING %s`,
		schema.PortalOrder.Table,
		schema.PortalOrder.Status,
		schema.PortalOrder.ApprovedBy, StatusApproved, schema.PortalOrder.ApprovedBy,
		schema.PortalOrder.UpdatedAt,
		schema.PortalOrder.ID, schema.PortalOrder.Status, clause,
		orderColumns,
	)

	fromStrings := slice.Map(from, func(status Status) string { return string(status) })
	args := append([]any{id, string(to), fromStrings, actorID}, scopeArgs...)

	order, err := scanOrder(store.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return order, nil
}
