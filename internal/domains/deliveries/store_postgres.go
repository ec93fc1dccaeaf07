// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deliveries

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

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new Postgres implementation of the delivery store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var deliveryColumns = fmt.Sprintf("%s, %s, %s, COALESCE(%s, ''), %s, %s, %s",
	schema.PortalDelivery.ID, schema.PortalDelivery.OrderID, schema.PortalDelivery.OwnerID,
	schema.PortalDelivery.EcosystemID, schema.PortalDelivery.Address,
	schema.PortalDelivery.Status, schema.PortalDelivery.UpdatedAt,
)

func scanDelivery(row pgx.Row, extra ...any) (*Delivery, error) {
	delivery := &Delivery{}
	targets := []any{
		&delivery.ID, &delivery.OrderID, &delivery.OwnerID, &delivery.EcosystemID,
		&delivery.Address, &delivery.Status, &delivery.UpdatedAt,
	}
	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}
	return delivery, nil
}

// List returns a page of visible deliveries, most recently updated first.
func (store *PostgresStore) List(ctx context.Context, scope portal.DataScope, statuses []string, limit, offset int) ([]*Delivery, int, error) {
	var queryBuilder strings.Builder
	clause, args := scope.Clause(schema.PortalDelivery.OwnerID, schema.PortalDelivery.EcosystemID, 1)
	argID := len(args) + 1

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s WHERE %s`,
		deliveryColumns, schema.PortalDelivery.Table, clause))

	if len(statuses) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = ANY($%d)", schema.PortalDelivery.Status, argID))
		args = append(args, statuses)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d",
		schema.PortalDelivery.UpdatedAt, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := store.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_deliveries_list_failed: %w", err)
	}
	defer rows.Close()

	deliveries := make([]*Delivery, 0)
	total := 0
	for rows.Next() {
		delivery, err := scanDelivery(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_deliveries_scan_failed: %w", err)
		}
		deliveries = append(deliveries, delivery)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_deliveries_rows_failed: %w", err)
	}
	return deliveries, total, nil
}

// Get retrieves one visible delivery.
func (store *PostgresStore) Get(ctx context.Context, scope portal.DataScope, id string) (*Delivery, error) {
	clause, scopeArgs := scope.Clause(schema.PortalDelivery.OwnerID, schema.PortalDelivery.EcosystemID, 2)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s`,
		deliveryColumns, schema.PortalDelivery.Table, schema.PortalDelivery.ID, clause)

	delivery, err := scanDelivery(store.pool.QueryRow(ctx, query, append([]any{id}, scopeArgs...)...))
	if err != nil {
		return nil, dberr.Wrap(err, "Delivery")
	}
	return delivery, nil
}

// Transition performs a guarded status update.
func (store *PostgresStore) Transition(ctx context.Context, scope portal.DataScope, id string, from []Status, to Status) (*Delivery, error) {
	clause, scopeArgs := scope.Clause(schema.PortalDelivery.OwnerID, schema.PortalDelivery.EcosystemID, 4)
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = NOW()
		WHERE %s = $1 AND %s = ANY($3) AND %s
		RETURNING %s`,
		schema.PortalDelivery.Table, schema.PortalDelivery.Status, schema.PortalDelivery.UpdatedAt,
		schema.PortalDelivery.ID, schema.PortalDelivery.Status, clause,
		deliveryColumns,
	)

	fromStrings := slice.Map(from, func(status Status) string { return string(status) })
	args := append([]any{id, string(to), fromStrings}, scopeArgs...)

	delivery, err := scanDelivery(store.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, "Delivery")
	}
	return delivery, nil
}
