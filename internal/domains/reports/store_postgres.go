// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bizportal/internal/platform/database/schema"
	"github.com/taibuivan/bizportal/internal/portal"
)

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new Postgres implementation of the report reader.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// StatusTotals groups visible orders by status.
func (store *PostgresStore) StatusTotals(ctx context.Context, scope portal.DataScope, since time.Time) ([]StatusTotal, error) {
	clause, scopeArgs := scope.Clause(schema.PortalOrder.CustomerID, schema.PortalOrder.EcosystemID, 2)
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*), COALESCE(SUM(%s), 0)
		FROM %s
		WHERE %s >= $1 AND %s
		GROUP BY %s
		ORDER BY %s`,
		schema.PortalOrder.Status, schema.PortalOrder.TotalCents,
		schema.PortalOrder.Table,
		schema.PortalOrder.CreatedAt, clause,
		schema.PortalOrder.Status, schema.PortalOrder.Status,
	)

	rows, err := store.pool.Query(ctx, query, append([]any{since}, scopeArgs...)...)
	if err != nil {
		return nil, fmt.Errorf("postgres_reports_totals_failed: %w", err)
	}

	totals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (StatusTotal, error) {
		var total StatusTotal
		err := row.Scan(&total.Status, &total.Count, &total.TotalCents)
		return total, err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres_reports_totals_scan_failed: %w", err)
	}
	return totals, nil
}

// ExportRows lists visible orders, oldest first, up to limit.
func (store *PostgresStore) ExportRows(ctx context.Context, scope portal.DataScope, since time.Time, limit int) ([]ExportRow, error) {
	clause, scopeArgs := scope.Clause(schema.PortalOrder.CustomerID, schema.PortalOrder.EcosystemID, 3)
	query := fmt.Sprintf(`
		SELECT %s, %s, COALESCE(%s, ''), %s, %s, %s, %s, %s
		FROM %s
		WHERE %s >= $1 AND %s
		ORDER BY %s ASC
		LIMIT $2`,
		schema.PortalOrder.ID, schema.PortalOrder.CustomerID, schema.PortalOrder.EcosystemID,
		schema.PortalOrder.CatalogItemID, schema.PortalOrder.Quantity, schema.PortalOrder.TotalCents,
		schema.PortalOrder.Status, schema.PortalOrder.CreatedAt,
		schema.PortalOrder.Table,
		schema.PortalOrder.CreatedAt, clause,
		schema.PortalOrder.CreatedAt,
	)

	rows, err := store.pool.Query(ctx, query, append([]any{since, limit}, scopeArgs...)...)
	if err != nil {
		return nil, fmt.Errorf("postgres_reports_export_failed: %w", err)
	}

	export, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ExportRow, error) {
		var line ExportRow
		err := row.Scan(
			&line.OrderID, &line.CustomerID, &line.EcosystemID, &line.CatalogItemID,
			&line.Quantity, &line.TotalCents, &line.Status, &line.CreatedAt,
		)
		return line, err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres_reports_export_scan_failed: %w", err)
	}
	return export, nil
}
