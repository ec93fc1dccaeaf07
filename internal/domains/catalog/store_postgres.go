// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/platform/database/schema"
	"github.com/taibuivan/bizportal/internal/platform/dberr"
)

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new Postgres implementation of the catalogue store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var itemColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s",
	schema.PortalCatalogItem.ID, schema.PortalCatalogItem.SKU, schema.PortalCatalogItem.Name,
	schema.PortalCatalogItem.Description, schema.PortalCatalogItem.PriceCents,
	schema.PortalCatalogItem.IsActive, schema.PortalCatalogItem.CreatedAt, schema.PortalCatalogItem.UpdatedAt,
)

/*
List returns a filtered page of items ordered by name.

The total is read with COUNT(*) OVER() in the same query.
*/
func (store *PostgresStore) List(ctx context.Context, filter Filter, limit, offset int) ([]*Item, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s WHERE TRUE`,
		itemColumns, schema.PortalCatalogItem.Table))

	if filter.Active != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.PortalCatalogItem.IsActive, argID))
		args = append(args, *filter.Active)
		argID++
	}

	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d)",
			schema.PortalCatalogItem.Name, argID, schema.PortalCatalogItem.SKU, argID))
		args = append(args, "%"+filter.Search+"%")
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d",
		schema.PortalCatalogItem.Name, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := store.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_catalog_list_failed: %w", err)
	}
	defer rows.Close()

	items := make([]*Item, 0)
	total := 0
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(
			&item.ID, &item.SKU, &item.Name, &item.Description, &item.PriceCents,
			&item.IsActive, &item.CreatedAt, &item.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_catalog_scan_failed: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_catalog_rows_failed: %w", err)
	}

	return items, total, nil
}

// Get retrieves one item by id.
func (store *PostgresStore) Get(ctx context.Context, id string) (*Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		itemColumns, schema.PortalCatalogItem.Table, schema.PortalCatalogItem.ID)

	item := &Item{}
	err := store.pool.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.SKU, &item.Name, &item.Description, &item.PriceCents,
		&item.IsActive, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Catalog item")
	}
	return item, nil
}

// Create inserts item. A duplicate SKU is reported as a conflict.
func (store *PostgresStore) Create(ctx context.Context, item *Item) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schema.PortalCatalogItem.Table, itemColumns)

	_, err := store.pool.Exec(ctx, query,
		item.ID, item.SKU, item.Name, item.Description, item.PriceCents,
		item.IsActive, item.CreatedAt, item.UpdatedAt,
	)
	return dberr.Wrap(err, "Catalog item")
}

// Update overwrites the mutable columns of item.
func (store *PostgresStore) Update(ctx context.Context, item *Item) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6 WHERE %s = $1`,
		schema.PortalCatalogItem.Table,
		schema.PortalCatalogItem.Name, schema.PortalCatalogItem.Description,
		schema.PortalCatalogItem.PriceCents, schema.PortalCatalogItem.IsActive,
		schema.PortalCatalogItem.UpdatedAt, schema.PortalCatalogItem.ID,
	)

	tag, err := store.pool.Exec(ctx, query,
		item.ID, item.Name, item.Description, item.PriceCents, item.IsActive, item.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Catalog item")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Catalog item")
	}
	return nil
}
