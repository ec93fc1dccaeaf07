// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package permission

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/platform/database/schema"
)

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new Postgres implementation of the grant tables.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// RolePermissions lists the default grants of role from access.rolepermission.
func (store *PostgresStore) RolePermissions(ctx context.Context, role roles.Code) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		schema.AccessRolePermission.Capability,
		schema.AccessRolePermission.Table,
		schema.AccessRolePermission.Role,
		schema.AccessRolePermission.Capability,
	)

	rows, err := store.pool.Query(ctx, query, string(role))
	if err != nil {
		return nil, fmt.Errorf("postgres_permission_role_defaults_failed: %w", err)
	}

	capabilities, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("postgres_permission_role_defaults_scan_failed: %w", err)
	}
	return capabilities, nil
}

// Overrides lists the overrides of userID, oldest first.
func (store *PostgresStore) Overrides(ctx context.Context, userID string) ([]Override, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, COALESCE(%s, ''), %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s, %s`,
		schema.AccessPermissionOverride.UserID, schema.AccessPermissionOverride.Capability,
		schema.AccessPermissionOverride.Allow, schema.AccessPermissionOverride.UpdatedBy,
		schema.AccessPermissionOverride.UpdatedAt,
		schema.AccessPermissionOverride.Table,
		schema.AccessPermissionOverride.UserID,
		schema.AccessPermissionOverride.UpdatedAt, schema.AccessPermissionOverride.Capability,
	)

	rows, err := store.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_permission_overrides_failed: %w", err)
	}
	defer rows.Close()

	var overrides []Override
	for rows.Next() {
		var override Override
		if err := rows.Scan(
			&override.UserID,
			&override.Capability,
			&override.Allow,
			&override.UpdatedBy,
			&override.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_permission_overrides_scan_failed: %w", err)
		}
		overrides = append(overrides, override)
	}

	return overrides, rows.Err()
}

// UpsertOverride writes the override; a later write for the same pair replaces the earlier one.
func (store *PostgresStore) UpsertOverride(ctx context.Context, override Override) error {
	updatedAt := override.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		ON CONFLICT (%s, %s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		schema.AccessPermissionOverride.Table,
		schema.AccessPermissionOverride.UserID, schema.AccessPermissionOverride.Capability,
		schema.AccessPermissionOverride.Allow, schema.AccessPermissionOverride.UpdatedBy,
		schema.AccessPermissionOverride.UpdatedAt,
		schema.AccessPermissionOverride.UserID, schema.AccessPermissionOverride.Capability,
		schema.AccessPermissionOverride.Allow, schema.AccessPermissionOverride.Allow,
		schema.AccessPermissionOverride.UpdatedBy, schema.AccessPermissionOverride.UpdatedBy,
		schema.AccessPermissionOverride.UpdatedAt, schema.AccessPermissionOverride.UpdatedAt,
	)

	_, err := store.pool.Exec(ctx, query,
		override.UserID,
		override.Capability,
		override.Allow,
		override.UpdatedBy,
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_permission_upsert_override_failed: %w", err)
	}
	return nil
}
