// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bizportal/internal/platform/database/schema"
)

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new Postgres implementation of the account reader.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

/*
FindByID retrieves a single account from the access.account table.

Archived rows are returned as-is; the [Loader] decides what they mean.
*/
func (store *PostgresStore) FindByID(ctx context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, COALESCE(%s, ''), %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.AccessUser.ID, schema.AccessUser.DisplayName, schema.AccessUser.Email,
		schema.AccessUser.Role, schema.AccessUser.Status, schema.AccessUser.EcosystemID,
		schema.AccessUser.Metadata, schema.AccessUser.CreatedAt, schema.AccessUser.UpdatedAt,
		schema.AccessUser.Table, schema.AccessUser.ID,
	)

	user := &User{}
	err := store.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.DisplayName,
		&user.Email,
		&user.Role,
		&user.Status,
		&user.EcosystemID,
		&user.Metadata,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("postgres_identity_find_by_id_failed: %w", err)
	}

	return user, nil
}
