// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package directory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bizportal/internal/access/identity"
	"github.com/taibuivan/bizportal/internal/platform/database/schema"
	"github.com/taibuivan/bizportal/internal/platform/dberr"
	"github.com/taibuivan/bizportal/internal/portal"
)

const resourceName = "User"

// PostgresStore implements [Store] over access.account.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new Postgres implementation of the account directory.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var userColumns = fmt.Sprintf("%s, %s, %s, %s, %s, COALESCE(%s, ''), %s, %s, %s",
	schema.AccessUser.ID, schema.AccessUser.DisplayName, schema.AccessUser.Email,
	schema.AccessUser.Role, schema.AccessUser.Status, schema.AccessUser.EcosystemID,
	schema.AccessUser.Metadata, schema.AccessUser.CreatedAt, schema.AccessUser.UpdatedAt,
)

func scanUser(row pgx.Row, extra ...any) (*identity.User, error) {
	user := &identity.User{}
	targets := []any{
		&user.ID, &user.DisplayName, &user.Email, &user.Role, &user.Status,
		&user.EcosystemID, &user.Metadata, &user.CreatedAt, &user.UpdatedAt,
	}
	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns a page of visible accounts in one status, ordered by name.
func (store *PostgresStore) List(ctx context.Context, scope portal.DataScope, status identity.Status, limit, offset int) ([]*identity.User, int, error) {
	clause, scopeArgs := scope.Clause(schema.AccessUser.ID, schema.AccessUser.EcosystemID, 4)
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1 AND %s
		ORDER BY %s ASC, %s ASC
		LIMIT $2 OFFSET $3`,
		userColumns, schema.AccessUser.Table,
		schema.AccessUser.Status, clause,
		schema.AccessUser.DisplayName, schema.AccessUser.ID,
	)

	rows, err := store.pool.Query(ctx, query, append([]any{string(status), limit, offset}, scopeArgs...)...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_directory_list_failed: %w", err)
	}
	defer rows.Close()

	users := make([]*identity.User, 0)
	total := 0
	for rows.Next() {
		user, err := scanUser(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_directory_scan_failed: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_directory_rows_failed: %w", err)
	}
	return users, total, nil
}

// Get retrieves one visible account in any status.
func (store *PostgresStore) Get(ctx context.Context, scope portal.DataScope, id string) (*identity.User, error) {
	clause, scopeArgs := scope.Clause(schema.AccessUser.ID, schema.AccessUser.EcosystemID, 2)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s`,
		userColumns, schema.AccessUser.Table, schema.AccessUser.ID, clause)

	user, err := scanUser(store.pool.QueryRow(ctx, query, append([]any{id}, scopeArgs...)...))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return user, nil
}

// SetStatus performs the guarded status change.
func (store *PostgresStore) SetStatus(ctx context.Context, scope portal.DataScope, id string, from, to identity.Status) (*identity.User, error) {
	clause, scopeArgs := scope.Clause(schema.AccessUser.ID, schema.AccessUser.EcosystemID, 4)
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = NOW()
		WHERE %s = $1 AND %s = $3 AND %s
		RETURNING %s`,
		schema.AccessUser.Table, schema.AccessUser.Status, schema.AccessUser.UpdatedAt,
		schema.AccessUser.ID, schema.AccessUser.Status, clause,
		userColumns,
	)

	user, err := scanUser(store.pool.QueryRow(ctx, query, append([]any{id, string(to), string(from)}, scopeArgs...)...))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return user, nil
}
