// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bizportal/internal/access/identity"
	"github.com/taibuivan/bizportal/internal/platform/database/schema"
	"github.com/taibuivan/bizportal/internal/platform/dberr"
)

// PostgresStore implements [Store]. Reads go through the identity store.
type PostgresStore struct {
	*identity.PostgresStore
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new Postgres implementation of the profile store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{PostgresStore: identity.NewPostgresStore(pool), pool: pool}
}

// UpdateProfile writes the editable fields of an active account.
func (store *PostgresStore) UpdateProfile(ctx context.Context, id, displayName, email string) (*identity.User, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1 AND %s = $4
		RETURNING %s, %s, %s, %s, %s, COALESCE(%s, ''), %s, %s, %s`,
		schema.AccessUser.Table,
		schema.AccessUser.DisplayName, schema.AccessUser.Email, schema.AccessUser.UpdatedAt,
		schema.AccessUser.ID, schema.AccessUser.Status,
		schema.AccessUser.ID, schema.AccessUser.DisplayName, schema.AccessUser.Email,
		schema.AccessUser.Role, schema.AccessUser.Status, schema.AccessUser.EcosystemID,
		schema.AccessUser.Metadata, schema.AccessUser.CreatedAt, schema.AccessUser.UpdatedAt,
	)

	user := &identity.User{}
	err := store.pool.QueryRow(ctx, query, id, displayName, email, string(identity.StatusActive)).Scan(
		&user.ID, &user.DisplayName, &user.Email, &user.Role, &user.Status,
		&user.EcosystemID, &user.Metadata, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Profile")
	}
	return user, nil
}
