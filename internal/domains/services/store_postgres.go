// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package services

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

// NewPostgresStore creates a new Postgres implementation of the job store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var jobColumns = fmt.Sprintf("%s, %s, COALESCE(%s, ''), %s, %s, %s, %s",
	schema.PortalServiceJob.ID, schema.PortalServiceJob.OwnerID, schema.PortalServiceJob.EcosystemID,
	schema.PortalServiceJob.Title, schema.PortalServiceJob.Status,
	schema.PortalServiceJob.ScheduledFor, schema.PortalServiceJob.UpdatedAt,
)

func scanJob(row pgx.Row, extra ...any) (*Job, error) {
	job := &Job{}
	targets := []any{&job.ID, &job.OwnerID, &job.EcosystemID, &job.Title, &job.Status, &job.ScheduledFor, &job.UpdatedAt}
	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}
	return job, nil
}

// List returns a page of visible jobs ordered by schedule.
func (store *PostgresStore) List(ctx context.Context, scope portal.DataScope, statuses []string, limit, offset int) ([]*Job, int, error) {
	var queryBuilder strings.Builder
	clause, args := scope.Clause(schema.PortalServiceJob.OwnerID, schema.PortalServiceJob.EcosystemID, 1)
	argID := len(args) + 1

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s WHERE %s`,
		jobColumns, schema.PortalServiceJob.Table, clause))

	if len(statuses) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = ANY($%d)", schema.PortalServiceJob.Status, argID))
		args = append(args, statuses)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC NULLS LAST LIMIT $%d OFFSET $%d",
		schema.PortalServiceJob.ScheduledFor, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := store.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_services_list_failed: %w", err)
	}
	defer rows.Close()

	jobs := make([]*Job, 0)
	total := 0
	for rows.Next() {
		job, err := scanJob(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_services_scan_failed: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_services_rows_failed: %w", err)
	}
	return jobs, total, nil
}

// Get retrieves one visible job.
func (store *PostgresStore) Get(ctx context.Context, scope portal.DataScope, id string) (*Job, error) {
	clause, scopeArgs := scope.Clause(schema.PortalServiceJob.OwnerID, schema.PortalServiceJob.EcosystemID, 2)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s`,
		jobColumns, schema.PortalServiceJob.Table, schema.PortalServiceJob.ID, clause)

	job, err := scanJob(store.pool.QueryRow(ctx, query, append([]any{id}, scopeArgs...)...))
	if err != nil {
		return nil, dberr.Wrap(err, "Service job")
	}
	return job, nil
}

// Transition performs a guarded status update.
func (store *PostgresStore) Transition(ctx context.Context, scope portal.DataScope, id string, from []Status, to Status) (*Job, error) {
	clause, scopeArgs := scope.Clause(schema.PortalServiceJob.OwnerID, schema.PortalServiceJob.EcosystemID, 4)
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = NOW()
		WHERE %s = $1 AND %s = ANY($3) AND %s
		RETURNING %s`,
		schema.PortalServiceJob.Table, schema.PortalServiceJob.Status, schema.PortalServiceJob.UpdatedAt,
		schema.PortalServiceJob.ID, schema.PortalServiceJob.Status, clause,
		jobColumns,
	)

	fromStrings := slice.Map(from, func(status Status) string { return string(status) })
	args := append([]any{id, string(to), fromStrings}, scopeArgs...)

	job, err := scanJob(store.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, "Service job")
	}
	return job, nil
}
