// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assignments

import (
	"context"
	"fmt"

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

// NewPostgresStore creates a new Postgres implementation of the assignment store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// jobTable describes the table behind one job type.
type jobTable struct {
	table, id, owner, ecosystem string
}

var jobTables = map[JobType]jobTable{
	JobService: {
		schema.PortalServiceJob.Table, schema.PortalServiceJob.ID,
		schema.PortalServiceJob.OwnerID, schema.PortalServiceJob.EcosystemID,
	},
	JobDelivery: {
		schema.PortalDelivery.Table, schema.PortalDelivery.ID,
		schema.PortalDelivery.OwnerID, schema.PortalDelivery.EcosystemID,
	},
}

var assignmentColumns = fmt.Sprintf("%s, %s, %s, %s, COALESCE(%s, ''), %s, %s",
	schema.PortalAssignment.ID, schema.PortalAssignment.JobType, schema.PortalAssignment.JobID,
	schema.PortalAssignment.AssigneeID, schema.PortalAssignment.EcosystemID,
	schema.PortalAssignment.AssignedBy, schema.PortalAssignment.CreatedAt,
)

// List returns a page of visible assignments, newest first.
func (store *PostgresStore) List(ctx context.Context, scope portal.DataScope, limit, offset int) ([]*Assignment, int, error) {
	clause, scopeArgs := scope.Clause(schema.PortalAssignment.AssigneeID, schema.PortalAssignment.EcosystemID, 3)
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2`,
		assignmentColumns, schema.PortalAssignment.Table, clause, schema.PortalAssignment.CreatedAt,
	)

	rows, err := store.pool.Query(ctx, query, append([]any{limit, offset}, scopeArgs...)...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_assignments_list_failed: %w", err)
	}
	defer rows.Close()

	assignments := make([]*Assignment, 0)
	total := 0
	for rows.Next() {
		assignment := &Assignment{}
		if err := rows.Scan(
			&assignment.ID, &assignment.JobType, &assignment.JobID, &assignment.AssigneeID,
			&assignment.EcosystemID, &assignment.AssignedBy, &assignment.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_assignments_scan_failed: %w", err)
		}
		assignments = append(assignments, assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_assignments_rows_failed: %w", err)
	}
	return assignments, total, nil
}

/*
Upsert assigns a job in one transaction.

The job row is claimed first under the caller's scope: that both proves the
job is visible and hands it to the assignee. The assignment then inherits the
job's ecosystem and replaces any earlier row for the same job.
*/
func (store *PostgresStore) Upsert(ctx context.Context, scope portal.DataScope, assignment *Assignment) error {
	job, ok := jobTables[assignment.JobType]
	if !ok {
		return fmt.Errorf("assignments: unknown job type %q", assignment.JobType)
	}

	return pgx.BeginFunc(ctx, store.pool, func(tx pgx.Tx) error {
		clause, scopeArgs := scope.Clause(job.owner, job.ecosystem, 3)
		claim := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1 AND %s RETURNING COALESCE(%s, '')`,
			job.table, job.owner, job.id, clause, job.ecosystem)

		err := tx.QueryRow(ctx, claim, append([]any{assignment.JobID, assignment.AssigneeID}, scopeArgs...)...).
			Scan(&assignment.EcosystemID)
		if err != nil {
			return dberr.Wrap(err, "Job")
		}

		upsert := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
			ON CONFLICT (%s, %s) DO UPDATE
			SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()
			RETURNING %s, %s`,
			schema.PortalAssignment.Table,
			schema.PortalAssignment.ID, schema.PortalAssignment.JobType, schema.PortalAssignment.JobID,
			schema.PortalAssignment.AssigneeID, schema.PortalAssignment.EcosystemID, schema.PortalAssignment.AssignedBy,
			schema.PortalAssignment.JobType, schema.PortalAssignment.JobID,
			schema.PortalAssignment.AssigneeID, schema.PortalAssignment.AssigneeID,
			schema.PortalAssignment.AssignedBy, schema.PortalAssignment.AssignedBy,
			schema.PortalAssignment.CreatedAt,
			schema.PortalAssignment.ID, schema.PortalAssignment.CreatedAt,
		)

		err = tx.QueryRow(ctx, upsert,
			assignment.ID, string(assignment.JobType), assignment.JobID,
			assignment.AssigneeID, assignment.EcosystemID, assignment.AssignedBy,
		).Scan(&assignment.ID, &assignment.CreatedAt)
		if err != nil {
			return dberr.Wrap(err, "Assignment")
		}
		return nil
	})
}
