// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package support

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

const resourceName = "Ticket"

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new Postgres implementation of the ticket store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var ticketColumns = fmt.Sprintf("%s, %s, COALESCE(%s, ''), %s, %s, %s, %s, %s",
	schema.PortalSupportTicket.ID, schema.PortalSupportTicket.OwnerID, schema.PortalSupportTicket.EcosystemID,
	schema.PortalSupportTicket.Subject, schema.PortalSupportTicket.Body, schema.PortalSupportTicket.Status,
	schema.PortalSupportTicket.CreatedAt, schema.PortalSupportTicket.UpdatedAt,
)

func scanTicket(row pgx.Row, extra ...any) (*Ticket, error) {
	ticket := &Ticket{}
	targets := []any{
		&ticket.ID, &ticket.OwnerID, &ticket.EcosystemID, &ticket.Subject,
		&ticket.Body, &ticket.Status, &ticket.CreatedAt, &ticket.UpdatedAt,
	}
	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}
	return ticket, nil
}

// List returns a page of visible tickets, most recently touched first.
func (store *PostgresStore) List(ctx context.Context, scope portal.DataScope, statuses []string, limit, offset int) ([]*Ticket, int, error) {
	var queryBuilder strings.Builder
	clause, args := scope.Clause(schema.PortalSupportTicket.OwnerID, schema.PortalSupportTicket.EcosystemID, 1)
	argID := len(args) + 1

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s WHERE %s`,
		ticketColumns, schema.PortalSupportTicket.Table, clause))

	if len(statuses) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = ANY($%d)", schema.PortalSupportTicket.Status, argID))
		args = append(args, statuses)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d",
		schema.PortalSupportTicket.UpdatedAt, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := store.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_support_list_failed: %w", err)
	}
	defer rows.Close()

	tickets := make([]*Ticket, 0)
	total := 0
	for rows.Next() {
		ticket, err := scanTicket(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_support_scan_failed: %w", err)
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_support_rows_failed: %w", err)
	}
	return tickets, total, nil
}

// Get retrieves one visible ticket and its replies.
func (store *PostgresStore) Get(ctx context.Context, scope portal.DataScope, id string) (*Ticket, error) {
	clause, scopeArgs := scope.Clause(schema.PortalSupportTicket.OwnerID, schema.PortalSupportTicket.EcosystemID, 2)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s`,
		ticketColumns, schema.PortalSupportTicket.Table, schema.PortalSupportTicket.ID, clause)

	ticket, err := scanTicket(store.pool.QueryRow(ctx, query, append([]any{id}, scopeArgs...)...))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}

	replies, err := store.replies(ctx, store.pool, ticket.ID)
	if err != nil {
		return nil, err
	}
	ticket.Replies = replies
	return ticket, nil
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (store *PostgresStore) replies(ctx context.Context, db querier, ticketID string) ([]*Reply, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		schema.PortalSupportReply.ID, schema.PortalSupportReply.TicketID, schema.PortalSupportReply.AuthorID,
		schema.PortalSupportReply.Body, schema.PortalSupportReply.CreatedAt,
		schema.PortalSupportReply.Table, schema.PortalSupportReply.TicketID, schema.PortalSupportReply.CreatedAt,
	)

	rows, err := db.Query(ctx, query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("postgres_support_replies_failed: %w", err)
	}

	replies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Reply, error) {
		reply := &Reply{}
		err := row.Scan(&reply.ID, &reply.TicketID, &reply.AuthorID, &reply.Body, &reply.CreatedAt)
		return reply, err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres_support_replies_scan_failed: %w", err)
	}
	return replies, nil
}

// Create inserts a new ticket.
func (store *PostgresStore) Create(ctx context.Context, ticket *Ticket) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
		RETURNING %s, %s`,
		schema.PortalSupportTicket.Table,
		schema.PortalSupportTicket.ID, schema.PortalSupportTicket.OwnerID, schema.PortalSupportTicket.EcosystemID,
		schema.PortalSupportTicket.Subject, schema.PortalSupportTicket.Body, schema.PortalSupportTicket.Status,
		schema.PortalSupportTicket.CreatedAt, schema.PortalSupportTicket.UpdatedAt,
	)

	err := store.pool.QueryRow(ctx, query,
		ticket.ID, ticket.OwnerID, ticket.EcosystemID, ticket.Subject, ticket.Body, ticket.Status,
	).Scan(&ticket.CreatedAt, &ticket.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres_support_create_failed: %w", err)
	}
	return nil
}

/*
AddReply moves the ticket and inserts the reply in one transaction.

The guarded UPDATE runs first so a concurrent close wins over the reply.
*/
func (store *PostgresStore) AddReply(ctx context.Context, scope portal.DataScope, reply *Reply, from []Status, status Status) (*Ticket, error) {
	var ticket *Ticket

	err := pgx.BeginFunc(ctx, store.pool, func(tx pgx.Tx) error {
		clause, scopeArgs := scope.Clause(schema.PortalSupportTicket.OwnerID, schema.PortalSupportTicket.EcosystemID, 4)
		update := fmt.Sprintf(`
			UPDATE %s SET %s = $2, %s = NOW()
			WHERE %s = $1 AND %s = ANY($3) AND %s
			RETURNING %s`,
			schema.PortalSupportTicket.Table,
			schema.PortalSupportTicket.Status, schema.PortalSupportTicket.UpdatedAt,
			schema.PortalSupportTicket.ID, schema.PortalSupportTicket.Status, clause,
			ticketColumns,
		)

		fromStrings := slice.Map(from, func(s Status) string { return string(s) })
		args := append([]any{reply.TicketID, string(status), fromStrings}, scopeArgs...)

		var err error
		ticket, err = scanTicket(tx.QueryRow(ctx, update, args...))
		if err != nil {
			return dberr.Wrap(err, resourceName)
		}

		insert := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s`,
			schema.PortalSupportReply.Table,
			schema.PortalSupportReply.ID, schema.PortalSupportReply.TicketID,
			schema.PortalSupportReply.AuthorID, schema.PortalSupportReply.Body,
			schema.PortalSupportReply.CreatedAt,
		)
		if err := tx.QueryRow(ctx, insert, reply.ID, reply.TicketID, reply.AuthorID, reply.Body).Scan(&reply.CreatedAt); err != nil {
			return fmt.Errorf("postgres_support_reply_insert_failed: %w", err)
		}

		ticket.Replies, err = store.replies(ctx, tx, ticket.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}
