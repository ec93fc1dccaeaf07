// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bizportal/internal/domains/deliveries"
	"github.com/taibuivan/bizportal/internal/domains/orders"
	"github.com/taibuivan/bizportal/internal/domains/services"
	"github.com/taibuivan/bizportal/internal/domains/support"
	"github.com/taibuivan/bizportal/internal/platform/database/schema"
	"github.com/taibuivan/bizportal/internal/portal"
)

// counter describes how one metric is counted.
type counter struct {
	table     string
	owner     string
	ecosystem string
	status    string
	statuses  []string
}

var counters = map[Metric]counter{
	MetricOpenOrders: {
		table: schema.PortalOrder.Table, owner: schema.PortalOrder.CustomerID,
		ecosystem: schema.PortalOrder.EcosystemID, status: schema.PortalOrder.Status,
		statuses: []string{string(orders.StatusPending), string(orders.StatusApproved)},
	},
	MetricPendingApprovals: {
		table: schema.PortalOrder.Table, owner: schema.PortalOrder.CustomerID,
		ecosystem: schema.PortalOrder.EcosystemID, status: schema.PortalOrder.Status,
		statuses: []string{string(orders.StatusPending)},
	},
	MetricActiveJobs: {
		table: schema.PortalServiceJob.Table, owner: schema.PortalServiceJob.OwnerID,
		ecosystem: schema.PortalServiceJob.EcosystemID, status: schema.PortalServiceJob.Status,
		statuses: []string{string(services.StatusScheduled), string(services.StatusInProgress)},
	},
	MetricDeliveriesInTransit: {
		table: schema.PortalDelivery.Table, owner: schema.PortalDelivery.OwnerID,
		ecosystem: schema.PortalDelivery.EcosystemID, status: schema.PortalDelivery.Status,
		statuses: []string{string(deliveries.StatusInTransit)},
	},
	MetricOpenTickets: {
		table: schema.PortalSupportTicket.Table, owner: schema.PortalSupportTicket.OwnerID,
		ecosystem: schema.PortalSupportTicket.EcosystemID, status: schema.PortalSupportTicket.Status,
		statuses: []string{string(support.StatusOpen), string(support.StatusAnswered)},
	},
}

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new Postgres implementation of the dashboard counters.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Count runs a scoped COUNT(*) for metric.
func (store *PostgresStore) Count(ctx context.Context, scope portal.DataScope, metric Metric) (int, error) {
	counter, ok := counters[metric]
	if !ok {
		return 0, fmt.Errorf("dashboard: unknown metric %q", metric)
	}

	clause, scopeArgs := scope.Clause(counter.owner, counter.ecosystem, 2)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = ANY($1) AND %s`,
		counter.table, counter.status, clause)

	args := append([]any{counter.statuses}, scopeArgs...)

	var total int
	if err := store.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres_dashboard_count_failed: %w", err)
	}
	return total, nil
}
