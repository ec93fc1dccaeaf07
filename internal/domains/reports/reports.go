// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reports aggregates order data into summaries and CSV exports.

Both views read through the caller's data scope: a manager's export contains
only the orders of their ecosystem.
*/
package reports

import (
	"context"
	"time"

	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/activity"
	"github.com/taibuivan/bizportal/internal/domains/orders"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/pkg/slice"
)

// maxExportRows caps one export.
const maxExportRows = 10000

// StatusTotal is the order count and value of one status.
type StatusTotal struct {
	Status     string `json:"status"`
	Count      int    `json:"count"`
	TotalCents int64  `json:"total_cents"`
}

// Summary is the payload of GET /reports/summary.
type Summary struct {
	ByStatus     []StatusTotal `json:"by_status"`
	OrderCount   int           `json:"order_count"`
	RevenueCents int64         `json:"revenue_cents"`
	GeneratedAt  time.Time     `json:"generated_at"`
}

// ExportRow is one line of the order export.
type ExportRow struct {
	OrderID       string
	CustomerID    string
	EcosystemID   string
	CatalogItemID string
	Quantity      int
	TotalCents    int64
	Status        string
	CreatedAt     time.Time
}

// Store reads aggregated order data.
type Store interface {
	StatusTotals(ctx context.Context, scope portal.DataScope, since time.Time) ([]StatusTotal, error)
	ExportRows(ctx context.Context, scope portal.DataScope, since time.Time, limit int) ([]ExportRow, error)
}

// Service implements reporting use cases.
type Service struct {
	store Store
	feed  *activity.Feed
	now   func() time.Time
}

// NewService creates a reports Service. feed may be nil.
func NewService(store Store, feed *activity.Feed) *Service {
	return &Service{store: store, feed: feed, now: time.Now}
}

// Summary totals visible orders created since the given time.
// Revenue counts approved orders only.
func (service *Service) Summary(ctx context.Context, scope portal.DataScope, since time.Time) (*Summary, error) {
	totals, err := service.store.StatusTotals(ctx, scope, since)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		ByStatus:    totals,
		OrderCount:  slice.Reduce(totals, 0, func(sum int, total StatusTotal) int { return sum + total.Count }),
		GeneratedAt: service.now().UTC(),
	}
	for _, total := range slice.Filter(totals, func(total StatusTotal) bool { return total.Status == string(orders.StatusApproved) }) {
		summary.RevenueCents += total.TotalCents
	}
	return summary, nil
}

// Export returns the rows of the order export. The export itself is logged
// to the activity feed, since it moves data out of the portal.
func (service *Service) Export(ctx context.Context, scope portal.DataScope, since time.Time) ([]ExportRow, error) {
	rows, err := service.store.ExportRows(ctx, scope, since, maxExportRows)
	if err != nil {
		return nil, err
	}

	service.feed.Record(ctx, scope, activity.Entry{
		Domain: roles.DomainReports, Action: "orders_exported",
	})
	return rows, nil
}
