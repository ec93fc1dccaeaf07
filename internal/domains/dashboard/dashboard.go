// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dashboard serves the landing view of every role: a handful of counters
and the activity feed.

The counters are independent queries against different tables, so they are
read concurrently. Each one is filtered by the caller's data scope, which is
why a customer and an administrator see different numbers on the same page.
*/
package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/bizportal/internal/activity"
	"github.com/taibuivan/bizportal/internal/portal"
)

// Metric names one dashboard counter.
type Metric string

const (
	MetricOpenOrders          Metric = "open_orders"
	MetricPendingApprovals    Metric = "pending_approvals"
	MetricActiveJobs          Metric = "active_jobs"
	MetricDeliveriesInTransit Metric = "deliveries_in_transit"
	MetricOpenTickets         Metric = "open_tickets"
)

// Metrics lists the counters in display order.
var Metrics = []Metric{
	MetricOpenOrders,
	MetricPendingApprovals,
	MetricActiveJobs,
	MetricDeliveriesInTransit,
	MetricOpenTickets,
}

// KPI is one computed counter.
type KPI struct {
	Metric Metric `json:"metric"`
	Value  int    `json:"value"`
}

// Store counts records visible to a scope.
type Store interface {
	Count(ctx context.Context, scope portal.DataScope, metric Metric) (int, error)
}

// # Service

// Service computes counters and reads the activity feed.
type Service struct {
	store Store
	feed  *activity.Feed
}

// NewService creates a dashboard Service. feed may be nil.
func NewService(store Store, feed *activity.Feed) *Service {
	return &Service{store: store, feed: feed}
}

// KPIs reads every metric concurrently. The first failure cancels the rest.
func (service *Service) KPIs(ctx context.Context, scope portal.DataScope) ([]KPI, error) {
	results := make([]KPI, len(Metrics))
	group, groupCtx := errgroup.WithContext(ctx)

	for index, metric := range Metrics {
		group.Go(func() error {
			value, err := service.store.Count(groupCtx, scope, metric)
			if err != nil {
				return fmt.Errorf("dashboard_count_%s_failed: %w", metric, err)
			}
			results[index] = KPI{Metric: metric, Value: value}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Activity returns the newest feed entries visible to scope.
func (service *Service) Activity(ctx context.Context, scope portal.DataScope, limit int) ([]activity.Entry, error) {
	return service.feed.Recent(ctx, scope, int64(limit))
}

// ClearActivity empties the feed visible to scope.
func (service *Service) ClearActivity(ctx context.Context, scope portal.DataScope) error {
	return service.feed.Clear(ctx, scope)
}
