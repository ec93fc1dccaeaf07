// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package deliveries tracks shipments of approved orders.
package deliveries

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/activity"
	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/platform/validate"
	"github.com/taibuivan/bizportal/internal/portal"
)

// Status is the shipping state of a delivery.
type Status string

const (
	StatusPending   Status = "pending"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
)

// Statuses lists every status.
var Statuses = []string{string(StatusPending), string(StatusInTransit), string(StatusDelivered), string(StatusFailed)}

// predecessors maps a target status to the statuses it may be reached from.
// A failed delivery may be dispatched again.
var predecessors = map[Status][]Status{
	StatusInTransit: {StatusPending, StatusFailed},
	StatusDelivered: {StatusInTransit},
	StatusFailed:    {StatusInTransit},
}

// Delivery is the shipment of one order.
type Delivery struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	OwnerID     string    `json:"owner_id"`
	EcosystemID string    `json:"ecosystem_id,omitempty"`
	Address     string    `json:"address"`
	Status      Status    `json:"status"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StatusInput is the payload of POST /deliveries/{id}/status.
type StatusInput struct {
	Status Status `json:"status"`
}

// Store persists deliveries.
type Store interface {
	List(ctx context.Context, scope portal.DataScope, statuses []string, limit, offset int) ([]*Delivery, int, error)
	Get(ctx context.Context, scope portal.DataScope, id string) (*Delivery, error)
	Transition(ctx context.Context, scope portal.DataScope, id string, from []Status, to Status) (*Delivery, error)
}

// Service implements delivery use cases.
type Service struct {
	store Store
	feed  *activity.Feed
}

// NewService creates a deliveries Service. feed may be nil.
func NewService(store Store, feed *activity.Feed) *Service {
	return &Service{store: store, feed: feed}
}

// List returns one page of visible deliveries.
func (service *Service) List(ctx context.Context, scope portal.DataScope, statuses []string, limit, offset int) ([]*Delivery, int, error) {
	v := &validate.Validator{}
	for _, status := range statuses {
		v.OneOf("status", status, Statuses...)
	}
	if err := v.Err(); err != nil {
		return nil, 0, err
	}
	return service.store.List(ctx, scope, statuses, limit, offset)
}

// Get returns one visible delivery.
func (service *Service) Get(ctx context.Context, scope portal.DataScope, id string) (*Delivery, error) {
	return service.store.Get(ctx, scope, id)
}

// UpdateStatus moves a visible delivery to status.
func (service *Service) UpdateStatus(ctx context.Context, scope portal.DataScope, id string, status Status) (*Delivery, error) {
	from, ok := predecessors[status]
	if !ok {
		return nil, validate.RequiredError("status", "Must be one of: in_transit, delivered, failed")
	}

	delivery, err := service.store.Transition(ctx, scope, id, from, status)
	if err != nil {
		if !apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, err
		}
		current, getErr := service.store.Get(ctx, scope, id)
		if getErr != nil {
			return nil, getErr
		}
		return nil, apperr.Conflict(fmt.Sprintf("Delivery is %s and cannot become %s", current.Status, status)).
			WithDetails(map[string]any{"status": current.Status})
	}

	service.feed.Record(ctx, scope, activity.Entry{
		Domain: roles.DomainDeliveries, Action: "delivery_" + string(status), RecordID: delivery.ID,
	})
	return delivery, nil
}
