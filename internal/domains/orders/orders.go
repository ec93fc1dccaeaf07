// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package orders implements sales orders: placement, approval and cancellation.

# Lifecycle

	pending ──approve──▶ approved
	   │                    │
	   └──────cancel────────┴──▶ cancelled

Every read and write is narrowed by the caller's data scope. An order outside
the scope does not exist for the caller, so acting on it is NOT_FOUND.
*/
package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/activity"
	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/platform/validate"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/pkg/uuid"
)

// # Domain Entities

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every status, for filter validation.
var Statuses = []string{string(StatusPending), string(StatusApproved), string(StatusCancelled)}

// Order is a customer's request for a quantity of one catalogue item.
type Order struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customer_id"`
	EcosystemID   string    `json:"ecosystem_id,omitempty"`
	CatalogItemID string    `json:"catalog_item_id"`
	Quantity      int       `json:"quantity"`
	TotalCents    int64     `json:"total_cents"`
	Status        Status    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
	ApprovedBy    string    `json:"approved_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StatusView is the payload of GET /orders/{id}/status.
type StatusView struct {
	ID         string `json:"id"`
	Status     Status `json:"status"`
	ApprovedBy string `json:"approved_by,omitempty"`
}

// CreateInput is the payload of POST /orders.
type CreateInput struct {
	CatalogItemID string `json:"catalog_item_id"`
	Quantity      int    `json:"quantity"`
	Notes         string `json:"notes"`
}

// # Storage Contract

// Store persists orders. Every method takes the caller's scope.
type Store interface {
	List(ctx context.Context, scope portal.DataScope, statuses []string, limit, offset int) ([]*Order, int, error)
	Get(ctx context.Context, scope portal.DataScope, id string) (*Order, error)

	// Create prices the order from the active catalogue item and fills
	// TotalCents; an unknown or inactive item is NOT_FOUND.
	Create(ctx context.Context, order *Order) error

	// Transition moves a visible order whose status is one of from to to.
	// It returns NOT_FOUND when no row matched.
	Transition(ctx context.Context, scope portal.DataScope, id string, from []Status, to Status, actorID string) (*Order, error)
}

// # Service

// Service implements order use cases.
type Service struct {
	store Store
	feed  *activity.Feed
}

// NewService creates an orders Service. feed may be nil.
func NewService(store Store, feed *activity.Feed) *Service {
	return &Service{store: store, feed: feed}
}

// List returns one page of visible orders.
func (service *Service) List(ctx context.Context, scope portal.DataScope, statuses []string, limit, offset int) ([]*Order, int, error) {
	v := &validate.Validator{}
	for _, status := range statuses {
		v.OneOf("status", status, Statuses...)
	}
	if err := v.Err(); err != nil {
		return nil, 0, err
	}
	return service.store.List(ctx, scope, statuses, limit, offset)
}

// Get returns one visible order.
func (service *Service) Get(ctx context.Context, scope portal.DataScope, id string) (*Order, error) {
	return service.store.Get(ctx, scope, id)
}

// Status returns the status view of one visible order.
func (service *Service) Status(ctx context.Context, scope portal.DataScope, id string) (*StatusView, error) {
	order, err := service.store.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return &StatusView{ID: order.ID, Status: order.Status, ApprovedBy: order.ApprovedBy}, nil
}

// Create places a pending order on behalf of the caller.
func (service *Service) Create(ctx context.Context, scope portal.DataScope, input CreateInput) (*Order, error) {
	input.CatalogItemID = strings.TrimSpace(input.CatalogItemID)

	v := &validate.Validator{}
	v.Required("catalog_item_id", input.CatalogItemID)
	v.Range("quantity", input.Quantity, 1, 10000)
	v.MaxLen("notes", input.Notes, 1000)
	if err := v.Err(); err != nil {
		return nil, err
	}

	order := &Order{
		ID:            uuid.New(),
		CustomerID:    scope.UserID,
		EcosystemID:   scope.EcosystemID,
		CatalogItemID: input.CatalogItemID,
		Quantity:      input.Quantity,
		Status:        StatusPending,
		Notes:         input.Notes,
	}
	if err := service.store.Create(ctx, order); err != nil {
		return nil, err
	}

	service.feed.Record(ctx, scope, activity.Entry{
		Domain: roles.DomainOrders, Action: "order_created", RecordID: order.ID,
		Summary: fmt.Sprintf("%d × %s", order.Quantity, order.CatalogItemID),
	})
	return order, nil
}

// Approve moves a pending order to approved.
func (service *Service) Approve(ctx context.Context, scope portal.DataScope, id string) (*Order, error) {
	return service.transition(ctx, scope, id, []Status{StatusPending}, StatusApproved, "order_approved")
}

// Cancel moves a pending or approved order to cancelled.
func (service *Service) Cancel(ctx context.Context, scope portal.DataScope, id string) (*Order, error) {
	return service.transition(ctx, scope, id, []Status{StatusPending, StatusApproved}, StatusCancelled, "order_cancelled")
}

func (service *Service) transition(ctx context.Context, scope portal.DataScope, id string, from []Status, to Status, action string) (*Order, error) {
	order, err := service.store.Transition(ctx, scope, id, from, to, scope.UserID)
	if err != nil {
		if !apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, err
		}

		// Nothing matched: either the order is invisible or it is in the wrong state.
		current, getErr := service.store.Get(ctx, scope, id)
		if getErr != nil {
			return nil, getErr
		}
		return nil, apperr.Conflict(fmt.Sprintf("Order is %s and cannot become %s", current.Status, to)).
			WithDetails(map[string]any{"status": current.Status})
	}

	service.feed.Record(ctx, scope, activity.Entry{
		Domain: roles.DomainOrders, Action: action, RecordID: order.ID,
	})
	return order, nil
}

