// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package inventory tracks stock per location and records every adjustment.

Stock never goes below zero. An adjustment that would do so is rejected as a
whole; the stock row and its adjustment record are written in one transaction.
*/
package inventory

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

// Item is the stock of one catalogue item at one location.
type Item struct {
	ID            string    `json:"id"`
	CatalogItemID string    `json:"catalog_item_id"`
	OwnerID       string    `json:"owner_id"`
	EcosystemID   string    `json:"ecosystem_id,omitempty"`
	Location      string    `json:"location"`
	Quantity      int       `json:"quantity"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Adjustment is an audit row of one stock change.
type Adjustment struct {
	ID          string    `json:"id"`
	InventoryID string    `json:"inventory_id"`
	Delta       int       `json:"delta"`
	Reason      string    `json:"reason"`
	ActorID     string    `json:"actor_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// AdjustInput is the payload of POST /inventory/{id}/adjust.
type AdjustInput struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}

// Store persists stock.
type Store interface {
	List(ctx context.Context, scope portal.DataScope, location string, limit, offset int) ([]*Item, int, error)
	Get(ctx context.Context, scope portal.DataScope, id string) (*Item, error)

	// Adjust applies adjustment to a visible item unless the result would be
	// negative. It returns NOT_FOUND when no row qualified.
	Adjust(ctx context.Context, scope portal.DataScope, adjustment Adjustment) (*Item, error)
}

// Service implements stock use cases.
type Service struct {
	store Store
	feed  *activity.Feed
}

// NewService creates an inventory Service. feed may be nil.
func NewService(store Store, feed *activity.Feed) *Service {
	return &Service{store: store, feed: feed}
}

// List returns one page of visible stock rows.
func (service *Service) List(ctx context.Context, scope portal.DataScope, location string, limit, offset int) ([]*Item, int, error) {
	return service.store.List(ctx, scope, strings.TrimSpace(location), limit, offset)
}

// Adjust changes the quantity of one visible stock row by input.Delta.
func (service *Service) Adjust(ctx context.Context, scope portal.DataScope, id string, input AdjustInput) (*Item, error) {
	input.Reason = strings.TrimSpace(input.Reason)

	v := &validate.Validator{}
	v.Custom("delta", input.Delta == 0, "Must not be zero")
	v.Range("delta", input.Delta, -100000, 100000)
	v.Required("reason", input.Reason).MaxLen("reason", input.Reason, 500)
	if err := v.Err(); err != nil {
		return nil, err
	}

	item, err := service.store.Adjust(ctx, scope, Adjustment{
		ID:          uuid.New(),
		InventoryID: id,
		Delta:       input.Delta,
		Reason:      input.Reason,
		ActorID:     scope.UserID,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		if !apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, err
		}
		current, getErr := service.store.Get(ctx, scope, id)
		if getErr != nil {
			return nil, getErr
		}
		return nil, apperr.Unprocessable(fmt.Sprintf("Only %d in stock", current.Quantity)).
			WithDetails(map[string]any{"quantity": current.Quantity, "delta": input.Delta})
	}

	service.feed.Record(ctx, scope, activity.Entry{
		Domain: roles.DomainInventory, Action: "stock_adjusted", RecordID: item.ID,
		Summary: fmt.Sprintf("%+d at %s: %s", input.Delta, item.Location, input.Reason),
	})
	return item, nil
}
