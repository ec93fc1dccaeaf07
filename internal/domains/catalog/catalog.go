// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog manages the items every ecosystem can order.

The catalogue is shared by the whole portal, so reads are not narrowed by the
caller's data scope. Who may edit it is decided by the capability guard and
the editItems feature.
*/
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/activity"
	"github.com/taibuivan/bizportal/internal/platform/validate"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/pkg/pointer"
	"github.com/taibuivan/bizportal/pkg/slug"
	"github.com/taibuivan/bizportal/pkg/uuid"
)

// # Domain Entities

// Item is one orderable product or service package.
type Item struct {
	ID          string    `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Filter narrows a listing.
type Filter struct {
	Active *bool
	Search string
}

// CreateInput is the payload of POST /catalog.
type CreateInput struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
}

// Patch is the payload of PATCH /catalog/{id}. Nil fields are left unchanged.
type Patch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PriceCents  *int64  `json:"price_cents"`
	IsActive    *bool   `json:"is_active"`
}

// # Storage Contract

// Store persists catalogue items.
type Store interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Item, int, error)
	Get(ctx context.Context, id string) (*Item, error)
	Create(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
}

// # Service

// Service implements catalogue use cases.
type Service struct {
	store Store
	feed  *activity.Feed
}

// NewService creates a catalog Service. feed may be nil.
func NewService(store Store, feed *activity.Feed) *Service {
	return &Service{store: store, feed: feed}
}

// List returns one page of items and the total match count.
func (service *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]*Item, int, error) {
	return service.store.List(ctx, filter, limit, offset)
}

// Get returns one item.
func (service *Service) Get(ctx context.Context, id string) (*Item, error) {
	return service.store.Get(ctx, id)
}

// Create validates input and stores a new active item.
//
// Without an explicit SKU one is derived from the name ("Deep Clean" → "DEEP-CLEAN").
func (service *Service) Create(ctx context.Context, scope portal.DataScope, input CreateInput) (*Item, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.SKU = strings.ToUpper(strings.TrimSpace(input.SKU))
	if input.SKU == "" {
		input.SKU = strings.ToUpper(slug.From(input.Name))
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).MaxLen("name", input.Name, 200)
	v.Required("sku", input.SKU).MaxLen("sku", input.SKU, 64)
	v.MaxLen("description", input.Description, 2000)
	v.NonNegative("price_cents", input.PriceCents)
	if err := v.Err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &Item{
		ID:          uuid.New(),
		SKU:         input.SKU,
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := service.store.Create(ctx, item); err != nil {
		return nil, err
	}

	service.feed.Record(ctx, scope, activity.Entry{
		Domain: roles.DomainCatalog, Action: "catalog_item_created", RecordID: item.ID, Summary: item.Name,
	})
	return item, nil
}

// Update applies patch to an existing item.
func (service *Service) Update(ctx context.Context, scope portal.DataScope, id string, patch Patch) (*Item, error) {
	item, err := service.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Name = strings.TrimSpace(pointer.Fallback(patch.Name, item.Name))
	item.Description = pointer.Fallback(patch.Description, item.Description)
	item.PriceCents = pointer.Fallback(patch.PriceCents, item.PriceCents)
	item.IsActive = pointer.Fallback(patch.IsActive, item.IsActive)

	v := &validate.Validator{}
	v.Required("name", item.Name).MaxLen("name", item.Name, 200)
	v.MaxLen("description", item.Description, 2000)
	v.NonNegative("price_cents", item.PriceCents)
	if err := v.Err(); err != nil {
		return nil, err
	}

	item.UpdatedAt = time.Now().UTC()
	if err := service.store.Update(ctx, item); err != nil {
		return nil, err
	}

	service.feed.Record(ctx, scope, activity.Entry{
		Domain: roles.DomainCatalog, Action: "catalog_item_updated", RecordID: item.ID, Summary: item.Name,
	})
	return item, nil
}
