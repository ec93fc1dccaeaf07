// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package orders_test

import (
	"context"
	"net/http"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/domains/orders"
	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/internal/portal/portaltest"
)

// memoryStore honours scopes through DataScope.Allows, as the SQL predicate would.
type memoryStore struct {
	orders map[string]*orders.Order
	prices map[string]int64
}

func newMemoryStore(existing ...*orders.Order) *memoryStore {
	store := &memoryStore{orders: map[string]*orders.Order{}, prices: map[string]int64{"item-1": 250}}
	for _, order := range existing {
		store.orders[order.ID] = order
	}
	return store
}

func (m *memoryStore) List(_ context.Context, scope portal.DataScope, statuses []string, _, _ int) ([]*orders.Order, int, error) {
	out := make([]*orders.Order, 0)
	for _, order := range m.orders {
		if !scope.Allows(order.CustomerID, order.EcosystemID) {
			continue
		}
		if len(statuses) > 0 && !slices.Contains(statuses, string(order.Status)) {
			continue
		}
		out = append(out, order)
	}
	return out, len(out), nil
}

func (m *memoryStore) Get(_ context.Context, scope portal.DataScope, id string) (*orders.Order, error) {
	order, ok := m.orders[id]
	if !ok || !scope.Allows(order.CustomerID, order.EcosystemID) {
		return nil, apperr.NotFound("Order")
	}
	return order, nil
}

func (m *memoryStore) Create(_ context.Context, order *orders.Order) error {
	price, ok := m.prices[order.CatalogItemID]
	if !ok {
		return apperr.NotFound("Catalog item")
	}
	order.TotalCents = price * int64(order.Quantity)
	order.CreatedAt = time.Now()
	m.orders[order.ID] = order
	return nil
}

func (m *memoryStore) Transition(ctx context.Context, scope portal.DataScope, id string, from []orders.Status, to orders.Status, actorID string) (*orders.Order, error) {
	order, err := m.Get(ctx, scope, id)
	if err != nil || !slices.Contains(from, order.Status) {
		return nil, apperr.NotFound("Order")
	}
	order.Status = to
	if to == orders.StatusApproved {
		order.ApprovedBy = actorID
	}
	return order, nil
}

var (
	customer = portal.DataScope{Kind: roles.ScopeEntity, UserID: "CUS-001", EcosystemID: "ECO-1"}
	manager  = portal.DataScope{Kind: roles.ScopeEcosystem, UserID: "MGR-001", EcosystemID: "ECO-1"}
	outsider = portal.DataScope{Kind: roles.ScopeEcosystem, UserID: "MGR-002", EcosystemID: "ECO-2"}
)

func router(store orders.Store, scope portal.DataScope) http.Handler {
	return portaltest.Router(orders.NewModule(orders.NewService(store, nil)), scope)
}

func seeded() *memoryStore {
	return newMemoryStore(
		&orders.Order{ID: "o-1", CustomerID: "CUS-001", EcosystemID: "ECO-1", Status: orders.StatusPending},
		&orders.Order{ID: "o-2", CustomerID: "CUS-002", EcosystemID: "ECO-1", Status: orders.StatusApproved},
		&orders.Order{ID: "o-3", CustomerID: "CUS-009", EcosystemID: "ECO-2", Status: orders.StatusPending},
	)
}

/*
TestCreate_PricesFromCatalog verifies ownership and total come from the server.
*/
func TestCreate_PricesFromCatalog(t *testing.T) {
	store := newMemoryStore()
	recorder := portaltest.Do(t, router(store, customer), http.MethodPost, "/",
		map[string]any{"catalog_item_id": "item-1", "quantity": 4})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var order orders.Order
	portaltest.Data(t, recorder, &order)
	assert.Equal(t, "CUS-001", order.CustomerID)
	assert.Equal(t, "ECO-1", order.EcosystemID)
	assert.Equal(t, int64(1000), order.TotalCents)
	assert.Equal(t, orders.StatusPending, order.Status)
}

/*
TestCreate_Rejections covers invalid payloads and unknown items.
*/
func TestCreate_Rejections(t *testing.T) {
	recorder := portaltest.Do(t, router(newMemoryStore(), customer), http.MethodPost, "/",
		map[string]any{"catalog_item_id": "item-1", "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = portaltest.Do(t, router(newMemoryStore(), customer), http.MethodPost, "/",
		map[string]any{"catalog_item_id": "ghost", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestList_FollowsScope verifies the same endpoint yields different rows per scope.
*/
func TestList_FollowsScope(t *testing.T) {
	store := seeded()

	cases := []struct {
		name  string
		scope portal.DataScope
		total int
	}{
		{"Entity", customer, 1},
		{"Ecosystem", manager, 2},
		{"OtherEcosystem", outsider, 1},
		{"Global", portal.DataScope{Kind: roles.ScopeGlobal, UserID: "ADM-001"}, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := portaltest.Do(t, router(store, tc.scope), http.MethodGet, "/", nil)
			require.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, tc.total, portaltest.Decode(t, recorder).Meta["total"])
		})
	}

	recorder := portaltest.Do(t, router(store, manager), http.MethodGet, "/?status=approved", nil)
	assert.Equal(t, 1, portaltest.Decode(t, recorder).Meta["total"])

	recorder = portaltest.Do(t, router(store, manager), http.MethodGet, "/?status=shipped", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestApprove_Transitions covers the lifecycle guards.
*/
func TestApprove_Transitions(t *testing.T) {
	store := seeded()

	recorder := portaltest.Do(t, router(store, manager), http.MethodPost, "/o-1/approve", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, orders.StatusApproved, store.orders["o-1"].Status)
	assert.Equal(t, "MGR-001", store.orders["o-1"].ApprovedBy)

	// Already approved.
	recorder = portaltest.Do(t, router(store, manager), http.MethodPost, "/o-1/approve", nil)
	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Equal(t, apperr.CodeConflict, portaltest.Decode(t, recorder).Code)

	// Outside the caller's ecosystem: not found, not conflict.
	recorder = portaltest.Do(t, router(store, manager), http.MethodPost, "/o-3/approve", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestCancel_AllowsApprovedOrders verifies cancellation from either open state.
*/
func TestCancel_AllowsApprovedOrders(t *testing.T) {
	store := seeded()

	recorder := portaltest.Do(t, router(store, manager), http.MethodPost, "/o-2/cancel", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, orders.StatusCancelled, store.orders["o-2"].Status)
	assert.Empty(t, store.orders["o-2"].ApprovedBy)

	recorder = portaltest.Do(t, router(store, manager), http.MethodPost, "/o-2/cancel", nil)
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

/*
TestStatus_ReturnsView verifies the narrow status payload.
*/
func TestStatus_ReturnsView(t *testing.T) {
	recorder := portaltest.Do(t, router(seeded(), customer), http.MethodGet, "/o-1/status", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var view orders.StatusView
	portaltest.Data(t, recorder, &view)
	assert.Equal(t, "o-1", view.ID)
	assert.Equal(t, orders.StatusPending, view.Status)
}
