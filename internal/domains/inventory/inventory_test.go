// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package inventory_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/activity"
	"github.com/taibuivan/bizportal/internal/domains/inventory"
	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/internal/portal/portaltest"
)

type memoryStore struct {
	items       map[string]*inventory.Item
	adjustments []inventory.Adjustment
}

func (m *memoryStore) List(_ context.Context, scope portal.DataScope, location string, _, _ int) ([]*inventory.Item, int, error) {
	out := make([]*inventory.Item, 0)
	for _, item := range m.items {
		if scope.Allows(item.OwnerID, item.EcosystemID) && (location == "" || item.Location == location) {
			out = append(out, item)
		}
	}
	return out, len(out), nil
}

func (m *memoryStore) Get(_ context.Context, scope portal.DataScope, id string) (*inventory.Item, error) {
	item, ok := m.items[id]
	if !ok || !scope.Allows(item.OwnerID, item.EcosystemID) {
		return nil, apperr.NotFound("Inventory item")
	}
	return item, nil
}

func (m *memoryStore) Adjust(ctx context.Context, scope portal.DataScope, adjustment inventory.Adjustment) (*inventory.Item, error) {
	item, err := m.Get(ctx, scope, adjustment.InventoryID)
	if err != nil || item.Quantity+adjustment.Delta < 0 {
		return nil, apperr.NotFound("Inventory item")
	}
	item.Quantity += adjustment.Delta
	m.adjustments = append(m.adjustments, adjustment)
	return item, nil
}

var warehouse = portal.DataScope{Kind: roles.ScopeEcosystem, UserID: "WHS-001", EcosystemID: "ECO-1"}

func setup(t *testing.T) (*memoryStore, *activity.Feed, http.Handler) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	feed := activity.NewFeed(client, 10)

	store := &memoryStore{items: map[string]*inventory.Item{
		"s-1": {ID: "s-1", OwnerID: "WHS-002", EcosystemID: "ECO-1", Location: "north", Quantity: 5},
		"s-2": {ID: "s-2", OwnerID: "WHS-009", EcosystemID: "ECO-2", Location: "south", Quantity: 5},
	}}
	return store, feed, portaltest.Router(inventory.NewModule(inventory.NewService(store, feed)), warehouse)
}

/*
TestAdjust_AppliesAndRecords verifies a valid adjustment, its audit row and feed entry.
*/
func TestAdjust_AppliesAndRecords(t *testing.T) {
	store, feed, router := setup(t)

	recorder := portaltest.Do(t, router, http.MethodPost, "/s-1/adjust", map[string]any{"delta": -3, "reason": "damaged"})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 2, store.items["s-1"].Quantity)

	require.Len(t, store.adjustments, 1)
	assert.Equal(t, "WHS-001", store.adjustments[0].ActorID)

	entries, err := feed.Recent(context.Background(), warehouse, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "stock_adjusted", entries[0].Action)
}

/*
TestAdjust_NeverNegative rejects withdrawals beyond stock with the current quantity.
*/
func TestAdjust_NeverNegative(t *testing.T) {
	store, _, router := setup(t)

	recorder := portaltest.Do(t, router, http.MethodPost, "/s-1/adjust", map[string]any{"delta": -6, "reason": "shipped"})
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.EqualValues(t, 5, portaltest.Decode(t, recorder).Details["quantity"])
	assert.Equal(t, 5, store.items["s-1"].Quantity)
	assert.Empty(t, store.adjustments)
}

/*
TestAdjust_Rejections covers validation and scope.
*/
func TestAdjust_Rejections(t *testing.T) {
	_, _, router := setup(t)

	recorder := portaltest.Do(t, router, http.MethodPost, "/s-1/adjust", map[string]any{"delta": 0, "reason": "noop"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = portaltest.Do(t, router, http.MethodPost, "/s-1/adjust", map[string]any{"delta": 2})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = portaltest.Do(t, router, http.MethodPost, "/s-2/adjust", map[string]any{"delta": 1, "reason": "found"})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
