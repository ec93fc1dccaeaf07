// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deliveries_test

import (
	"context"
	"net/http"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/domains/deliveries"
	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/internal/portal/portaltest"
)

type memoryStore struct {
	deliveries map[string]*deliveries.Delivery
}

func (m *memoryStore) List(_ context.Context, scope portal.DataScope, statuses []string, _, _ int) ([]*deliveries.Delivery, int, error) {
	out := make([]*deliveries.Delivery, 0)
	for _, delivery := range m.deliveries {
		if scope.Allows(delivery.OwnerID, delivery.EcosystemID) && (len(statuses) == 0 || slices.Contains(statuses, string(delivery.Status))) {
			out = append(out, delivery)
		}
	}
	return out, len(out), nil
}

func (m *memoryStore) Get(_ context.Context, scope portal.DataScope, id string) (*deliveries.Delivery, error) {
	delivery, ok := m.deliveries[id]
	if !ok || !scope.Allows(delivery.OwnerID, delivery.EcosystemID) {
		return nil, apperr.NotFound("Delivery")
	}
	return delivery, nil
}

func (m *memoryStore) Transition(ctx context.Context, scope portal.DataScope, id string, from []deliveries.Status, to deliveries.Status) (*deliveries.Delivery, error) {
	delivery, err := m.Get(ctx, scope, id)
	if err != nil || !slices.Contains(from, delivery.Status) {
		return nil, apperr.NotFound("Delivery")
	}
	delivery.Status = to
	return delivery, nil
}

var crew = portal.DataScope{Kind: roles.ScopeEntity, UserID: "CRW-001", EcosystemID: "ECO-1"}

func newRouter() (*memoryStore, http.Handler) {
	store := &memoryStore{deliveries: map[string]*deliveries.Delivery{
		"d-1": {ID: "d-1", OrderID: "o-1", OwnerID: "CRW-001", EcosystemID: "ECO-1", Status: deliveries.StatusPending},
		"d-2": {ID: "d-2", OrderID: "o-2", OwnerID: "CRW-002", EcosystemID: "ECO-1", Status: deliveries.StatusPending},
	}}
	return store, portaltest.Router(deliveries.NewModule(deliveries.NewService(store, nil)), crew)
}

/*
TestUpdateStatus_RedispatchAfterFailure verifies a failed delivery can go out again.
*/
func TestUpdateStatus_RedispatchAfterFailure(t *testing.T) {
	store, router := newRouter()

	for _, status := range []string{"in_transit", "failed", "in_transit", "delivered"} {
		recorder := portaltest.Do(t, router, http.MethodPost, "/d-1/status", map[string]any{"status": status})
		require.Equal(t, http.StatusOK, recorder.Code, status)
	}
	assert.Equal(t, deliveries.StatusDelivered, store.deliveries["d-1"].Status)

	recorder := portaltest.Do(t, router, http.MethodPost, "/d-1/status", map[string]any{"status": "failed"})
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

/*
TestGet_HidesOtherOwners verifies entity scope on single reads.
*/
func TestGet_HidesOtherOwners(t *testing.T) {
	_, router := newRouter()

	recorder := portaltest.Do(t, router, http.MethodGet, "/d-1", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = portaltest.Do(t, router, http.MethodGet, "/d-2", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = portaltest.Do(t, router, http.MethodGet, "/?status=pending", nil)
	assert.Equal(t, 1, portaltest.Decode(t, recorder).Meta["total"])
}
