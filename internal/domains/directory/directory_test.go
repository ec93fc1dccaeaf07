// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package directory_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bizportal/internal/access/capability"
	"github.com/taibuivan/bizportal/internal/access/identity"
	"github.com/taibuivan/bizportal/internal/access/permission"
	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/domains/directory"
	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/internal/portal/portaltest"
)

// # Fakes

type memoryStore struct {
	users map[string]*identity.User
}

func (m *memoryStore) List(_ context.Context, scope portal.DataScope, status identity.Status, _, _ int) ([]*identity.User, int, error) {
	out := make([]*identity.User, 0)
	for _, user := range m.users {
		if user.Status == status && scope.Allows(user.ID, user.EcosystemID) {
			out = append(out, user)
		}
	}
	return out, len(out), nil
}

func (m *memoryStore) Get(_ context.Context, scope portal.DataScope, id string) (*identity.User, error) {
	user, ok := m.users[id]
	if !ok || !scope.Allows(user.ID, user.EcosystemID) {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (m *memoryStore) SetStatus(ctx context.Context, scope portal.DataScope, id string, from, to identity.Status) (*identity.User, error) {
	user, err := m.Get(ctx, scope, id)
	if err != nil || user.Status != from {
		return nil, apperr.NotFound("User")
	}
	user.Status = to
	return user, nil
}

type memoryOverrides struct {
	rows map[string]permission.Override
}

func (m *memoryOverrides) Overrides(_ context.Context, userID string) ([]permission.Override, error) {
	out := make([]permission.Override, 0)
	for _, override := range m.rows {
		if override.UserID == userID {
			out = append(out, override)
		}
	}
	return out, nil
}

func (m *memoryOverrides) UpsertOverride(_ context.Context, override permission.Override) error {
	m.rows[override.UserID+"|"+override.Capability] = override
	return nil
}

// # Fixtures

var manager = portal.DataScope{Kind: roles.ScopeEcosystem, UserID: "MGR-001", EcosystemID: "ECO-1"}

func newFixture() (*memoryStore, *memoryOverrides, http.Handler) {
	store := &memoryStore{users: map[string]*identity.User{
		"MGR-001": {ID: "MGR-001", Role: roles.RoleManager, Status: identity.StatusActive, EcosystemID: "ECO-1"},
		"CRW-001": {ID: "CRW-001", Role: roles.RoleCrew, Status: identity.StatusActive, EcosystemID: "ECO-1"},
		"CRW-002": {ID: "CRW-002", Role: roles.RoleCrew, Status: identity.StatusArchived, EcosystemID: "ECO-1"},
		"CRW-003": {ID: "CRW-003", Role: roles.RoleCrew, Status: identity.StatusActive, EcosystemID: "ECO-2"},
	}}
	overrides := &memoryOverrides{rows: map[string]permission.Override{}}
	router := portaltest.Router(directory.NewModule(directory.NewService(store, overrides, nil)), manager)
	return store, overrides, router
}

// # Tests

/*
TestListUsers_ScopeAndStatus verifies the list is narrowed to the ecosystem
and defaults to active accounts.
*/
func TestListUsers_ScopeAndStatus(t *testing.T) {
	_, _, router := newFixture()

	recorder := portaltest.Do(t, router, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 2, portaltest.Decode(t, recorder).Meta["total"])

	recorder = portaltest.Do(t, router, http.MethodGet, "/users?status=archived", nil)
	assert.Equal(t, 1, portaltest.Decode(t, recorder).Meta["total"])

	recorder = portaltest.Do(t, router, http.MethodGet, "/users?status=deleted", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestArchiveUser verifies archiving, the self-archive guard and the conflict
on an already archived account.
*/
func TestArchiveUser(t *testing.T) {
	store, _, router := newFixture()

	recorder := portaltest.Do(t, router, http.MethodPost, "/users/crw-001/archive", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, identity.StatusArchived, store.users["CRW-001"].Status)

	tests := []struct {
		name string
		id   string
		want int
	}{
		{"self", "MGR-001", http.StatusUnprocessableEntity},
		{"already archived", "CRW-002", http.StatusConflict},
		{"other ecosystem", "CRW-003", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := portaltest.Do(t, router, http.MethodPost, "/users/"+tt.id+"/archive", nil)
			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}

/*
TestSetOverride verifies overrides are validated, attributed and returned.
*/
func TestSetOverride(t *testing.T) {
	_, overrides, router := newFixture()

	recorder := portaltest.Do(t, router, http.MethodPut, "/users/CRW-001/overrides",
		map[string]any{"capability": capability.ReportsExport, "allow": true})
	require.Equal(t, http.StatusOK, recorder.Code)

	stored := overrides.rows["CRW-001|"+capability.ReportsExport]
	assert.True(t, stored.Allow)
	assert.Equal(t, "MGR-001", stored.UpdatedBy)

	recorder = portaltest.Do(t, router, http.MethodPut, "/users/CRW-001/overrides",
		map[string]any{"capability": "reports:shred", "allow": true})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = portaltest.Do(t, router, http.MethodPut, "/users/CRW-003/overrides",
		map[string]any{"capability": capability.ReportsExport, "allow": true})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Len(t, overrides.rows, 1)
}
