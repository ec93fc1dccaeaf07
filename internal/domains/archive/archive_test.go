// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package archive_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bizportal/internal/access/identity"
	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/activity"
	"github.com/taibuivan/bizportal/internal/domains/archive"
	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/internal/portal/portaltest"
)

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

var admin = portal.DataScope{Kind: roles.ScopeGlobal, UserID: "ADM-001"}

/*
TestRestore verifies an archived account comes back, an active one conflicts
and the restore lands in the activity feed.
*/
func TestRestore(t *testing.T) {
	store := &memoryStore{users: map[string]*identity.User{
		"CUS-001": {ID: "CUS-001", DisplayName: "Ana", Status: identity.StatusArchived},
		"CUS-002": {ID: "CUS-002", Status: identity.StatusActive},
	}}
	server := miniredis.RunT(t)
	feed := activity.NewFeed(redis.NewClient(&redis.Options{Addr: server.Addr()}), 10)
	router := portaltest.Router(archive.NewModule(archive.NewService(store, feed)), admin)

	recorder := portaltest.Do(t, router, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 1, portaltest.Decode(t, recorder).Meta["total"])

	recorder = portaltest.Do(t, router, http.MethodPost, "/cus-001/restore", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, identity.StatusActive, store.users["CUS-001"].Status)

	recorder = portaltest.Do(t, router, http.MethodPost, "/CUS-002/restore", nil)
	assert.Equal(t, http.StatusConflict, recorder.Code)

	recorder = portaltest.Do(t, router, http.MethodPost, "/CUS-404/restore", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	entries, err := feed.Recent(context.Background(), admin, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "user_restored", entries[0].Action)
	assert.Equal(t, roles.DomainArchive, entries[0].Domain)
}
