// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package archive lists archived accounts and restores them.
package archive

import (
	"context"

	"github.com/taibuivan/bizportal/internal/access/identity"
	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/activity"
	"github.com/taibuivan/bizportal/internal/domains/directory"
	"github.com/taibuivan/bizportal/internal/portal"
)

// Service implements archive use cases over the account directory.
type Service struct {
	store directory.Store
	feed  *activity.Feed
}

// NewService creates an archive Service. feed may be nil.
func NewService(store directory.Store, feed *activity.Feed) *Service {
	return &Service{store: store, feed: feed}
}

// List returns one page of visible archived accounts.
func (service *Service) List(ctx context.Context, scope portal.DataScope, limit, offset int) ([]*identity.User, int, error) {
	return service.store.List(ctx, scope, identity.StatusArchived, limit, offset)
}

// Restore reactivates a visible archived account.
func (service *Service) Restore(ctx context.Context, scope portal.DataScope, id string) (*identity.User, error) {
	user, err := directory.ChangeStatus(ctx, service.store, scope, identity.NormalizeID(id), identity.StatusArchived, identity.StatusActive)
	if err != nil {
		return nil, err
	}

	service.feed.Record(ctx, scope, activity.Entry{
		Domain: roles.DomainArchive, Action: "user_restored", RecordID: user.ID, Summary: user.DisplayName,
	})
	return user, nil
}
