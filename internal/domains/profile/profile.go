// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package profile serves the caller's own account.

Profile always addresses the authenticated user, whatever the role scope, so
its store takes an account id rather than a [portal.DataScope].
*/
package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/taibuivan/bizportal/internal/access/identity"
	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/activity"
	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/platform/validate"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/pkg/pointer"
)

// Profile is the payload of GET /profile.
type Profile struct {
	*identity.User
	Capabilities []string `json:"capabilities"`
}

// Patch is the payload of PATCH /profile. Nil fields are left unchanged.
type Patch struct {
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email"`
}

// Store reads and updates one account.
type Store interface {
	FindByID(ctx context.Context, id string) (*identity.User, error)
	UpdateProfile(ctx context.Context, id, displayName, email string) (*identity.User, error)
}

// Service implements profile use cases.
type Service struct {
	store Store
	feed  *activity.Feed
}

// NewService creates a profile Service. feed may be nil.
func NewService(store Store, feed *activity.Feed) *Service {
	return &Service{store: store, feed: feed}
}

// Get returns the caller's account with their effective capabilities.
func (service *Service) Get(ctx context.Context, caller *identity.RequestIdentity) (*Profile, error) {
	user, err := service.find(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Capabilities: caller.Capabilities.Sorted()}, nil
}

// Update applies patch to the caller's account.
func (service *Service) Update(ctx context.Context, scope portal.DataScope, patch Patch) (*identity.User, error) {
	current, err := service.find(ctx, scope.UserID)
	if err != nil {
		return nil, err
	}

	displayName := strings.TrimSpace(pointer.Fallback(patch.DisplayName, current.DisplayName))
	email := strings.ToLower(strings.TrimSpace(pointer.Fallback(patch.Email, current.Email)))

	v := &validate.Validator{}
	v.Required("display_name", displayName).MaxLen("display_name", displayName, 120)
	v.Required("email", email).Email("email", email)
	if err := v.Err(); err != nil {
		return nil, err
	}

	user, err := service.store.UpdateProfile(ctx, current.ID, displayName, email)
	if err != nil {
		return nil, err
	}

	service.feed.Record(ctx, scope, activity.Entry{
		Domain: roles.DomainProfile, Action: "profile_updated", RecordID: user.ID,
	})
	return user, nil
}

func (service *Service) find(ctx context.Context, id string) (*identity.User, error) {
	user, err := service.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return nil, apperr.NotFound("Profile")
		}
		return nil, err
	}
	return user, nil
}
