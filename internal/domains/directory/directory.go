// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package directory lists portal accounts and lets managers archive them or
adjust their capabilities.

Accounts are scoped like any other record: the account id is the owner column
and its ecosystem the ecosystem column, so an entity-scoped caller only ever
sees themselves.
*/
package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/bizportal/internal/access/identity"
	"github.com/taibuivan/bizportal/internal/access/permission"
	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/activity"
	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/platform/validate"
	"github.com/taibuivan/bizportal/internal/portal"
)

// Statuses lists the account statuses accepted by the list filter.
var Statuses = []string{string(identity.StatusActive), string(identity.StatusArchived)}

// OverrideInput is the payload of PUT /directory/users/{id}/overrides.
type OverrideInput struct {
	Capability string `json:"capability"`
	Allow      bool   `json:"allow"`
}

// # Storage Contract

// Store reads and archives accounts within a scope.
type Store interface {
	List(ctx context.Context, scope portal.DataScope, status identity.Status, limit, offset int) ([]*identity.User, int, error)
	Get(ctx context.Context, scope portal.DataScope, id string) (*identity.User, error)

	// SetStatus moves a visible account from one status to another.
	// NOT_FOUND when no row matched.
	SetStatus(ctx context.Context, scope portal.DataScope, id string, from, to identity.Status) (*identity.User, error)
}

// OverrideStore writes capability overrides. [permission.PostgresStore] satisfies it.
type OverrideStore interface {
	Overrides(ctx context.Context, userID string) ([]permission.Override, error)
	UpsertOverride(ctx context.Context, override permission.Override) error
}

// # Service

// Service implements directory use cases.
type Service struct {
	store     Store
	overrides OverrideStore
	feed      *activity.Feed
}

// NewService creates a directory Service. feed may be nil.
func NewService(store Store, overrides OverrideStore, feed *activity.Feed) *Service {
	return &Service{store: store, overrides: overrides, feed: feed}
}

// List returns one page of visible accounts in the given status.
// An empty status means active.
func (service *Service) List(ctx context.Context, scope portal.DataScope, status string, limit, offset int) ([]*identity.User, int, error) {
	if status == "" {
		status = string(identity.StatusActive)
	}

	v := &validate.Validator{}
	v.OneOf("status", status, Statuses...)
	if err := v.Err(); err != nil {
		return nil, 0, err
	}
	return service.store.List(ctx, scope, identity.Status(status), limit, offset)
}

// Archive deactivates a visible account. Callers cannot archive themselves.
func (service *Service) Archive(ctx context.Context, scope portal.DataScope, id string) (*identity.User, error) {
	id = identity.NormalizeID(id)
	if id == scope.UserID {
		return nil, apperr.Unprocessable("You cannot archive your own account")
	}

	user, err := ChangeStatus(ctx, service.store, scope, id, identity.StatusActive, identity.StatusArchived)
	if err != nil {
		return nil, err
	}

	service.feed.Record(ctx, scope, activity.Entry{
		Domain: roles.DomainDirectory, Action: "user_archived", RecordID: user.ID, Summary: user.DisplayName,
	})
	return user, nil
}

// SetOverride grants or revokes one capability for a visible account and
// returns the account's overrides after the change.
func (service *Service) SetOverride(ctx context.Context, scope portal.DataScope, id string, input OverrideInput) ([]permission.Override, error) {
	user, err := service.store.Get(ctx, scope, identity.NormalizeID(id))
	if err != nil {
		return nil, err
	}

	override := permission.Override{
		UserID:     user.ID,
		Capability: strings.TrimSpace(input.Capability),
		Allow:      input.Allow,
		UpdatedBy:  scope.UserID,
	}
	if err := permission.ValidateOverride(override); err != nil {
		return nil, err
	}

	if err := service.overrides.UpsertOverride(ctx, override); err != nil {
		return nil, err
	}

	verb := "revoked"
	if override.Allow {
		verb = "granted"
	}
	service.feed.Record(ctx, scope, activity.Entry{
		Domain: roles.DomainDirectory, Action: "override_set", RecordID: user.ID,
		Summary: fmt.Sprintf("%s %s", override.Capability, verb),
	})
	return service.overrides.Overrides(ctx, user.ID)
}

/*
ChangeStatus runs a guarded account status change.

When nothing matched it tells an invisible account (NOT_FOUND) apart from one
already in another status (CONFLICT). The archive module restores through it.
*/
func ChangeStatus(ctx context.Context, store Store, scope portal.DataScope, id string, from, to identity.Status) (*identity.User, error) {
	user, err := store.SetStatus(ctx, scope, id, from, to)
	if err == nil {
		return user, nil
	}
	if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, err
	}

	current, getErr := store.Get(ctx, scope, id)
	if getErr != nil {
		return nil, getErr
	}
	return nil, apperr.Conflict(fmt.Sprintf("Account is already %s", current.Status)).
		WithDetails(map[string]any{"status": current.Status})
}
