// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package identity implements the Identity Loader and the per-request identity
carried through the access pipeline.

A [RequestIdentity] is allocated fresh for every authenticated request and
travels only inside that request's [context.Context]. Nothing in this package
holds a "current user" between requests.
*/
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/taibuivan/bizportal/internal/access/capability"
	"github.com/taibuivan/bizportal/internal/access/roles"
)

// ErrUserNotFound is returned for unknown and archived users alike.
var ErrUserNotFound = errors.New("identity: user not found")

// # Domain Entities

// Status is the lifecycle state of an account. Accounts are never deleted.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// User is the stored record of a portal account.
type User struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Email       string         `json:"email"`
	Role        roles.Code     `json:"role"`
	Status      Status         `json:"status"`
	EcosystemID string         `json:"ecosystem_id,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// RequestIdentity is the authenticated caller of a single request.
type RequestIdentity struct {
	UserID       string
	Role         roles.Code
	Capabilities capability.Set
	SessionID    string
	EcosystemID  string
}

// # Storage Contract

// Store reads portal accounts.
//
// FindByID must return [ErrUserNotFound] when no row exists, and any other
// error only for infrastructure failures.
type Store interface {
	FindByID(ctx context.Context, id string) (*User, error)
}

// # Loader

// Loader resolves a verified token subject to an active account.
type Loader struct {
	store Store
}

// NewLoader creates a Loader backed by store.
func NewLoader(store Store) *Loader {
	return &Loader{store: store}
}

// Load returns the active account for subjectID.
func (l *Loader) Load(ctx context.Context, subjectID string) (*User, error) {
	id := NormalizeID(subjectID)
	if id == "" {
		return nil, ErrUserNotFound
	}

	user, err := l.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("identity_load_failed: %w", err)
	}

	if user.Status != StatusActive {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// NormalizeID trims and upper-cases an account id ("mgr-001" → "MGR-001").
func NormalizeID(raw string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(raw))
}
