// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package permission implements the Capability Calculator.

The effective capability set of a user is recomputed on every authentication:

	effective = (role defaults ∪ overrides where allow) \ overrides where deny

# Fail Closed

Any storage error yields an empty set. The request then proceeds as a caller
holding nothing and is denied by the capability guard.
*/
package permission

import (
	"context"
	"time"

	"github.com/taibuivan/bizportal/internal/access/capability"
	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/platform/ctxutil"
)

// Override grants (Allow) or revokes (!Allow) one capability for one user.
// There is at most one override per (UserID, Capability).
type Override struct {
	UserID     string    `json:"user_id"`
	Capability string    `json:"capability"`
	Allow      bool      `json:"allow"`
	UpdatedBy  string    `json:"updated_by,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Store reads default grants and per-user overrides.
type Store interface {
	// RolePermissions lists the default capability strings of role.
	RolePermissions(ctx context.Context, role roles.Code) ([]string, error)

	// Overrides lists the overrides of userID in a stable order.
	Overrides(ctx context.Context, userID string) ([]Override, error)

	// UpsertOverride inserts or replaces the (user, capability) override.
	UpsertOverride(ctx context.Context, override Override) error
}

// ValidateOverride rejects overrides naming a capability outside the catalogue.
func ValidateOverride(override Override) error {
	if override.UserID == "" {
		return apperr.ValidationError("Override is invalid", apperr.FieldError{Field: "user_id", Message: "is required"})
	}
	if !capability.IsKnown(override.Capability) {
		return apperr.ValidationError("Override is invalid", apperr.FieldError{Field: "capability", Message: "is not a known capability"})
	}
	return nil
}

// # Calculator

// Calculator derives the effective capability set of a user.
type Calculator struct {
	store Store
}

// NewCalculator creates a Calculator backed by store.
func NewCalculator(store Store) *Calculator {
	return &Calculator{store: store}
}

// Compute returns the effective capabilities of userID holding role.
// It never returns an error; see the package documentation.
func (c *Calculator) Compute(ctx context.Context, userID string, role roles.Code) capability.Set {
	logger := ctxutil.GetLogger(ctx)

	defaults, err := c.store.RolePermissions(ctx, role)
	if err != nil {
		logger.Error("capabilities_compute_failed",
			"stage", "role_permissions", "user_id", userID, "role", role, "error", err)
		return capability.NewSet()
	}

	overrides, err := c.store.Overrides(ctx, userID)
	if err != nil {
		logger.Error("capabilities_compute_failed",
			"stage", "overrides", "user_id", userID, "role", role, "error", err)
		return capability.NewSet()
	}

	effective := capability.NewSet()
	for _, value := range defaults {
		if !capability.IsKnown(value) {
			logger.Warn("capabilities_unknown_default", "role", role, "capability", value)
			continue
		}
		effective.Add(value)
	}

	for _, override := range overrides {
		if !capability.IsKnown(override.Capability) {
			logger.Warn("capabilities_unknown_override", "user_id", userID, "capability", override.Capability)
			continue
		}
		if override.Allow {
			effective.Add(override.Capability)
		} else {
			effective.Remove(override.Capability)
		}
	}

	return effective
}

