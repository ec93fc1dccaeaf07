// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package portal

import (
	"context"
	"fmt"

	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/platform/ctxutil"
)

// DataScope describes which records the caller may see inside a domain.
//
// Domain stores never branch on role codes; they render the scope into their
// WHERE clause and stay role-agnostic.
type DataScope struct {
	Kind        roles.Scope
	UserID      string
	EcosystemID string
}

// ScopeFrom derives the scope of the current request.
func ScopeFrom(ctx context.Context) (DataScope, error) {
	caller := ctxutil.GetIdentity(ctx)
	if caller == nil {
		return DataScope{}, apperr.MissingToken()
	}
	config := ctxutil.GetRole(ctx)
	if config == nil {
		return DataScope{}, apperr.MissingRole()
	}

	return DataScope{
		Kind:        config.Scope(),
		UserID:      caller.UserID,
		EcosystemID: caller.EcosystemID,
	}, nil
}

// Clause renders the scope as a parameterized SQL predicate.
//
// ownerColumn and ecosystemColumn name the columns to filter on; argIndex is
// the positional parameter the predicate should use. The returned args hold
// zero or one value to append to the query arguments.
//
// An ecosystem-scoped caller without an ecosystem sees nothing.
func (s DataScope) Clause(ownerColumn, ecosystemColumn string, argIndex int) (string, []any) {
	switch s.Kind {
	case roles.ScopeGlobal:
		return "TRUE", nil
	case roles.ScopeEcosystem:
		if s.EcosystemID == "" {
			return "FALSE", nil
		}
		return fmt.Sprintf("%s = $%d", ecosystemColumn, argIndex), []any{s.EcosystemID}
	case roles.ScopeEntity:
		if s.UserID == "" {
			return "FALSE", nil
		}
		return fmt.Sprintf("%s = $%d", ownerColumn, argIndex), []any{s.UserID}
	default:
		return "FALSE", nil
	}
}

// Allows reports whether a record with the given owner and ecosystem is visible.
func (s DataScope) Allows(ownerID, ecosystemID string) bool {
	switch s.Kind {
	case roles.ScopeGlobal:
		return true
	case roles.ScopeEcosystem:
		return s.EcosystemID != "" && s.EcosystemID == ecosystemID
	case roles.ScopeEntity:
		return s.UserID != "" && s.UserID == ownerID
	default:
		return false
	}
}
