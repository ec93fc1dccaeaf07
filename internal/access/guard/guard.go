// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package guard implements the Capability Guard and the Feature Gate shared by
every domain module.

Routes ask for abstract keys ("view", "approve"). The guard resolves them
through the domain configuration attached by the role context resolver and
checks the resulting capability strings against the caller's effective set.
A key the role does not map can never be satisfied.
*/
package guard

import (
	"context"
	"net/http"

	"github.com/taibuivan/bizportal/internal/access/capability"
	"github.com/taibuivan/bizportal/internal/access/identity"
	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/audit"
	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/platform/ctxutil"
	"github.com/taibuivan/bizportal/internal/platform/middleware"
	"github.com/taibuivan/bizportal/internal/platform/respond"
)

// Mode selects how multiple keys combine.
type Mode string

const (
	// ModeAll requires every key.
	ModeAll Mode = "all"
	// ModeAny requires at least one key.
	ModeAny Mode = "any"
)

// Guard enforces capability requirements.
type Guard struct {
	trail *audit.Trail
}

// New creates a Guard. High-privilege grants are reported to trail, which may be nil.
func New(trail *audit.Trail) *Guard {
	return &Guard{trail: trail}
}

// Require admits callers holding every capability the keys resolve to.
func (g *Guard) Require(keys ...roles.CapKey) func(http.Handler) http.Handler {
	return g.middleware(ModeAll, keys)
}

// RequireAny admits callers holding at least one capability the keys resolve to.
func (g *Guard) RequireAny(keys ...roles.CapKey) func(http.Handler) http.Handler {
	return g.middleware(ModeAny, keys)
}

func (g *Guard) middleware(mode Mode, keys []roles.CapKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			used, err := Check(ctx, mode, keys...)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			g.auditPrivileged(ctx, request, used)
			next.ServeHTTP(writer, request)
		})
	}
}

// Check evaluates keys against the request context and returns the
// capabilities that satisfied them.
func Check(ctx context.Context, mode Mode, keys ...roles.CapKey) ([]string, error) {
	domain := ctxutil.GetDomain(ctx)
	if domain == nil {
		return nil, apperr.MissingRole()
	}
	caller := ctxutil.GetIdentity(ctx)
	if caller == nil {
		return nil, apperr.MissingToken()
	}

	required := make([]string, 0, len(keys))
	unmapped := 0
	for _, key := range keys {
		value, mapped := domain.Capability(key)
		if !mapped {
			unmapped++
			continue
		}
		required = append(required, value)
	}

	used, granted := evaluate(mode, caller.Capabilities, required, unmapped)
	if !granted {
		return nil, denial(domain.Name(), mode, keys, required)
	}
	return used, nil
}

func evaluate(mode Mode, held capability.Set, required []string, unmapped int) ([]string, bool) {
	if len(required) == 0 {
		return nil, false
	}

	switch mode {
	case ModeAll:
		if unmapped > 0 || !held.HasAll(required...) {
			return nil, false
		}
		return required, true
	case ModeAny:
		var used []string
		for _, value := range required {
			if held.Has(value) {
				used = append(used, value)
			}
		}
		return used, len(used) > 0
	default:
		return nil, false
	}
}

// denial never includes the caller's own capability set.
func denial(domain roles.Domain, mode Mode, keys []roles.CapKey, required []string) *apperr.AppError {
	rawKeys := make([]string, len(keys))
	for i, key := range keys {
		rawKeys[i] = string(key)
	}

	return apperr.InsufficientCapabilities(map[string]any{
		"domain":   string(domain),
		"mode":     string(mode),
		"keys":     rawKeys,
		"required": required,
	})
}

func (g *Guard) auditPrivileged(ctx context.Context, request *http.Request, used []string) {
	caller := ctxutil.GetIdentity(ctx)
	for _, value := range used {
		if !capability.IsHighPrivilege(value) {
			continue
		}
		g.trail.Emit(ctx, privilegedEntry(caller, request, value))
	}
}

func privilegedEntry(caller *identity.RequestIdentity, request *http.Request, value string) audit.Entry {
	return audit.Entry{
		ActorID:    caller.UserID,
		Action:     audit.ActionCapabilityUse,
		Role:       string(caller.Role),
		Capability: value,
		IPAddress:  middleware.RealIP(request),
		UserAgent:  request.UserAgent(),
		Details: map[string]any{
			"method": request.Method,
			"path":   request.URL.Path,
		},
	}
}
