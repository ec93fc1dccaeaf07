// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package rolectx implements the Role Context Resolver.

The role a request acts under is part of its path, in one of two forms:

	/api/v1/roles/{role}/<domain>/...   explicit path parameter
	/api/v1/_<role>/<domain>/...        internal prefix segment

The resolved role must exist in the registry and must equal the role of the
authenticated caller; a path can never widen what the token grants.
*/
package rolectx

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/platform/constants"
	"github.com/taibuivan/bizportal/internal/platform/ctxutil"
	"github.com/taibuivan/bizportal/internal/platform/respond"
)

const (
	// RoleParam is the chi URL parameter holding an explicit role.
	RoleParam = "role"

	// PrefixParam is the chi URL parameter holding the whole `_<role>` segment.
	PrefixParam = "rolePrefix"
)

// PrefixPattern is the route segment matching any `_<role>`, known or not, so
// unknown codes still reach [Resolver.Resolve].
var PrefixPattern = "/{" + PrefixParam + ":" + constants.InternalRolePrefix + "[^/]+}"

// Resolver attaches the role configuration named by the request path.
type Resolver struct {
	registry *roles.Registry
}

// NewResolver creates a Resolver reading from registry.
func NewResolver(registry *roles.Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve is the middleware form of the resolver. It must run after authentication.
func (resolver *Resolver) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		raw, found := RoleFromPath(request)
		if !found {
			respond.Error(writer, request, apperr.MissingRole())
			return
		}

		code, known := roles.ParseCode(raw)
		if !known {
			respond.Error(writer, request, apperr.InvalidRole("Unknown role context").
				WithDetails(map[string]any{"role": raw}))
			return
		}

		config := resolver.registry.ConfigurationFor(code)
		if config == nil {
			respond.Error(writer, request, apperr.InvalidRole("Role context is not available").
				WithDetails(map[string]any{"role": string(code)}))
			return
		}

		caller := ctxutil.GetIdentity(request.Context())
		if caller == nil {
			respond.Error(writer, request, apperr.MissingToken())
			return
		}
		if caller.Role != code {
			respond.Error(writer, request, apperr.InvalidRole("Role context does not match the authenticated user").
				WithDetails(map[string]any{"role": string(code)}))
			return
		}

		ctx := ctxutil.WithRole(request.Context(), config)
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RoleFromPath extracts the raw role from the explicit parameter, then the
// prefix parameter, falling back to the first internal prefix segment.
func RoleFromPath(request *http.Request) (string, bool) {
	if explicit := strings.TrimSpace(chi.URLParam(request, RoleParam)); explicit != "" {
		return explicit, true
	}
	if prefixed := strings.TrimPrefix(chi.URLParam(request, PrefixParam), constants.InternalRolePrefix); prefixed != "" {
		return prefixed, true
	}

	for _, segment := range strings.Split(request.URL.Path, "/") {
		if len(segment) > len(constants.InternalRolePrefix) && strings.HasPrefix(segment, constants.InternalRolePrefix) {
			return strings.TrimPrefix(segment, constants.InternalRolePrefix), true
		}
	}
	return "", false
}

// RequireDomain rejects roles that do not include domain, whatever their capabilities.
func RequireDomain(domain roles.Domain) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			config := ctxutil.GetRole(request.Context())
			if config == nil {
				respond.Error(writer, request, apperr.MissingRole())
				return
			}

			domainConfig, present := config.Domain(domain)
			if !present {
				respond.Error(writer, request, apperr.DomainForbidden(string(domain)))
				return
			}

			ctx := ctxutil.WithDomain(request.Context(), domainConfig)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
