// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package portal is the Domain Composer: it mounts role-agnostic domain modules
under every role context and installs the access checks each route declares.

# Mount Order

For every route the chain is fixed:

 1. role context (resolved once per role prefix)
 2. domain presence
 3. capability guard
 4. feature gate
 5. handler, called with the caller's [DataScope]

Modules declare requirements; they never check roles themselves.
*/
package portal

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bizportal/internal/access/guard"
	"github.com/taibuivan/bizportal/internal/access/rolectx"
	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/platform/respond"
)

// # Module Contract

// HandlerFunc serves one route for a caller restricted to scope.
type HandlerFunc func(writer http.ResponseWriter, request *http.Request, scope DataScope)

// Route declares one endpoint and the access it requires.
type Route struct {
	Method  string
	Pattern string

	// Keys are resolved through the role's domain configuration.
	// Every route needs at least one.
	Keys []roles.CapKey

	// Mode combines Keys; the zero value means [guard.ModeAll].
	Mode guard.Mode

	// Feature, when set, must be switched on for the role.
	Feature roles.Feature

	Handle HandlerFunc
}

// Module is a shared business domain.
type Module interface {
	Domain() roles.Domain
	Routes() []Route
}

// # Composer

// Composer mounts modules under every role context.
type Composer struct {
	registry *roles.Registry
	resolver *rolectx.Resolver
	guard    *guard.Guard
	modules  []Module
}

// NewComposer validates modules against registry and returns a ready Composer.
//
// It fails when two modules claim one domain, a domain is unknown, a route
// declares no keys, or a key or feature is not declared by any role. These
// are typos; catching them here keeps them from becoming silent denials.
func NewComposer(registry *roles.Registry, capabilityGuard *guard.Guard, modules ...Module) (*Composer, error) {
	seen := make(map[roles.Domain]bool, len(modules))

	for _, module := range modules {
		domain := module.Domain()
		if !roles.IsDomain(domain) {
			return nil, fmt.Errorf("portal: unknown domain %q", domain)
		}
		if seen[domain] {
			return nil, fmt.Errorf("portal: domain %q registered twice", domain)
		}
		seen[domain] = true

		for _, route := range module.Routes() {
			if err := validateRoute(registry, domain, route); err != nil {
				return nil, err
			}
		}
	}

	return &Composer{
		registry: registry,
		resolver: rolectx.NewResolver(registry),
		guard:    capabilityGuard,
		modules:  modules,
	}, nil
}

func validateRoute(registry *roles.Registry, domain roles.Domain, route Route) error {
	name := fmt.Sprintf("%s %s/%s", route.Method, domain, route.Pattern)

	if route.Handle == nil {
		return fmt.Errorf("portal: %s has no handler", name)
	}
	if len(route.Keys) == 0 {
		return fmt.Errorf("portal: %s declares no capability keys", name)
	}
	if route.Mode != "" && route.Mode != guard.ModeAll && route.Mode != guard.ModeAny {
		return fmt.Errorf("portal: %s has unknown mode %q", name, route.Mode)
	}
	for _, key := range route.Keys {
		if !registry.DeclaresKey(domain, key) {
			return fmt.Errorf("portal: %s requires key %q that no role maps", name, key)
		}
	}
	if route.Feature != "" && !registry.DeclaresFeature(domain, route.Feature) {
		return fmt.Errorf("portal: %s requires feature %q that no role declares", name, route.Feature)
	}
	return nil
}

// Attach mounts every module under both role path forms. router must already
// sit behind the authentication gate.
//
// Unmatched paths still pass through the resolver, so a missing or unknown
// role is reported as such rather than as a missing route. The fallbacks are
// set before mounting so every subrouter inherits them.
func (c *Composer) Attach(router chi.Router) {
	router.NotFound(c.resolver.Resolve(http.HandlerFunc(respond.RouteNotFound)).ServeHTTP)
	router.MethodNotAllowed(respond.MethodNotAllowed)

	router.Route("/roles/{"+rolectx.RoleParam+"}", func(roleRouter chi.Router) {
		roleRouter.Use(c.resolver.Resolve)
		c.mountAll(roleRouter)
	})
	router.Route(rolectx.PrefixPattern, func(roleRouter chi.Router) {
		roleRouter.Use(c.resolver.Resolve)
		c.mountAll(roleRouter)
	})
}

func (c *Composer) mountAll(router chi.Router) {
	for _, module := range c.modules {
		c.Mount(router, module)
	}
}

// Mount installs one module on a router that already resolved the role context.
func (c *Composer) Mount(router chi.Router, module Module) {
	domain := module.Domain()

	router.Route("/"+string(domain), func(domainRouter chi.Router) {
		domainRouter.Use(rolectx.RequireDomain(domain))

		for _, route := range module.Routes() {
			chain := []func(http.Handler) http.Handler{c.capabilityCheck(route)}
			if route.Feature != "" {
				chain = append(chain, guard.RequireFeature(route.Feature))
			}
			domainRouter.With(chain...).Method(route.Method, route.Pattern, scoped(route.Handle))
		}
	})
}

func (c *Composer) capabilityCheck(route Route) func(http.Handler) http.Handler {
	if route.Mode == guard.ModeAny {
		return c.guard.RequireAny(route.Keys...)
	}
	return c.guard.Require(route.Keys...)
}

func scoped(handle HandlerFunc) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		scope, err := ScopeFrom(request.Context())
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		handle(writer, request, scope)
	})
}
