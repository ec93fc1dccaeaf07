// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package portal_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bizportal/internal/access/capability"
	"github.com/taibuivan/bizportal/internal/access/guard"
	"github.com/taibuivan/bizportal/internal/access/identity"
	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/platform/ctxutil"
	"github.com/taibuivan/bizportal/internal/platform/respond"
	"github.com/taibuivan/bizportal/internal/portal"
)

// stubModule echoes the scope it was handed.
type stubModule struct {
	domain roles.Domain
	routes []portal.Route
}

func (m stubModule) Domain() roles.Domain { return m.domain }

func (m stubModule) Routes() []portal.Route { return m.routes }

func echoScope(w http.ResponseWriter, _ *http.Request, scope portal.DataScope) {
	respond.OK(w, scope)
}

func dashboardModule() stubModule {
	return stubModule{domain: roles.DomainDashboard, routes: []portal.Route{
		{Method: http.MethodGet, Pattern: "/kpis", Keys: []roles.CapKey{roles.KeyView}, Feature: roles.FeatureKPIs, Handle: echoScope},
		{Method: http.MethodDelete, Pattern: "/activity", Keys: []roles.CapKey{roles.KeyManage}, Feature: roles.FeatureClearActivity, Handle: echoScope},
	}}
}

func inventoryModule() stubModule {
	return stubModule{domain: roles.DomainInventory, routes: []portal.Route{
		{Method: http.MethodGet, Pattern: "/", Keys: []roles.CapKey{roles.KeyView}, Handle: echoScope},
	}}
}

func newRouter(t *testing.T, caller *identity.RequestIdentity) http.Handler {
	t.Helper()
	registry, err := roles.Default()
	require.NoError(t, err)

	composer, err := portal.NewComposer(registry, guard.New(nil), dashboardModule(), inventoryModule())
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Route("/api/v1", func(api chi.Router) {
		api.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(ctxutil.WithIdentity(r.Context(), caller)))
			})
		})
		composer.Attach(api)
	})
	return router
}

func call(router http.Handler, method, path string) (*httptest.ResponseRecorder, respond.ErrorEnvelope) {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, path, nil))

	var envelope respond.ErrorEnvelope
	_ = json.Unmarshal(recorder.Body.Bytes(), &envelope)
	return recorder, envelope
}

/*
TestComposer_MountsUnderBothRoleForms verifies a module is reachable through
the explicit and the internal role prefix and receives the caller's scope.
*/
func TestComposer_MountsUnderBothRoleForms(t *testing.T) {
	caller := &identity.RequestIdentity{
		UserID: "MGR-001", Role: roles.RoleManager, EcosystemID: "ECO-7",
		Capabilities: capability.NewSet(capability.DashboardView),
	}
	router := newRouter(t, caller)

	for _, path := range []string{"/api/v1/roles/manager/dashboard/kpis", "/api/v1/_manager/dashboard/kpis"} {
		recorder, _ := call(router, http.MethodGet, path)
		require.Equal(t, http.StatusOK, recorder.Code, path)

		var body struct {
			Data portal.DataScope `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, roles.ScopeEcosystem, body.Data.Kind)
		assert.Equal(t, "ECO-7", body.Data.EcosystemID)
	}
}

/*
TestComposer_CheckOrder verifies domain presence is checked before
capabilities, and capabilities before features.
*/
func TestComposer_CheckOrder(t *testing.T) {
	t.Run("DomainBeforeCapability", func(t *testing.T) {
		caller := &identity.RequestIdentity{UserID: "CUS-001", Role: roles.RoleCustomer, Capabilities: capability.NewSet()}
		_, envelope := call(newRouter(t, caller), http.MethodGet, "/api/v1/roles/customer/inventory")
		assert.Equal(t, apperr.CodeDomainForbidden, envelope.Code)
	})

	t.Run("CapabilityBeforeFeature", func(t *testing.T) {
		// contractor has clearActivity off and no dashboard:manage either.
		caller := &identity.RequestIdentity{UserID: "CON-001", Role: roles.RoleContractor, Capabilities: capability.NewSet()}
		_, envelope := call(newRouter(t, caller), http.MethodDelete, "/api/v1/roles/contractor/dashboard/activity")
		assert.Equal(t, apperr.CodeInsufficientCaps, envelope.Code)
	})

	t.Run("FeatureLast", func(t *testing.T) {
		caller := &identity.RequestIdentity{UserID: "CON-001", Role: roles.RoleContractor, Capabilities: capability.NewSet(capability.DashboardManage)}
		_, envelope := call(newRouter(t, caller), http.MethodDelete, "/api/v1/_contractor/dashboard/activity")
		assert.Equal(t, apperr.CodeFeatureDisabled, envelope.Code)
	})
}

/*
TestNewComposer_RejectsTypos verifies startup validation of module declarations.
*/
func TestNewComposer_RejectsTypos(t *testing.T) {
	registry, err := roles.Default()
	require.NoError(t, err)
	g := guard.New(nil)

	route := func(keys []roles.CapKey, feature roles.Feature) portal.Route {
		return portal.Route{Method: http.MethodGet, Pattern: "/", Keys: keys, Feature: feature, Handle: echoScope}
	}

	cases := map[string][]portal.Module{
		"UnknownDomain":  {stubModule{domain: "payroll", routes: []portal.Route{route([]roles.CapKey{roles.KeyView}, "")}}},
		"Duplicate":      {inventoryModule(), inventoryModule()},
		"NoKeys":         {stubModule{domain: roles.DomainCatalog, routes: []portal.Route{route(nil, "")}}},
		"UnmappedKey":    {stubModule{domain: roles.DomainCatalog, routes: []portal.Route{route([]roles.CapKey{roles.KeyApprove}, "")}}},
		"UnknownFeature": {stubModule{domain: roles.DomainCatalog, routes: []portal.Route{route([]roles.CapKey{roles.KeyView}, "bulkImport")}}},
		"NoHandler":      {stubModule{domain: roles.DomainCatalog, routes: []portal.Route{{Method: http.MethodGet, Pattern: "/", Keys: []roles.CapKey{roles.KeyView}}}}},
	}

	for name, modules := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := portal.NewComposer(registry, g, modules...)
			assert.Error(t, err)
		})
	}
}

/*
TestDataScope_Clause verifies the rendered predicate per scope kind.
*/
func TestDataScope_Clause(t *testing.T) {
	global := portal.DataScope{Kind: roles.ScopeGlobal, UserID: "ADM-1"}
	clause, args := global.Clause("ownerid", "ecosystemid", 3)
	assert.Equal(t, "TRUE", clause)
	assert.Empty(t, args)

	ecosystem := portal.DataScope{Kind: roles.ScopeEcosystem, UserID: "MGR-1", EcosystemID: "ECO-1"}
	clause, args = ecosystem.Clause("ownerid", "ecosystemid", 3)
	assert.Equal(t, "ecosystemid = $3", clause)
	assert.Equal(t, []any{"ECO-1"}, args)

	entity := portal.DataScope{Kind: roles.ScopeEntity, UserID: "CUS-1"}
	clause, args = entity.Clause("ownerid", "ecosystemid", 1)
	assert.Equal(t, "ownerid = $1", clause)
	assert.Equal(t, []any{"CUS-1"}, args)

	orphan := portal.DataScope{Kind: roles.ScopeEcosystem, UserID: "MGR-2"}
	clause, _ = orphan.Clause("ownerid", "ecosystemid", 1)
	assert.Equal(t, "FALSE", clause)
}

/*
TestDataScope_Allows mirrors Clause for records already in memory.
*/
func TestDataScope_Allows(t *testing.T) {
	entity := portal.DataScope{Kind: roles.ScopeEntity, UserID: "CUS-1"}
	assert.True(t, entity.Allows("CUS-1", "ECO-9"))
	assert.False(t, entity.Allows("CUS-2", "ECO-9"))

	ecosystem := portal.DataScope{Kind: roles.ScopeEcosystem, EcosystemID: "ECO-1"}
	assert.True(t, ecosystem.Allows("ANY", "ECO-1"))
	assert.False(t, ecosystem.Allows("ANY", "ECO-2"))

	assert.False(t, portal.DataScope{}.Allows("X", "Y"))
}

/*
TestScopeFrom_RequiresPipeline rejects calls without identity or role.
*/
func TestScopeFrom_RequiresPipeline(t *testing.T) {
	_, err := portal.ScopeFrom(context.Background())
	assert.True(t, apperr.HasCode(err, apperr.CodeMissingToken))
}

var allDomains = []roles.Domain{
	roles.DomainDashboard, roles.DomainCatalog, roles.DomainOrders, roles.DomainServices,
	roles.DomainInventory, roles.DomainDeliveries, roles.DomainReports, roles.DomainSupport,
	roles.DomainDirectory, roles.DomainProfile, roles.DomainArchive, roles.DomainAssignments,
}

/*
TestComposer_AbsentDomainForbiddenForEveryRole verifies that for every role
and every domain missing from its configuration the composed router answers
DOMAIN_FORBIDDEN, even for a caller holding the whole capability catalogue.
Present domains stay reachable for the same caller.
*/
func TestComposer_AbsentDomainForbiddenForEveryRole(t *testing.T) {
	registry, err := roles.Default()
	require.NoError(t, err)

	modules := make([]portal.Module, 0, len(allDomains))
	for _, domain := range allDomains {
		modules = append(modules, stubModule{domain: domain, routes: []portal.Route{
			{Method: http.MethodGet, Pattern: "/", Keys: []roles.CapKey{roles.KeyView}, Handle: echoScope},
		}})
	}
	composer, err := portal.NewComposer(registry, guard.New(nil), modules...)
	require.NoError(t, err)

	absent := 0
	for _, code := range registry.Codes() {
		caller := &identity.RequestIdentity{
			UserID: "USR-001", Role: code, EcosystemID: "ECO-1",
			Capabilities: capability.NewSet(capability.All()...),
		}
		router := chi.NewRouter()
		router.Route("/api/v1", func(api chi.Router) {
			api.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					next.ServeHTTP(w, r.WithContext(ctxutil.WithIdentity(r.Context(), caller)))
				})
			})
			composer.Attach(api)
		})

		config := registry.ConfigurationFor(code)
		for _, domain := range allDomains {
			for _, path := range []string{
				"/api/v1/roles/" + string(code) + "/" + string(domain) + "/",
				"/api/v1/_" + string(code) + "/" + string(domain) + "/",
			} {
				recorder, envelope := call(router, http.MethodGet, path)
				if config.HasDomain(domain) {
					assert.Equal(t, http.StatusOK, recorder.Code, path)
					continue
				}
				absent++
				assert.Equal(t, http.StatusForbidden, recorder.Code, path)
				assert.Equal(t, apperr.CodeDomainForbidden, envelope.Code, path)
			}
		}
	}
	assert.Positive(t, absent)
}

/*
TestComposer_UnmatchedPathsReachResolver verifies unknown and missing roles
are reported by the resolver, and unmatched routes under a valid role return
a NOT_FOUND envelope.
*/
func TestComposer_UnmatchedPathsReachResolver(t *testing.T) {
	caller := &identity.RequestIdentity{
		UserID: "MGR-001", Role: roles.RoleManager, EcosystemID: "ECO-7",
		Capabilities: capability.NewSet(capability.DashboardView),
	}
	router := newRouter(t, caller)

	tests := []struct {
		method, path string
		status       int
		code         string
	}{
		{http.MethodGet, "/api/v1/_bogus/dashboard/kpis", http.StatusForbidden, apperr.CodeInvalidRole},
		{http.MethodGet, "/api/v1/roles/bogus/dashboard/kpis", http.StatusForbidden, apperr.CodeInvalidRole},
		{http.MethodGet, "/api/v1/dashboard/kpis", http.StatusBadRequest, apperr.CodeMissingRole},
		{http.MethodGet, "/api/v1/_manager/nowhere", http.StatusNotFound, apperr.CodeNotFound},
		{http.MethodPut, "/api/v1/_manager/dashboard/kpis", http.StatusMethodNotAllowed, apperr.CodeMethodNotAllowed},
	}
	for _, tt := range tests {
		recorder, envelope := call(router, tt.method, tt.path)
		assert.Equal(t, tt.status, recorder.Code, tt.path)
		assert.Equal(t, tt.code, envelope.Code, tt.path)
	}
}
