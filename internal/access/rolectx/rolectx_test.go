// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rolectx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bizportal/internal/access/capability"
	"github.com/taibuivan/bizportal/internal/access/identity"
	"github.com/taibuivan/bizportal/internal/access/rolectx"
	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/platform/ctxutil"
	"github.com/taibuivan/bizportal/internal/platform/respond"
)

// asCaller stands in for the authentication gate.
func asCaller(role roles.Code) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			caller := &identity.RequestIdentity{UserID: "T-1", Role: role, Capabilities: capability.NewSet()}
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithIdentity(request.Context(), caller)))
		})
	}
}

func newRouter(t *testing.T, registry *roles.Registry, caller roles.Code) http.Handler {
	t.Helper()
	resolver := rolectx.NewResolver(registry)

	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		respond.OK(writer, map[string]string{
			"role":   string(ctxutil.GetRole(request.Context()).Code()),
			"domain": string(ctxutil.GetDomain(request.Context()).Name()),
		})
	})

	domains := func(router chi.Router) {
		router.With(rolectx.RequireDomain(roles.DomainInventory)).Get("/inventory", handler)
		router.With(rolectx.RequireDomain(roles.DomainDashboard)).Get("/dashboard", handler)
	}

	router := chi.NewRouter()
	router.Use(asCaller(caller))
	router.Route("/api/v1/roles/{role}", func(router chi.Router) {
		router.Use(resolver.Resolve)
		domains(router)
	})
	for _, code := range registry.Codes() {
		router.Route("/api/v1/_"+string(code), func(router chi.Router) {
			router.Use(resolver.Resolve)
			domains(router)
		})
	}
	router.Route("/api/v1/bare", func(router chi.Router) {
		router.Use(resolver.Resolve)
		domains(router)
	})
	return router
}

func call(router http.Handler, path string) (*httptest.ResponseRecorder, respond.ErrorEnvelope) {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))

	var envelope respond.ErrorEnvelope
	_ = json.Unmarshal(recorder.Body.Bytes(), &envelope)
	return recorder, envelope
}

/*
TestResolve_BothPathForms verifies explicit and internal role paths resolve
to the same configuration.
*/
func TestResolve_BothPathForms(t *testing.T) {
	registry, err := roles.Default()
	require.NoError(t, err)
	router := newRouter(t, registry, roles.RoleManager)

	for _, path := range []string{"/api/v1/roles/manager/dashboard", "/api/v1/_manager/dashboard", "/api/v1/roles/MANAGER/dashboard"} {
		recorder, _ := call(router, path)
		require.Equal(t, http.StatusOK, recorder.Code, path)

		var body struct {
			Data map[string]string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "manager", body.Data["role"])
		assert.Equal(t, "dashboard", body.Data["domain"])
	}
}

/*
TestResolve_Denials covers the missing, unknown, unavailable and mismatched role cases.
*/
func TestResolve_Denials(t *testing.T) {
	registry, err := roles.Default()
	require.NoError(t, err)

	// A registry that never configured "warehouse".
	partialWithoutWarehouse, err := roles.Load([]byte("roles:\n  manager:\n    scope: ecosystem\n"))
	require.NoError(t, err)

	cases := []struct {
		name     string
		registry *roles.Registry
		caller   roles.Code
		path     string
		status   int
		code     string
	}{
		{"Missing", registry, roles.RoleManager, "/api/v1/bare/dashboard", http.StatusBadRequest, apperr.CodeMissingRole},
		{"Unknown", registry, roles.RoleManager, "/api/v1/roles/janitor/dashboard", http.StatusForbidden, apperr.CodeInvalidRole},
		{"NotConfigured", partialWithoutWarehouse, roles.RoleWarehouse, "/api/v1/roles/warehouse/dashboard", http.StatusForbidden, apperr.CodeInvalidRole},
		{"Mismatch", registry, roles.RoleCustomer, "/api/v1/roles/manager/dashboard", http.StatusForbidden, apperr.CodeInvalidRole},
		{"MismatchInternal", registry, roles.RoleCustomer, "/api/v1/_admin/dashboard", http.StatusForbidden, apperr.CodeInvalidRole},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder, envelope := call(newRouter(t, tc.registry, tc.caller), tc.path)
			assert.Equal(t, tc.status, recorder.Code)
			assert.Equal(t, tc.code, envelope.Code)
		})
	}
}

/*
TestRequireDomain_Forbidden verifies a missing domain is a denial on its own,
independent of capabilities.
*/
func TestRequireDomain_Forbidden(t *testing.T) {
	registry, err := roles.Default()
	require.NoError(t, err)
	router := newRouter(t, registry, roles.RoleCustomer)

	recorder, envelope := call(router, "/api/v1/roles/customer/inventory")
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, apperr.CodeDomainForbidden, envelope.Code)
	assert.Equal(t, "inventory", envelope.Details["domain"])
}

/*
TestRoleFromPath prefers the explicit parameter.
*/
func TestRoleFromPath(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/api/v1/_crew/profile", nil)
	raw, found := rolectx.RoleFromPath(request)
	assert.True(t, found)
	assert.Equal(t, "crew", raw)

	_, found = rolectx.RoleFromPath(httptest.NewRequest(http.MethodGet, "/api/v1/_/profile", nil))
	assert.False(t, found)
}
