// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package roles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bizportal/internal/access/capability"
	"github.com/taibuivan/bizportal/internal/access/roles"
)

/*
TestDefault_LoadsEmbeddedDefinitions verifies the shipped role table decodes
and exposes every declared role.
*/
func TestDefault_LoadsEmbeddedDefinitions(t *testing.T) {
	registry, err := roles.Default()
	require.NoError(t, err)

	assert.Len(t, registry.Codes(), 7)

	admin := registry.ConfigurationFor(roles.RoleAdmin)
	require.NotNil(t, admin)
	assert.Equal(t, roles.ScopeGlobal, admin.Scope())
	assert.Len(t, admin.Domains(), 12)

	dashboard, ok := admin.Domain(roles.DomainDashboard)
	require.True(t, ok)
	view, ok := dashboard.Capability(roles.KeyView)
	require.True(t, ok)
	assert.Equal(t, capability.DashboardView, view)
}

/*
TestDefault_RoleShapes spot-checks the differences between roles that the
portal relies on.
*/
func TestDefault_RoleShapes(t *testing.T) {
	registry, err := roles.Default()
	require.NoError(t, err)

	customer := registry.ConfigurationFor(roles.RoleCustomer)
	require.NotNil(t, customer)
	assert.Equal(t, roles.ScopeEntity, customer.Scope())
	assert.False(t, customer.HasDomain(roles.DomainInventory))

	contractor := registry.ConfigurationFor(roles.RoleContractor)
	require.NotNil(t, contractor)
	dashboard, ok := contractor.Domain(roles.DomainDashboard)
	require.True(t, ok)
	assert.True(t, dashboard.Feature(roles.FeatureActivity))
	assert.False(t, dashboard.Feature(roles.FeatureClearActivity))

	// Unspecified flags are off.
	center := registry.ConfigurationFor(roles.RoleCenter)
	require.NotNil(t, center)
	centerDashboard, ok := center.Domain(roles.DomainDashboard)
	require.True(t, ok)
	assert.False(t, centerDashboard.Feature(roles.FeatureClearActivity))
	_, mapped := centerDashboard.Capability(roles.KeyManage)
	assert.False(t, mapped)
}

/*
TestRegistry_DeclaresKeyAndFeature covers the helpers used for route validation.
*/
func TestRegistry_DeclaresKeyAndFeature(t *testing.T) {
	registry, err := roles.Default()
	require.NoError(t, err)

	assert.True(t, registry.DeclaresKey(roles.DomainOrders, roles.KeyApprove))
	assert.False(t, registry.DeclaresKey(roles.DomainOrders, roles.KeyRestore))
	assert.True(t, registry.DeclaresFeature(roles.DomainReports, roles.FeatureExport))
	assert.False(t, registry.DeclaresFeature(roles.DomainReports, roles.FeatureReplies))
}

/*
TestLoad_RejectsInvalidDefinitions ensures every kind of typo fails at load time.
*/
func TestLoad_RejectsInvalidDefinitions(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"Empty", "roles: {}\n"},
		{"UnknownRole", "roles:\n  janitor:\n    scope: entity\n"},
		{"NonCanonicalRole", "roles:\n  Admin:\n    scope: global\n"},
		{"InvalidScope", "roles:\n  admin:\n    scope: galaxy\n"},
		{"UnknownDomain", "roles:\n  admin:\n    scope: global\n    domains:\n      payroll:\n        capabilities: { view: \"dashboard:view\" }\n"},
		{"UnknownCapability", "roles:\n  admin:\n    scope: global\n    domains:\n      orders:\n        capabilities: { view: \"orders:peek\" }\n"},
		{"CrossDomainCapability", "roles:\n  admin:\n    scope: global\n    domains:\n      orders:\n        capabilities: { view: \"catalog:view\" }\n"},
		{"UnknownFeature", "roles:\n  admin:\n    scope: global\n    domains:\n      orders:\n        features: { teleport: true }\n"},
		{"UnknownField", "roles:\n  admin:\n    scope: global\n    colour: blue\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := roles.Load([]byte(tc.doc))
			assert.Error(t, err)
		})
	}
}

/*
TestLoad_MissingRoleIsNotFound verifies that a role absent from the table
resolves to nil rather than to an unrestricted configuration.
*/
func TestLoad_MissingRoleIsNotFound(t *testing.T) {
	doc := "roles:\n  crew:\n    scope: entity\n    domains:\n      profile:\n        capabilities: { view: \"profile:view\" }\n"

	registry, err := roles.Load([]byte(doc))
	require.NoError(t, err)

	assert.Nil(t, registry.ConfigurationFor(roles.RoleAdmin))
	require.NotNil(t, registry.ConfigurationFor(roles.RoleCrew))
	assert.Equal(t, []roles.Code{roles.RoleCrew}, registry.Codes())
}

/*
TestParseCode normalizes case and surrounding whitespace.
*/
func TestParseCode(t *testing.T) {
	code, ok := roles.ParseCode("  Manager ")
	assert.True(t, ok)
	assert.Equal(t, roles.RoleManager, code)

	_, ok = roles.ParseCode("superuser")
	assert.False(t, ok)
}
