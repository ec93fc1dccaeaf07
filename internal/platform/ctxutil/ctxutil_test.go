// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bizportal/internal/access/capability"
	"github.com/taibuivan/bizportal/internal/access/identity"
	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/platform/ctxutil"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Identity verifies that the request identity travels with the context.
*/
func TestContext_Identity(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.GetIdentity(ctx))

	id := &identity.RequestIdentity{
		UserID:       "MGR-001",
		Role:         roles.RoleManager,
		Capabilities: capability.NewSet(capability.DashboardView),
	}
	ctx = ctxutil.WithIdentity(ctx, id)

	retrieved := ctxutil.GetIdentity(ctx)
	require.NotNil(t, retrieved)
	assert.Equal(t, "MGR-001", retrieved.UserID)
	assert.True(t, retrieved.Capabilities.Has(capability.DashboardView))
}

/*
TestContext_RoleAndDomain verifies the resolved configurations are retrievable.
*/
func TestContext_RoleAndDomain(t *testing.T) {
	registry, err := roles.Default()
	require.NoError(t, err)

	ctx := context.Background()
	assert.Nil(t, ctxutil.GetRole(ctx))
	assert.Nil(t, ctxutil.GetDomain(ctx))

	config := registry.ConfigurationFor(roles.RoleCenter)
	domain, ok := config.Domain(roles.DomainOrders)
	require.True(t, ok)

	ctx = ctxutil.WithDomain(ctxutil.WithRole(ctx, config), domain)
	assert.Equal(t, roles.RoleCenter, ctxutil.GetRole(ctx).Code())
	assert.Equal(t, roles.DomainOrders, ctxutil.GetDomain(ctx).Name())
}
