// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/bizportal/internal/access/identity"
	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/platform/ctxkey"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := LookupLogger(ctx); ok {
		return logger
	}
	return slog.Default()
}

// LookupLogger reports the request logger, if one was attached.
func LookupLogger(ctx context.Context) (*slog.Logger, bool) {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	return logger, ok && logger != nil
}

// # Identity & Access

// WithIdentity attaches the authenticated caller to the context.
func WithIdentity(ctx context.Context, id *identity.RequestIdentity) context.Context {
	return context.WithValue(ctx, ctxkey.KeyIdentity, id)
}

// GetIdentity retrieves the [*identity.RequestIdentity] set by the authentication gate.
// Returns nil for unauthenticated requests.
func GetIdentity(ctx context.Context) *identity.RequestIdentity {
	id, ok := ctx.Value(ctxkey.KeyIdentity).(*identity.RequestIdentity)
	if !ok {
		return nil
	}
	return id
}

// WithRole attaches the role configuration resolved from the request path.
func WithRole(ctx context.Context, config *roles.RoleConfiguration) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRole, config)
}

// GetRole retrieves the resolved [*roles.RoleConfiguration], or nil.
func GetRole(ctx context.Context) *roles.RoleConfiguration {
	config, ok := ctx.Value(ctxkey.KeyRole).(*roles.RoleConfiguration)
	if !ok {
		return nil
	}
	return config
}

// WithDomain attaches the domain configuration of the module serving the request.
func WithDomain(ctx context.Context, config *roles.DomainConfiguration) context.Context {
	return context.WithValue(ctx, ctxkey.KeyDomain, config)
}

// GetDomain retrieves the resolved [*roles.DomainConfiguration], or nil.
func GetDomain(ctx context.Context) *roles.DomainConfiguration {
	config, ok := ctx.Value(ctxkey.KeyDomain).(*roles.DomainConfiguration)
	if !ok {
		return nil
	}
	return config
}
