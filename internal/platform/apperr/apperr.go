// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for the portal.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing a machine-readable Code and a client-safe message.
  - Denials: Fixed authentication/authorization codes that clients depend on.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Stable Codes

// Denial codes are part of the client contract and must never change.
const (
	CodeMissingToken       = "AUTH_MISSING_TOKEN"
	CodeInvalidToken       = "AUTH_INVALID_TOKEN"
	CodeUserNotFound       = "AUTH_USER_NOT_FOUND"
	CodeMissingRole        = "CONTEXT_MISSING_ROLE"
	CodeInvalidRole        = "CONTEXT_INVALID_ROLE"
	CodeDomainForbidden    = "DOMAIN_FORBIDDEN"
	CodeInsufficientCaps   = "AUTH_INSUFFICIENT_CAPS"
	CodeFeatureDisabled    = "FEATURE_DISABLED"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeConflict           = "CONFLICT"
	CodeValidation         = "VALIDATION_ERROR"
	CodeRateLimited        = "RATE_LIMITED"
	CodeUnprocessable      = "UNPROCESSABLE"
	CodeInternal           = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// AppError is the canonical error type for the portal API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, optional field-level validation errors and an optional details object.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "DOMAIN_FORBIDDEN").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"message"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Fields holds per-field validation errors for VALIDATION_ERROR responses.
	Fields []FieldError `json:"-"`
	// Details holds structured, client-safe context (e.g. the missing capability keys).
	Details map[string]any `json:"-"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// WithDetails returns a copy of the error carrying the given details object.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// WithCause returns a copy of the error carrying an internal cause for logging.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// # Authentication Denials (401)

// MissingToken creates a 401 [AppError] for requests that carry no credential.
func MissingToken() *AppError {
	return &AppError{
		Code:       CodeMissingToken,
		Message:    "Authentication token is required",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// InvalidToken creates a 401 [AppError] for malformed, unsigned or expired credentials.
func InvalidToken(msg string) *AppError {
	return &AppError{
		Code:       CodeInvalidToken,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// UserNotFound creates a 401 [AppError] for credentials whose subject no longer exists.
func UserNotFound() *AppError {
	return &AppError{
		Code:       CodeUserNotFound,
		Message:    "User account not found or archived",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// # Context Denials (400/403)

// MissingRole creates a 400 [AppError] when no role could be derived from the request path.
func MissingRole() *AppError {
	return &AppError{
		Code:       CodeMissingRole,
		Message:    "Role context is missing from the request path",
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidRole creates a 403 [AppError] for an unknown or unavailable role context.
func InvalidRole(msg string) *AppError {
	return &AppError{
		Code:       CodeInvalidRole,
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// DomainForbidden creates a 403 [AppError] for a domain the role cannot use at all.
func DomainForbidden(domain string) *AppError {
	return &AppError{
		Code:       CodeDomainForbidden,
		Message:    "This role cannot access the " + domain + " domain",
		HTTPStatus: http.StatusForbidden,
		Details:    map[string]any{"domain": domain},
	}
}

// # Authorization Denials (403)

// InsufficientCapabilities creates a 403 [AppError] naming what the operation required.
func InsufficientCapabilities(details map[string]any) *AppError {
	return &AppError{
		Code:       CodeInsufficientCaps,
		Message:    "Insufficient capabilities for this operation",
		HTTPStatus: http.StatusForbidden,
		Details:    details,
	}
}

// FeatureDisabled creates a 403 [AppError] for a feature switched off for the role.
func FeatureDisabled(domain, feature string) *AppError {
	return &AppError{
		Code:       CodeFeatureDisabled,
		Message:    "Feature " + feature + " is not enabled for this role",
		HTTPStatus: http.StatusForbidden,
		Details:    map[string]any{"domain": domain, "feature": feature},
	}
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Order") // Returns "Order not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// MethodNotAllowed creates a 405 [AppError] for a known path hit with the wrong method.
func MethodNotAllowed(method string) *AppError {
	return &AppError{
		Code:       CodeMethodNotAllowed,
		Message:    "Method " + method + " is not allowed on this route",
		HTTPStatus: http.StatusMethodNotAllowed,
	}
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, fields ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Fields:     fields,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// Unprocessable creates a 422 [AppError] for semantically invalid input.
func Unprocessable(msg string) *AppError {
	return &AppError{
		Code:       CodeUnprocessable,
		Message:    msg,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// ServiceUnavailable creates a 503 [AppError] for maintenance mode.
func ServiceUnavailable(msg string) *AppError {
	return &AppError{
		Code:       CodeServiceUnavailable,
		Message:    msg,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
