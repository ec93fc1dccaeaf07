// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package authn implements the Authentication Gate: the first access-control
step of every portal request.

# Flow

 1. Extract the credential: Authorization Bearer, then X-Auth-Token, then the session cookie.
 2. Verify it with the configured [sec.Verifier].
 3. Load the active account named by the token subject.
 4. Compute the caller's effective capabilities.
 5. Attach a fresh [identity.RequestIdentity] to the request context.

Any failure ends the request with a 401 denial. Nothing about the caller is
carried over from a previous request.
*/
package authn

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/bizportal/internal/access/capability"
	"github.com/taibuivan/bizportal/internal/access/identity"
	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/audit"
	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/platform/constants"
	"github.com/taibuivan/bizportal/internal/platform/ctxutil"
	"github.com/taibuivan/bizportal/internal/platform/middleware"
	"github.com/taibuivan/bizportal/internal/platform/respond"
	"github.com/taibuivan/bizportal/internal/platform/sec"
)

// UserLoader resolves a token subject to an active account.
type UserLoader interface {
	Load(ctx context.Context, subjectID string) (*identity.User, error)
}

// CapabilityCalculator derives the effective capability set of an account.
type CapabilityCalculator interface {
	Compute(ctx context.Context, userID string, role roles.Code) capability.Set
}

// Gate authenticates every request passing through it.
type Gate struct {
	verifier   sec.Verifier
	users      UserLoader
	calculator CapabilityCalculator
	trail      *audit.Trail
	cookieName string
}

// NewGate wires the gate. An empty cookieName falls back to the default session cookie.
func NewGate(verifier sec.Verifier, users UserLoader, calculator CapabilityCalculator, trail *audit.Trail, cookieName string) *Gate {
	if cookieName == "" {
		cookieName = constants.DefaultSessionCookie
	}
	return &Gate{
		verifier:   verifier,
		users:      users,
		calculator: calculator,
		trail:      trail,
		cookieName: cookieName,
	}
}

// Authenticate is the middleware form of the gate.
func (gate *Gate) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()

		// 1. Credential
		raw := gate.extractToken(request)
		if raw == "" {
			respond.Error(writer, request, apperr.MissingToken())
			return
		}

		// 2. Signature and claims
		subject, err := gate.verifier.Verify(raw)
		if err != nil {
			respond.Error(writer, request, verificationError(err))
			return
		}

		// 3. Account
		user, err := gate.users.Load(ctx, subject.UserID)
		if err != nil {
			if errors.Is(err, identity.ErrUserNotFound) {
				respond.Error(writer, request, apperr.UserNotFound())
				return
			}
			respond.Error(writer, request, apperr.Internal(err))
			return
		}

		// 4. Capabilities (fail closed inside the calculator)
		caller := &identity.RequestIdentity{
			UserID:       user.ID,
			Role:         user.Role,
			Capabilities: gate.calculator.Compute(ctx, user.ID, user.Role),
			SessionID:    subject.SessionID,
			EcosystemID:  user.EcosystemID,
		}

		// 5. Request-scoped identity and logger
		logger := ctxutil.GetLogger(ctx).With(
			slog.String("user_id", caller.UserID),
			slog.String("role", string(caller.Role)),
		)
		ctx = ctxutil.WithLogger(ctxutil.WithIdentity(ctx, caller), logger)

		gate.trail.Emit(ctx, audit.Entry{
			ActorID:   caller.UserID,
			Action:    audit.ActionAuthSuccess,
			Role:      string(caller.Role),
			IPAddress: middleware.RealIP(request),
			UserAgent: request.UserAgent(),
			Details:   map[string]any{"session_id": caller.SessionID},
		})

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// extractToken applies the fixed transport precedence.
func (gate *Gate) extractToken(request *http.Request) string {
	if header := request.Header.Get(constants.HeaderAuthorization); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			if token = strings.TrimSpace(token); token != "" {
				return token
			}
		}
	}

	if token := strings.TrimSpace(request.Header.Get(constants.HeaderAuthToken)); token != "" {
		return token
	}

	if cookie, err := request.Cookie(gate.cookieName); err == nil {
		return strings.TrimSpace(cookie.Value)
	}

	return ""
}

func verificationError(err error) *apperr.AppError {
	if errors.Is(err, sec.ErrMissingSubject) {
		return apperr.InvalidToken("Token does not identify a user").
			WithDetails(map[string]any{"reason": "missing_subject"})
	}
	return apperr.InvalidToken("Token is invalid or expired")
}
