// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec implements the Credential Verifier: it turns a raw bearer token
// into the subject it was issued for.
//
// # Architecture
//
// This package isolates security-sensitive code (JWT signing and verification)
// from the access pipeline. The authentication gate depends only on the
// [Verifier] interface and never inspects token internals itself.
//
// # Verification Methods
//
//   - HMAC: a shared secret is configured and every token must carry a valid
//     HS256/384/512 signature.
//   - Decode-only: claims are read without any signature check. This parser is
//     compiled only with the devauth build tag; release binaries do not contain it.
package sec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers malformed, mis-signed, unsigned and expired tokens.
	ErrInvalidToken = errors.New("sec: invalid token")

	// ErrMissingSubject is returned when a well-formed token names no user.
	ErrMissingSubject = errors.New("sec: token has no subject")

	// ErrNoVerificationMethod is returned by [NewVerifier] when neither a secret
	// nor an allowed decode-only mode is configured.
	ErrNoVerificationMethod = errors.New("sec: no token verification method configured")
)

// Subject is the verified principal a token was issued for.
type Subject struct {
	UserID    string
	SessionID string
}

// Verifier validates a raw token and extracts its [Subject].
type Verifier interface {
	Verify(raw string) (Subject, error)
}

// VerifierConfig selects the verification method at startup.
type VerifierConfig struct {
	Secret         string
	ExternalSecret string
	DevDecodeOnly  bool
	Production     bool
	Issuer         string
}

// NewVerifier picks the strongest available verification method.
//
// A configured secret always wins. Decode-only mode is considered only when no
// secret is set, the deployment is not production, and it was explicitly asked
// for; even then it exists only in devauth builds.
func NewVerifier(cfg VerifierConfig) (Verifier, error) {
	if cfg.Secret != "" {
		return NewTokenService(cfg.Secret, cfg.Issuer), nil
	}

	if !cfg.Production && (cfg.ExternalSecret != "" || cfg.DevDecodeOnly) {
		if verifier, ok := newDecodeOnlyVerifier(); ok {
			return verifier, nil
		}
	}

	return nil, ErrNoVerificationMethod
}

// # Claims

// PortalClaims is the payload accepted by the portal.
//
// External issuers disagree on claim names, so the subject is read from
// user_id with sub as fallback, and the session from sid or session_id.
type PortalClaims struct {
	jwt.RegisteredClaims

	UserID       string `json:"user_id,omitempty"`
	SessionID    string `json:"sid,omitempty"`
	LegacySessID string `json:"session_id,omitempty"`
}

func (c *PortalClaims) subject() (Subject, error) {
	userID := strings.TrimSpace(c.UserID)
	if userID == "" {
		userID = strings.TrimSpace(c.Subject)
	}
	if userID == "" {
		return Subject{}, ErrMissingSubject
	}

	sessionID := c.SessionID
	if sessionID == "" {
		sessionID = c.LegacySessID
	}
	return Subject{UserID: userID, SessionID: sessionID}, nil
}

// # HMAC Token Service

// TokenService verifies and issues HMAC-signed tokens.
type TokenService struct {
	secret []byte
	issuer string
	parser *jwt.Parser
}

// NewTokenService creates a TokenService bound to a shared secret.
// An empty issuer disables the issuer check.
func NewTokenService(secret, issuer string) *TokenService {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{
			jwt.SigningMethodHS256.Alg(),
			jwt.SigningMethodHS384.Alg(),
			jwt.SigningMethodHS512.Alg(),
		}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		options = append(options, jwt.WithIssuer(issuer))
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		parser: jwt.NewParser(options...),
	}
}

// Verify checks the signature and validity window of raw.
func (service *TokenService) Verify(raw string) (Subject, error) {
	var claims PortalClaims
	token, err := service.parser.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})
	if err != nil {
		return Subject{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Subject{}, ErrInvalidToken
	}

	return claims.subject()
}

// GenerateAccessToken issues an HS256 token for userID.
func (service *TokenService) GenerateAccessToken(userID, sessionID string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := PortalClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID:    userID,
		SessionID: sessionID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}
