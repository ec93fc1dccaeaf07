// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build devauth

package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// decodeOnlyVerifier reads claims without checking any signature.
// Only for local development against an external identity provider.
type decodeOnlyVerifier struct {
	parser *jwt.Parser
}

func newDecodeOnlyVerifier() (Verifier, bool) {
	return &decodeOnlyVerifier{parser: jwt.NewParser()}, true
}

func (v *decodeOnlyVerifier) Verify(raw string) (Subject, error) {
	var claims PortalClaims
	if _, _, err := v.parser.ParseUnverified(raw, &claims); err != nil {
		return Subject{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return Subject{}, fmt.Errorf("%w: token expired", ErrInvalidToken)
	}

	return claims.subject()
}
