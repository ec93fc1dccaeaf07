// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build !devauth

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bizportal/internal/platform/sec"
)

/*
TestNewVerifier_ReleaseBuildHasNoDecodeOnly verifies that a release binary
cannot be talked into skipping signature checks, even outside production.
*/
func TestNewVerifier_ReleaseBuildHasNoDecodeOnly(t *testing.T) {
	_, err := sec.NewVerifier(sec.VerifierConfig{DevDecodeOnly: true})
	assert.ErrorIs(t, err, sec.ErrNoVerificationMethod)

	_, err = sec.NewVerifier(sec.VerifierConfig{ExternalSecret: "provider-key"})
	assert.ErrorIs(t, err, sec.ErrNoVerificationMethod)
}
