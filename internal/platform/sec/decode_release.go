// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build !devauth

package sec

// Release builds carry no decode-only parser.
func newDecodeOnlyVerifier() (Verifier, bool) {
	return nil, false
}
