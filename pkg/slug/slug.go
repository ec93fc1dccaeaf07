// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug turns free-form names into ASCII identifiers.
//
// The catalogue derives a SKU from an item name when none is supplied:
// "Crème Brûlée Kit (L)" becomes "creme-brulee-kit-l", then upper-cased.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var separators = regexp.MustCompile(`[^a-z0-9]+`)

// stripMarks decomposes accented letters and drops the combining marks.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// From lower-cases s, removes accents and joins the remaining ASCII letters
// and digits with single hyphens.
func From(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	return strings.Trim(separators.ReplaceAllString(strings.ToLower(folded), "-"), "-")
}
