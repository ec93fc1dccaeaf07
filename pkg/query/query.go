// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list filters from URL query strings.
package query

import "strings"

// StringSlice splits a comma-separated filter such as ?status=pending,approved.
// Blank entries are dropped. An empty input yields nil, meaning "no filter".
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}

	var res []string
	for _, part := range strings.Split(val, ",") {
		if clean := strings.TrimSpace(part); clean != "" {
			res = append(res, clean)
		}
	}
	return res
}
