// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert parses query-string values without returning errors.

Handlers use it for optional knobs such as ?days=30 or ?active=true, where a
malformed value should fall back to the default rather than fail the request.
Validation of the resulting value stays with the caller.
*/
package convert

import "strconv"

// ToIntD parses str as an int, returning def when it is empty or malformed.
func ToIntD(str string, def int) int {
	if str == "" {
		return def
	}
	if v, err := strconv.Atoi(str); err == nil {
		return v
	}
	return def
}

// ToBool parses "true", "1", "false", "0" and friends. Anything else is false.
func ToBool(s string) bool {
	v, _ := strconv.ParseBool(s)
	return v
}
