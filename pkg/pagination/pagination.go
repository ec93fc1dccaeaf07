// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination parses page/limit query parameters for list endpoints and
// builds the meta object of the paginated envelope.
package pagination

import (
	"net/http"

	"github.com/taibuivan/bizportal/pkg/convert"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
	DefaultPage  = 1
)

// Params is a 1-indexed page request.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of rows before Page.
func (p Params) Offset() int {
	return (max(p.Page, 1) - 1) * p.Limit
}

// Meta accompanies every list response.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func NewMeta(page, limit, total int) Meta {
	meta := Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		meta.TotalPages = (total + limit - 1) / limit
	}
	return meta
}

// FromRequest reads ?page= and ?limit=. Unparseable or out-of-range values
// fall back to the defaults rather than failing the request.
func FromRequest(request *http.Request) Params {
	values := request.URL.Query()

	params := Params{
		Page:  convert.ToIntD(values.Get("page"), DefaultPage),
		Limit: convert.ToIntD(values.Get("limit"), DefaultLimit),
	}
	if params.Page < 1 {
		params.Page = DefaultPage
	}
	if params.Limit < 1 || params.Limit > MaxLimit {
		params.Limit = DefaultLimit
	}
	return params
}
