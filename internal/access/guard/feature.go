// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guard

import (
	"net/http"

	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/platform/ctxutil"
	"github.com/taibuivan/bizportal/internal/platform/respond"
)

// RequireFeature admits the request only when the role switched feature on for
// the current domain. It is independent of capabilities: holding the
// capability does not enable a disabled feature.
func RequireFeature(feature roles.Feature) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			domain := ctxutil.GetDomain(request.Context())
			if domain == nil {
				respond.Error(writer, request, apperr.MissingRole())
				return
			}

			if !domain.Feature(feature) {
				respond.Error(writer, request, apperr.FeatureDisabled(string(domain.Name()), string(feature)))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
