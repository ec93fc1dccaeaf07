// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"net/http"

	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/platform/respond"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/pkg/pagination"
)

// Module is the dashboard [portal.Module].
type Module struct {
	service *Service
}

// NewModule creates the dashboard module.
func NewModule(service *Service) *Module {
	return &Module{service: service}
}

// Domain implements [portal.Module].
func (module *Module) Domain() roles.Domain { return roles.DomainDashboard }

// Routes implements [portal.Module].
func (module *Module) Routes() []portal.Route {
	return []portal.Route{
		{Method: http.MethodGet, Pattern: "/kpis", Keys: []roles.CapKey{roles.KeyView}, Feature: roles.FeatureKPIs, Handle: module.kpis},
		{Method: http.MethodGet, Pattern: "/activity", Keys: []roles.CapKey{roles.KeyView}, Feature: roles.FeatureActivity, Handle: module.activity},
		{Method: http.MethodDelete, Pattern: "/activity", Keys: []roles.CapKey{roles.KeyManage}, Feature: roles.FeatureClearActivity, Handle: module.clearActivity},
	}
}

func (module *Module) kpis(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	kpis, err := module.service.KPIs(request.Context(), scope)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, kpis)
}

// activity reads the feed. Only the limit of the pagination params is used;
// the feed is capped and has no pages.
func (module *Module) activity(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	params := pagination.FromRequest(request)

	entries, err := module.service.Activity(request.Context(), scope, params.Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}

func (module *Module) clearActivity(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	if err := module.service.ClearActivity(request.Context(), scope); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
