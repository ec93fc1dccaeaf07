// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package services

import (
	"net/http"

	"github.com/taibuivan/bizportal/internal/access/roles"
	requestutil "github.com/taibuivan/bizportal/internal/platform/request"
	"github.com/taibuivan/bizportal/internal/platform/respond"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/pkg/pagination"
	"github.com/taibuivan/bizportal/pkg/query"
)

// Module is the services [portal.Module].
type Module struct {
	service *Service
}

// NewModule creates the services module.
func NewModule(service *Service) *Module {
	return &Module{service: service}
}

// Domain implements [portal.Module].
func (module *Module) Domain() roles.Domain { return roles.DomainServices }

// Routes implements [portal.Module].
func (module *Module) Routes() []portal.Route {
	return []portal.Route{
		{Method: http.MethodGet, Pattern: "/", Keys: []roles.CapKey{roles.KeyView}, Handle: module.listJobs},
		{Method: http.MethodPost, Pattern: "/{id}/status", Keys: []roles.CapKey{roles.KeyManage}, Feature: roles.FeatureStatusUpdates, Handle: module.updateStatus},
	}
}

func (module *Module) listJobs(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	params := pagination.FromRequest(request)
	statuses := query.StringSlice(request.URL.Query().Get("status"))

	jobs, total, err := module.service.List(request.Context(), scope, statuses, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, jobs, pagination.NewMeta(params.Page, params.Limit, total))
}

func (module *Module) updateStatus(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	id, err := requestutil.RequiredParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input StatusInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	job, err := module.service.UpdateStatus(request.Context(), scope, id, input.Status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, job)
}
