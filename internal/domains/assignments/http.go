// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assignments

import (
	"net/http"

	"github.com/taibuivan/bizportal/internal/access/roles"
	requestutil "github.com/taibuivan/bizportal/internal/platform/request"
	"github.com/taibuivan/bizportal/internal/platform/respond"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/pkg/pagination"
)

// Module is the assignments [portal.Module].
type Module struct {
	service *Service
}

// NewModule creates the assignments module.
func NewModule(service *Service) *Module {
	return &Module{service: service}
}

// Domain implements [portal.Module].
func (module *Module) Domain() roles.Domain { return roles.DomainAssignments }

// Routes implements [portal.Module].
func (module *Module) Routes() []portal.Route {
	return []portal.Route{
		{Method: http.MethodGet, Pattern: "/", Keys: []roles.CapKey{roles.KeyView}, Handle: module.listAssignments},
		{Method: http.MethodPost, Pattern: "/", Keys: []roles.CapKey{roles.KeyAssign}, Feature: roles.FeatureReassign, Handle: module.assign},
	}
}

func (module *Module) listAssignments(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	params := pagination.FromRequest(request)

	assignments, total, err := module.service.List(request.Context(), scope, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, assignments, pagination.NewMeta(params.Page, params.Limit, total))
}

func (module *Module) assign(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	var input AssignInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	assignment, err := module.service.Assign(request.Context(), scope, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, assignment)
}
