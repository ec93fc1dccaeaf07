// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package directory

import (
	"net/http"

	"github.com/taibuivan/bizportal/internal/access/roles"
	requestutil "github.com/taibuivan/bizportal/internal/platform/request"
	"github.com/taibuivan/bizportal/internal/platform/respond"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/pkg/pagination"
)

// Module is the directory [portal.Module].
type Module struct {
	service *Service
}

// NewModule creates the directory module.
func NewModule(service *Service) *Module {
	return &Module{service: service}
}

// Domain implements [portal.Module].
func (module *Module) Domain() roles.Domain { return roles.DomainDirectory }

// Routes implements [portal.Module].
func (module *Module) Routes() []portal.Route {
	manage := []roles.CapKey{roles.KeyManage}

	return []portal.Route{
		{Method: http.MethodGet, Pattern: "/users", Keys: []roles.CapKey{roles.KeyView}, Handle: module.listUsers},
		{Method: http.MethodPost, Pattern: "/users/{id}/archive", Keys: manage, Feature: roles.FeatureArchiveUsers, Handle: module.archiveUser},
		{Method: http.MethodPut, Pattern: "/users/{id}/overrides", Keys: manage, Feature: roles.FeatureOverrides, Handle: module.setOverride},
	}
}

// listUsers handles GET /directory/users?status=archived.
func (module *Module) listUsers(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	params := pagination.FromRequest(request)

	users, total, err := module.service.List(request.Context(), scope, request.URL.Query().Get("status"), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

func (module *Module) archiveUser(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	id, err := requestutil.RequiredParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := module.service.Archive(request.Context(), scope, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (module *Module) setOverride(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	id, err := requestutil.RequiredParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input OverrideInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	overrides, err := module.service.SetOverride(request.Context(), scope, id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, overrides)
}
