// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package archive

import (
	"net/http"

	"github.com/taibuivan/bizportal/internal/access/roles"
	requestutil "github.com/taibuivan/bizportal/internal/platform/request"
	"github.com/taibuivan/bizportal/internal/platform/respond"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/pkg/pagination"
)

// Module is the archive [portal.Module].
type Module struct {
	service *Service
}

// NewModule creates the archive module.
func NewModule(service *Service) *Module {
	return &Module{service: service}
}

// Domain implements [portal.Module].
func (module *Module) Domain() roles.Domain { return roles.DomainArchive }

// Routes implements [portal.Module].
func (module *Module) Routes() []portal.Route {
	return []portal.Route{
		{Method: http.MethodGet, Pattern: "/", Keys: []roles.CapKey{roles.KeyView}, Handle: module.listArchived},
		{Method: http.MethodPost, Pattern: "/{id}/restore", Keys: []roles.CapKey{roles.KeyRestore}, Feature: roles.FeatureRestore, Handle: module.restore},
	}
}

func (module *Module) listArchived(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	params := pagination.FromRequest(request)

	users, total, err := module.service.List(request.Context(), scope, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

func (module *Module) restore(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	id, err := requestutil.RequiredParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := module.service.Restore(request.Context(), scope, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}
