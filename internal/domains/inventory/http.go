// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package inventory

import (
	"net/http"

	"github.com/taibuivan/bizportal/internal/access/roles"
	requestutil "github.com/taibuivan/bizportal/internal/platform/request"
	"github.com/taibuivan/bizportal/internal/platform/respond"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/pkg/pagination"
)

// Module is the inventory [portal.Module].
type Module struct {
	service *Service
}

// NewModule creates the inventory module.
func NewModule(service *Service) *Module {
	return &Module{service: service}
}

// Domain implements [portal.Module].
func (module *Module) Domain() roles.Domain { return roles.DomainInventory }

// Routes implements [portal.Module].
func (module *Module) Routes() []portal.Route {
	return []portal.Route{
		{Method: http.MethodGet, Pattern: "/", Keys: []roles.CapKey{roles.KeyView}, Handle: module.listStock},
		{Method: http.MethodPost, Pattern: "/{id}/adjust", Keys: []roles.CapKey{roles.KeyAdjust}, Feature: roles.FeatureAdjustments, Handle: module.adjustStock},
	}
}

// listStock handles GET /inventory?location=north.
func (module *Module) listStock(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	params := pagination.FromRequest(request)

	items, total, err := module.service.List(request.Context(), scope, request.URL.Query().Get("location"), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, items, pagination.NewMeta(params.Page, params.Limit, total))
}

func (module *Module) adjustStock(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	id, err := requestutil.RequiredParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input AdjustInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := module.service.Adjust(request.Context(), scope, id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}
