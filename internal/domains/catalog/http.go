// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"
	"strings"

	"github.com/taibuivan/bizportal/internal/access/roles"
	requestutil "github.com/taibuivan/bizportal/internal/platform/request"
	"github.com/taibuivan/bizportal/internal/platform/respond"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/pkg/convert"
	"github.com/taibuivan/bizportal/pkg/pagination"
	"github.com/taibuivan/bizportal/pkg/pointer"
)

// Module is the catalog [portal.Module].
type Module struct {
	service *Service
}

// NewModule creates the catalog module.
func NewModule(service *Service) *Module {
	return &Module{service: service}
}

// Domain implements [portal.Module].
func (module *Module) Domain() roles.Domain { return roles.DomainCatalog }

// Routes implements [portal.Module].
func (module *Module) Routes() []portal.Route {
	view := []roles.CapKey{roles.KeyView}
	manage := []roles.CapKey{roles.KeyManage}

	return []portal.Route{
		{Method: http.MethodGet, Pattern: "/", Keys: view, Handle: module.listItems},
		{Method: http.MethodGet, Pattern: "/{id}", Keys: view, Handle: module.getItem},
		{Method: http.MethodPost, Pattern: "/", Keys: manage, Feature: roles.FeatureEditItems, Handle: module.createItem},
		{Method: http.MethodPatch, Pattern: "/{id}", Keys: manage, Feature: roles.FeatureEditItems, Handle: module.updateItem},
	}
}

// listItems handles GET /catalog?active=true&q=clean.
func (module *Module) listItems(writer http.ResponseWriter, request *http.Request, _ portal.DataScope) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{Search: strings.TrimSpace(query.Get("q"))}
	if raw := query.Get("active"); raw != "" {
		filter.Active = pointer.To(convert.ToBool(raw))
	}

	items, total, err := module.service.List(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, items, pagination.NewMeta(params.Page, params.Limit, total))
}

func (module *Module) getItem(writer http.ResponseWriter, request *http.Request, _ portal.DataScope) {
	id, err := requestutil.RequiredParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := module.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

func (module *Module) createItem(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := module.service.Create(request.Context(), scope, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, item)
}

func (module *Module) updateItem(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	id, err := requestutil.RequiredParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch Patch
	if err := requestutil.DecodeJSON(writer, request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := module.service.Update(request.Context(), scope, id, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}
