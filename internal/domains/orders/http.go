// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package orders

import (
	"context"
	"net/http"

	"github.com/taibuivan/bizportal/internal/access/guard"
	"github.com/taibuivan/bizportal/internal/access/roles"
	requestutil "github.com/taibuivan/bizportal/internal/platform/request"
	"github.com/taibuivan/bizportal/internal/platform/respond"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/pkg/pagination"
	"github.com/taibuivan/bizportal/pkg/query"
)

// Module is the orders [portal.Module].
type Module struct {
	service *Service
}

// NewModule creates the orders module.
func NewModule(service *Service) *Module {
	return &Module{service: service}
}

// Domain implements [portal.Module].
func (module *Module) Domain() roles.Domain { return roles.DomainOrders }

// Routes implements [portal.Module].
//
// The status endpoint is open to approvers who cannot browse orders, so it
// accepts either key.
func (module *Module) Routes() []portal.Route {
	view := []roles.CapKey{roles.KeyView}

	return []portal.Route{
		{Method: http.MethodGet, Pattern: "/", Keys: view, Handle: module.listOrders},
		{Method: http.MethodGet, Pattern: "/{id}", Keys: view, Handle: module.getOrder},
		{Method: http.MethodGet, Pattern: "/{id}/status", Keys: []roles.CapKey{roles.KeyView, roles.KeyApprove}, Mode: guard.ModeAny, Handle: module.getStatus},
		{Method: http.MethodPost, Pattern: "/", Keys: []roles.CapKey{roles.KeyCreate}, Handle: module.createOrder},
		{Method: http.MethodPost, Pattern: "/{id}/approve", Keys: []roles.CapKey{roles.KeyApprove}, Feature: roles.FeatureApprovals, Handle: module.approveOrder},
		{Method: http.MethodPost, Pattern: "/{id}/cancel", Keys: []roles.CapKey{roles.KeyCancel}, Feature: roles.FeatureCancellation, Handle: module.cancelOrder},
	}
}

// listOrders handles GET /orders?status=pending,approved.
func (module *Module) listOrders(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	params := pagination.FromRequest(request)
	statuses := query.StringSlice(request.URL.Query().Get("status"))

	orders, total, err := module.service.List(request.Context(), scope, statuses, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, orders, pagination.NewMeta(params.Page, params.Limit, total))
}

func (module *Module) getOrder(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	id, err := requestutil.RequiredParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	order, err := module.service.Get(request.Context(), scope, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, order)
}

func (module *Module) getStatus(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	id, err := requestutil.RequiredParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := module.service.Status(request.Context(), scope, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

func (module *Module) createOrder(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	order, err := module.service.Create(request.Context(), scope, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, order)
}

func (module *Module) approveOrder(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	module.transition(writer, request, scope, module.service.Approve)
}

func (module *Module) cancelOrder(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	module.transition(writer, request, scope, module.service.Cancel)
}

type transitionFunc func(ctx context.Context, scope portal.DataScope, id string) (*Order, error)

func (module *Module) transition(writer http.ResponseWriter, request *http.Request, scope portal.DataScope, apply transitionFunc) {
	id, err := requestutil.RequiredParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	order, err := apply(request.Context(), scope, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, order)
}
