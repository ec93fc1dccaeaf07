// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package support

import (
	"net/http"

	"github.com/taibuivan/bizportal/internal/access/roles"
	requestutil "github.com/taibuivan/bizportal/internal/platform/request"
	"github.com/taibuivan/bizportal/internal/platform/respond"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/pkg/pagination"
	"github.com/taibuivan/bizportal/pkg/query"
)

// Module is the support [portal.Module].
type Module struct {
	service *Service
}

// NewModule creates the support module.
func NewModule(service *Service) *Module {
	return &Module{service: service}
}

// Domain implements [portal.Module].
func (module *Module) Domain() roles.Domain { return roles.DomainSupport }

// Routes implements [portal.Module].
func (module *Module) Routes() []portal.Route {
	view := []roles.CapKey{roles.KeyView}

	return []portal.Route{
		{Method: http.MethodGet, Pattern: "/tickets", Keys: view, Handle: module.listTickets},
		{Method: http.MethodGet, Pattern: "/tickets/{id}", Keys: view, Handle: module.getTicket},
		{Method: http.MethodPost, Pattern: "/tickets", Keys: []roles.CapKey{roles.KeyCreate}, Handle: module.createTicket},
		{Method: http.MethodPost, Pattern: "/tickets/{id}/replies", Keys: []roles.CapKey{roles.KeyRespond}, Feature: roles.FeatureReplies, Handle: module.reply},
	}
}

func (module *Module) listTickets(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	params := pagination.FromRequest(request)
	statuses := query.StringSlice(request.URL.Query().Get("status"))

	tickets, total, err := module.service.List(request.Context(), scope, statuses, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, tickets, pagination.NewMeta(params.Page, params.Limit, total))
}

func (module *Module) getTicket(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	id, err := requestutil.RequiredParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ticket, err := module.service.Get(request.Context(), scope, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, ticket)
}

func (module *Module) createTicket(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ticket, err := module.service.Create(request.Context(), scope, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, ticket)
}

func (module *Module) reply(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	id, err := requestutil.RequiredParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ReplyInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ticket, err := module.service.Reply(request.Context(), scope, id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, ticket)
}
